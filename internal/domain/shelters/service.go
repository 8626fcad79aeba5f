package shelters

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/platform/apperr"
	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = apperr.New(apperr.KindValidation, "invalid input")
	ErrForbidden     = apperr.New(apperr.KindForbidden, "forbidden")
	ErrNotFound      = apperr.New(apperr.KindNotFound, "shelter not found")
	ErrAlreadyExists = apperr.New(apperr.KindValidation, "user already owns a shelter")
)

var zipRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Description string
	Address     Address
	Contact     Contact
}

// Create exige rol shelter. Un refugio por owner.
func (s *Service) Create(ctx context.Context, actor auth.Claims, in CreateInput) (Shelter, error) {
	if !actor.IsShelter() {
		return Shelter{}, ErrForbidden
	}

	in = trimInput(in)
	if err := validate(in); err != nil {
		return Shelter{}, err
	}

	if _, err := s.repo.GetByOwner(ctx, actor.UserID); err == nil {
		return Shelter{}, ErrAlreadyExists
	}

	now := s.now()
	sh := Shelter{
		ID:          uuid.NewString(),
		OwnerUserID: actor.UserID,
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Contact:     in.Contact,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, sh); err != nil {
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Shelter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Shelter{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByOwner(ctx context.Context, ownerUserID string) (Shelter, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Shelter{}, ErrNotFound
	}
	return s.repo.GetByOwner(ctx, ownerUserID)
}

func (s *Service) List(ctx context.Context, f Filter, p listing.Params) ([]Shelter, listing.Pagination, error) {
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, listing.Pagination{}, err
	}
	return items, listing.NewPagination(p, total), nil
}

// UpdateInput usa punteros: nil = no tocar.
type UpdateInput struct {
	Name        *string
	Description *string
	Address     *Address
	Contact     *Contact
}

func (s *Service) Update(ctx context.Context, actor auth.Claims, id string, in UpdateInput) (Shelter, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Shelter{}, err
	}
	if current.OwnerUserID != actor.UserID {
		return Shelter{}, ErrForbidden
	}

	next := CreateInput{
		Name:        current.Name,
		Description: current.Description,
		Address:     current.Address,
		Contact:     current.Contact,
	}
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Address != nil {
		next.Address = *in.Address
	}
	if in.Contact != nil {
		next.Contact = *in.Contact
	}

	next = trimInput(next)
	if err := validate(next); err != nil {
		return Shelter{}, err
	}

	current.Name = next.Name
	current.Description = next.Description
	current.Address = next.Address
	current.Contact = next.Contact
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Shelter{}, err
	}
	return current, nil
}

func trimInput(in CreateInput) CreateInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Address.Street = strings.TrimSpace(in.Address.Street)
	in.Address.City = strings.TrimSpace(in.Address.City)
	in.Address.State = strings.TrimSpace(in.Address.State)
	in.Address.ZipCode = strings.TrimSpace(in.Address.ZipCode)
	in.Contact.Phone = strings.TrimSpace(in.Contact.Phone)
	in.Contact.Email = strings.ToLower(strings.TrimSpace(in.Contact.Email))
	in.Contact.Website = strings.TrimSpace(in.Contact.Website)
	return in
}

func validate(in CreateInput) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case len(in.Name) > 100:
		return fmt.Errorf("%w: name cannot exceed 100 characters", ErrInvalidInput)
	case len(in.Description) > 1000:
		return fmt.Errorf("%w: description cannot exceed 1000 characters", ErrInvalidInput)
	case in.Address.City == "" || in.Address.State == "":
		return fmt.Errorf("%w: address.city and address.state are required", ErrInvalidInput)
	case in.Address.ZipCode != "" && !zipRe.MatchString(in.Address.ZipCode):
		return fmt.Errorf("%w: address.zipCode is not a valid ZIP code", ErrInvalidInput)
	case !strings.Contains(in.Contact.Email, "@"):
		return fmt.Errorf("%w: contact.email is required", ErrInvalidInput)
	case in.Contact.Website != "" &&
		!strings.HasPrefix(in.Contact.Website, "http://") && !strings.HasPrefix(in.Contact.Website, "https://"):
		return fmt.Errorf("%w: contact.website must be an http(s) URL", ErrInvalidInput)
	}
	return nil
}
