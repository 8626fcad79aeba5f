package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/platform/apperr"
	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid input")
	ErrForbidden    = apperr.New(apperr.KindForbidden, "forbidden")
	ErrNotFound     = apperr.New(apperr.KindNotFound, "service provider not found")
)

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
	ServiceType ServiceType
	Description string
	Address     Address
	Contact     Contact
	Services    []Offering
}

// Create exige rol veterinarian o service-provider.
func (s *Service) Create(ctx context.Context, actor auth.Claims, in CreateInput) (Provider, error) {
	if !actor.IsProvider() {
		return Provider{}, ErrForbidden
	}

	in.Name = strings.TrimSpace(in.Name)
	in.ServiceType = ServiceType(strings.ToLower(strings.TrimSpace(string(in.ServiceType))))
	in.Description = strings.TrimSpace(in.Description)
	in.Address.City = strings.TrimSpace(in.Address.City)
	in.Address.State = strings.TrimSpace(in.Address.State)
	in.Contact.Email = strings.ToLower(strings.TrimSpace(in.Contact.Email))

	switch {
	case in.Name == "":
		return Provider{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case !in.ServiceType.Valid():
		return Provider{}, fmt.Errorf("%w: serviceType must be one of veterinary, grooming, training, boarding, walking, sitting", ErrInvalidInput)
	case in.Address.City == "" || in.Address.State == "":
		return Provider{}, fmt.Errorf("%w: address.city and address.state are required", ErrInvalidInput)
	}

	services := make([]Offering, 0, len(in.Services))
	for i, o := range in.Services {
		o.Name = strings.TrimSpace(o.Name)
		if o.Name == "" {
			return Provider{}, fmt.Errorf("%w: services[%d].name is required", ErrInvalidInput, i)
		}
		if o.Price.Amount < 0 || o.Duration < 0 {
			return Provider{}, fmt.Errorf("%w: services[%d] price and duration cannot be negative", ErrInvalidInput, i)
		}
		services = append(services, o)
	}

	now := s.now()
	p := Provider{
		ID:          uuid.NewString(),
		OwnerUserID: actor.UserID,
		Name:        in.Name,
		ServiceType: in.ServiceType,
		Description: in.Description,
		Address:     in.Address,
		Contact:     in.Contact,
		Services:    services,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Provider{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Provider, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Provider{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, p listing.Params) ([]Provider, listing.Pagination, error) {
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, listing.Pagination{}, err
	}
	return items, listing.NewPagination(p, total), nil
}
