package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/shelters"
	"pet-adoption-marketplace/internal/platform/apperr"
	"pet-adoption-marketplace/internal/platform/logger"
	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = apperr.New(apperr.KindValidation, "invalid input")
	ErrForbidden       = apperr.New(apperr.KindForbidden, "forbidden")
	ErrNotFound        = apperr.New(apperr.KindNotFound, "pet not found")
	ErrShelterRequired = apperr.New(apperr.KindForbidden, "create a shelter profile before listing pets")
	ErrListingFailed   = apperr.New(apperr.KindInternal, "listing failed")
)

const SimilarLimit = 6

// ShelterDirectory resuelve refugios (shelters.Service o su repo cacheado).
type ShelterDirectory interface {
	GetByID(ctx context.Context, id string) (shelters.Shelter, error)
	GetByOwner(ctx context.Context, ownerUserID string) (shelters.Shelter, error)
}

type Service struct {
	repo     Repository
	shelters ShelterDirectory
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, dir ShelterDirectory, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		shelters: dir,
		log:      log.With(map[string]any{"component": "pets"}),
		now:      time.Now,
	}
}

// Listed es una mascota con su refugio resuelto (nil si el refugio ya no existe).
type Listed struct {
	Pet     Pet
	Shelter *shelters.Shelter
}

type ListResult struct {
	Items      []Listed
	Pagination listing.Pagination
}

// List devuelve la página pedida. Si el pedido es autenticado, suma una vista a cada
// mascota devuelta en un único update; si ese update falla la página se devuelve igual.
func (s *Service) List(ctx context.Context, f Filter, p listing.Params, authenticated bool) (ListResult, error) {
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return ListResult{}, fmt.Errorf("%w: %w", ErrListingFailed, err)
	}

	out := ListResult{
		Items:      s.withShelters(ctx, items),
		Pagination: listing.NewPagination(p, total),
	}

	if authenticated && len(items) > 0 {
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		if err := s.repo.IncrementViews(ctx, ids); err != nil {
			s.log.Warn("increment views failed", map[string]any{"count": len(ids), "error": err})
		}
	}
	return out, nil
}

// Get devuelve el detalle; solo los pedidos autenticados cuentan como vista.
func (s *Service) Get(ctx context.Context, id string, authenticated bool) (Listed, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Listed{}, err
	}
	if authenticated {
		if err := s.repo.IncrementViews(ctx, []string{p.ID}); err != nil {
			s.log.Warn("increment views failed", map[string]any{"pet_id": p.ID, "error": err})
		} else {
			p.Views++
		}
	}
	return s.withShelters(ctx, []Pet{p})[0], nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// withShelters resuelve cada refugio una sola vez por página.
func (s *Service) withShelters(ctx context.Context, items []Pet) []Listed {
	seen := map[string]*shelters.Shelter{}
	out := make([]Listed, 0, len(items))
	for _, p := range items {
		sh, ok := seen[p.ShelterID]
		if !ok {
			if got, err := s.shelters.GetByID(ctx, p.ShelterID); err == nil {
				sh = &got
			} else if !errors.Is(err, shelters.ErrNotFound) {
				s.log.Warn("shelter lookup failed", map[string]any{"shelter_id": p.ShelterID, "error": err})
			}
			seen[p.ShelterID] = sh
		}
		out = append(out, Listed{Pet: p, Shelter: sh})
	}
	return out
}

type CreateInput struct {
	Name        string
	Type        Type
	Breed       string
	Age         Age
	Size        Size
	Gender      Gender
	Color       string
	Description string
	Images      []Image
	Location    Location
	AdoptionFee float64
	GoodWith    GoodWith
}

// Create publica una mascota en el refugio del actor. Si no trae ubicación usa la del refugio.
func (s *Service) Create(ctx context.Context, actor auth.Claims, in CreateInput) (Pet, error) {
	sh, err := s.shelterOf(ctx, actor)
	if err != nil {
		return Pet{}, err
	}

	in = normalize(in)
	if in.Location.City == "" && in.Location.State == "" {
		in.Location = Location{City: sh.Address.City, State: sh.Address.State, ZipCode: sh.Address.ZipCode}
	}
	if err := validate(in); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		ShelterID:   sh.ID,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	apply(&p, in)

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// UpdateInput usa punteros: nil = no tocar.
type UpdateInput struct {
	Name        *string
	Type        *Type
	Breed       *string
	Age         *Age
	Size        *Size
	Gender      *Gender
	Color       *string
	Description *string
	Images      *[]Image
	Location    *Location
	AdoptionFee *float64
	GoodWith    *GoodWith
	IsAvailable *bool
}

func (s *Service) Update(ctx context.Context, actor auth.Claims, id string, in UpdateInput) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if err := s.authorizeOwner(ctx, actor, current); err != nil {
		return Pet{}, err
	}

	next := CreateInput{
		Name:        current.Name,
		Type:        current.Type,
		Breed:       current.Breed,
		Age:         current.Age,
		Size:        current.Size,
		Gender:      current.Gender,
		Color:       current.Color,
		Description: current.Description,
		Images:      current.Images,
		Location:    current.Location,
		AdoptionFee: current.AdoptionFee,
		GoodWith:    current.GoodWith,
	}
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Type != nil {
		next.Type = *in.Type
	}
	if in.Breed != nil {
		next.Breed = *in.Breed
	}
	if in.Age != nil {
		next.Age = *in.Age
	}
	if in.Size != nil {
		next.Size = *in.Size
	}
	if in.Gender != nil {
		next.Gender = *in.Gender
	}
	if in.Color != nil {
		next.Color = *in.Color
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Images != nil {
		next.Images = *in.Images
	}
	if in.Location != nil {
		next.Location = *in.Location
	}
	if in.AdoptionFee != nil {
		next.AdoptionFee = *in.AdoptionFee
	}
	if in.GoodWith != nil {
		next.GoodWith = *in.GoodWith
	}

	next = normalize(next)
	if err := validate(next); err != nil {
		return Pet{}, err
	}

	apply(&current, next)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
	}
	// Disponibilidad solo con toggle explícito; una edición no pisa un completed concurrente.
	if in.IsAvailable != nil {
		if err := s.repo.SetAvailability(ctx, current.ID, *in.IsAvailable); err != nil {
			return Pet{}, err
		}
	}
	return s.repo.GetByID(ctx, current.ID)
}

func (s *Service) Delete(ctx context.Context, actor auth.Claims, id string) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, actor, p); err != nil {
		return err
	}
	return s.repo.Delete(ctx, p.ID)
}

// Similar sugiere hasta SimilarLimit mascotas disponibles del mismo tipo.
func (s *Service) Similar(ctx context.Context, id string) ([]Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.ListSimilar(ctx, p, SimilarLimit)
}

// SetAvailability lo usa el ciclo de postulaciones al completar una adopción.
func (s *Service) SetAvailability(ctx context.Context, id string, available bool) error {
	return s.repo.SetAvailability(ctx, id, available)
}

// PreviewByShelter alimenta el detalle de refugio con sus mascotas disponibles.
func (s *Service) PreviewByShelter(ctx context.Context, shelterID string, limit int) ([]shelters.PetSummary, error) {
	items, err := s.repo.ListByShelter(ctx, shelterID, true, limit)
	if err != nil {
		return nil, err
	}
	out := make([]shelters.PetSummary, 0, len(items))
	for _, p := range items {
		out = append(out, shelters.PetSummary{
			ID:           p.ID,
			Name:         p.Name,
			Type:         string(p.Type),
			Breed:        p.Breed,
			PrimaryImage: p.PrimaryImage(),
		})
	}
	return out, nil
}

// ListByShelter devuelve todas las mascotas (disponibles o no) del refugio del actor.
func (s *Service) ListByShelter(ctx context.Context, actor auth.Claims) ([]Pet, error) {
	sh, err := s.shelterOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByShelter(ctx, sh.ID, false, 0)
}

func normalize(in CreateInput) CreateInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = Type(strings.ToLower(strings.TrimSpace(string(in.Type))))
	in.Breed = strings.TrimSpace(in.Breed)
	in.Size = Size(strings.ToLower(strings.TrimSpace(string(in.Size))))
	in.Gender = Gender(strings.ToLower(strings.TrimSpace(string(in.Gender))))
	in.Color = strings.TrimSpace(in.Color)
	in.Description = strings.TrimSpace(in.Description)
	in.Location.City = strings.TrimSpace(in.Location.City)
	in.Location.State = strings.TrimSpace(in.Location.State)
	in.Location.ZipCode = strings.TrimSpace(in.Location.ZipCode)

	// Exactamente una imagen primaria: la primera marcada, o la primera de la lista.
	images := make([]Image, 0, len(in.Images))
	primary := -1
	for _, img := range in.Images {
		img.URL = strings.TrimSpace(img.URL)
		if img.URL == "" {
			continue
		}
		img.Caption = strings.TrimSpace(img.Caption)
		if img.IsPrimary && primary == -1 {
			primary = len(images)
		}
		img.IsPrimary = false
		images = append(images, img)
	}
	if len(images) > 0 {
		if primary == -1 {
			primary = 0
		}
		images[primary].IsPrimary = true
	}
	in.Images = images
	return in
}

func validate(in CreateInput) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case len(in.Name) > 50:
		return fmt.Errorf("%w: name cannot exceed 50 characters", ErrInvalidInput)
	case !in.Type.Valid():
		return fmt.Errorf("%w: type must be one of dog, cat, bird, rabbit, other", ErrInvalidInput)
	case in.Breed == "":
		return fmt.Errorf("%w: breed is required", ErrInvalidInput)
	case !in.Size.Valid():
		return fmt.Errorf("%w: size must be one of small, medium, large, extra-large", ErrInvalidInput)
	case !in.Gender.Valid():
		return fmt.Errorf("%w: gender must be male or female", ErrInvalidInput)
	case in.Age.Years < 0 || in.Age.Years > MaxAgeYears:
		return fmt.Errorf("%w: age.years must be between 0 and %d", ErrInvalidInput, MaxAgeYears)
	case in.Age.Months < 0 || in.Age.Months > MaxAgeMonths:
		return fmt.Errorf("%w: age.months must be between 0 and %d", ErrInvalidInput, MaxAgeMonths)
	case len(in.Description) > 2000:
		return fmt.Errorf("%w: description cannot exceed 2000 characters", ErrInvalidInput)
	case in.AdoptionFee < 0:
		return fmt.Errorf("%w: adoptionFee cannot be negative", ErrInvalidInput)
	case in.Location.City == "" || in.Location.State == "":
		return fmt.Errorf("%w: location.city and location.state are required", ErrInvalidInput)
	}
	return nil
}

func apply(p *Pet, in CreateInput) {
	p.Name = in.Name
	p.Type = in.Type
	p.Breed = in.Breed
	p.Age = in.Age
	p.Size = in.Size
	p.Gender = in.Gender
	p.Color = in.Color
	p.Description = in.Description
	p.Images = in.Images
	p.Location = in.Location
	p.AdoptionFee = in.AdoptionFee
	p.GoodWith = in.GoodWith
}
