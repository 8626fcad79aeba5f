package appointments

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/providers"
	"pet-adoption-marketplace/internal/platform/apperr"
	"pet-adoption-marketplace/internal/platform/logger"
	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = apperr.New(apperr.KindValidation, "invalid input")
	ErrInvalidStatus     = apperr.New(apperr.KindValidation, "invalid status")
	ErrForbidden         = apperr.New(apperr.KindForbidden, "forbidden")
	ErrNotFound          = apperr.New(apperr.KindNotFound, "appointment not found")
	ErrProviderNotFound  = apperr.New(apperr.KindNotFound, "service provider not found")
	ErrSlotConflict      = apperr.New(apperr.KindSlotConflict, "time slot is already booked")
	ErrInvalidTransition = apperr.New(apperr.KindInvalidTransition, "invalid status transition")
)

var Defaults = listing.Defaults{
	Limit:    10,
	SortBy:   "date",
	SortDesc: true,
	Sortable: []string{"date"},
}

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

type ProviderDirectory interface {
	GetByID(ctx context.Context, id string) (providers.Provider, error)
}

// Metrics es opcional (platform/metrics.Collector lo implementa).
type Metrics interface {
	SlotBooked()
	SlotConflict()
}

type Service struct {
	repo      Repository
	providers ProviderDirectory
	log       logger.Logger
	metrics   Metrics
	now       func() time.Time
}

func NewService(repo Repository, dir ProviderDirectory, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:      repo,
		providers: dir,
		log:       log.With(map[string]any{"component": "appointments"}),
		now:       time.Now,
	}
}

func (s *Service) WithMetrics(m Metrics) *Service {
	s.metrics = m
	return s
}

type BookInput struct {
	ProviderID string
	Date       string
	Time       string
	Duration   int
	Service    BookedService
	PetInfo    PetInfo
	UserNotes  string
}

// Book reserva un turno. Dos reservas concurrentes del mismo slot: una sola gana,
// la otra recibe ErrSlotConflict desde el repositorio.
func (s *Service) Book(ctx context.Context, actor auth.Claims, in BookInput) (Appointment, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return Appointment{}, ErrForbidden
	}

	in, err := s.normalizeBooking(in)
	if err != nil {
		return Appointment{}, err
	}

	p, err := s.providers.GetByID(ctx, in.ProviderID)
	if err != nil {
		if errors.Is(err, providers.ErrNotFound) {
			return Appointment{}, ErrProviderNotFound
		}
		return Appointment{}, err
	}
	if !p.IsActive {
		return Appointment{}, ErrProviderNotFound
	}

	if in.Service.Type == "" {
		in.Service.Type = string(p.ServiceType)
	}
	if o, ok := p.Offering(in.Service.Name); ok && in.Service.Price.Amount == 0 {
		in.Service.Price.Amount = o.Price.Amount
	}

	now := s.now()
	a := Appointment{
		ID:         uuid.NewString(),
		UserID:     actor.UserID,
		ProviderID: p.ID,
		Service:    in.Service,
		PetInfo:    in.PetInfo,
		Date:       in.Date,
		Time:       in.Time,
		Duration:   in.Duration,
		Status:     StatusScheduled,
		Notes:      Notes{UserNotes: in.UserNotes},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, ErrSlotConflict) && s.metrics != nil {
			s.metrics.SlotConflict()
		}
		return Appointment{}, err
	}
	if s.metrics != nil {
		s.metrics.SlotBooked()
	}
	return a, nil
}

func (s *Service) normalizeBooking(in BookInput) (BookInput, error) {
	in.ProviderID = strings.TrimSpace(in.ProviderID)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Service.Name = strings.TrimSpace(in.Service.Name)
	in.Service.Type = strings.TrimSpace(in.Service.Type)
	in.Service.Price.Currency = strings.ToUpper(strings.TrimSpace(in.Service.Price.Currency))
	in.PetInfo.Name = strings.TrimSpace(in.PetInfo.Name)
	in.UserNotes = strings.TrimSpace(in.UserNotes)

	if in.Duration == 0 {
		in.Duration = DefaultDuration
	}
	if in.Service.Price.Currency == "" {
		in.Service.Price.Currency = DefaultCurrency
	}

	switch {
	case in.ProviderID == "":
		return in, fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	case !dateRe.MatchString(in.Date):
		return in, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	case !timeRe.MatchString(in.Time):
		return in, fmt.Errorf("%w: time must be HH:MM (24h)", ErrInvalidInput)
	case in.Duration < 1 || in.Duration > MaxDuration:
		return in, fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, MaxDuration)
	case in.Service.Name == "":
		return in, fmt.Errorf("%w: service.name is required", ErrInvalidInput)
	case in.Service.Price.Amount < 0:
		return in, fmt.Errorf("%w: service.price.amount cannot be negative", ErrInvalidInput)
	case in.PetInfo.Name == "":
		return in, fmt.Errorf("%w: petInfo.name is required", ErrInvalidInput)
	case in.PetInfo.Weight < 0:
		return in, fmt.Errorf("%w: petInfo.weight cannot be negative", ErrInvalidInput)
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return in, fmt.Errorf("%w: date is not a calendar date", ErrInvalidInput)
	}
	return in, nil
}

// Get: el usuario que reservó o el dueño del proveedor.
func (s *Service) Get(ctx context.Context, actor auth.Claims, id string) (Appointment, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if a.UserID == actor.UserID {
		return a, nil
	}
	owner, err := s.isProviderOwner(ctx, actor, a)
	if err != nil {
		return Appointment{}, err
	}
	if !owner {
		return Appointment{}, ErrForbidden
	}
	return a, nil
}

type Page struct {
	Items      []Appointment
	Pagination listing.Pagination
}

func (s *Service) ListMine(ctx context.Context, actor auth.Claims, status Status, p listing.Params) (Page, error) {
	items, total, err := s.repo.ListByUser(ctx, actor.UserID, status, p)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Pagination: listing.NewPagination(p, total)}, nil
}

// Upcoming devuelve los próximos limit turnos activos desde hoy, y cuántos hay en total.
func (s *Service) Upcoming(ctx context.Context, userID string, limit int) ([]Appointment, int, error) {
	return s.repo.ListUpcoming(ctx, userID, s.now().Format(DateLayout), limit)
}

// Cancel: usuario o proveedor, mientras el turno ocupe el slot. Libera el slot.
func (s *Service) Cancel(ctx context.Context, actor auth.Claims, id, reason string) (Appointment, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if a.UserID != actor.UserID {
		owner, err := s.isProviderOwner(ctx, actor, a)
		if err != nil {
			return Appointment{}, err
		}
		if !owner {
			return Appointment{}, ErrForbidden
		}
	}
	return s.move(ctx, actor, a, StatusCancelled, strings.TrimSpace(reason), "")
}

// UpdateStatus: solo el dueño del proveedor.
func (s *Service) UpdateStatus(ctx context.Context, actor auth.Claims, id, status, providerNotes string) (Appointment, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	owner, err := s.isProviderOwner(ctx, actor, a)
	if err != nil {
		return Appointment{}, err
	}
	if !owner {
		return Appointment{}, ErrForbidden
	}

	to := Status(strings.TrimSpace(status))
	if !to.Valid() {
		return Appointment{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.move(ctx, actor, a, to, "", strings.TrimSpace(providerNotes))
}

// move es el único punto que escribe status de un turno.
func (s *Service) move(ctx context.Context, actor auth.Claims, a Appointment, to Status, reason, providerNotes string) (Appointment, error) {
	from := a.Status
	if !CanMove(from, to) {
		return Appointment{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	now := s.now()
	a.Status = to
	a.UpdatedAt = now
	if to == StatusCancelled {
		a.Cancellation = &Cancellation{CancelledBy: actor.UserID, Reason: reason, CancelledAt: now}
	}
	if providerNotes != "" {
		a.Notes.ProviderNotes = providerNotes
	}

	if err := s.repo.UpdateStatus(ctx, a, from); err != nil {
		return Appointment{}, err
	}
	s.log.Info("appointment status changed", map[string]any{
		"appointment_id": a.ID,
		"from":           string(from),
		"to":             string(to),
	})
	return a, nil
}

func (s *Service) getByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) isProviderOwner(ctx context.Context, actor auth.Claims, a Appointment) (bool, error) {
	p, err := s.providers.GetByID(ctx, a.ProviderID)
	if err != nil {
		if errors.Is(err, providers.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.OwnerUserID == actor.UserID, nil
}
