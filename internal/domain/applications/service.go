package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/pets"
	"pet-adoption-marketplace/internal/domain/shelters"
	"pet-adoption-marketplace/internal/platform/apperr"
	"pet-adoption-marketplace/internal/platform/logger"
	"pet-adoption-marketplace/internal/ports/auth"
	"pet-adoption-marketplace/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput         = apperr.New(apperr.KindValidation, "invalid input")
	ErrInvalidStatus        = apperr.New(apperr.KindValidation, "invalid status")
	ErrForbidden            = apperr.New(apperr.KindForbidden, "forbidden")
	ErrNotFound             = apperr.New(apperr.KindNotFound, "application not found")
	ErrInvalidTransition    = apperr.New(apperr.KindInvalidTransition, "invalid status transition")
	ErrDuplicateApplication = apperr.New(apperr.KindDuplicateApplication, "you already have an active application for this pet")
	ErrUnavailable          = apperr.New(apperr.KindUnavailable, "pet is not available for adoption")
)

var Defaults = listing.Defaults{
	Limit:    10,
	SortBy:   "submittedAt",
	SortDesc: true,
	Sortable: []string{"submittedAt"},
}

const (
	defaultNotifyTimeout = 10 * time.Second
	maxNoteLength        = 1000
)

// PetDirectory es lo que el ciclo de vida necesita de pets (pets.Service lo implementa).
type PetDirectory interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}

type ShelterDirectory interface {
	GetByID(ctx context.Context, id string) (shelters.Shelter, error)
	GetByOwner(ctx context.Context, ownerUserID string) (shelters.Shelter, error)
}

// Metrics es opcional (platform/metrics.Collector lo implementa).
type Metrics interface {
	ApplicationSubmitted()
	ApplicationTransitioned(to string)
	NotificationSent(template string, err error)
}

type Service struct {
	repo     Repository
	pets     PetDirectory
	shelters ShelterDirectory
	notifier notify.Notifier
	log      logger.Logger
	metrics  Metrics

	notifyTimeout time.Duration
	pending       sync.WaitGroup

	now func() time.Time
}

func NewService(repo Repository, petDir PetDirectory, shelterDir ShelterDirectory, notifier notify.Notifier, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:          repo,
		pets:          petDir,
		shelters:      shelterDir,
		notifier:      notifier,
		log:           log.With(map[string]any{"component": "applications"}),
		notifyTimeout: defaultNotifyTimeout,
		now:           time.Now,
	}
}

func (s *Service) WithMetrics(m Metrics) *Service {
	s.metrics = m
	return s
}

// Wait bloquea hasta que terminen las notificaciones en vuelo.
func (s *Service) Wait() {
	s.pending.Wait()
}

// Submit crea una postulación en pending para una mascota disponible.
func (s *Service) Submit(ctx context.Context, actor auth.Claims, petID string, q Questionnaire) (Application, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return Application{}, ErrForbidden
	}
	q = normalizeQuestionnaire(q)
	if err := validateQuestionnaire(q); err != nil {
		return Application{}, err
	}

	pet, err := s.pets.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return Application{}, err
	}
	if !pet.IsAvailable {
		return Application{}, ErrUnavailable
	}

	active, err := s.repo.HasActive(ctx, pet.ID, actor.UserID)
	if err != nil {
		return Application{}, err
	}
	if active {
		return Application{}, ErrDuplicateApplication
	}

	email := actor.Email
	if email == "" {
		email = q.PersonalInfo.Email
	}

	now := s.now()
	a := Application{
		ID:             uuid.NewString(),
		PetID:          pet.ID,
		ShelterID:      pet.ShelterID,
		ApplicantID:    actor.UserID,
		ApplicantEmail: email,
		Status:         StatusPending,
		Questionnaire:  q,
		Notes:          []Note{},
		Timeline:       Timeline{SubmittedAt: now},
		UpdatedAt:      now,
	}
	// La constraint de storage cubre la carrera entre HasActive y Create.
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	if s.metrics != nil {
		s.metrics.ApplicationSubmitted()
	}

	if sh, err := s.shelters.GetByID(ctx, pet.ShelterID); err != nil {
		s.log.Warn("shelter lookup for notification failed", map[string]any{"shelter_id": pet.ShelterID, "error": err})
	} else {
		s.dispatch(ctx, sh.Contact.Email, notify.TemplateNewApplication, map[string]any{
			"applicationId": a.ID,
			"petId":         pet.ID,
			"petName":       pet.Name,
			"applicantName": strings.TrimSpace(q.PersonalInfo.FirstName + " " + q.PersonalInfo.LastName),
		})
	}
	return a, nil
}

type TransitionInput struct {
	Status          string
	Notes           string
	RejectionReason string
}

// Transition mueve la postulación según la tabla. Solo el dueño del refugio.
// withdrawn no es alcanzable por acá: es exclusivo de Withdraw.
func (s *Service) Transition(ctx context.Context, actor auth.Claims, id string, in TransitionInput) (Application, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if ok, err := s.isShelterOwner(ctx, actor, a); err != nil {
		return Application{}, err
	} else if !ok {
		return Application{}, ErrForbidden
	}

	to := Status(strings.TrimSpace(in.Status))
	if !to.Valid() {
		return Application{}, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	if to == StatusWithdrawn {
		return Application{}, fmt.Errorf("%w: only the applicant can withdraw", ErrInvalidTransition)
	}
	if !CanTransition(a.Status, to) {
		return Application{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}
	reason := strings.TrimSpace(in.RejectionReason)
	if to == StatusRejected && reason == "" {
		return Application{}, fmt.Errorf("%w: rejectionReason is required", ErrInvalidInput)
	}

	a, err = s.advance(ctx, a, to, func(a *Application) {
		if to == StatusRejected {
			a.RejectionReason = reason
		}
	})
	if err != nil {
		return Application{}, err
	}

	if to == StatusCompleted {
		// Best-effort: la postulación ya quedó completed aunque esto falle.
		if err := s.pets.SetAvailability(ctx, a.PetID, false); err != nil {
			s.log.Error("mark pet adopted failed", map[string]any{"application_id": a.ID, "pet_id": a.PetID, "error": err})
		}
	}

	if notes := strings.TrimSpace(in.Notes); notes != "" {
		n := Note{ID: uuid.NewString(), AuthorID: actor.UserID, Message: notes, CreatedAt: s.now()}
		if err := s.repo.AppendNote(ctx, a.ID, n); err != nil {
			s.log.Warn("append transition note failed", map[string]any{"application_id": a.ID, "error": err})
		} else {
			a.Notes = append(a.Notes, n)
		}
	}

	data := map[string]any{
		"applicationId": a.ID,
		"petId":         a.PetID,
		"status":        string(a.Status),
	}
	if a.RejectionReason != "" {
		data["rejectionReason"] = a.RejectionReason
	}
	s.dispatch(ctx, a.ApplicantEmail, notify.TemplateApplicationStatusUpdate, data)
	return a, nil
}

// Withdraw: solo el adoptante, desde pending o under-review.
func (s *Service) Withdraw(ctx context.Context, actor auth.Claims, id string) (Application, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if a.ApplicantID != actor.UserID {
		return Application{}, ErrForbidden
	}
	a, err = s.advance(ctx, a, StatusWithdrawn, nil)
	if err != nil {
		return Application{}, err
	}
	return a.visibleTo(false), nil
}

// advance es el único punto que escribe status: valida contra la tabla, marca el
// timestamp y persiste con CAS sobre el status previo.
func (s *Service) advance(ctx context.Context, a Application, to Status, mutate func(*Application)) (Application, error) {
	from := a.Status
	if !CanTransition(from, to) {
		return Application{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	now := s.now()
	a.Status = to
	a.Timeline.stamp(to, now)
	a.UpdatedAt = now
	if mutate != nil {
		mutate(&a)
	}

	if err := s.repo.UpdateStatus(ctx, a, from); err != nil {
		return Application{}, err
	}
	if s.metrics != nil {
		s.metrics.ApplicationTransitioned(string(to))
	}
	s.log.Info("application status changed", map[string]any{
		"application_id": a.ID,
		"from":           string(from),
		"to":             string(to),
	})
	return a, nil
}

// AddNote: adoptante o refugio. Solo el refugio escribe notas internas.
func (s *Service) AddNote(ctx context.Context, actor auth.Claims, id, message string, internal bool) (Note, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return Note{}, err
	}
	owner, err := s.isShelterOwner(ctx, actor, a)
	if err != nil {
		return Note{}, err
	}
	if !owner && a.ApplicantID != actor.UserID {
		return Note{}, ErrForbidden
	}
	if internal && !owner {
		return Note{}, fmt.Errorf("%w: only the shelter can add internal notes", ErrForbidden)
	}

	message = strings.TrimSpace(message)
	switch {
	case message == "":
		return Note{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	case len(message) > maxNoteLength:
		return Note{}, fmt.Errorf("%w: message cannot exceed %d characters", ErrInvalidInput, maxNoteLength)
	}

	n := Note{
		ID:         uuid.NewString(),
		AuthorID:   actor.UserID,
		Message:    message,
		IsInternal: internal,
		CreatedAt:  s.now(),
	}
	if err := s.repo.AppendNote(ctx, a.ID, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

// Get: adoptante o refugio. Al adoptante no se le muestran notas internas.
func (s *Service) Get(ctx context.Context, actor auth.Claims, id string) (Application, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	owner, err := s.isShelterOwner(ctx, actor, a)
	if err != nil {
		return Application{}, err
	}
	if !owner && a.ApplicantID != actor.UserID {
		return Application{}, ErrForbidden
	}
	return a.visibleTo(owner), nil
}

type Page struct {
	Items      []Application
	Pagination listing.Pagination
}

func (s *Service) ListMine(ctx context.Context, actor auth.Claims, status Status, p listing.Params) (Page, error) {
	items, total, err := s.repo.ListByApplicant(ctx, actor.UserID, status, p)
	if err != nil {
		return Page{}, err
	}
	for i := range items {
		items[i] = items[i].visibleTo(false)
	}
	return Page{Items: items, Pagination: listing.NewPagination(p, total)}, nil
}

// ListReceived lista las postulaciones a mascotas del refugio del actor.
func (s *Service) ListReceived(ctx context.Context, actor auth.Claims, status Status, p listing.Params) (Page, error) {
	if !actor.IsShelter() {
		return Page{}, ErrForbidden
	}
	sh, err := s.shelters.GetByOwner(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, shelters.ErrNotFound) {
			return Page{Items: []Application{}, Pagination: listing.NewPagination(p, 0)}, nil
		}
		return Page{}, err
	}
	items, total, err := s.repo.ListByShelter(ctx, sh.ID, status, p)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Pagination: listing.NewPagination(p, total)}, nil
}

func (s *Service) getByID(ctx context.Context, id string) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) isShelterOwner(ctx context.Context, actor auth.Claims, a Application) (bool, error) {
	sh, err := s.shelters.GetByID(ctx, a.ShelterID)
	if err != nil {
		if errors.Is(err, shelters.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return sh.OwnerUserID == actor.UserID, nil
}

// dispatch manda la notificación en background. Nunca falla la operación que la origina.
func (s *Service) dispatch(ctx context.Context, to, template string, data map[string]any) {
	if s.notifier == nil || strings.TrimSpace(to) == "" {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()

		err := s.notifier.Send(nctx, to, template, data)
		if s.metrics != nil {
			s.metrics.NotificationSent(template, err)
		}
		if err != nil {
			s.log.Warn("notification failed", map[string]any{"template": template, "error": err})
		}
	}()
}

func normalizeQuestionnaire(q Questionnaire) Questionnaire {
	q.PersonalInfo.FirstName = strings.TrimSpace(q.PersonalInfo.FirstName)
	q.PersonalInfo.LastName = strings.TrimSpace(q.PersonalInfo.LastName)
	q.PersonalInfo.Email = strings.ToLower(strings.TrimSpace(q.PersonalInfo.Email))
	q.PersonalInfo.Phone = strings.TrimSpace(q.PersonalInfo.Phone)
	q.Housing.Type = HousingType(strings.ToLower(strings.TrimSpace(string(q.Housing.Type))))
	q.Housing.Ownership = Ownership(strings.ToLower(strings.TrimSpace(string(q.Housing.Ownership))))
	return q
}

func validateQuestionnaire(q Questionnaire) error {
	switch {
	case !q.Housing.Type.Valid():
		return fmt.Errorf("%w: housing.type must be one of house, apartment, condo, townhouse, other", ErrInvalidInput)
	case !q.Housing.Ownership.Valid():
		return fmt.Errorf("%w: housing.ownership must be own or rent", ErrInvalidInput)
	case q.PersonalInfo.Email != "" && !strings.Contains(q.PersonalInfo.Email, "@"):
		return fmt.Errorf("%w: personalInfo.email is not valid", ErrInvalidInput)
	case q.Lifestyle.HoursAlone < 0 || q.Lifestyle.HoursAlone > 24:
		return fmt.Errorf("%w: lifestyle.hoursAlone must be between 0 and 24", ErrInvalidInput)
	}
	return nil
}
