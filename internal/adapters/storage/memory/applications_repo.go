package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption-marketplace/internal/domain/applications"
	"pet-adoption-marketplace/internal/domain/listing"
)

type applicationRepo struct {
	mu   sync.RWMutex
	byID map[string]applications.Application
}

func NewApplicationRepo() applications.Repository {
	return &applicationRepo{
		byID: make(map[string]applications.Application),
	}
}

// Create chequea la unicidad de la postulación activa bajo el mismo lock que inserta.
func (r *applicationRepo) Create(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasActiveLocked(a.PetID, a.ApplicantID) {
		return applications.ErrDuplicateApplication
	}
	r.byID[a.ID] = cloneApplication(a)
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return applications.Application{}, applications.ErrNotFound
	}
	return cloneApplication(a), nil
}

func (r *applicationRepo) HasActive(ctx context.Context, petID, applicantID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasActiveLocked(petID, applicantID), nil
}

func (r *applicationRepo) hasActiveLocked(petID, applicantID string) bool {
	for _, a := range r.byID {
		if a.PetID == petID && a.ApplicantID == applicantID && a.Status.Active() {
			return true
		}
	}
	return false
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, a applications.Application, from applications.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[a.ID]
	if !ok {
		return applications.ErrNotFound
	}
	if cur.Status != from {
		return applications.ErrInvalidTransition
	}
	cur.Status = a.Status
	cur.Timeline = a.Timeline
	cur.RejectionReason = a.RejectionReason
	cur.UpdatedAt = a.UpdatedAt
	r.byID[a.ID] = cur
	return nil
}

func (r *applicationRepo) AppendNote(ctx context.Context, id string, n applications.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return applications.ErrNotFound
	}
	cur.Notes = append(cur.Notes, n)
	r.byID[id] = cur
	return nil
}

func (r *applicationRepo) ListByApplicant(ctx context.Context, applicantID string, status applications.Status, p listing.Params) ([]applications.Application, int, error) {
	return r.list(func(a applications.Application) bool { return a.ApplicantID == applicantID }, status, p)
}

func (r *applicationRepo) ListByShelter(ctx context.Context, shelterID string, status applications.Status, p listing.Params) ([]applications.Application, int, error) {
	return r.list(func(a applications.Application) bool { return a.ShelterID == shelterID }, status, p)
}

func (r *applicationRepo) list(match func(applications.Application) bool, status applications.Status, p listing.Params) ([]applications.Application, int, error) {
	r.mu.RLock()
	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if match(a) && (status == "" || a.Status == status) {
			out = append(out, cloneApplication(a))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if p.SortDesc {
			return out[i].Timeline.SubmittedAt.After(out[j].Timeline.SubmittedAt)
		}
		return out[i].Timeline.SubmittedAt.Before(out[j].Timeline.SubmittedAt)
	})

	start, end := listing.Window(p, len(out))
	return out[start:end], len(out), nil
}

func cloneApplication(a applications.Application) applications.Application {
	a.Notes = append([]applications.Note{}, a.Notes...)
	return a
}
