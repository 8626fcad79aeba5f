package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/shelters"
)

type shelterRepo struct {
	mu      sync.RWMutex
	byID    map[string]shelters.Shelter
	byOwner map[string]string
}

func NewShelterRepo() shelters.Repository {
	return &shelterRepo{
		byID:    make(map[string]shelters.Shelter),
		byOwner: make(map[string]string),
	}
}

func (r *shelterRepo) Create(ctx context.Context, s shelters.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byOwner[s.OwnerUserID]; exists {
		return shelters.ErrAlreadyExists
	}
	r.byID[s.ID] = s
	r.byOwner[s.OwnerUserID] = s.ID
	return nil
}

func (r *shelterRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return s, nil
}

func (r *shelterRepo) GetByOwner(ctx context.Context, ownerUserID string) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOwner[ownerUserID]
	if !ok {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *shelterRepo) Update(ctx context.Context, s shelters.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return shelters.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *shelterRepo) List(ctx context.Context, f shelters.Filter, p listing.Params) ([]shelters.Shelter, int, error) {
	r.mu.RLock()
	out := make([]shelters.Shelter, 0)
	for _, s := range r.byID {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()

	less := func(a, b shelters.Shelter) bool { return a.CreatedAt.Before(b.CreatedAt) }
	if p.SortBy == "name" {
		less = func(a, b shelters.Shelter) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		if p.SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	start, end := listing.Window(p, len(out))
	return out[start:end], len(out), nil
}
