package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/providers"
)

type providerRepo struct {
	mu   sync.RWMutex
	byID map[string]providers.Provider
}

func NewProviderRepo() providers.Repository {
	return &providerRepo{
		byID: make(map[string]providers.Provider),
	}
}

func (r *providerRepo) Create(ctx context.Context, p providers.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.Services = append([]providers.Offering(nil), p.Services...)
	r.byID[p.ID] = p
	return nil
}

func (r *providerRepo) GetByID(ctx context.Context, id string) (providers.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return providers.Provider{}, providers.ErrNotFound
	}
	return p, nil
}

func (r *providerRepo) List(ctx context.Context, f providers.Filter, p listing.Params) ([]providers.Provider, int, error) {
	r.mu.RLock()
	out := make([]providers.Provider, 0)
	for _, pr := range r.byID {
		if f.Matches(pr) {
			out = append(out, pr)
		}
	}
	r.mu.RUnlock()

	var less func(a, b providers.Provider) bool
	switch p.SortBy {
	case "name":
		less = func(a, b providers.Provider) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "createdAt":
		less = func(a, b providers.Provider) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		less = func(a, b providers.Provider) bool { return a.Rating.Average < b.Rating.Average }
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
