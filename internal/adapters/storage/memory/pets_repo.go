package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/pets"
)

// PetRepo es exportado porque el ledger de favoritos en memoria mueve su contador de saves.
type PetRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() *PetRepo {
	return &PetRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = clonePet(p)
	return nil
}

// Update conserva views, saves e isAvailable del registro guardado.
func (r *PetRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}
	p.Views = cur.Views
	p.Saves = cur.Saves
	p.IsAvailable = cur.IsAvailable
	r.byID[p.ID] = clonePet(p)
	return nil
}

func (r *PetRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *PetRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *PetRepo) List(ctx context.Context, f pets.Filter, p listing.Params) ([]pets.Pet, int, error) {
	r.mu.RLock()
	out := make([]pets.Pet, 0)
	for _, pet := range r.byID {
		if f.Matches(pet) {
			out = append(out, clonePet(pet))
		}
	}
	r.mu.RUnlock()

	less := petLess(p.SortBy)
	sort.SliceStable(out, func(i, j int) bool {
		if p.SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	start, end := listing.Window(p, len(out))
	return out[start:end], len(out), nil
}

func (r *PetRepo) IncrementViews(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			p.Views++
			r.byID[id] = p
		}
	}
	return nil
}

func (r *PetRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.ErrNotFound
	}
	p.IsAvailable = available
	r.byID[id] = p
	return nil
}

func (r *PetRepo) ListByShelter(ctx context.Context, shelterID string, availableOnly bool, limit int) ([]pets.Pet, error) {
	r.mu.RLock()
	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.ShelterID == shelterID && (!availableOnly || p.IsAvailable) {
			out = append(out, clonePet(p))
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return head(out, limit), nil
}

func (r *PetRepo) ListSimilar(ctx context.Context, target pets.Pet, limit int) ([]pets.Pet, error) {
	r.mu.RLock()
	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.ID == target.ID || !p.IsAvailable || p.Type != target.Type {
			continue
		}
		if p.Size == target.Size || strings.EqualFold(p.Breed, target.Breed) ||
			strings.EqualFold(p.Location.City, target.Location.City) {
			out = append(out, clonePet(p))
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return head(out, limit), nil
}

// adjustSaves suma delta al contador sin bajar de 0. Lo usa FavoritesRepo.
func (r *PetRepo) adjustSaves(id string, delta int) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return 0, false
	}
	p.Saves = max(p.Saves+delta, 0)
	r.byID[id] = p
	return p.Saves, true
}

func (r *PetRepo) exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

func petLess(sortBy string) func(a, b pets.Pet) bool {
	switch sortBy {
	case "name":
		return func(a, b pets.Pet) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "age":
		return func(a, b pets.Pet) bool { return a.Age.Years*12+a.Age.Months < b.Age.Years*12+b.Age.Months }
	case "views":
		return func(a, b pets.Pet) bool { return a.Views < b.Views }
	case "saves":
		return func(a, b pets.Pet) bool { return a.Saves < b.Saves }
	case "adoptionFee":
		return func(a, b pets.Pet) bool { return a.AdoptionFee < b.AdoptionFee }
	default:
		return func(a, b pets.Pet) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

func sortNewestFirst(items []pets.Pet) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func clonePet(p pets.Pet) pets.Pet {
	p.Images = append([]pets.Image(nil), p.Images...)
	return p
}

func head[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
