package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption-marketplace/internal/domain/favorites"
	"pet-adoption-marketplace/internal/domain/pets"
)

type savedKey struct {
	userID string
	petID  string
}

// FavoritesRepo: un mutex serializa el par y el contador.
type FavoritesRepo struct {
	mu    sync.Mutex
	pets  *PetRepo
	saved map[savedKey]int64
	seq   int64
}

func NewFavoritesRepo(petRepo *PetRepo) *FavoritesRepo {
	return &FavoritesRepo{
		pets:  petRepo,
		saved: make(map[savedKey]int64),
	}
}

func (r *FavoritesRepo) Toggle(ctx context.Context, userID, petID string) (favorites.ToggleResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := savedKey{userID: userID, petID: petID}
	if _, ok := r.saved[key]; ok {
		delete(r.saved, key)
		total, found := r.pets.adjustSaves(petID, -1)
		if !found {
			return favorites.ToggleResult{}, pets.ErrNotFound
		}
		return favorites.ToggleResult{Saved: false, TotalSaves: total}, nil
	}

	total, found := r.pets.adjustSaves(petID, 1)
	if !found {
		return favorites.ToggleResult{}, pets.ErrNotFound
	}
	r.seq++
	r.saved[key] = r.seq
	return favorites.ToggleResult{Saved: true, TotalSaves: total}, nil
}

// ListSaved devuelve lo guardado, lo último primero. Mascotas borradas se omiten.
func (r *FavoritesRepo) ListSaved(ctx context.Context, userID string) ([]pets.Pet, error) {
	r.mu.Lock()
	type entry struct {
		petID string
		seq   int64
	}
	entries := make([]entry, 0)
	for k, seq := range r.saved {
		if k.userID == userID {
			entries = append(entries, entry{petID: k.petID, seq: seq})
		}
	}
	r.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	out := make([]pets.Pet, 0, len(entries))
	for _, e := range entries {
		p, err := r.pets.GetByID(ctx, e.petID)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Count cuenta las claves del usuario cuya mascota sigue existiendo, igual que ListSaved.
func (r *FavoritesRepo) Count(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for k := range r.saved {
		if k.userID == userID && r.pets.exists(k.petID) {
			n++
		}
	}
	return n, nil
}
