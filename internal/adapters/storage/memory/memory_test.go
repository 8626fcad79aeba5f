package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-adoption-marketplace/internal/domain/applications"
	"pet-adoption-marketplace/internal/domain/appointments"
	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesRepo_DoubleToggleRestoresCounter(t *testing.T) {
	ctx := context.Background()
	petRepo := NewPetRepo()
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p1", IsAvailable: true}))
	favs := NewFavoritesRepo(petRepo)

	res, err := favs.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Equal(t, 1, res.TotalSaves)

	res, err = favs.Toggle(ctx, "u2", "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalSaves)

	res, err = favs.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, res.Saved)
	assert.Equal(t, 1, res.TotalSaves)

	n, err := favs.Count(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = favs.Toggle(ctx, "u1", "missing")
	assert.True(t, errors.Is(err, pets.ErrNotFound))
}

func TestFavoritesRepo_CounterNeverNegative(t *testing.T) {
	ctx := context.Background()
	petRepo := NewPetRepo()
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p1"}))
	favs := NewFavoritesRepo(petRepo)

	_, err := favs.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	// Contador desfasado (p.ej. carga inicial): el decremento se clampa en 0.
	petRepo.byID["p1"] = pets.Pet{ID: "p1", Saves: 0}

	res, err := favs.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalSaves)
}

func TestFavoritesRepo_ConcurrentTogglesStayConsistent(t *testing.T) {
	ctx := context.Background()
	petRepo := NewPetRepo()
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p1"}))
	favs := NewFavoritesRepo(petRepo)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = favs.Toggle(ctx, "u1", "p1")
		}()
	}
	wg.Wait()

	p, err := petRepo.GetByID(ctx, "p1")
	require.NoError(t, err)
	n, err := favs.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, n, p.Saves)
	assert.Equal(t, 0, p.Saves)
}

func TestPetRepo_UpdateKeepsCounters(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", Name: "Rex"}))
	require.NoError(t, repo.IncrementViews(ctx, []string{"p1", "ghost"}))

	require.NoError(t, repo.Update(ctx, pets.Pet{ID: "p1", Name: "Max"}))
	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Max", p.Name)
	assert.Equal(t, 1, p.Views)
}

func TestPetRepo_UpdateKeepsAvailability(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", Name: "Rex", IsAvailable: true}))
	require.NoError(t, repo.SetAvailability(ctx, "p1", false))

	require.NoError(t, repo.Update(ctx, pets.Pet{ID: "p1", Name: "Rex", Description: "calm", IsAvailable: true}))
	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "calm", p.Description)
	assert.False(t, p.IsAvailable)
}

func TestFavoritesRepo_DeletedPet(t *testing.T) {
	ctx := context.Background()
	petRepo := NewPetRepo()
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p1"}))
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p2"}))
	favs := NewFavoritesRepo(petRepo)

	_, err := favs.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	_, err = favs.Toggle(ctx, "u1", "p2")
	require.NoError(t, err)

	n, err := favs.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, petRepo.Delete(ctx, "p1"))

	n, err = favs.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// El toggle sobre una mascota borrada falla y no deja el par guardado.
	_, err = favs.Toggle(ctx, "u1", "p1")
	assert.True(t, errors.Is(err, pets.ErrNotFound))
	_, err = favs.Toggle(ctx, "u1", "p1")
	assert.True(t, errors.Is(err, pets.ErrNotFound))

	saved, err := favs.ListSaved(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "p2", saved[0].ID)
	assert.Len(t, favs.saved, 1)
}

func TestPetRepo_ListSortsAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Bella", "Alfie", "Coco"} {
		require.NoError(t, repo.Create(ctx, pets.Pet{
			ID: name, Name: name, IsAvailable: true,
			AdoptionFee: float64(100 - i*10), CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	available := true
	f := pets.Filter{Available: &available}

	items, total, err := repo.List(ctx, f, listing.Params{Page: 1, Limit: 2, SortBy: "createdAt", SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Coco", items[0].ID)

	items, _, err = repo.List(ctx, f, listing.Params{Page: 1, Limit: 3, SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alfie", "Bella", "Coco"}, []string{items[0].ID, items[1].ID, items[2].ID})

	items, _, err = repo.List(ctx, f, listing.Params{Page: 2, Limit: 2, SortBy: "adoptionFee"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Bella", items[0].ID)
}

func TestAppointmentRepo_SlotUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepo()
	slot := appointments.Appointment{ProviderID: "vet", Date: "2025-07-01", Time: "10:00", Status: appointments.StatusScheduled}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won []string
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a := slot
			a.ID = string(rune('a' + i))
			if err := repo.Create(ctx, a); err == nil {
				mu.Lock()
				won = append(won, a.ID)
				mu.Unlock()
			} else {
				assert.True(t, errors.Is(err, appointments.ErrSlotConflict))
			}
		}(i)
	}
	wg.Wait()
	require.Len(t, won, 1)

	winner, err := repo.GetByID(ctx, won[0])
	require.NoError(t, err)
	cancelled := winner
	cancelled.Status = appointments.StatusCancelled
	require.NoError(t, repo.UpdateStatus(ctx, cancelled, appointments.StatusScheduled))

	again := slot
	again.ID = "after-cancel"
	assert.NoError(t, repo.Create(ctx, again))
}

func TestApplicationRepo_ActiveUniquenessAndCAS(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepo()
	a := applications.Application{ID: "a1", PetID: "p1", ApplicantID: "u1", Status: applications.StatusPending}
	require.NoError(t, repo.Create(ctx, a))

	dup := a
	dup.ID = "a2"
	assert.True(t, errors.Is(repo.Create(ctx, dup), applications.ErrDuplicateApplication))

	moved := a
	moved.Status = applications.StatusRejected
	require.NoError(t, repo.UpdateStatus(ctx, moved, applications.StatusPending))

	stale := a
	stale.Status = applications.StatusUnderReview
	assert.True(t, errors.Is(repo.UpdateStatus(ctx, stale, applications.StatusPending), applications.ErrInvalidTransition))

	assert.NoError(t, repo.Create(ctx, dup))
}
