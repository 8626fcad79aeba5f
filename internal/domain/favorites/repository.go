package favorites

import (
	"context"

	"pet-adoption-marketplace/internal/domain/pets"
)

// ToggleResult es el estado final del par (usuario, mascota) tras un toggle.
type ToggleResult struct {
	Saved      bool
	TotalSaves int
}

// Repository es el ledger de favoritos.
//
// Toggle es atómico por par: la fila del par y el contador pets.saves se mueven juntos,
// y el contador nunca baja de 0. Devuelve pets.ErrNotFound si la mascota no existe.
type Repository interface {
	Toggle(ctx context.Context, userID, petID string) (ToggleResult, error)
	ListSaved(ctx context.Context, userID string) ([]pets.Pet, error)
	Count(ctx context.Context, userID string) (int, error)
}
