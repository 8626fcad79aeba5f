package pets

import (
	"context"

	"pet-adoption-marketplace/internal/domain/listing"
)

// Repository persiste mascotas. Devuelve ErrNotFound si el id no existe.
//
// Update solo escribe campos editables: views, saves e isAvailable se mueven
// únicamente con sus updates atómicos (IncrementViews, el ledger de favoritos y
// SetAvailability).
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)

	// List devuelve la página pedida y el total que matchea el filtro.
	List(ctx context.Context, f Filter, p listing.Params) ([]Pet, int, error)
	// IncrementViews suma 1 a cada id en un único update.
	IncrementViews(ctx context.Context, ids []string) error
	SetAvailability(ctx context.Context, id string, available bool) error

	ListByShelter(ctx context.Context, shelterID string, availableOnly bool, limit int) ([]Pet, error)
	// ListSimilar: disponibles, mismo tipo, distinto id, y mismo tamaño, raza o ciudad.
	ListSimilar(ctx context.Context, p Pet, limit int) ([]Pet, error)
}
