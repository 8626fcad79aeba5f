package shelters

import (
	"context"

	"pet-adoption-marketplace/internal/domain/listing"
)

// Repository devuelve ErrNotFound cuando no existe y ErrAlreadyExists si el owner ya tiene refugio.
type Repository interface {
	Create(ctx context.Context, s Shelter) error
	GetByID(ctx context.Context, id string) (Shelter, error)
	GetByOwner(ctx context.Context, ownerUserID string) (Shelter, error)
	Update(ctx context.Context, s Shelter) error
	List(ctx context.Context, f Filter, p listing.Params) ([]Shelter, int, error)
}
