package providers

import (
	"context"

	"pet-adoption-marketplace/internal/domain/listing"
)

type Repository interface {
	Create(ctx context.Context, p Provider) error
	GetByID(ctx context.Context, id string) (Provider, error)
	List(ctx context.Context, f Filter, p listing.Params) ([]Provider, int, error)
}
