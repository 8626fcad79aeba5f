// Package cache decora repositorios de lectura frecuente con un LRU con TTL
// por instancia. Solo se cachean lecturas por id; las escrituras invalidan.
package cache

import (
	"context"
	"time"

	"pet-adoption-marketplace/internal/domain/providers"
	"pet-adoption-marketplace/internal/domain/shelters"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Metrics registra hits y misses. nil = sin métricas.
type Metrics interface {
	CacheLookup(cache string, hit bool)
}

type lookup[V any] struct {
	name    string
	lru     *expirable.LRU[string, V]
	metrics Metrics
}

func newLookup[V any](name string, size int, ttl time.Duration, m Metrics) lookup[V] {
	if size <= 0 {
		size = 256
	}
	return lookup[V]{name: name, lru: expirable.NewLRU[string, V](size, nil, ttl), metrics: m}
}

func (l lookup[V]) get(ctx context.Context, id string, load func(context.Context, string) (V, error)) (V, error) {
	if v, ok := l.lru.Get(id); ok {
		l.observe(true)
		return v, nil
	}
	l.observe(false)

	v, err := load(ctx, id)
	if err != nil {
		return v, err
	}
	l.lru.Add(id, v)
	return v, nil
}

func (l lookup[V]) observe(hit bool) {
	if l.metrics != nil {
		l.metrics.CacheLookup(l.name, hit)
	}
}

// Shelters cachea GetByID de refugios. Lo usa el listado de mascotas para poblar shelter por item.
type Shelters struct {
	shelters.Repository
	byID lookup[shelters.Shelter]
}

func NewShelters(next shelters.Repository, size int, ttl time.Duration, m Metrics) *Shelters {
	return &Shelters{Repository: next, byID: newLookup[shelters.Shelter]("shelters", size, ttl, m)}
}

func (c *Shelters) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	return c.byID.get(ctx, id, c.Repository.GetByID)
}

func (c *Shelters) Update(ctx context.Context, s shelters.Shelter) error {
	err := c.Repository.Update(ctx, s)
	c.byID.lru.Remove(s.ID)
	return err
}

// Providers cachea GetByID de proveedores (reserva de turnos y detalle).
type Providers struct {
	providers.Repository
	byID lookup[providers.Provider]
}

func NewProviders(next providers.Repository, size int, ttl time.Duration, m Metrics) *Providers {
	return &Providers{Repository: next, byID: newLookup[providers.Provider]("providers", size, ttl, m)}
}

func (c *Providers) GetByID(ctx context.Context, id string) (providers.Provider, error) {
	return c.byID.get(ctx, id, c.Repository.GetByID)
}
