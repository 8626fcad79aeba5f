package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/shelters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingShelters struct {
	byID  map[string]shelters.Shelter
	calls int
}

func (r *countingShelters) Create(ctx context.Context, s shelters.Shelter) error {
	r.byID[s.ID] = s
	return nil
}

func (r *countingShelters) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	r.calls++
	s, ok := r.byID[id]
	if !ok {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return s, nil
}

func (r *countingShelters) GetByOwner(ctx context.Context, owner string) (shelters.Shelter, error) {
	return shelters.Shelter{}, shelters.ErrNotFound
}

func (r *countingShelters) Update(ctx context.Context, s shelters.Shelter) error {
	r.byID[s.ID] = s
	return nil
}

func (r *countingShelters) List(ctx context.Context, f shelters.Filter, p listing.Params) ([]shelters.Shelter, int, error) {
	return nil, 0, nil
}

type lookups struct {
	hits, misses int
}

func (l *lookups) CacheLookup(cache string, hit bool) {
	if hit {
		l.hits++
	} else {
		l.misses++
	}
}

func TestShelters_CachesByIDAndInvalidatesOnUpdate(t *testing.T) {
	inner := &countingShelters{byID: map[string]shelters.Shelter{"s1": {ID: "s1", Name: "Happy Paws"}}}
	m := &lookups{}
	c := NewShelters(inner, 8, time.Minute, m)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s, err := c.GetByID(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "Happy Paws", s.Name)
	}
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 2, m.hits)
	assert.Equal(t, 1, m.misses)

	require.NoError(t, c.Update(ctx, shelters.Shelter{ID: "s1", Name: "Happier Paws"}))
	s, err := c.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Happier Paws", s.Name)
	assert.Equal(t, 2, inner.calls)
}

func TestShelters_DoesNotCacheErrors(t *testing.T) {
	inner := &countingShelters{byID: map[string]shelters.Shelter{}}
	c := NewShelters(inner, 8, time.Minute, nil)

	_, err := c.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, shelters.ErrNotFound))
	_, err = c.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, shelters.ErrNotFound))
	assert.Equal(t, 2, inner.calls)
}
