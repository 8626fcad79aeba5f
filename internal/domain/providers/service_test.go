package providers

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Provider
}

func (r *testRepo) Create(ctx context.Context, p Provider) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Provider, error) {
	p, ok := r.byID[id]
	if !ok {
		return Provider{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context, f Filter, p listing.Params) ([]Provider, int, error) {
	out := []Provider{}
	for _, pr := range r.byID {
		if f.Matches(pr) {
			out = append(out, pr)
		}
	}
	start, end := listing.Window(p, len(out))
	return out[start:end], len(out), nil
}

func validInput() CreateInput {
	return CreateInput{
		Name:        "Downtown Vet",
		ServiceType: "Veterinary",
		Address:     Address{City: "Austin", State: "TX"},
		Services:    []Offering{{Name: "Checkup", Price: Price{Amount: 60, Unit: "per visit"}, Duration: 30}},
	}
}

func TestService_Create_Roles(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]Provider{}})

	_, err := svc.Create(context.Background(), auth.Claims{UserID: "u", Role: auth.RoleAdopter}, validInput())
	assert.True(t, errors.Is(err, ErrForbidden))

	p, err := svc.Create(context.Background(), auth.Claims{UserID: "vet", Role: auth.RoleVeterinarian}, validInput())
	require.NoError(t, err)
	assert.Equal(t, ServiceVeterinary, p.ServiceType)
	assert.True(t, p.IsActive)

	_, err = svc.Create(context.Background(), auth.Claims{UserID: "sp", Role: auth.RoleServiceProvider}, validInput())
	assert.NoError(t, err)
}

func TestService_Create_RejectsUnknownServiceType(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]Provider{}})
	in := validInput()
	in.ServiceType = "astrology"

	_, err := svc.Create(context.Background(), auth.Claims{UserID: "vet", Role: auth.RoleVeterinarian}, in)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFilter_OnlyActiveAndSearchesOfferings(t *testing.T) {
	f := BuildFilter(url.Values{"serviceType": {"all"}, "search": {"checkup"}, "rating": {"5"}}, nil)
	assert.Empty(t, f.ServiceType)

	p := Provider{IsActive: true, Services: []Offering{{Name: "Annual Checkup"}}}
	assert.True(t, f.Matches(p))

	p.IsActive = false
	assert.False(t, f.Matches(p))
}

func TestProvider_Offering(t *testing.T) {
	p := Provider{Services: []Offering{{Name: "Nail Trim", Price: Price{Amount: 15}}}}

	o, ok := p.Offering(" nail trim ")
	require.True(t, ok)
	assert.Equal(t, 15.0, o.Price.Amount)

	_, ok = p.Offering("bath")
	assert.False(t, ok)
}
