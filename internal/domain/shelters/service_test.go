package shelters

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Shelter
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Shelter{}} }

func (r *testRepo) Create(ctx context.Context, s Shelter) error {
	for _, existing := range r.byID {
		if existing.OwnerUserID == s.OwnerUserID {
			return ErrAlreadyExists
		}
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Shelter, error) {
	s, ok := r.byID[id]
	if !ok {
		return Shelter{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) GetByOwner(ctx context.Context, owner string) (Shelter, error) {
	for _, s := range r.byID {
		if s.OwnerUserID == owner {
			return s, nil
		}
	}
	return Shelter{}, ErrNotFound
}

func (r *testRepo) Update(ctx context.Context, s Shelter) error {
	if _, ok := r.byID[s.ID]; !ok {
		return ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) List(ctx context.Context, f Filter, p listing.Params) ([]Shelter, int, error) {
	out := []Shelter{}
	for _, s := range r.byID {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	start, end := listing.Window(p, len(out))
	return out[start:end], len(out), nil
}

var shelterOwner = auth.Claims{UserID: "owner-1", Role: auth.RoleShelter}

func validInput() CreateInput {
	return CreateInput{
		Name:    " Happy Paws ",
		Address: Address{City: "Austin", State: "TX", ZipCode: "78701"},
		Contact: Contact{Email: "Team@HappyPaws.org", Phone: "(555) 123-4567"},
	}
}

func TestService_Create_RequiresShelterRole(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), auth.Claims{UserID: "u", Role: auth.RoleAdopter}, validInput())
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestService_Create_NormalizesAndOnePerOwner(t *testing.T) {
	svc := NewService(newTestRepo())
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	s, err := svc.Create(context.Background(), shelterOwner, validInput())
	require.NoError(t, err)
	assert.Equal(t, "Happy Paws", s.Name)
	assert.Equal(t, "team@happypaws.org", s.Contact.Email)
	assert.Equal(t, now, s.CreatedAt)

	_, err = svc.Create(context.Background(), shelterOwner, validInput())
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	bad := validInput()
	bad.Address.ZipCode = "ABCDE"
	_, err := svc.Create(context.Background(), shelterOwner, bad)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	bad = validInput()
	bad.Contact.Website = "ftp://nope"
	_, err = svc.Create(context.Background(), shelterOwner, bad)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestService_Update_OwnerOnly(t *testing.T) {
	svc := NewService(newTestRepo())
	s, err := svc.Create(context.Background(), shelterOwner, validInput())
	require.NoError(t, err)

	name := "Happier Paws"
	_, err = svc.Update(context.Background(), auth.Claims{UserID: "intruder", Role: auth.RoleShelter}, s.ID, UpdateInput{Name: &name})
	assert.True(t, errors.Is(err, ErrForbidden))

	updated, err := svc.Update(context.Background(), shelterOwner, s.ID, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Happier Paws", updated.Name)
}

func TestBuildFilter_IgnoresUnknownKeys(t *testing.T) {
	f := BuildFilter(url.Values{"city": {" aus "}, "color": {"red"}, "page": {"2"}}, nil)
	assert.Equal(t, Filter{City: "aus"}, f)

	assert.True(t, f.Matches(Shelter{Address: Address{City: "Austin"}}))
	assert.False(t, f.Matches(Shelter{Address: Address{City: "Dallas"}}))
}
