package appointments

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/providers"
	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	mu   sync.Mutex
	byID map[string]Appointment
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Appointment{}} }

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.byID {
		if cur.ProviderID == a.ProviderID && cur.Date == a.Date && cur.Time == a.Time && cur.Status.HoldsSlot() {
			return ErrSlotConflict
		}
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) UpdateStatus(ctx context.Context, a Appointment, from Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[a.ID]
	if !ok {
		return ErrNotFound
	}
	if cur.Status != from {
		return ErrInvalidTransition
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string, status Status, p listing.Params) ([]Appointment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Appointment{}
	for _, a := range r.byID {
		if a.UserID == userID && (status == "" || a.Status == status) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date+out[i].Time > out[j].Date+out[j].Time })
	start, end := listing.Window(p, len(out))
	return out[start:end], len(out), nil
}

func (r *testRepo) ListUpcoming(ctx context.Context, userID, fromDate string, limit int) ([]Appointment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Appointment{}
	for _, a := range r.byID {
		if a.UserID == userID && a.Status.HoldsSlot() && a.Date >= fromDate {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date+out[i].Time < out[j].Date+out[j].Time })
	total := len(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

type testProviders map[string]providers.Provider

func (d testProviders) GetByID(ctx context.Context, id string) (providers.Provider, error) {
	p, ok := d[id]
	if !ok {
		return providers.Provider{}, providers.ErrNotFound
	}
	return p, nil
}

var (
	vetOwner = auth.Claims{UserID: "vet-owner", Role: auth.RoleVeterinarian}
	client   = auth.Claims{UserID: "client-1", Role: auth.RoleAdopter}
	dir      = testProviders{
		"vet-1": {
			ID: "vet-1", OwnerUserID: "vet-owner", ServiceType: providers.ServiceVeterinary, IsActive: true,
			Services: []providers.Offering{{Name: "Checkup", Price: providers.Price{Amount: 60}}},
		},
		"closed": {ID: "closed", OwnerUserID: "x", IsActive: false},
	}
)

func booking() BookInput {
	return BookInput{
		ProviderID: "vet-1",
		Date:       "2025-07-01",
		Time:       "10:00",
		Service:    BookedService{Name: "checkup"},
		PetInfo:    PetInfo{Name: "Rex"},
	}
}

func newSvc() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, dir, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestService_Book_Defaults(t *testing.T) {
	svc, _ := newSvc()

	a, err := svc.Book(context.Background(), client, booking())
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, a.Status)
	assert.Equal(t, DefaultDuration, a.Duration)
	assert.Equal(t, "veterinary", a.Service.Type)
	assert.Equal(t, 60.0, a.Service.Price.Amount)
	assert.Equal(t, "USD", a.Service.Price.Currency)
}

func TestService_Book_Validation(t *testing.T) {
	svc, _ := newSvc()
	cases := map[string]func(*BookInput){
		"date format":    func(in *BookInput) { in.Date = "07/01/2025" },
		"calendar date":  func(in *BookInput) { in.Date = "2025-02-30" },
		"time format":    func(in *BookInput) { in.Time = "9:00" },
		"hour range":     func(in *BookInput) { in.Time = "24:00" },
		"duration range": func(in *BookInput) { in.Duration = 481 },
		"service name":   func(in *BookInput) { in.Service.Name = "" },
		"pet name":       func(in *BookInput) { in.PetInfo.Name = " " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := booking()
			mutate(&in)
			_, err := svc.Book(context.Background(), client, in)
			assert.True(t, errors.Is(err, ErrInvalidInput), err)
		})
	}
}

func TestService_Book_ProviderMustExistAndBeActive(t *testing.T) {
	svc, _ := newSvc()

	in := booking()
	in.ProviderID = "nope"
	_, err := svc.Book(context.Background(), client, in)
	assert.True(t, errors.Is(err, ErrProviderNotFound))

	in.ProviderID = "closed"
	_, err = svc.Book(context.Background(), client, in)
	assert.True(t, errors.Is(err, ErrProviderNotFound))
}

func TestService_Book_ConcurrentSameSlot(t *testing.T) {
	svc, _ := newSvc()

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), client, booking())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrSlotConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestService_Cancel_FreesSlot(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	a, err := svc.Book(ctx, client, booking())
	require.NoError(t, err)

	_, err = svc.Book(ctx, client, booking())
	require.True(t, errors.Is(err, ErrSlotConflict))

	_, err = svc.Cancel(ctx, auth.Claims{UserID: "stranger"}, a.ID, "")
	assert.True(t, errors.Is(err, ErrForbidden))

	cancelled, err := svc.Cancel(ctx, client, a.ID, "vacation")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.Cancellation)
	assert.Equal(t, "client-1", cancelled.Cancellation.CancelledBy)

	_, err = svc.Book(ctx, client, booking())
	assert.NoError(t, err)

	_, err = svc.Cancel(ctx, client, a.ID, "")
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestService_UpdateStatus(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	a, err := svc.Book(ctx, client, booking())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, client, a.ID, "confirmed", "")
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = svc.UpdateStatus(ctx, vetOwner, a.ID, "done", "")
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	_, err = svc.UpdateStatus(ctx, vetOwner, a.ID, "completed", "")
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	for _, to := range []string{"confirmed", "in-progress", "completed"} {
		a, err = svc.UpdateStatus(ctx, vetOwner, a.ID, to, "all good")
		require.NoError(t, err, to)
	}
	assert.Equal(t, StatusCompleted, a.Status)
	assert.Equal(t, "all good", a.Notes.ProviderNotes)
}

func TestService_GetAndUpcoming(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	past := booking()
	past.Date = "2025-06-01"
	_, err := svc.Book(ctx, client, past)
	require.NoError(t, err)

	later := booking()
	later.Date = "2025-08-01"
	_, err = svc.Book(ctx, client, later)
	require.NoError(t, err)

	soon, err := svc.Book(ctx, client, booking())
	require.NoError(t, err)

	items, total, err := svc.Upcoming(ctx, client.UserID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 1)
	assert.Equal(t, soon.ID, items[0].ID)

	_, err = svc.Get(ctx, vetOwner, soon.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, auth.Claims{UserID: "stranger"}, soon.ID)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestCanMove(t *testing.T) {
	all := []Status{StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow}
	allowed := map[[2]Status]bool{
		{StatusScheduled, StatusConfirmed}:  true,
		{StatusScheduled, StatusCancelled}:  true,
		{StatusScheduled, StatusNoShow}:     true,
		{StatusConfirmed, StatusInProgress}: true,
		{StatusConfirmed, StatusCancelled}:  true,
		{StatusConfirmed, StatusNoShow}:     true,
		{StatusInProgress, StatusCompleted}: true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]Status{from, to}], CanMove(from, to), "%s -> %s", from, to)
		}
	}
}
