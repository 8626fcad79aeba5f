package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption-marketplace/internal/domain/appointments"
	"pet-adoption-marketplace/internal/domain/listing"
)

type slotKey struct {
	providerID string
	date       string
	time       string
}

// appointmentRepo lleva un índice de slots ocupados: chequeo e insert ocurren bajo el mismo lock.
type appointmentRepo struct {
	mu    sync.RWMutex
	byID  map[string]appointments.Appointment
	slots map[slotKey]string
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID:  make(map[string]appointments.Appointment),
		slots: make(map[slotKey]string),
	}
}

func keyOf(a appointments.Appointment) slotKey {
	return slotKey{providerID: a.ProviderID, date: a.Date, time: a.Time}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.Status.HoldsSlot() {
		if _, taken := r.slots[keyOf(a)]; taken {
			return appointments.ErrSlotConflict
		}
		r.slots[keyOf(a)] = a.ID
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, a appointments.Appointment, from appointments.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[a.ID]
	if !ok {
		return appointments.ErrNotFound
	}
	if cur.Status != from {
		return appointments.ErrInvalidTransition
	}

	if cur.Status.HoldsSlot() && !a.Status.HoldsSlot() {
		delete(r.slots, keyOf(cur))
	}
	cur.Status = a.Status
	cur.Cancellation = a.Cancellation
	cur.Notes.ProviderNotes = a.Notes.ProviderNotes
	cur.UpdatedAt = a.UpdatedAt
	r.byID[a.ID] = cur
	return nil
}

func (r *appointmentRepo) ListByUser(ctx context.Context, userID string, status appointments.Status, p listing.Params) ([]appointments.Appointment, int, error) {
	r.mu.RLock()
	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if a.UserID == userID && (status == "" || a.Status == status) {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if p.SortDesc {
			return slotAfter(out[i], out[j])
		}
		return slotAfter(out[j], out[i])
	})

	start, end := listing.Window(p, len(out))
	return out[start:end], len(out), nil
}

func (r *appointmentRepo) ListUpcoming(ctx context.Context, userID, fromDate string, limit int) ([]appointments.Appointment, int, error) {
	r.mu.RLock()
	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if a.UserID == userID && a.Status.HoldsSlot() && a.Date >= fromDate {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return slotAfter(out[j], out[i]) })
	return head(out, limit), len(out), nil
}

// slotAfter compara (date, time); ambos son texto de ancho fijo.
func slotAfter(a, b appointments.Appointment) bool {
	if a.Date != b.Date {
		return a.Date > b.Date
	}
	return a.Time > b.Time
}
