package appointments

import (
	"context"

	"pet-adoption-marketplace/internal/domain/listing"
)

type Repository interface {
	// Create devuelve ErrSlotConflict si (provider, date, time) ya está tomado
	// por un turno scheduled o confirmed. El chequeo y el insert son atómicos.
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)

	// UpdateStatus escribe status, cancellation, notes.providerNotes y updatedAt
	// solo si el status guardado sigue siendo from. Si no, ErrInvalidTransition.
	UpdateStatus(ctx context.Context, a Appointment, from Status) error

	// ListByUser ordena por date desc, time desc. status "" = todos.
	ListByUser(ctx context.Context, userID string, status Status, p listing.Params) ([]Appointment, int, error)
	// ListUpcoming: turnos scheduled|confirmed con date >= fromDate, ordenados date asc, time asc.
	ListUpcoming(ctx context.Context, userID, fromDate string, limit int) ([]Appointment, int, error)
}
