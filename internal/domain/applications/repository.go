package applications

import (
	"context"

	"pet-adoption-marketplace/internal/domain/listing"
)

// Repository persiste postulaciones.
type Repository interface {
	// Create devuelve ErrDuplicateApplication si ya hay una activa para (pet, applicant).
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	HasActive(ctx context.Context, petID, applicantID string) (bool, error)

	// UpdateStatus escribe status, timeline, rejectionReason y updatedAt solo si el
	// status guardado sigue siendo from. Si no, devuelve ErrInvalidTransition.
	UpdateStatus(ctx context.Context, a Application, from Status) error
	AppendNote(ctx context.Context, applicationID string, n Note) error

	// Listados ordenados por submittedAt desc. status "" = todos.
	ListByApplicant(ctx context.Context, applicantID string, status Status, p listing.Params) ([]Application, int, error)
	ListByShelter(ctx context.Context, shelterID string, status Status, p listing.Params) ([]Application, int, error)
}
