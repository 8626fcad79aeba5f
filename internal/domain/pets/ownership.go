package pets

import (
	"context"
	"errors"

	"pet-adoption-marketplace/internal/domain/shelters"
	"pet-adoption-marketplace/internal/ports/auth"
)

// authorizeOwner exige que actor sea el owner del refugio que publicó la mascota.
func (s *Service) authorizeOwner(ctx context.Context, actor auth.Claims, p Pet) error {
	sh, err := s.shelters.GetByID(ctx, p.ShelterID)
	if err != nil {
		if errors.Is(err, shelters.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if sh.OwnerUserID != actor.UserID {
		return ErrForbidden
	}
	return nil
}

// shelterOf resuelve el refugio del actor; sin refugio no puede publicar.
func (s *Service) shelterOf(ctx context.Context, actor auth.Claims) (shelters.Shelter, error) {
	if !actor.IsShelter() {
		return shelters.Shelter{}, ErrForbidden
	}
	sh, err := s.shelters.GetByOwner(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, shelters.ErrNotFound) {
			return shelters.Shelter{}, ErrShelterRequired
		}
		return shelters.Shelter{}, err
	}
	return sh, nil
}
