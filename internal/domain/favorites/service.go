package favorites

import (
	"context"
	"strings"

	"pet-adoption-marketplace/internal/domain/pets"
	"pet-adoption-marketplace/internal/platform/apperr"
)

var ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid input")

// Metrics es opcional (platform/metrics.Collector lo implementa).
type Metrics interface {
	FavoriteToggled(saved bool)
}

type Service struct {
	repo    Repository
	metrics Metrics
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) WithMetrics(m Metrics) *Service {
	s.metrics = m
	return s
}

// Toggle guarda la mascota si no estaba guardada; si lo estaba, la quita.
func (s *Service) Toggle(ctx context.Context, userID, petID string) (ToggleResult, error) {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" {
		return ToggleResult{}, ErrInvalidInput
	}
	if petID == "" {
		return ToggleResult{}, pets.ErrNotFound
	}

	res, err := s.repo.Toggle(ctx, userID, petID)
	if err != nil {
		return ToggleResult{}, err
	}
	if s.metrics != nil {
		s.metrics.FavoriteToggled(res.Saved)
	}
	return res, nil
}

func (s *Service) ListSaved(ctx context.Context, userID string) ([]pets.Pet, error) {
	return s.repo.ListSaved(ctx, userID)
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	return s.repo.Count(ctx, userID)
}
