// Package dashboard arma el resumen de la cuenta del usuario.
package dashboard

import (
	"context"

	"pet-adoption-marketplace/internal/domain/applications"
	"pet-adoption-marketplace/internal/domain/appointments"
	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/ports/auth"

	"golang.org/x/sync/errgroup"
)

const recentLimit = 3

type SavedCounter interface {
	Count(ctx context.Context, userID string) (int, error)
}

type ApplicationLister interface {
	ListMine(ctx context.Context, actor auth.Claims, status applications.Status, p listing.Params) (applications.Page, error)
}

type AppointmentLister interface {
	Upcoming(ctx context.Context, userID string, limit int) ([]appointments.Appointment, int, error)
}

type Stats struct {
	SavedPets            int
	Applications         int
	UpcomingAppointments int

	RecentApplications []applications.Application
	NextAppointments   []appointments.Appointment
}

type Service struct {
	saved        SavedCounter
	applications ApplicationLister
	appointments AppointmentLister
}

func NewService(saved SavedCounter, apps ApplicationLister, appts AppointmentLister) *Service {
	return &Service{saved: saved, applications: apps, appointments: appts}
}

// Stats consulta las tres fuentes en paralelo; falla si falla cualquiera.
func (s *Service) Stats(ctx context.Context, actor auth.Claims) (Stats, error) {
	var out Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.saved.Count(gctx, actor.UserID)
		out.SavedPets = n
		return err
	})
	g.Go(func() error {
		page, err := s.applications.ListMine(gctx, actor, "", listing.Params{
			Page:     1,
			Limit:    recentLimit,
			SortBy:   applications.Defaults.SortBy,
			SortDesc: true,
		})
		out.Applications = page.Pagination.Total
		out.RecentApplications = page.Items
		return err
	})
	g.Go(func() error {
		items, total, err := s.appointments.Upcoming(gctx, actor.UserID, recentLimit)
		out.UpcomingAppointments = total
		out.NextAppointments = items
		return err
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	if out.RecentApplications == nil {
		out.RecentApplications = []applications.Application{}
	}
	if out.NextAppointments == nil {
		out.NextAppointments = []appointments.Appointment{}
	}
	return out, nil
}
