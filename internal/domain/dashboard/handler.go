package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/domain/applications"
	"pet-adoption-marketplace/internal/domain/appointments"
	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/users/me/dashboard-stats", statsHandler(svc))
}

type countsResponse struct {
	SavedPets    int `json:"savedPets"`
	Applications int `json:"applications"`
	Appointments int `json:"appointments"`
}

type applicationSummary struct {
	ID          string              `json:"id"`
	PetID       string              `json:"petId"`
	Status      applications.Status `json:"status"`
	SubmittedAt time.Time           `json:"submittedAt"`
}

// statsHandler godoc
// @Summary Resumen de la cuenta
// @Tags users
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /users/me/dashboard-stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		st, err := svc.Stats(r.Context(), claims)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		recent := make([]applicationSummary, 0, len(st.RecentApplications))
		for _, a := range st.RecentApplications {
			recent = append(recent, applicationSummary{
				ID:          a.ID,
				PetID:       a.PetID,
				Status:      a.Status,
				SubmittedAt: a.Timeline.SubmittedAt,
			})
		}
		upcoming := make([]appointments.Response, 0, len(st.NextAppointments))
		for _, a := range st.NextAppointments {
			upcoming = append(upcoming, appointments.ToResponse(a))
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"stats": countsResponse{
				SavedPets:    st.SavedPets,
				Applications: st.Applications,
				Appointments: st.UpcomingAppointments,
			},
			"recentApplications":   recent,
			"upcomingAppointments": upcoming,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
