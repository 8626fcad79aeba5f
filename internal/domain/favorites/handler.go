package favorites

import (
	"encoding/json"
	"net/http"

	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes cuelga el toggle de /pets/{petID}/save. limit aplica el presupuesto de escrituras.
func RegisterRoutes(r chi.Router, svc *Service, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/pets/{petID}/save", toggleHandler(svc))
	r.Get("/users/me/saved-pets", listSavedHandler(svc))
}

type toggleResponse struct {
	Message    string `json:"message"`
	Saved      bool   `json:"saved"`
	TotalSaves int    `json:"totalSaves"`
}

type savedPetResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Breed        string `json:"breed"`
	PrimaryImage string `json:"primaryImage,omitempty"`
	IsAvailable  bool   `json:"isAvailable"`
	Saves        int    `json:"saves"`
}

// toggleHandler godoc
// @Summary Guardar / quitar mascota de favoritos
// @Tags favorites
// @Produce json
// @Param petID path string true "Pet ID"
// @Success 200 {object} toggleResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /pets/{petID}/save [post]
func toggleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		res, err := svc.Toggle(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			apperr.Write(w, err)
			return
		}

		msg := "pet removed from saved list"
		if res.Saved {
			msg = "pet saved"
		}
		writeJSON(w, http.StatusOK, toggleResponse{Message: msg, Saved: res.Saved, TotalSaves: res.TotalSaves})
	}
}

func listSavedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		items, err := svc.ListSaved(r.Context(), claims.UserID)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		out := make([]savedPetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, savedPetResponse{
				ID:           p.ID,
				Name:         p.Name,
				Type:         string(p.Type),
				Breed:        p.Breed,
				PrimaryImage: p.PrimaryImage(),
				IsAvailable:  p.IsAvailable,
				Saves:        p.Saves,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"pets": out})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
