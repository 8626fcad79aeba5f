package appointments

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra /appointments. limit aplica el presupuesto de escrituras a las reservas.
func RegisterRoutes(r chi.Router, svc *Service, limit func(http.Handler) http.Handler) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.With(limit).Post("/", bookHandler(svc))
		ar.Get("/", listMineHandler(svc))
		ar.Get("/{appointmentID}", getHandler(svc))
		ar.Post("/{appointmentID}/cancel", cancelHandler(svc))
		ar.Put("/{appointmentID}/status", updateStatusHandler(svc))
	})
}

type priceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type serviceDTO struct {
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Price priceDTO `json:"price"`
}

type petInfoDTO struct {
	Name         string  `json:"name"`
	Type         string  `json:"type,omitempty"`
	Breed        string  `json:"breed,omitempty"`
	Age          string  `json:"age,omitempty"`
	Weight       float64 `json:"weight,omitempty"`
	SpecialNeeds string  `json:"specialNeeds,omitempty"`
}

type bookRequest struct {
	ProviderID string     `json:"providerId"`
	Date       string     `json:"date"`
	Time       string     `json:"time"`
	Duration   int        `json:"duration"`
	Service    serviceDTO `json:"service"`
	PetInfo    petInfoDTO `json:"petInfo"`
	Notes      string     `json:"notes"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type statusRequest struct {
	Status        string `json:"status"`
	ProviderNotes string `json:"providerNotes"`
}

type notesDTO struct {
	UserNotes     string `json:"userNotes,omitempty"`
	ProviderNotes string `json:"providerNotes,omitempty"`
}

type cancellationDTO struct {
	CancelledBy string    `json:"cancelledBy"`
	Reason      string    `json:"reason,omitempty"`
	CancelledAt time.Time `json:"cancelledAt"`
}

// Response es la representación JSON de un turno.
type Response struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	ProviderID   string           `json:"providerId"`
	Service      serviceDTO       `json:"service"`
	PetInfo      petInfoDTO       `json:"petInfo"`
	Date         string           `json:"date"`
	Time         string           `json:"time"`
	Duration     int              `json:"duration"`
	Status       Status           `json:"status"`
	Notes        notesDTO         `json:"notes"`
	Cancellation *cancellationDTO `json:"cancellation,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// bookHandler godoc
// @Summary Reservar un turno con un proveedor
// @Tags appointments
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string "VALIDATION_ERROR o SLOT_CONFLICT"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments [post]
func bookHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		var req bookRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			apperr.WriteKind(w, apperr.KindValidation, "invalid json")
			return
		}

		a, err := svc.Book(r.Context(), claims, BookInput{
			ProviderID: req.ProviderID,
			Date:       req.Date,
			Time:       req.Time,
			Duration:   req.Duration,
			Service: BookedService{
				Name:  req.Service.Name,
				Type:  req.Service.Type,
				Price: Price{Amount: req.Service.Price.Amount, Currency: req.Service.Price.Currency},
			},
			PetInfo: PetInfo{
				Name:         req.PetInfo.Name,
				Type:         req.PetInfo.Type,
				Breed:        req.PetInfo.Breed,
				Age:          req.PetInfo.Age,
				Weight:       req.PetInfo.Weight,
				SpecialNeeds: req.PetInfo.SpecialNeeds,
			},
			UserNotes: req.Notes,
		})
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":     "appointment booked",
			"appointment": ToResponse(a),
		})
	}
}

func listMineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}
		q := r.URL.Query()
		status := Status(strings.TrimSpace(q.Get("status")))
		if !status.Valid() {
			status = ""
		}
		page, err := svc.ListMine(r.Context(), claims, status, listing.ParseParams(q, Defaults))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		out := make([]Response, 0, len(page.Items))
		for _, a := range page.Items {
			out = append(out, ToResponse(a))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"appointments": out,
			"pagination":   page.Pagination,
		})
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}
		a, err := svc.Get(r.Context(), claims, chi.URLParam(r, "appointmentID"))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"appointment": ToResponse(a)})
	}
}

func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		// Body opcional.
		var req cancelRequest
		if r.ContentLength != 0 {
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				apperr.WriteKind(w, apperr.KindValidation, "invalid json")
				return
			}
		}

		a, err := svc.Cancel(r.Context(), claims, chi.URLParam(r, "appointmentID"), req.Reason)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"appointment": ToResponse(a)})
	}
}

func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		var req statusRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			apperr.WriteKind(w, apperr.KindValidation, "invalid json")
			return
		}

		a, err := svc.UpdateStatus(r.Context(), claims, chi.URLParam(r, "appointmentID"), req.Status, req.ProviderNotes)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"appointment": ToResponse(a)})
	}
}

// ToResponse la reusa el dashboard.
func ToResponse(a Appointment) Response {
	resp := Response{
		ID:         a.ID,
		UserID:     a.UserID,
		ProviderID: a.ProviderID,
		Service: serviceDTO{
			Name:  a.Service.Name,
			Type:  a.Service.Type,
			Price: priceDTO{Amount: a.Service.Price.Amount, Currency: a.Service.Price.Currency},
		},
		PetInfo: petInfoDTO{
			Name:         a.PetInfo.Name,
			Type:         a.PetInfo.Type,
			Breed:        a.PetInfo.Breed,
			Age:          a.PetInfo.Age,
			Weight:       a.PetInfo.Weight,
			SpecialNeeds: a.PetInfo.SpecialNeeds,
		},
		Date:      a.Date,
		Time:      a.Time,
		Duration:  a.Duration,
		Status:    a.Status,
		Notes:     notesDTO{UserNotes: a.Notes.UserNotes, ProviderNotes: a.Notes.ProviderNotes},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Cancellation != nil {
		resp.Cancellation = &cancellationDTO{
			CancelledBy: a.Cancellation.CancelledBy,
			Reason:      a.Cancellation.Reason,
			CancelledAt: a.Cancellation.CancelledAt,
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
