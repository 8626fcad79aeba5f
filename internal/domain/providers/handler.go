package providers

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/apperr"
	"pet-adoption-marketplace/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra el directorio de proveedores bajo /services.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/services", func(sr chi.Router) {
		sr.Get("/", listProvidersHandler(svc, log))
		sr.Post("/", createProviderHandler(svc))
		sr.Get("/{providerID}", getProviderHandler(svc))
	})
}

type addressDTO struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode,omitempty"`
}

type contactDTO struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

type priceDTO struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit,omitempty"`
}

type offeringDTO struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       priceDTO `json:"price"`
	Duration    int      `json:"duration,omitempty"`
}

type ratingDTO struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type createProviderRequest struct {
	Name        string        `json:"name"`
	ServiceType string        `json:"serviceType"`
	Description string        `json:"description"`
	Address     addressDTO    `json:"address"`
	Contact     contactDTO    `json:"contact"`
	Services    []offeringDTO `json:"services"`
}

type providerResponse struct {
	ID          string        `json:"id"`
	OwnerUserID string        `json:"ownerUserId"`
	Name        string        `json:"name"`
	ServiceType ServiceType   `json:"serviceType"`
	Description string        `json:"description"`
	Address     addressDTO    `json:"address"`
	Contact     contactDTO    `json:"contact"`
	Services    []offeringDTO `json:"services"`
	Rating      ratingDTO     `json:"rating"`
	IsVerified  bool          `json:"isVerified"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// listProvidersHandler godoc
// @Summary Directorio de proveedores de servicios
// @Tags services
// @Produce json
// @Param serviceType query string false "veterinary|grooming|training|boarding|walking|sitting|all"
// @Param city query string false "Ciudad (substring)"
// @Param state query string false "Estado (substring)"
// @Param search query string false "Texto en nombre/descripción/servicios"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 10)"
// @Success 200 {object} map[string]any
// @Router /services [get]
func listProvidersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, page, err := svc.List(r.Context(), BuildFilter(q, log), listing.ParseParams(q, Defaults))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		out := make([]providerResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toProviderResponse(p))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"services":   out,
			"pagination": page,
		})
	}
}

func getProviderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "providerID"))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"service": toProviderResponse(p)})
	}
}

func createProviderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		var req createProviderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			apperr.WriteKind(w, apperr.KindValidation, "invalid json")
			return
		}

		offerings := make([]Offering, 0, len(req.Services))
		for _, o := range req.Services {
			offerings = append(offerings, Offering{
				Name:        o.Name,
				Description: o.Description,
				Price:       Price{Amount: o.Price.Amount, Unit: o.Price.Unit},
				Duration:    o.Duration,
			})
		}

		p, err := svc.Create(r.Context(), claims, CreateInput{
			Name:        req.Name,
			ServiceType: ServiceType(req.ServiceType),
			Description: req.Description,
			Address:     Address{Street: req.Address.Street, City: req.Address.City, State: req.Address.State, ZipCode: req.Address.ZipCode},
			Contact:     Contact{Phone: req.Contact.Phone, Email: req.Contact.Email, Website: req.Contact.Website},
			Services:    offerings,
		})
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"service": toProviderResponse(p)})
	}
}

func toProviderResponse(p Provider) providerResponse {
	services := make([]offeringDTO, 0, len(p.Services))
	for _, o := range p.Services {
		services = append(services, offeringDTO{
			Name:        o.Name,
			Description: o.Description,
			Price:       priceDTO{Amount: o.Price.Amount, Unit: o.Price.Unit},
			Duration:    o.Duration,
		})
	}
	return providerResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		ServiceType: p.ServiceType,
		Description: p.Description,
		Address:     addressDTO{Street: p.Address.Street, City: p.Address.City, State: p.Address.State, ZipCode: p.Address.ZipCode},
		Contact:     contactDTO{Phone: p.Contact.Phone, Email: p.Contact.Email, Website: p.Contact.Website},
		Services:    services,
		Rating:      ratingDTO{Average: p.Rating.Average, Count: p.Rating.Count},
		IsVerified:  p.IsVerified,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
