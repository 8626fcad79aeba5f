package shelters

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/apperr"
	"pet-adoption-marketplace/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// PetPreviewer da las mascotas disponibles de un refugio (lo implementa pets.Service).
type PetPreviewer interface {
	PreviewByShelter(ctx context.Context, shelterID string, limit int) ([]PetSummary, error)
}

const previewLimit = 6

func RegisterRoutes(r chi.Router, svc *Service, pets PetPreviewer, log logger.Logger) {
	r.Route("/shelters", func(sr chi.Router) {
		sr.Get("/", listSheltersHandler(svc, log))
		sr.Post("/", createShelterHandler(svc))
		sr.Get("/{shelterID}", getShelterHandler(svc, pets))
		sr.Put("/{shelterID}", updateShelterHandler(svc))
	})
}

type addressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type contactDTO struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website,omitempty"`
}

type createShelterRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     addressDTO `json:"address"`
	Contact     contactDTO `json:"contact"`
}

type updateShelterRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Address     *addressDTO `json:"address"`
	Contact     *contactDTO `json:"contact"`
}

type shelterResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"ownerUserId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     addressDTO `json:"address"`
	Contact     contactDTO `json:"contact"`
	IsVerified  bool       `json:"isVerified"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// listSheltersHandler godoc
// @Summary Listar refugios
// @Tags shelters
// @Produce json
// @Param city query string false "Ciudad (substring)"
// @Param state query string false "Estado (substring)"
// @Param search query string false "Texto en nombre/descripción"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 10)"
// @Success 200 {object} map[string]any
// @Router /shelters [get]
func listSheltersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, page, err := svc.List(r.Context(), BuildFilter(q, log), listing.ParseParams(q, Defaults))
		if err != nil {
			apperr.Write(w, err)
			return
		}

		out := make([]shelterResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toShelterResponse(s))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"shelters":   out,
			"pagination": page,
		})
	}
}

func createShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		var req createShelterRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			apperr.WriteKind(w, apperr.KindValidation, "invalid json")
			return
		}

		s, err := svc.Create(r.Context(), claims, CreateInput{
			Name:        req.Name,
			Description: req.Description,
			Address:     fromAddressDTO(req.Address),
			Contact:     fromContactDTO(req.Contact),
		})
		if err != nil {
			apperr.Write(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"shelter": toShelterResponse(s)})
	}
}

func getShelterHandler(svc *Service, pets PetPreviewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.GetByID(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			apperr.Write(w, err)
			return
		}

		preview := []PetSummary{}
		if pets != nil {
			items, err := pets.PreviewByShelter(r.Context(), s.ID, previewLimit)
			if err != nil {
				apperr.Write(w, err)
				return
			}
			preview = items
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"shelter": toShelterResponse(s),
			"pets":    preview,
		})
	}
}

func updateShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		var req updateShelterRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			apperr.WriteKind(w, apperr.KindValidation, "invalid json")
			return
		}

		in := UpdateInput{Name: req.Name, Description: req.Description}
		if req.Address != nil {
			a := fromAddressDTO(*req.Address)
			in.Address = &a
		}
		if req.Contact != nil {
			c := fromContactDTO(*req.Contact)
			in.Contact = &c
		}

		s, err := svc.Update(r.Context(), claims, chi.URLParam(r, "shelterID"), in)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"shelter": toShelterResponse(s)})
	}
}

func toShelterResponse(s Shelter) shelterResponse {
	return shelterResponse{
		ID:          s.ID,
		OwnerUserID: s.OwnerUserID,
		Name:        s.Name,
		Description: s.Description,
		Address: addressDTO{
			Street:  s.Address.Street,
			City:    s.Address.City,
			State:   s.Address.State,
			ZipCode: s.Address.ZipCode,
		},
		Contact: contactDTO{
			Phone:   s.Contact.Phone,
			Email:   s.Contact.Email,
			Website: s.Contact.Website,
		},
		IsVerified: s.IsVerified,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func fromAddressDTO(a addressDTO) Address {
	return Address{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode}
}

func fromContactDTO(c contactDTO) Contact {
	return Contact{Phone: c.Phone, Email: c.Email, Website: c.Website}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
