package pets

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/shelters"
	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/apperr"
	"pet-adoption-marketplace/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra rutas planas bajo /pets: favorites cuelga /pets/{petID}/save del mismo router.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Get("/pets", listPetsHandler(svc, log))
	r.Post("/pets", createPetHandler(svc))
	r.Get("/pets/mine", listMyPetsHandler(svc))
	r.Get("/pets/{petID}", getPetHandler(svc))
	r.Put("/pets/{petID}", updatePetHandler(svc))
	r.Delete("/pets/{petID}", deletePetHandler(svc))
	r.Get("/pets/{petID}/similar", similarPetsHandler(svc))
}

type ageDTO struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

type imageDTO struct {
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

type locationDTO struct {
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode,omitempty"`
}

type goodWithDTO struct {
	Children bool `json:"children"`
	Dogs     bool `json:"dogs"`
	Cats     bool `json:"cats"`
}

type petRequest struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Breed       string      `json:"breed"`
	Age         ageDTO      `json:"age"`
	Size        string      `json:"size"`
	Gender      string      `json:"gender"`
	Color       string      `json:"color"`
	Description string      `json:"description"`
	Images      []imageDTO  `json:"images"`
	Location    locationDTO `json:"location"`
	AdoptionFee float64     `json:"adoptionFee"`
	GoodWith    goodWithDTO `json:"goodWith"`
}

type updatePetRequest struct {
	Name        *string      `json:"name"`
	Type        *string      `json:"type"`
	Breed       *string      `json:"breed"`
	Age         *ageDTO      `json:"age"`
	Size        *string      `json:"size"`
	Gender      *string      `json:"gender"`
	Color       *string      `json:"color"`
	Description *string      `json:"description"`
	Images      *[]imageDTO  `json:"images"`
	Location    *locationDTO `json:"location"`
	AdoptionFee *float64     `json:"adoptionFee"`
	GoodWith    *goodWithDTO `json:"goodWith"`
	IsAvailable *bool        `json:"isAvailable"`
}

type shelterSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	State    string `json:"state"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Verified bool   `json:"isVerified"`
}

type petResponse struct {
	ID          string          `json:"id"`
	ShelterID   string          `json:"shelterId"`
	Shelter     *shelterSummary `json:"shelter,omitempty"`
	Name        string          `json:"name"`
	Type        Type            `json:"type"`
	Breed       string          `json:"breed"`
	Age         ageDTO          `json:"age"`
	Size        Size            `json:"size"`
	Gender      Gender          `json:"gender"`
	Color       string          `json:"color,omitempty"`
	Description string          `json:"description"`
	Images      []imageDTO      `json:"images"`
	Location    locationDTO     `json:"location"`
	AdoptionFee float64         `json:"adoptionFee"`
	GoodWith    goodWithDTO     `json:"goodWith"`
	IsAvailable bool            `json:"isAvailable"`
	Views       int             `json:"views"`
	Saves       int             `json:"saves"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Por defecto solo disponibles. Los pedidos autenticados suman una vista a cada mascota devuelta.
// @Tags pets
// @Produce json
// @Param type query string false "dog|cat|bird|rabbit|other|all"
// @Param size query string false "small|medium|large|extra-large|all"
// @Param gender query string false "male|female|all"
// @Param age query string false "young|adult|senior|all"
// @Param breed query string false "Raza (substring)"
// @Param location query string false "Ciudad o estado (substring)"
// @Param shelter query string false "ID de refugio"
// @Param search query string false "Texto en nombre/raza/descripción"
// @Param available query string false "true|false|all (default true)"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 12)"
// @Param sortBy query string false "createdAt|name|age|views|saves|adoptionFee"
// @Param sortOrder query string false "asc|desc"
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := BuildFilter(q, log)
		_, authenticated := middleware.GetClaims(r.Context())

		res, err := svc.List(r.Context(), f, listing.ParseParams(q, Defaults), authenticated)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		out := make([]petResponse, 0, len(res.Items))
		for _, it := range res.Items {
			out = append(out, toPetResponse(it.Pet, it.Shelter))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"pets":       out,
			"pagination": res.Pagination,
			"filters":    f.Applied(),
		})
	}
}

// getPetHandler godoc
// @Summary Detalle de mascota
// @Tags pets
// @Produce json
// @Param petID path string true "Pet ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, authenticated := middleware.GetClaims(r.Context())
		it, err := svc.Get(r.Context(), chi.URLParam(r, "petID"), authenticated)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"pet": toPetResponse(it.Pet, it.Shelter)})
	}
}

// createPetHandler godoc
// @Summary Publicar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		var req petRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			apperr.WriteKind(w, apperr.KindValidation, "invalid json")
			return
		}

		p, err := svc.Create(r.Context(), claims, CreateInput{
			Name:        req.Name,
			Type:        Type(req.Type),
			Breed:       req.Breed,
			Age:         Age{Years: req.Age.Years, Months: req.Age.Months},
			Size:        Size(req.Size),
			Gender:      Gender(req.Gender),
			Color:       req.Color,
			Description: req.Description,
			Images:      fromImageDTOs(req.Images),
			Location:    Location{City: req.Location.City, State: req.Location.State, ZipCode: req.Location.ZipCode},
			AdoptionFee: req.AdoptionFee,
			GoodWith:    GoodWith{Children: req.GoodWith.Children, Dogs: req.GoodWith.Dogs, Cats: req.GoodWith.Cats},
		})
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"pet": toPetResponse(p, nil)})
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		var req updatePetRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			apperr.WriteKind(w, apperr.KindValidation, "invalid json")
			return
		}

		in := UpdateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Color:       req.Color,
			Description: req.Description,
			AdoptionFee: req.AdoptionFee,
			IsAvailable: req.IsAvailable,
		}
		if req.Type != nil {
			t := Type(*req.Type)
			in.Type = &t
		}
		if req.Size != nil {
			s := Size(*req.Size)
			in.Size = &s
		}
		if req.Gender != nil {
			g := Gender(*req.Gender)
			in.Gender = &g
		}
		if req.Age != nil {
			in.Age = &Age{Years: req.Age.Years, Months: req.Age.Months}
		}
		if req.Images != nil {
			imgs := fromImageDTOs(*req.Images)
			in.Images = &imgs
		}
		if req.Location != nil {
			in.Location = &Location{City: req.Location.City, State: req.Location.State, ZipCode: req.Location.ZipCode}
		}
		if req.GoodWith != nil {
			in.GoodWith = &GoodWith{Children: req.GoodWith.Children, Dogs: req.GoodWith.Dogs, Cats: req.GoodWith.Cats}
		}

		p, err := svc.Update(r.Context(), claims, chi.URLParam(r, "petID"), in)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"pet": toPetResponse(p, nil)})
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}
		if err := svc.Delete(r.Context(), claims, chi.URLParam(r, "petID")); err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "pet deleted"})
	}
}

func similarPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Similar(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"pets": toPetResponses(items)})
	}
}

// listMyPetsHandler devuelve todas las mascotas del refugio del actor, incluidas las adoptadas.
func listMyPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}
		items, err := svc.ListByShelter(r.Context(), claims)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"pets": toPetResponses(items)})
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p, nil))
	}
	return out
}

func toPetResponse(p Pet, sh *shelters.Shelter) petResponse {
	imgs := make([]imageDTO, 0, len(p.Images))
	for _, img := range p.Images {
		imgs = append(imgs, imageDTO{URL: img.URL, Caption: img.Caption, IsPrimary: img.IsPrimary})
	}
	resp := petResponse{
		ID:          p.ID,
		ShelterID:   p.ShelterID,
		Name:        p.Name,
		Type:        p.Type,
		Breed:       p.Breed,
		Age:         ageDTO{Years: p.Age.Years, Months: p.Age.Months},
		Size:        p.Size,
		Gender:      p.Gender,
		Color:       p.Color,
		Description: p.Description,
		Images:      imgs,
		Location:    locationDTO{City: p.Location.City, State: p.Location.State, ZipCode: p.Location.ZipCode},
		AdoptionFee: p.AdoptionFee,
		GoodWith:    goodWithDTO{Children: p.GoodWith.Children, Dogs: p.GoodWith.Dogs, Cats: p.GoodWith.Cats},
		IsAvailable: p.IsAvailable,
		Views:       p.Views,
		Saves:       p.Saves,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if sh != nil {
		resp.Shelter = &shelterSummary{
			ID:       sh.ID,
			Name:     sh.Name,
			City:     sh.Address.City,
			State:    sh.Address.State,
			Email:    sh.Contact.Email,
			Phone:    sh.Contact.Phone,
			Verified: sh.IsVerified,
		}
	}
	return resp
}

func fromImageDTOs(in []imageDTO) []Image {
	out := make([]Image, 0, len(in))
	for _, img := range in {
		out = append(out, Image{URL: img.URL, Caption: img.Caption, IsPrimary: img.IsPrimary})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
