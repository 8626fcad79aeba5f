package applications

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

// RegisterRoutes registra /applications. limit aplica el presupuesto de escrituras a submit.
func RegisterRoutes(r chi.Router, svc *Service, limit func(http.Handler) http.Handler) {
	r.Route("/applications", func(ar chi.Router) {
		ar.With(limit).Post("/", submitHandler(svc))
		ar.Get("/", listMineHandler(svc))
		ar.Get("/received", listReceivedHandler(svc))
		ar.Get("/{applicationID}", getHandler(svc))
		ar.Put("/{applicationID}/status", transitionHandler(svc))
		ar.Post("/{applicationID}/notes", addNoteHandler(svc))
		ar.Delete("/{applicationID}", withdrawHandler(svc))
	})
}

type personalInfoDTO struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
}

type housingDTO struct {
	Type               string `json:"type"`
	Ownership          string `json:"ownership"`
	LandlordPermission bool   `json:"landlordPermission"`
	HasYard            bool   `json:"hasYard"`
	YardFenced         bool   `json:"yardFenced"`
}

type petExperienceDTO struct {
	HasPets      bool   `json:"hasPets"`
	CurrentPets  string `json:"currentPets,omitempty"`
	PreviousPets string `json:"previousPets,omitempty"`
	Experience   string `json:"experience,omitempty"`
}

type lifestyleDTO struct {
	ActivityLevel   string `json:"activityLevel,omitempty"`
	HoursAlone      int    `json:"hoursAlone"`
	TravelFrequency string `json:"travelFrequency,omitempty"`
}

type emergencyPlanDTO struct {
	Caretaker string `json:"caretaker,omitempty"`
	Plan      string `json:"plan,omitempty"`
}

type questionnaireDTO struct {
	PersonalInfo  personalInfoDTO  `json:"personalInfo"`
	Housing       housingDTO       `json:"housing"`
	PetExperience petExperienceDTO `json:"petExperience"`
	Lifestyle     lifestyleDTO     `json:"lifestyle"`
	EmergencyPlan emergencyPlanDTO `json:"emergencyPlan"`
}

type submitRequest struct {
	PetID           string           `json:"petId"`
	ApplicationData questionnaireDTO `json:"applicationData"`
}

type transitionRequest struct {
	Status          string `json:"status"`
	Notes           string `json:"notes"`
	RejectionReason string `json:"rejectionReason"`
}

type noteRequest struct {
	Message    string `json:"message"`
	IsInternal bool   `json:"isInternal"`
}

type noteResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	Message    string    `json:"message"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}

type timelineResponse struct {
	SubmittedAt time.Time  `json:"submittedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	WithdrawnAt *time.Time `json:"withdrawnAt,omitempty"`
}

type applicationResponse struct {
	ID              string           `json:"id"`
	PetID           string           `json:"petId"`
	ShelterID       string           `json:"shelterId"`
	ApplicantID     string           `json:"applicantId"`
	Status          Status           `json:"status"`
	ApplicationData questionnaireDTO `json:"applicationData"`
	Notes           []noteResponse   `json:"notes"`
	Timeline        timelineResponse `json:"timeline"`
	RejectionReason string           `json:"rejectionReason,omitempty"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// submitHandler godoc
// @Summary Postularse para adoptar una mascota
// @Tags applications
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string "VALIDATION_ERROR, DUPLICATE_APPLICATION o UNAVAILABLE"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /applications [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		var req submitRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			apperr.WriteKind(w, apperr.KindValidation, "invalid json")
			return
		}
		if strings.TrimSpace(req.PetID) == "" {
			apperr.WriteKind(w, apperr.KindValidation, "petId is required")
			return
		}

		a, err := svc.Submit(r.Context(), claims, req.PetID, fromQuestionnaireDTO(req.ApplicationData))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":     "application submitted",
			"application": toApplicationResponse(a),
		})
	}
}

// listMineHandler godoc
// @Summary Mis postulaciones
// @Tags applications
// @Produce json
// @Param status query string false "Filtro de estado"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 10)"
// @Success 200 {object} map[string]any
// @Router /applications [get]
func listMineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}
		q := r.URL.Query()
		page, err := svc.ListMine(r.Context(), claims, statusFilter(q.Get("status")), listing.ParseParams(q, Defaults))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writePage(w, page)
	}
}

func listReceivedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}
		q := r.URL.Query()
		page, err := svc.ListReceived(r.Context(), claims, statusFilter(q.Get("status")), listing.ParseParams(q, Defaults))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writePage(w, page)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}
		a, err := svc.Get(r.Context(), claims, chi.URLParam(r, "applicationID"))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"application": toApplicationResponse(a)})
	}
}

// transitionHandler godoc
// @Summary Cambiar estado de una postulación (refugio)
// @Tags applications
// @Accept json
// @Produce json
// @Param applicationID path string true "Application ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string "INVALID_TRANSITION o VALIDATION_ERROR"
// @Failure 403 {object} map[string]string
// @Router /applications/{applicationID}/status [put]
func transitionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		var req transitionRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			apperr.WriteKind(w, apperr.KindValidation, "invalid json")
			return
		}

		a, err := svc.Transition(r.Context(), claims, chi.URLParam(r, "applicationID"), TransitionInput{
			Status:          req.Status,
			Notes:           req.Notes,
			RejectionReason: req.RejectionReason,
		})
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"application": toApplicationResponse(a)})
	}
}

func addNoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}

		var req noteRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			apperr.WriteKind(w, apperr.KindValidation, "invalid json")
			return
		}

		n, err := svc.AddNote(r.Context(), claims, chi.URLParam(r, "applicationID"), req.Message, req.IsInternal)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"note": toNoteResponse(n)})
	}
}

func withdrawHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			apperr.Unauthenticated(w)
			return
		}
		a, err := svc.Withdraw(r.Context(), claims, chi.URLParam(r, "applicationID"))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":     "application withdrawn",
			"application": toApplicationResponse(a),
		})
	}
}

// statusFilter ignora valores desconocidos (sin filtro).
func statusFilter(v string) Status {
	s := Status(strings.TrimSpace(v))
	if !s.Valid() {
		return ""
	}
	return s
}

func writePage(w http.ResponseWriter, page Page) {
	out := make([]applicationResponse, 0, len(page.Items))
	for _, a := range page.Items {
		out = append(out, toApplicationResponse(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"applications": out,
		"pagination":   page.Pagination,
	})
}

func toApplicationResponse(a Application) applicationResponse {
	notes := make([]noteResponse, 0, len(a.Notes))
	for _, n := range a.Notes {
		notes = append(notes, toNoteResponse(n))
	}
	q := a.Questionnaire
	return applicationResponse{
		ID:          a.ID,
		PetID:       a.PetID,
		ShelterID:   a.ShelterID,
		ApplicantID: a.ApplicantID,
		Status:      a.Status,
		ApplicationData: questionnaireDTO{
			PersonalInfo: personalInfoDTO{
				FirstName:   q.PersonalInfo.FirstName,
				LastName:    q.PersonalInfo.LastName,
				Email:       q.PersonalInfo.Email,
				Phone:       q.PersonalInfo.Phone,
				DateOfBirth: q.PersonalInfo.DateOfBirth,
				Occupation:  q.PersonalInfo.Occupation,
			},
			Housing: housingDTO{
				Type:               string(q.Housing.Type),
				Ownership:          string(q.Housing.Ownership),
				LandlordPermission: q.Housing.LandlordPermission,
				HasYard:            q.Housing.HasYard,
				YardFenced:         q.Housing.YardFenced,
			},
			PetExperience: petExperienceDTO{
				HasPets:      q.PetExperience.HasPets,
				CurrentPets:  q.PetExperience.CurrentPets,
				PreviousPets: q.PetExperience.PreviousPets,
				Experience:   q.PetExperience.Experience,
			},
			Lifestyle: lifestyleDTO{
				ActivityLevel:   q.Lifestyle.ActivityLevel,
				HoursAlone:      q.Lifestyle.HoursAlone,
				TravelFrequency: q.Lifestyle.TravelFrequency,
			},
			EmergencyPlan: emergencyPlanDTO{Caretaker: q.EmergencyPlan.Caretaker, Plan: q.EmergencyPlan.Plan},
		},
		Notes: notes,
		Timeline: timelineResponse{
			SubmittedAt: a.Timeline.SubmittedAt,
			ReviewedAt:  a.Timeline.ReviewedAt,
			ApprovedAt:  a.Timeline.ApprovedAt,
			RejectedAt:  a.Timeline.RejectedAt,
			CompletedAt: a.Timeline.CompletedAt,
			WithdrawnAt: a.Timeline.WithdrawnAt,
		},
		RejectionReason: a.RejectionReason,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toNoteResponse(n Note) noteResponse {
	return noteResponse{ID: n.ID, AuthorID: n.AuthorID, Message: n.Message, IsInternal: n.IsInternal, CreatedAt: n.CreatedAt}
}

func fromQuestionnaireDTO(d questionnaireDTO) Questionnaire {
	return Questionnaire{
		PersonalInfo: PersonalInfo{
			FirstName:   d.PersonalInfo.FirstName,
			LastName:    d.PersonalInfo.LastName,
			Email:       d.PersonalInfo.Email,
			Phone:       d.PersonalInfo.Phone,
			DateOfBirth: d.PersonalInfo.DateOfBirth,
			Occupation:  d.PersonalInfo.Occupation,
		},
		Housing: Housing{
			Type:               HousingType(d.Housing.Type),
			Ownership:          Ownership(d.Housing.Ownership),
			LandlordPermission: d.Housing.LandlordPermission,
			HasYard:            d.Housing.HasYard,
			YardFenced:         d.Housing.YardFenced,
		},
		PetExperience: PetExperience{
			HasPets:      d.PetExperience.HasPets,
			CurrentPets:  d.PetExperience.CurrentPets,
			PreviousPets: d.PetExperience.PreviousPets,
			Experience:   d.PetExperience.Experience,
		},
		Lifestyle: Lifestyle{
			ActivityLevel:   d.Lifestyle.ActivityLevel,
			HoursAlone:      d.Lifestyle.HoursAlone,
			TravelFrequency: d.Lifestyle.TravelFrequency,
		},
		EmergencyPlan: EmergencyPlan{Caretaker: d.EmergencyPlan.Caretaker, Plan: d.EmergencyPlan.Plan},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
