package applications

import "time"

// Status del ciclo de vida de una postulación.
// @Enum pending, under-review, approved, rejected, completed, withdrawn
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under-review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusCompleted   Status = "completed"
	StatusWithdrawn   Status = "withdrawn"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusCompleted, StatusWithdrawn:
		return true
	}
	return false
}

// Active: estados que bloquean una segunda postulación del mismo usuario a la misma mascota.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusUnderReview || s == StatusApproved
}

var ActiveStatuses = []Status{StatusPending, StatusUnderReview, StatusApproved}

type HousingType string

const (
	HousingHouse     HousingType = "house"
	HousingApartment HousingType = "apartment"
	HousingCondo     HousingType = "condo"
	HousingTownhouse HousingType = "townhouse"
	HousingOther     HousingType = "other"
)

func (h HousingType) Valid() bool {
	switch h {
	case HousingHouse, HousingApartment, HousingCondo, HousingTownhouse, HousingOther:
		return true
	}
	return false
}

type Ownership string

const (
	OwnershipOwn  Ownership = "own"
	OwnershipRent Ownership = "rent"
)

func (o Ownership) Valid() bool {
	return o == OwnershipOwn || o == OwnershipRent
}

type PersonalInfo struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth string
	Occupation  string
}

type Housing struct {
	Type               HousingType
	Ownership          Ownership
	LandlordPermission bool
	HasYard            bool
	YardFenced         bool
}

type PetExperience struct {
	HasPets      bool
	CurrentPets  string
	PreviousPets string
	Experience   string
}

type Lifestyle struct {
	ActivityLevel   string
	HoursAlone      int
	TravelFrequency string
}

type EmergencyPlan struct {
	Caretaker string
	Plan      string
}

// Questionnaire son las respuestas del adoptante.
type Questionnaire struct {
	PersonalInfo  PersonalInfo
	Housing       Housing
	PetExperience PetExperience
	Lifestyle     Lifestyle
	EmergencyPlan EmergencyPlan
}

// Note es append-only. Las internas solo las ve el refugio.
type Note struct {
	ID         string
	AuthorID   string
	Message    string
	IsInternal bool
	CreatedAt  time.Time
}

type Timeline struct {
	SubmittedAt time.Time
	ReviewedAt  *time.Time
	ApprovedAt  *time.Time
	RejectedAt  *time.Time
	CompletedAt *time.Time
	WithdrawnAt *time.Time
}

type Application struct {
	ID             string
	PetID          string
	ShelterID      string
	ApplicantID    string
	ApplicantEmail string

	Status          Status
	Questionnaire   Questionnaire
	Notes           []Note
	Timeline        Timeline
	RejectionReason string

	UpdatedAt time.Time
}

// visibleTo quita las notas internas cuando quien mira no es el refugio.
func (a Application) visibleTo(shelterView bool) Application {
	if shelterView {
		return a
	}
	notes := make([]Note, 0, len(a.Notes))
	for _, n := range a.Notes {
		if !n.IsInternal {
			notes = append(notes, n)
		}
	}
	a.Notes = notes
	return a
}
