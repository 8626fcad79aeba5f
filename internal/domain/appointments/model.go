package appointments

import "time"

// Status de un turno.
// @Enum scheduled, confirmed, in-progress, completed, cancelled, no-show
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no-show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// HoldsSlot: solo scheduled y confirmed ocupan (provider, date, time).
func (s Status) HoldsSlot() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

const (
	DefaultDuration = 60
	MaxDuration     = 480
	DefaultCurrency = "USD"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Price struct {
	Amount   float64
	Currency string
}

type BookedService struct {
	Name  string
	Type  string
	Price Price
}

type PetInfo struct {
	Name         string
	Type         string
	Breed        string
	Age          string
	Weight       float64
	SpecialNeeds string
}

type Notes struct {
	UserNotes     string
	ProviderNotes string
}

type Cancellation struct {
	CancelledBy string
	Reason      string
	CancelledAt time.Time
}

// Appointment: Date y Time son texto (YYYY-MM-DD, HH:MM) en la zona del proveedor.
type Appointment struct {
	ID         string
	UserID     string
	ProviderID string

	Service  BookedService
	PetInfo  PetInfo
	Date     string
	Time     string
	Duration int

	Status       Status
	Notes        Notes
	Cancellation *Cancellation

	CreatedAt time.Time
	UpdatedAt time.Time
}
