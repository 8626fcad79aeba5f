package providers

import "time"

// ServiceType es la categoría del proveedor.
// @Enum veterinary, grooming, training, boarding, walking, sitting
type ServiceType string

const (
	ServiceVeterinary ServiceType = "veterinary"
	ServiceGrooming   ServiceType = "grooming"
	ServiceTraining   ServiceType = "training"
	ServiceBoarding   ServiceType = "boarding"
	ServiceWalking    ServiceType = "walking"
	ServiceSitting    ServiceType = "sitting"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceVeterinary, ServiceGrooming, ServiceTraining, ServiceBoarding, ServiceWalking, ServiceSitting:
		return true
	}
	return false
}

type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

type Contact struct {
	Phone   string
	Email   string
	Website string
}

// Price.Unit: "per visit", "per hour", "per night"...
type Price struct {
	Amount float64
	Unit   string
}

// Offering es un servicio del catálogo del proveedor. Duration en minutos.
type Offering struct {
	Name        string
	Description string
	Price       Price
	Duration    int
}

type Rating struct {
	Average float64
	Count   int
}

type Provider struct {
	ID          string
	OwnerUserID string
	Name        string
	ServiceType ServiceType
	Description string
	Address     Address
	Contact     Contact
	Services    []Offering
	Rating      Rating
	IsVerified  bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Offering busca un servicio del catálogo por nombre (case-insensitive).
func (p Provider) Offering(name string) (Offering, bool) {
	for _, o := range p.Services {
		if equalFold(o.Name, name) {
			return o, true
		}
	}
	return Offering{}, false
}
