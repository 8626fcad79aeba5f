package shelters

import "time"

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

// Shelter es un refugio. Cada usuario con rol shelter administra a lo sumo uno.
type Shelter struct {
	ID          string
	OwnerUserID string

	Name        string
	Description string
	Address     Address
	Contact     Contact
	IsVerified  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PetSummary es la vista reducida de una mascota que se muestra en el detalle del refugio.
// La define este paquete para que pets dependa de shelters y no al revés.
type PetSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Breed        string `json:"breed"`
	PrimaryImage string `json:"primaryImage,omitempty"`
}
