package pets

import "time"

// Type es la especie publicada.
// @Enum dog, cat, bird, rabbit, other
type Type string

const (
	TypeDog    Type = "dog"
	TypeCat    Type = "cat"
	TypeBird   Type = "bird"
	TypeRabbit Type = "rabbit"
	TypeOther  Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeDog, TypeCat, TypeBird, TypeRabbit, TypeOther:
		return true
	}
	return false
}

// Size define el tamaño de la mascota.
// @Enum small, medium, large, extra-large
type Size string

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeExtraLarge Size = "extra-large"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

// Gender define el sexo de la mascota.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

const (
	MaxAgeYears  = 30
	MaxAgeMonths = 11
)

type Age struct {
	Years  int
	Months int
}

type Image struct {
	URL       string
	Caption   string
	IsPrimary bool
}

type Location struct {
	City    string
	State   string
	ZipCode string
}

type GoodWith struct {
	Children bool
	Dogs     bool
	Cats     bool
}

// Pet es una mascota publicada por un refugio.
// IsAvailable pasa a false cuando una postulación llega a completed (o el refugio la edita).
type Pet struct {
	ID        string
	ShelterID string

	Name        string
	Type        Type
	Breed       string
	Age         Age
	Size        Size
	Gender      Gender
	Color       string
	Description string

	Images   []Image
	Location Location

	AdoptionFee float64
	GoodWith    GoodWith

	IsAvailable bool
	Views       int
	Saves       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrimaryImage devuelve la URL de la imagen principal ("" si no hay imágenes).
func (p Pet) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}
