package pets

import (
	"net/url"
	"strconv"
	"strings"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/platform/logger"
)

var Defaults = listing.Defaults{
	Limit:    12,
	SortBy:   "createdAt",
	SortDesc: true,
	Sortable: []string{"createdAt", "name", "age", "views", "saves", "adoptionFee"},
}

// AgeBracket agrupa edades para el filtro. young y adult se solapan en 2 años / 0-6 meses.
type AgeBracket string

const (
	AgeYoung  AgeBracket = "young"
	AgeAdult  AgeBracket = "adult"
	AgeSenior AgeBracket = "senior"
)

// all desactiva un filtro de enum o de disponibilidad.
const all = "all"

// Filter es el predicado del listado de mascotas. Zero value = todo.
// Available nil = sin restricción de disponibilidad.
type Filter struct {
	Available *bool
	Type      Type
	Size      Size
	Gender    Gender
	Age       AgeBracket
	Breed     string
	ShelterID string
	Location  string
	Search    string
}

// BuildFilter arma el predicado desde el query string.
// Por defecto solo disponibles; available=all lo desactiva. Valores inválidos y keys
// desconocidas se ignoran (con log en debug).
func BuildFilter(q url.Values, log logger.Logger) Filter {
	available := true
	f := Filter{Available: &available}

	ignore := func(key, value string) {
		if log != nil {
			log.Debug("ignoring pet filter", map[string]any{"key": key, "value": value})
		}
	}

	for key, values := range q {
		v := ""
		if len(values) > 0 {
			v = strings.TrimSpace(values[0])
		}
		if v == "" {
			continue
		}
		lower := strings.ToLower(v)

		switch key {
		case "available":
			switch lower {
			case all:
				f.Available = nil
			case "false":
				available = false
			case "true":
			default:
				ignore(key, v)
			}
		case "type":
			if t := Type(lower); t.Valid() {
				f.Type = t
			} else if lower != all {
				ignore(key, v)
			}
		case "size":
			if s := Size(lower); s.Valid() {
				f.Size = s
			} else if lower != all {
				ignore(key, v)
			}
		case "gender":
			if g := Gender(lower); g.Valid() {
				f.Gender = g
			} else if lower != all {
				ignore(key, v)
			}
		case "age":
			switch AgeBracket(lower) {
			case AgeYoung, AgeAdult, AgeSenior:
				f.Age = AgeBracket(lower)
			default:
				if lower != all {
					ignore(key, v)
				}
			}
		case "breed":
			f.Breed = v
		case "shelter":
			f.ShelterID = v
		case "location":
			f.Location = v
		case "search":
			f.Search = v
		default:
			if !listing.IsReserved(key) {
				ignore(key, v)
			}
		}
	}
	return f
}

// Matches evalúa el predicado en memoria. El adapter postgres traduce los mismos criterios a SQL.
func (f Filter) Matches(p Pet) bool {
	if f.Available != nil && p.IsAvailable != *f.Available {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Size != "" && p.Size != f.Size {
		return false
	}
	if f.Gender != "" && p.Gender != f.Gender {
		return false
	}
	if f.ShelterID != "" && p.ShelterID != f.ShelterID {
		return false
	}
	if f.Breed != "" && !containsFold(p.Breed, f.Breed) {
		return false
	}
	if f.Age != "" && !f.Age.Contains(p.Age) {
		return false
	}
	if f.Location != "" && !containsFold(p.Location.City, f.Location) && !containsFold(p.Location.State, f.Location) {
		return false
	}
	if f.Search != "" &&
		!containsFold(p.Name, f.Search) && !containsFold(p.Breed, f.Search) && !containsFold(p.Description, f.Search) {
		return false
	}
	return true
}

// Contains dice si la edad cae en el bracket.
func (b AgeBracket) Contains(a Age) bool {
	switch b {
	case AgeYoung:
		return a.Years <= 1 || (a.Years == 2 && a.Months <= 6)
	case AgeAdult:
		return a.Years >= 2 && a.Years <= 7
	case AgeSenior:
		return a.Years > 7
	}
	return true
}

// Applied es el eco de los filtros activos que acompaña la respuesta del listado.
func (f Filter) Applied() map[string]string {
	out := map[string]string{}
	set := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	set("type", string(f.Type))
	set("size", string(f.Size))
	set("gender", string(f.Gender))
	set("age", string(f.Age))
	set("breed", f.Breed)
	set("shelter", f.ShelterID)
	set("location", f.Location)
	set("search", f.Search)
	if f.Available == nil {
		out["available"] = all
	} else {
		out["available"] = strconv.FormatBool(*f.Available)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
