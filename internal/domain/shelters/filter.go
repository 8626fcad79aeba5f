package shelters

import (
	"net/url"
	"strings"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/platform/logger"
)

var Defaults = listing.Defaults{
	Limit:    10,
	SortBy:   "createdAt",
	SortDesc: true,
	Sortable: []string{"createdAt", "name"},
}

// Filter es el predicado del listado de refugios. Todos los campos son opcionales.
type Filter struct {
	City   string
	State  string
	Search string
}

// BuildFilter arma el predicado desde el query string; keys desconocidas se loguean y se ignoran.
func BuildFilter(q url.Values, log logger.Logger) Filter {
	var f Filter
	for key, values := range q {
		v := ""
		if len(values) > 0 {
			v = strings.TrimSpace(values[0])
		}
		switch key {
		case "city":
			f.City = v
		case "state":
			f.State = v
		case "search":
			f.Search = v
		default:
			if !listing.IsReserved(key) && log != nil {
				log.Debug("ignoring unknown shelter filter", map[string]any{"key": key})
			}
		}
	}
	return f
}

func (f Filter) Matches(s Shelter) bool {
	if f.City != "" && !containsFold(s.Address.City, f.City) {
		return false
	}
	if f.State != "" && !containsFold(s.Address.State, f.State) {
		return false
	}
	if f.Search != "" && !containsFold(s.Name, f.Search) && !containsFold(s.Description, f.Search) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
