package providers

import (
	"net/url"
	"strings"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/platform/logger"
)

var Defaults = listing.Defaults{
	Limit:    10,
	SortBy:   "rating",
	SortDesc: true,
	Sortable: []string{"rating", "name", "createdAt"},
}

// Filter del directorio de proveedores. Solo lista activos.
type Filter struct {
	ServiceType ServiceType
	City        string
	State       string
	Search      string
}

// BuildFilter ignora keys y valores desconocidos (log en debug).
func BuildFilter(q url.Values, log logger.Logger) Filter {
	var f Filter
	for key, values := range q {
		v := ""
		if len(values) > 0 {
			v = strings.TrimSpace(values[0])
		}
		if v == "" {
			continue
		}
		switch key {
		case "serviceType":
			t := ServiceType(strings.ToLower(v))
			switch {
			case t.Valid():
				f.ServiceType = t
			case t == "all":
			default:
				if log != nil {
					log.Debug("ignoring unknown service type", map[string]any{"value": v})
				}
			}
		case "city":
			f.City = v
		case "state":
			f.State = v
		case "search":
			f.Search = v
		default:
			if !listing.IsReserved(key) && log != nil {
				log.Debug("ignoring unknown provider filter", map[string]any{"key": key})
			}
		}
	}
	return f
}

func (f Filter) Matches(p Provider) bool {
	if !p.IsActive {
		return false
	}
	if f.ServiceType != "" && p.ServiceType != f.ServiceType {
		return false
	}
	if f.City != "" && !containsFold(p.Address.City, f.City) {
		return false
	}
	if f.State != "" && !containsFold(p.Address.State, f.State) {
		return false
	}
	if f.Search != "" && !f.matchesSearch(p) {
		return false
	}
	return true
}

func (f Filter) matchesSearch(p Provider) bool {
	if containsFold(p.Name, f.Search) || containsFold(p.Description, f.Search) {
		return true
	}
	for _, o := range p.Services {
		if containsFold(o.Name, f.Search) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
