// Package listing tiene las piezas comunes de los listados paginados:
// parseo de page/limit/sortBy/sortOrder y la metadata de paginación.
package listing

import (
	"net/url"
	"strconv"
	"strings"
)

const MaxLimit = 100

// Keys reservadas por paginación/orden. Los filter builders no las tratan como desconocidas.
var reservedKeys = map[string]struct{}{
	"page":      {},
	"limit":     {},
	"sortBy":    {},
	"sortOrder": {},
}

func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// Defaults por recurso.
type Defaults struct {
	Limit    int
	SortBy   string
	SortDesc bool
	// Sortable son los sortBy aceptados; cualquier otro cae al default.
	Sortable []string
}

type Params struct {
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseParams nunca falla: valores inválidos caen a defaults.
func ParseParams(q url.Values, d Defaults) Params {
	p := Params{
		Page:     1,
		Limit:    d.Limit,
		SortBy:   d.SortBy,
		SortDesc: d.SortDesc,
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}

	if n, err := strconv.Atoi(strings.TrimSpace(q.Get("page"))); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get("limit"))); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if s := strings.TrimSpace(q.Get("sortBy")); s != "" {
		for _, allowed := range d.Sortable {
			if s == allowed {
				p.SortBy = s
				break
			}
		}
	}
	switch strings.ToLower(strings.TrimSpace(q.Get("sortOrder"))) {
	case "asc":
		p.SortDesc = false
	case "desc":
		p.SortDesc = true
	}

	return p
}

// Pagination es la metadata que acompaña cada página.
type Pagination struct {
	Current int  `json:"current"`
	Pages   int  `json:"pages"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

func NewPagination(p Params, total int) Pagination {
	limit := p.Limit
	if limit <= 0 {
		limit = 1
	}
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		Current: p.Page,
		Pages:   pages,
		Total:   total,
		HasNext: p.Page*limit < total,
		HasPrev: p.Page > 1,
	}
}

// Window devuelve los índices [start, end) de la página dentro de n elementos.
// Lo usan los adapters in-memory.
func Window(p Params, n int) (int, int) {
	start := p.Offset()
	if start >= n {
		return n, n
	}
	end := start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}
