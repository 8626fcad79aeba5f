package postgres

import (
	"fmt"
	"strings"
)

// where junta condiciones con AND y numera los args $n en orden de llegada.
type where struct {
	conds []string
	args  []any
}

// arg registra v y devuelve su placeholder.
func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) add(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// placeholders arma "$1,$2,..." para un IN.
func (w *where) in(values []string) string {
	ph := make([]string, 0, len(values))
	for _, v := range values {
		ph = append(ph, w.arg(v))
	}
	return strings.Join(ph, ",")
}

// likePattern escapa comodines de ILIKE y envuelve en %...%.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// orderBy traduce el sortBy de la API a una columna whitelisteada; id desempata.
func orderBy(columns map[string]string, sortBy, fallback string, desc bool) string {
	col, ok := columns[sortBy]
	if !ok {
		col = columns[fallback]
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}
