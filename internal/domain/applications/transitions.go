package applications

import "time"

// validTransitions es la única fuente de verdad de los movimientos permitidos.
// rejected, completed y withdrawn son terminales.
var validTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusUnderReview: true,
		StatusRejected:    true,
		StatusWithdrawn:   true,
	},
	StatusUnderReview: {
		StatusApproved:  true,
		StatusRejected:  true,
		StatusWithdrawn: true,
	},
	StatusApproved: {
		StatusCompleted: true,
		StatusRejected:  true,
	},
}

func CanTransition(from, to Status) bool {
	return validTransitions[from][to]
}

// stamp marca el timestamp asociado al estado destino.
func (t *Timeline) stamp(to Status, at time.Time) {
	switch to {
	case StatusUnderReview:
		t.ReviewedAt = &at
	case StatusApproved:
		t.ApprovedAt = &at
	case StatusRejected:
		t.RejectedAt = &at
	case StatusCompleted:
		t.CompletedAt = &at
	case StatusWithdrawn:
		t.WithdrawnAt = &at
	}
}
