package applications

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []Status{
	StatusPending, StatusUnderReview, StatusApproved,
	StatusRejected, StatusCompleted, StatusWithdrawn,
}

func TestCanTransition_AllPairs(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusUnderReview}:   true,
		{StatusPending, StatusRejected}:      true,
		{StatusPending, StatusWithdrawn}:     true,
		{StatusUnderReview, StatusApproved}:  true,
		{StatusUnderReview, StatusRejected}:  true,
		{StatusUnderReview, StatusWithdrawn}: true,
		{StatusApproved, StatusCompleted}:    true,
		{StatusApproved, StatusRejected}:     true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]Status{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_TerminalStatesHaveNoExit(t *testing.T) {
	for _, from := range []Status{StatusRejected, StatusCompleted, StatusWithdrawn} {
		assert.Empty(t, validTransitions[from], string(from))
	}
}

func TestStatus_Active(t *testing.T) {
	for _, s := range allStatuses {
		want := s == StatusPending || s == StatusUnderReview || s == StatusApproved
		assert.Equal(t, want, s.Active(), string(s))
	}
}
