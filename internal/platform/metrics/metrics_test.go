package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_DomainCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ApplicationSubmitted()
	c.ApplicationTransitioned("approved")
	c.SlotBooked()
	c.SlotConflict()
	c.SlotConflict()
	c.FavoriteToggled(true)
	c.CacheLookup("shelters", false)
	c.NotificationSent("new-application", errors.New("smtp down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.applicationsSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.applicationTransitions.WithLabelValues("approved")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.bookings.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.favoriteToggles.WithLabelValues("saved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("shelters", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.notifications.WithLabelValues("new-application", "error")))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/pets/{petID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", Handler(reg))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pets/abc", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/pets/{petID}", "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "adoption_http_requests_total"))
}
