// Package metrics expone métricas Prometheus: HTTP y eventos de dominio
// (postulaciones, turnos, favoritos, cache de lookups, notificaciones).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implementa las interfaces de métricas que declaran los paquetes de dominio.
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	applicationsSubmitted  prometheus.Counter
	applicationTransitions *prometheus.CounterVec
	bookings               *prometheus.CounterVec
	favoriteToggles        *prometheus.CounterVec
	cacheLookups           *prometheus.CounterVec
	notifications          *prometheus.CounterVec
}

// NewCollector crea y registra las métricas en reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_http_requests_total",
			Help: "Requests HTTP por método, ruta y status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "adoption_http_request_duration_seconds",
			Help:    "Latencia de requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		applicationsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adoption_applications_submitted_total",
			Help: "Postulaciones creadas",
		}),
		applicationTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_application_transitions_total",
			Help: "Cambios de estado de postulaciones por estado destino",
		}, []string{"to"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_appointment_bookings_total",
			Help: "Reservas de turnos por resultado",
		}, []string{"result"}),
		favoriteToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_favorite_toggles_total",
			Help: "Toggles de favoritos por acción",
		}, []string{"action"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_lookup_cache_total",
			Help: "Lookups en cache LRU por cache y resultado",
		}, []string{"cache", "result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_notifications_total",
			Help: "Notificaciones enviadas por plantilla y resultado",
		}, []string{"template", "result"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.applicationsSubmitted,
		c.applicationTransitions,
		c.bookings,
		c.favoriteToggles,
		c.cacheLookups,
		c.notifications,
	)

	return c
}

func (c *Collector) ApplicationSubmitted() { c.applicationsSubmitted.Inc() }

func (c *Collector) ApplicationTransitioned(to string) {
	c.applicationTransitions.WithLabelValues(to).Inc()
}

func (c *Collector) SlotBooked() { c.bookings.WithLabelValues("booked").Inc() }

func (c *Collector) SlotConflict() { c.bookings.WithLabelValues("conflict").Inc() }

func (c *Collector) FavoriteToggled(saved bool) {
	action := "unsaved"
	if saved {
		action = "saved"
	}
	c.favoriteToggles.WithLabelValues(action).Inc()
}

func (c *Collector) CacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(cache, result).Inc()
}

func (c *Collector) NotificationSent(template string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.notifications.WithLabelValues(template, result).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware mide requests usando el patrón de ruta de chi (no el path crudo)
// para no explotar la cardinalidad con IDs.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		c.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler expone /metrics para scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
