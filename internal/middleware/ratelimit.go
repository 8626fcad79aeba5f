package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"pet-adoption-marketplace/internal/platform/apperr"
	"pet-adoption-marketplace/internal/platform/logger"

	"golang.org/x/time/rate"
)

// RateLimiterConfig define los dos presupuestos: general y de escrituras
// (postulaciones, turnos, favoritos).
type RateLimiterConfig struct {
	GeneralRate     rate.Limit
	GeneralBurst    int
	WriteRate       rate.Limit
	WriteBurst      int
	CleanupInterval time.Duration
}

// PerMinute arma una config a partir de req/min.
func PerMinute(general, generalBurst, writes int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(general) / 60.0),
		GeneralBurst:    generalBurst,
		WriteRate:       rate.Limit(float64(writes) / 60.0),
		WriteBurst:      writes,
		CleanupInterval: 5 * time.Minute,
	}
}

type keyedLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

type limiterSet struct {
	mu    sync.Mutex
	rate  rate.Limit
	burst int
	byKey map[string]*keyedLimiter
}

func newLimiterSet(r rate.Limit, burst int) *limiterSet {
	if burst <= 0 {
		burst = 1
	}
	return &limiterSet{rate: r, burst: burst, byKey: make(map[string]*keyedLimiter)}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	kl, ok := s.byKey[key]
	if !ok {
		kl = &keyedLimiter{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.byKey[key] = kl
	}
	kl.lastAccess = now
	return kl.limiter
}

func (s *limiterSet) sweep(now time.Time, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, kl := range s.byKey {
		if now.Sub(kl.lastAccess) > ttl {
			delete(s.byKey, k)
		}
	}
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byKey)
}

// RateLimiter limita por usuario autenticado o, si es anónimo, por IP.
type RateLimiter struct {
	config  RateLimiterConfig
	log     logger.Logger
	general *limiterSet
	writes  *limiterSet

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRateLimiter arranca la limpieza periódica; llamar Stop al apagar.
func NewRateLimiter(config RateLimiterConfig, log logger.Logger) *RateLimiter {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}
	rl := &RateLimiter{
		config:  config,
		log:     log,
		general: newLimiterSet(config.GeneralRate, config.GeneralBurst),
		writes:  newLimiterSet(config.WriteRate, config.WriteBurst),
		stopCh:  make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// General aplica a todas las rutas. Debe ir después de AuthContext.
func (rl *RateLimiter) General(next http.Handler) http.Handler {
	return rl.middleware(rl.general, rl.config.GeneralRate, "general")(next)
}

// Writes aplica a las escrituras más sensibles a abuso.
func (rl *RateLimiter) Writes(next http.Handler) http.Handler {
	return rl.middleware(rl.writes, rl.config.WriteRate, "writes")(next)
}

func (rl *RateLimiter) middleware(set *limiterSet, r rate.Limit, kind string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			key := clientKey(req)
			if !set.get(key, time.Now()).Allow() {
				rl.log.Warn("rate limit exceeded", map[string]any{
					"client":     key,
					"limit_type": kind,
				})
				writeRateLimited(w, r)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

// TrackedClients devuelve cuántas claves tiene cada presupuesto (tests y debug).
func (rl *RateLimiter) TrackedClients() (general, writes int) {
	return rl.general.size(), rl.writes.size()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			ttl := rl.config.CleanupInterval * 2
			rl.general.sweep(now, ttl)
			rl.writes.sweep(now, ttl)
		case <-rl.stopCh:
			return
		}
	}
}

func clientKey(r *http.Request) string {
	if c, ok := GetClaims(r.Context()); ok {
		return "user:" + c.UserID
	}
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	return "ip:" + strings.TrimSpace(host)
}

func writeRateLimited(w http.ResponseWriter, r rate.Limit) {
	retry := 1
	if r > 0 {
		retry = int(math.Ceil(1.0 / float64(r)))
	}
	if retry < 1 {
		retry = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retry))
	apperr.WriteKind(w, apperr.KindRateLimited, "too many requests, retry later")
}
