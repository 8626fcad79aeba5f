package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"pet-adoption-marketplace/internal/adapters/storage/cache"
	mem "pet-adoption-marketplace/internal/adapters/storage/memory"
	pg "pet-adoption-marketplace/internal/adapters/storage/postgres"
	"pet-adoption-marketplace/internal/config"
	_ "pet-adoption-marketplace/internal/docs"
	"pet-adoption-marketplace/internal/domain/applications"
	"pet-adoption-marketplace/internal/domain/appointments"
	"pet-adoption-marketplace/internal/domain/dashboard"
	"pet-adoption-marketplace/internal/domain/favorites"
	"pet-adoption-marketplace/internal/domain/pets"
	"pet-adoption-marketplace/internal/domain/providers"
	"pet-adoption-marketplace/internal/domain/shelters"
	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/logger"
	"pet-adoption-marketplace/internal/platform/metrics"
	"pet-adoption-marketplace/internal/ports/auth"
	"pet-adoption-marketplace/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Logger logger.Logger

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Notifier     notify.Notifier

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Registry nil => uno nuevo por router (tests paralelos sin colisiones).
	Registry *prometheus.Registry
}

// Router es el http.Handler de la API más lo que hay que cerrar al apagar.
type Router struct {
	http.Handler

	limiter      *middleware.RateLimiter
	applications *applications.Service
}

type repos struct {
	pets         pets.Repository
	favorites    favorites.Repository
	shelters     shelters.Repository
	providers    providers.Repository
	applications applications.Repository
	appointments appointments.Repository
}

func memoryRepos() repos {
	petRepo := mem.NewPetRepo()
	return repos{
		pets:         petRepo,
		favorites:    mem.NewFavoritesRepo(petRepo),
		shelters:     mem.NewShelterRepo(),
		providers:    mem.NewProviderRepo(),
		applications: mem.NewApplicationRepo(),
		appointments: mem.NewAppointmentRepo(),
	}
}

func postgresRepos(db *sql.DB) repos {
	return repos{
		pets:         pg.NewPetsRepo(db),
		favorites:    pg.NewFavoritesRepo(db),
		shelters:     pg.NewSheltersRepo(db),
		providers:    pg.NewProvidersRepo(db),
		applications: pg.NewApplicationsRepo(db),
		appointments: pg.NewAppointmentsRepo(db),
	}
}

func NewRouter(opts Options) *Router {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.FromEnv()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = discardNotifier{}
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	collector := metrics.NewCollector(reg)
	limiter := middleware.NewRateLimiter(
		middleware.PerMinute(cfg.RateLimitPerMin, cfg.RateLimitBurst, cfg.WriteRateLimitPerMin), log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(collector.Middleware)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/health/ready", readyHandler(opts.DB))
	r.Handle("/metrics", metrics.Handler(reg))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var rp repos
	if opts.DB != nil {
		rp = postgresRepos(opts.DB)
	} else {
		rp = memoryRepos()
	}

	// Lookups por id con LRU; las escrituras de shelters pasan por el mismo decorador.
	shelterRepo := cache.NewShelters(rp.shelters, cfg.LookupCacheSize, cfg.LookupCacheTTL, collector)
	providerRepo := cache.NewProviders(rp.providers, cfg.LookupCacheSize, cfg.LookupCacheTTL, collector)

	// Services por módulo
	sheltersSvc := shelters.NewService(shelterRepo)
	petsSvc := pets.NewService(rp.pets, sheltersSvc, log.With(map[string]any{"module": "pets"}))
	favoritesSvc := favorites.NewService(rp.favorites).WithMetrics(collector)
	providersSvc := providers.NewService(providerRepo)
	applicationsSvc := applications.NewService(rp.applications, petsSvc, sheltersSvc, notifier,
		log.With(map[string]any{"module": "applications"})).WithMetrics(collector)
	appointmentsSvc := appointments.NewService(rp.appointments, providersSvc,
		log.With(map[string]any{"module": "appointments"})).WithMetrics(collector)
	dashboardSvc := dashboard.NewService(favoritesSvc, applicationsSvc, appointmentsSvc)

	// Rutas por módulo
	r.Group(func(r chi.Router) {
		r.Use(limiter.General)

		pets.RegisterRoutes(r, petsSvc, log)
		favorites.RegisterRoutes(r, favoritesSvc, limiter.Writes)
		shelters.RegisterRoutes(r, sheltersSvc, petsSvc, log)
		applications.RegisterRoutes(r, applicationsSvc, limiter.Writes)
		providers.RegisterRoutes(r, providersSvc, log)
		appointments.RegisterRoutes(r, appointmentsSvc, limiter.Writes)
		dashboard.RegisterRoutes(r, dashboardSvc)
	})

	return &Router{Handler: r, limiter: limiter, applications: applicationsSvc}
}

// Shutdown frena el limiter y espera las notificaciones en vuelo.
// Va después de http.Server.Shutdown.
func (rt *Router) Shutdown() {
	rt.limiter.Stop()
	rt.applications.Wait()
}

func readyHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}

type discardNotifier struct{}

func (discardNotifier) Send(context.Context, string, string, map[string]any) error { return nil }
