package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-adoption-marketplace/internal/adapters/auth/jwt"
	"pet-adoption-marketplace/internal/adapters/notify/lognotifier"
	"pet-adoption-marketplace/internal/adapters/notify/mailapi"
	pg "pet-adoption-marketplace/internal/adapters/storage/postgres"
	"pet-adoption-marketplace/internal/config"
	"pet-adoption-marketplace/internal/platform/logger"
	"pet-adoption-marketplace/internal/ports/auth"
	"pet-adoption-marketplace/internal/ports/notify"
	"pet-adoption-marketplace/internal/router"
)

// @title Pet Adoption Marketplace API
// @version 1.0
// @description Listado de mascotas, postulaciones de adopción, favoritos y turnos con proveedores.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(ctx, cfg.DBDSN, pg.DefaultPoolOptions())
		if err != nil {
			log.Error("database open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		if cfg.DBAutoMigrate {
			if err := pg.Migrate(cfg.DBDSN, log); err != nil {
				log.Error("migrations failed", map[string]any{"err": err.Error()})
				os.Exit(1)
			}
		}
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		verifier = jwt.NewVerifier(jwt.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, Leeway: 30 * time.Second})
	} else {
		log.Warn("JWT_SECRET not set, accepting X-Debug-User-* headers", nil)
	}

	var notifier notify.Notifier = lognotifier.New(log.With(map[string]any{"module": "notify"}))
	if cfg.MailAPIURL != "" {
		mail, err := mailapi.New(mailapi.Config{BaseURL: cfg.MailAPIURL, APIKey: cfg.MailAPIKey, From: cfg.MailFrom})
		if err != nil {
			log.Error("mail api config invalid", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		notifier = mail
	}

	r := router.NewRouter(router.Options{
		Config:       cfg,
		Logger:       log,
		AuthVerifier: verifier,
		Notifier:     notifier,
		DB:           db,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"err": err.Error()})
		}
	case <-ctx.Done():
		log.Info("shutting down", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]any{"err": err.Error()})
	}
	r.Shutdown()
}
