// Package config carga la configuración del servicio desde variables de entorno.
// Si existe un archivo .env (o el indicado en ENV_FILE) se carga antes, sin pisar
// variables ya definidas en el entorno.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// DBDSN vacío => storage in-memory.
	DBDSN         string
	DBAutoMigrate bool

	// JWTSecret vacío => modo dev (headers X-Debug-*).
	JWTSecret string
	JWTIssuer string

	MailAPIURL string
	MailAPIKey string
	MailFrom   string

	RateLimitPerMin      int
	RateLimitBurst       int
	WriteRateLimitPerMin int

	LookupCacheSize int
	LookupCacheTTL  time.Duration

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	ShutdownTimeout  time.Duration
}

// Load lee .env (opcional) y luego el entorno.
func Load() (Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv no toca archivos; útil en tests.
func FromEnv() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),

		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer: strings.TrimSpace(os.Getenv("JWT_ISSUER")),

		MailAPIURL: strings.TrimSpace(os.Getenv("MAIL_API_URL")),
		MailAPIKey: strings.TrimSpace(os.Getenv("MAIL_API_KEY")),
		MailFrom:   getEnv("MAIL_FROM", "no-reply@pet-adoption.local"),

		RateLimitPerMin:      getEnvInt("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:       getEnvInt("RATE_LIMIT_BURST", 120),
		WriteRateLimitPerMin: getEnvInt("WRITE_RATE_LIMIT_PER_MIN", 20),

		LookupCacheSize: getEnvInt("LOOKUP_CACHE_SIZE", 256),
		LookupCacheTTL:  getEnvDuration("LOOKUP_CACHE_TTL", time.Minute),

		HTTPReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		HTTPWriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
