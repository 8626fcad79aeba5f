package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DSN", "JWT_SECRET", "RATE_LIMIT_PER_MIN", "LOOKUP_CACHE_TTL", "DB_AUTO_MIGRATE"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DBDSN)
	assert.True(t, cfg.DBAutoMigrate)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
	assert.Equal(t, time.Minute, cfg.LookupCacheTTL)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MIN", "-3")
	t.Setenv("LOOKUP_CACHE_TTL", "soon")
	t.Setenv("DB_AUTO_MIGRATE", "nope")

	cfg := FromEnv()
	assert.Equal(t, 120, cfg.RateLimitPerMin)
	assert.Equal(t, time.Minute, cfg.LookupCacheTTL)
	assert.True(t, cfg.DBAutoMigrate)
}

func TestLoad_ReadsEnvFileWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MAIL_API_URL=http://mail.local\nPORT=9999\n"), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Setenv("PORT", "7000")
	t.Setenv("MAIL_API_URL", "")
	// godotenv no pisa variables existentes, aunque estén vacías: la quitamos.
	require.NoError(t, os.Unsetenv("MAIL_API_URL"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "http://mail.local", cfg.MailAPIURL)

	_ = os.Unsetenv("MAIL_API_URL")
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	_, err := Load()
	require.NoError(t, err)
}
