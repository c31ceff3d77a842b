package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, 200*time.Millisecond, cfg.Batch.SettleDelay)
	assert.Equal(t, 800*time.Millisecond, cfg.Batch.ThrottleDelay)
	assert.Equal(t, 2, cfg.Export.Scale)
	assert.Equal(t, 12, cfg.Export.Padding)
	assert.Equal(t, 100.0, cfg.Batch.RateMin)
	assert.Equal(t, "Asia/Kolkata", cfg.Batch.Location.String())
	assert.False(t, cfg.Invoice.RenumberOnDelete)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("JWT_ACCESS_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("BATCH_SETTLE_DELAY", "50ms")
	t.Setenv("BATCH_RATE_MIN", "95.5")
	t.Setenv("BATCH_RATE_MAX", "99")
	t.Setenv("INVOICE_RENUMBER_ON_DELETE", "true")
	t.Setenv("BATCH_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 50*time.Millisecond, cfg.Batch.SettleDelay)
	assert.Equal(t, 95.5, cfg.Batch.RateMin)
	assert.True(t, cfg.Invoice.RenumberOnDelete)
	assert.Equal(t, time.UTC, cfg.Batch.Location)
}

func TestLoadRejectsBadBounds(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BATCH_RATE_MIN", "110")
	t.Setenv("BATCH_RATE_MAX", "100")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadScale(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EXPORT_SCALE", "-1")

	_, err := Load()
	assert.Error(t, err)
}

// chdir switches the working directory for the duration of the test,
// restoring the original on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
