package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8090", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.NotEmpty(t, cfg.StoragePath)
}

func TestFromEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STOREFRONT_API_URL", "http://backend:5000/api")
	t.Setenv("STOREFRONT_STORAGE", "memory")
	t.Setenv("STOREFRONT_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("STOREFRONT_CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:5000/api", cfg.APIBaseURL)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
