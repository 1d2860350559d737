package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOCCHAT_API_URL", "")
	t.Setenv("DOCCHAT_TOP_K", "")
	t.Setenv("DOCCHAT_HTTP_TIMEOUT", "")
	t.Setenv("DOCCHAT_DEBUG", "")

	cfg := Load()
	require.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	require.Equal(t, 5, cfg.TopK)
	require.Equal(t, 120*time.Second, cfg.HTTPTimeout)
	require.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DOCCHAT_API_URL", "http://backend:9000")
	t.Setenv("DOCCHAT_TOP_K", "8")
	t.Setenv("DOCCHAT_HTTP_TIMEOUT", "30s")
	t.Setenv("DOCCHAT_DEBUG", "true")

	cfg := Load()
	require.Equal(t, "http://backend:9000", cfg.APIBaseURL)
	require.Equal(t, 8, cfg.TopK)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.True(t, cfg.Debug)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DOCCHAT_TOP_K", "not-a-number")
	t.Setenv("DOCCHAT_HTTP_TIMEOUT", "soon")

	cfg := Load()
	require.Equal(t, 5, cfg.TopK)
	require.Equal(t, 120*time.Second, cfg.HTTPTimeout)
}
