package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		require.Equal(t, DefaultAPIURL, cfg.APIURL)
		require.Equal(t, DefaultPollInterval, cfg.PollInterval())
		require.Equal(t, DefaultHealthInterval, cfg.HealthInterval())
	})

	t.Run("reads yaml fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"api_url: http://backend:9000\npoll_interval_seconds: 5\nfocus_mode: blockers\n",
		), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "http://backend:9000", cfg.APIURL)
		require.Equal(t, 5*time.Second, cfg.PollInterval())
		require.Equal(t, "blockers", cfg.FocusMode)
	})

	t.Run("env var overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_url: http://from-file\n"), 0o644))
		t.Setenv("BRIEFDECK_API_URL", "http://from-env")

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "http://from-env", cfg.APIURL)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_url: [unclosed\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("non-positive intervals fall back", func(t *testing.T) {
		cfg := &Config{PollIntervalSeconds: -1, HealthIntervalSeconds: 0}
		require.Equal(t, DefaultPollInterval, cfg.PollInterval())
		require.Equal(t, DefaultHealthInterval, cfg.HealthInterval())
	})
}
