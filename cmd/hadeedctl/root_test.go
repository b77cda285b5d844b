package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/config"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store/rest"
)

// isolate points configuration at an empty directory and clears the
// variables config.Load reads
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HADEED_CONFIG_PATH", dir)
	t.Setenv("HADEED_ENV_FILE", filepath.Join(dir, "missing.env"))
	for _, key := range []string{
		"HADEED_STORE_BACKEND", "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL",
		"SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY", "DATABASE_URL",
		"HADEED_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestOpenBackend(t *testing.T) {
	t.Run("supabase", func(t *testing.T) {
		cfg := &config.Config{
			StoreBackend:       config.BackendSupabase,
			SupabaseURL:        "https://abc.supabase.co",
			SupabaseAnonKey:    "sb_publishable_abc",
			HTTPTimeoutSeconds: 5,
		}
		b, err := openBackend(cfg)
		require.NoError(t, err)
		assert.IsType(t, &rest.Store{}, b.Resources)
		assert.NoError(t, b.Close())
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := openBackend(&config.Config{StoreBackend: "mongodb"})
		assert.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	isolate(t)

	_, err := loadConfig()
	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ElementsMatch(t, []string{"supabase_url", "supabase_anon_key"}, cfgErr.Missing)

	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "sb_publishable_abc")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseURL)
}

func TestShowConfiguration(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("resource_list_limit: 50\n"), 0o600))
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "sb_publishable_abcdefghijkl")

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, showConfiguration(&out, "text"))
		assert.Contains(t, out.String(), "resource_list_limit")
		assert.Contains(t, out.String(), "file")
		assert.NotContains(t, out.String(), "abcdefghijkl")
		assert.NotContains(t, out.String(), "Warning")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, showConfiguration(&out, "json"))
		assert.True(t, json.Valid(bytes.TrimSpace(out.Bytes())))
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, showConfiguration(&bytes.Buffer{}, "toml"))
	})

	t.Run("warns about invalid configuration", func(t *testing.T) {
		t.Setenv("SUPABASE_ANON_KEY", "")
		var out bytes.Buffer
		require.NoError(t, showConfiguration(&out, "text"))
		assert.Contains(t, out.String(), "Warning: configuration: missing required configuration: supabase_anon_key")
	})
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{"3"})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	_, err = parseSteps([]string{"0"})
	assert.Error(t, err)
	_, err = parseSteps([]string{"two"})
	assert.Error(t, err)
}

func TestWaitForServer(t *testing.T) {
	t.Run("returns once status succeeds", func(t *testing.T) {
		calls := 0
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		var out bytes.Buffer
		require.NoError(t, waitForServer(&out, ts.URL+"/status", 5, time.Millisecond))
		assert.Equal(t, 3, calls)
		assert.Contains(t, out.String(), "Hadeed is ready!")
	})

	t.Run("gives up after the retries", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		err := waitForServer(&bytes.Buffer{}, ts.URL, 2, time.Millisecond)
		assert.EqualError(t, err, "hadeed is not ready after 2 attempts")
	})
}
