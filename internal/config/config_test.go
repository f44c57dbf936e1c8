package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"studioctl/internal/config"
)

func TestLoadDefaultsExpandPathsAndEnvToken(t *testing.T) {
	t.Setenv("STUDIOCTL_API_TOKEN", "env-token")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.API.BaseURL != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected api base url: %q", cfg.API.BaseURL)
	}
	if cfg.API.Token != "env-token" {
		t.Fatalf("expected token from env, got %q", cfg.API.Token)
	}
	wantCache := filepath.Join(tempHome, ".cache", "studioctl")
	if cfg.Cache.Dir != wantCache {
		t.Fatalf("unexpected cache dir: got %q want %q", cfg.Cache.Dir, wantCache)
	}
	if cfg.Dashboard.PollIntervalSeconds != 10 {
		t.Fatalf("unexpected poll interval: %d", cfg.Dashboard.PollIntervalSeconds)
	}
	if cfg.Dashboard.PanelCloseDelayMS != 250 {
		t.Fatalf("unexpected panel close delay: %d", cfg.Dashboard.PanelCloseDelayMS)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestLoadParsesFileAndTrimsBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[api]
base_url = "https://studio.example.com/"
token = "file-token"

[dashboard]
poll_interval_seconds = 3

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.API.BaseURL != "https://studio.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Token != "file-token" {
		t.Fatalf("unexpected token: %q", cfg.API.Token)
	}
	if cfg.Dashboard.PollIntervalSeconds != 3 {
		t.Fatalf("unexpected poll interval: %d", cfg.Dashboard.PollIntervalSeconds)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{
			name:   "bad scheme",
			mutate: func(c *config.Config) { c.API.BaseURL = "ftp://studio.example.com" },
		},
		{
			name:   "missing host",
			mutate: func(c *config.Config) { c.API.BaseURL = "http://" },
		},
		{
			name: "inverted backoff bounds",
			mutate: func(c *config.Config) {
				c.Stream.ReconnectInitialSeconds = 60
				c.Stream.ReconnectMaxSeconds = 30
			},
		},
		{
			name:   "unknown log format",
			mutate: func(c *config.Config) { c.Logging.Format = "yaml" },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected sample config contents")
	}
}
