package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jusunglee/bart-go/pkg/bart"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bart.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"BART_API_KEY", "BART_ENDPOINT", "BART_STATION", "PORT"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.APIKey != bart.PublicAPIKey {
		t.Errorf("Expected public API key, got %q", cfg.APIKey)
	}
	if cfg.Endpoint != bart.DefaultEndpoint {
		t.Errorf("Expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.Station != "PLZA" {
		t.Errorf("Expected default station PLZA, got %q", cfg.Station)
	}
	if cfg.Direction != "s" {
		t.Errorf("Expected default direction s, got %q", cfg.Direction)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
api_key: FILE-KEY
endpoint: http://localhost:9999/api/etd.aspx
station: RICH
direction: n
timeout: 5s
server:
  port: 9090
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.APIKey != "FILE-KEY" {
		t.Errorf("Expected FILE-KEY, got %q", cfg.APIKey)
	}
	if cfg.Endpoint != "http://localhost:9999/api/etd.aspx" {
		t.Errorf("Unexpected endpoint %q", cfg.Endpoint)
	}
	if cfg.Station != "RICH" {
		t.Errorf("Expected RICH, got %q", cfg.Station)
	}
	if cfg.Direction != "n" {
		t.Errorf("Expected n, got %q", cfg.Direction)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}

	client := cfg.Client()
	if client.APIKey != "FILE-KEY" || client.Endpoint != cfg.Endpoint || client.Timeout != cfg.Timeout {
		t.Errorf("Client config not carried over: %+v", client)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, "station: MONT\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Station != "MONT" {
		t.Errorf("Expected MONT, got %q", cfg.Station)
	}
	if cfg.APIKey != bart.PublicAPIKey {
		t.Errorf("Expected default key to survive, got %q", cfg.APIKey)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BART_API_KEY", "ENV-KEY")
	t.Setenv("BART_STATION", "EMBR")
	t.Setenv("PORT", "7070")

	cfg, err := Load(writeConfig(t, "api_key: FILE-KEY\nstation: RICH\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.APIKey != "ENV-KEY" {
		t.Errorf("Expected environment key to win, got %q", cfg.APIKey)
	}
	if cfg.Station != "EMBR" {
		t.Errorf("Expected EMBR, got %q", cfg.Station)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Expected port 7070, got %d", cfg.Server.Port)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		port     string
	}{
		{"unknown field", "stations: RICH\n", ""},
		{"malformed yaml", "station: [RICH\n", ""},
		{"bad direction", "direction: east\n", ""},
		{"bad port", "station: RICH\n", "eighty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", tt.port)

			if _, err := Load(writeConfig(t, tt.contents)); err == nil {
				t.Error("Expected error but got none")
			}
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Station != "PLZA" {
		t.Errorf("Expected default station, got %q", cfg.Station)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing config file")
	}
}
