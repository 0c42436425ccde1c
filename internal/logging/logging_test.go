package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupJSON(t *testing.T) {
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)
	t.Setenv("BART_LOG_FORMAT", "JSON")
	t.Setenv("BART_DEBUG", "")

	var buf bytes.Buffer
	Setup(&buf, false)

	log.Debug().Msg("hidden")
	log.Info().Str("origin", "PLZA").Msg("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected one log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q", lines[0])
	}
	if entry["message"] != "visible" || entry["origin"] != "PLZA" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestSetupDebug(t *testing.T) {
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)
	t.Setenv("BART_LOG_FORMAT", "")
	t.Setenv("BART_DEBUG", "")

	var buf bytes.Buffer
	Setup(&buf, true)

	log.Debug().Msg("request details")

	if !strings.Contains(buf.String(), "request details") {
		t.Errorf("Expected debug output, got %q", buf.String())
	}
}
