package bart

import (
	"context"
	"io"
	"time"

	"github.com/jusunglee/bart-go/internal/models"
)

// Client defines the interface for looking up BART departures
// Abstracts live and fixture-backed lookups behind a common interface
type Client interface {
	GetDepartures(ctx context.Context, q Query) models.Departures
}

// Query describes one departure lookup
// When Fixture is set it replaces the live API response
type Query struct {
	Origin    string
	Direction models.Direction
	Fixture   models.Document
	Verbose   bool
}

// Config holds configuration for the BART client
// APIKey and Endpoint are passed in so the key can be rotated without a rebuild
type Config struct {
	APIKey    string
	Endpoint  string
	Timeout   time.Duration
	UserAgent string

	// DebugOutput receives the request URL and response body for verbose queries
	DebugOutput io.Writer
}

// PublicAPIKey is the key BART publishes for open use of its API
const PublicAPIKey = "MW9S-E7SL-26DU-VV8V"

// DefaultEndpoint is the BART real-time departures endpoint
const DefaultEndpoint = "http://api.bart.gov/api/etd.aspx"

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		APIKey:    PublicAPIKey,
		Endpoint:  DefaultEndpoint,
		Timeout:   30 * time.Second,
		UserAgent: "bart-go",
	}
}
