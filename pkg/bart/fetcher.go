package bart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jusunglee/bart-go/internal/feed"
	"github.com/jusunglee/bart-go/internal/models"
)

// Fetcher implements the Client interface against the live BART API
// It holds configuration only, so one Fetcher can serve concurrent callers
type Fetcher struct {
	config     Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option customises a Fetcher
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithLogger replaces the global zerolog logger
func WithLogger(l zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// New creates a new departure fetcher
func New(config Config, opts ...Option) *Fetcher {
	if config.DebugOutput == nil {
		config.DebugOutput = os.Stdout
	}

	f := &Fetcher{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: log.Logger,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// GetDepartures returns the minutes until each departure from q.Origin.
// A transport failure is logged and reported as an absent result; a response
// without departures is a present, empty result.
func (f *Fetcher) GetDepartures(ctx context.Context, q Query) models.Departures {
	doc := q.Fixture
	if doc == nil {
		var err error
		doc, err = f.fetch(ctx, q.Origin, q.Direction, q.Verbose)
		if err != nil {
			f.logger.Error().Err(err).
				Str("origin", q.Origin).
				Str("direction", q.Direction).
				Msg("Could not complete the request")
			return models.None()
		}
	}

	if q.Verbose {
		f.dump(doc)
	}

	return models.Some(feed.Extract(doc))
}

// Fetch issues one ETD request and returns the decoded response
func (f *Fetcher) Fetch(ctx context.Context, origin string, direction models.Direction) (models.Document, error) {
	return f.fetch(ctx, origin, direction, false)
}

func (f *Fetcher) fetch(ctx context.Context, origin string, direction models.Direction, verbose bool) (models.Document, error) {
	params := feed.NewParams(origin, direction, f.config.APIKey)
	req, err := f.newRequest(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create ETD request")
	}

	f.logger.Debug().Str("origin", params.Origin).Str("direction", params.Direction).Msg("ETD request")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "cannot make ETD request")
	}
	defer func() {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("ETD request failed: HTTP %d", resp.StatusCode)
	}

	if verbose {
		fmt.Fprintln(f.config.DebugOutput, req.URL.String())
	}

	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "cannot decode ETD response")
	}

	return doc, nil
}

func (f *Fetcher) newRequest(ctx context.Context, params models.Params) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.config.Endpoint, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for key, values := range params.Values() {
		q[key] = values
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	if f.config.UserAgent != "" {
		req.Header.Set("User-Agent", f.config.UserAgent)
	}

	return req, nil
}

// dump writes the document as sorted, indented JSON
func (f *Fetcher) dump(doc models.Document) {
	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		f.logger.Warn().Err(err).Msg("Failed to format response")
		return
	}
	fmt.Fprintln(f.config.DebugOutput, string(out))
}
