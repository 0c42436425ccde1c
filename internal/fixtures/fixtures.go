package fixtures

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jusunglee/bart-go/internal/models"
	"github.com/jusunglee/bart-go/pkg/bart"
)

// Pattern matches captured responses in a fixtures directory
const Pattern = "test*.json"

// DefaultOrigin is the station fixtures are replayed against
const DefaultOrigin = "PLZA"

// Result is the outcome of replaying one fixture
type Result struct {
	Name       string
	Departures models.Departures
	Err        error
}

// Discover returns the fixture files in dir, sorted by name
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, Pattern))
	if err != nil {
		return nil, errors.Wrap(err, "invalid fixtures directory")
	}

	sort.Strings(matches)
	return matches, nil
}

// Load reads one captured response
func Load(path string) (models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read fixture %s", path)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "cannot parse fixture %s", path)
	}
	if doc == nil {
		// A nil fixture would send the query to the live API
		return nil, errors.Errorf("fixture %s is null", path)
	}

	return doc, nil
}

// Run replays every fixture in dir through client, in name order.
// A fixture that cannot be loaded is reported in its Result and does not stop the run.
func Run(ctx context.Context, client bart.Client, dir, origin string) ([]Result, error) {
	paths, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		doc, err := Load(path)
		if err != nil {
			log.Warn().Err(err).Str("fixture", path).Msg("Skipping fixture")
			results = append(results, Result{Name: path, Departures: models.None(), Err: err})
			continue
		}

		results = append(results, Result{
			Name:       path,
			Departures: client.GetDepartures(ctx, bart.Query{Origin: origin, Fixture: doc}),
		})
	}

	return results, nil
}
