package feed

import (
	"math"
	"strconv"
	"strings"

	"github.com/jusunglee/bart-go/internal/models"
)

// NewParams builds the query parameters for an ETD request
func NewParams(origin string, direction models.Direction, apiKey string) models.Params {
	if direction == "" {
		direction = models.DirectionSouth
	}

	return models.Params{
		Command:   models.CommandETD,
		Origin:    origin,
		Direction: direction,
		APIKey:    apiKey,
		JSON:      "y",
	}
}

// Extract flattens root.station[0].etd[].estimate[].minutes into a list of
// minutes, in document order. A missing or malformed path yields an empty list:
// the API omits the etd list when a station is closed or has no trains.
func Extract(doc models.Document) []int {
	minutes := []int{}

	for _, group := range estimateGroups(doc) {
		g, ok := group.(map[string]any)
		if !ok {
			continue
		}
		estimates, ok := g["estimate"].([]any)
		if !ok {
			continue
		}

		for _, estimate := range estimates {
			e, _ := estimate.(map[string]any)
			minutes = append(minutes, ParseMinutes(e["minutes"]))
		}
	}

	return minutes
}

// Only one station is ever queried, so only the first station is read
func estimateGroups(doc models.Document) []any {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	r, ok := root["root"].(map[string]any)
	if !ok {
		return nil
	}
	stations, ok := r["station"].([]any)
	if !ok || len(stations) == 0 {
		return nil
	}
	station, ok := stations[0].(map[string]any)
	if !ok {
		return nil
	}
	groups, _ := station["etd"].([]any)
	return groups
}

// ParseMinutes converts a minutes value to an integer.
// Anything that is not a number ("Leaving", garbage, null) is 0.
func ParseMinutes(v any) int {
	switch m := v.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(m))
		if err != nil {
			return 0
		}
		return n
	case float64:
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return 0
		}
		return int(m)
	default:
		return 0
	}
}
