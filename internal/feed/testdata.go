package feed

import (
	"fmt"

	"github.com/jusunglee/bart-go/internal/models"
)

// Destinations used to label mock estimate groups, in order
var mockDestinations = []struct {
	Name  string
	Abbr  string
	Color string
}{
	{"Millbrae", "MLBR", "RED"},
	{"Richmond", "RICH", "ORANGE"},
	{"Berryessa", "BERY", "ORANGE"},
	{"SF Airport", "SFIA", "YELLOW"},
}

// CreateMockDocument creates an ETD document shaped like a decoded BART response
// Each argument becomes one destination group holding the given minutes values
func CreateMockDocument(groups ...[]string) models.Document {
	etd := make([]any, 0, len(groups))
	for i, minutes := range groups {
		dest := mockDestinations[i%len(mockDestinations)]

		estimates := make([]any, 0, len(minutes))
		for _, m := range minutes {
			estimates = append(estimates, map[string]any{
				"minutes":   m,
				"platform":  "2",
				"direction": "South",
				"length":    "10",
				"color":     dest.Color,
				"bikeflag":  "1",
				"delay":     "0",
			})
		}

		etd = append(etd, map[string]any{
			"destination":  dest.Name,
			"abbreviation": dest.Abbr,
			"limited":      "0",
			"estimate":     estimates,
		})
	}

	return mockRoot(map[string]any{
		"name": "El Cerrito Plaza",
		"abbr": "PLZA",
		"etd":  etd,
	}, nil)
}

// CreateClosedStationDocument creates the document BART returns when no trains are scheduled
func CreateClosedStationDocument() models.Document {
	return mockRoot(map[string]any{
		"name": "El Cerrito Plaza",
		"abbr": "PLZA",
	}, map[string]any{
		"warning": "No data matched your criteria.",
	})
}

func mockRoot(station map[string]any, message any) models.Document {
	if message == nil {
		message = ""
	}

	return map[string]any{
		"?xml": map[string]any{"@version": "1.0", "@encoding": "utf-8"},
		"root": map[string]any{
			"@id":     "1",
			"uri":     map[string]any{"#cdata-section": fmt.Sprintf("http://api.bart.gov/api/etd.aspx?cmd=etd&orig=%s&dir=s&json=y", station["abbr"])},
			"date":    "05/05/2021",
			"time":    "08:15:02 AM PDT",
			"station": []any{station},
			"message": message,
		},
	}
}
