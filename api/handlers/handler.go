package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/jusunglee/bart-go/internal/models"
	"github.com/jusunglee/bart-go/pkg/bart"
)

// Handler handles HTTP requests
type Handler struct {
	client   bart.Client
	inflight singleflight.Group
}

// NewHandler creates a new HTTP handler
func NewHandler(client bart.Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// OPTIONS is routed so CORS preflight reaches the middleware instead of a 405
	r.HandleFunc("/", h.handleIndex).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/departures/{station}", h.handleDepartures).Methods(http.MethodGet, http.MethodOptions)
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"title":  "bart-go",
		"readme": "GET /departures/{station}?dir=s|n for minutes until each departure",
	}
	h.writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleDepartures(w http.ResponseWriter, r *http.Request) {
	station := strings.ToUpper(mux.Vars(r)["station"])

	direction := r.URL.Query().Get("dir")
	if direction == "" {
		direction = models.DirectionSouth
	}
	if direction != models.DirectionSouth && direction != models.DirectionNorth {
		h.writeError(w, "Invalid dir parameter", http.StatusBadRequest)
		return
	}

	// Concurrent requests for the same station share one upstream call, which
	// must not be cut short when whichever caller started it goes away
	ctx := context.WithoutCancel(r.Context())
	v, _, _ := h.inflight.Do(station+"/"+direction, func() (any, error) {
		return h.client.GetDepartures(ctx, bart.Query{
			Origin:    station,
			Direction: direction,
		}), nil
	})

	minutes, ok := v.(models.Departures).Get()
	if !ok {
		h.writeError(w, "BART API unavailable", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, models.DeparturesResponse{
		Station:   station,
		Direction: direction,
		Data:      minutes,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, ErrorResponse{Error: message})
}
