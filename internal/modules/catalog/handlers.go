package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

// Handler handles catalog HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "catalog").Logger(),
	}
}

// HandleList returns schemes matching the query parameters.
// GET /api/mf?q=&code=&fundHouse=&category=&limit=&offset=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := Filter{
		Query:      query.Get("q"),
		CodePrefix: query.Get("code"),
		FundHouse:  query.Get("fundHouse"),
		Category:   query.Get("category"),
		Limit:      queryInt(query.Get("limit"), DefaultLimit),
		Offset:     queryInt(query.Get("offset"), 0),
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list catalog")
		h.writeError(w, http.StatusBadGateway, "failed to fetch scheme catalog")
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func queryInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return defaultValue
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
