package schemes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/fundscope/internal/returns"
)

// Handler handles scheme HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new schemes handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "schemes").Logger(),
	}
}

// HandleGetScheme returns scheme metadata and NAV history.
// GET /api/scheme/{code}
func (h *Handler) HandleGetScheme(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	detail, err := h.service.GetScheme(r.Context(), code)
	if err != nil {
		h.writeCalcError(w, code, err)
		return
	}

	h.writeJSON(w, http.StatusOK, detail)
}

// HandleReturns computes a point-to-point return.
// GET /api/scheme/{code}/returns?period=1y  or  ?from=2020-01-01&to=2024-01-01
func (h *Handler) HandleReturns(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	query := r.URL.Query()

	result, err := h.service.Returns(r.Context(), code, query.Get("period"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.writeCalcError(w, code, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleSIP simulates a systematic investment plan.
// POST /api/scheme/{code}/sip
func (h *Handler) HandleSIP(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req SIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.SimulateSIP(r.Context(), code, req)
	if err != nil {
		h.writeCalcError(w, code, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleSWP simulates a systematic withdrawal plan.
// POST /api/scheme/{code}/swp
func (h *Handler) HandleSWP(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req SWPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.SimulateSWP(r.Context(), code, req)
	if err != nil {
		h.writeCalcError(w, code, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleRolling computes rolling returns.
// GET /api/scheme/{code}/rolling?years=3
func (h *Handler) HandleRolling(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	years, err := strconv.Atoi(r.URL.Query().Get("years"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "years must be an integer")
		return
	}

	result, err := h.service.Rolling(r.Context(), code, years)
	if err != nil {
		h.writeCalcError(w, code, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleRisk returns drawdown, volatility and Sharpe metrics.
// GET /api/scheme/{code}/risk?riskFreeRate=0.06
func (h *Handler) HandleRisk(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	riskFreeRate := DefaultRiskFreeRate
	if raw := r.URL.Query().Get("riskFreeRate"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			h.writeError(w, http.StatusBadRequest, "riskFreeRate must be a decimal between 0 and 1")
			return
		}
		riskFreeRate = parsed
	}

	result, err := h.service.Risk(r.Context(), code, riskFreeRate)
	if err != nil {
		h.writeCalcError(w, code, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleLumpsum values a one-time investment.
// POST /api/scheme/{code}/lumpsum
func (h *Handler) HandleLumpsum(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req LumpsumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Lumpsum(r.Context(), code, req)
	if err != nil {
		h.writeCalcError(w, code, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// writeCalcError maps service errors onto HTTP statuses: validation
// problems are client errors, missing data is not-found, anything else
// is an upstream failure.
func (h *Handler) writeCalcError(w http.ResponseWriter, code string, err error) {
	switch {
	case errors.Is(err, ErrBadDate),
		errors.Is(err, returns.ErrInvalidRange),
		errors.Is(err, returns.ErrInvalidFrequency),
		errors.Is(err, returns.ErrInvalidPeriod),
		errors.Is(err, returns.ErrInvalidLookback),
		errors.Is(err, returns.ErrInvalidAmount):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, returns.ErrInsufficientData),
		errors.Is(err, returns.ErrNoValidInvestments),
		errors.Is(err, returns.ErrInsufficientHistory):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error().Err(err).Str("scheme", code).Msg("Scheme request failed")
		h.writeError(w, http.StatusBadGateway, "failed to fetch scheme data")
	}
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
