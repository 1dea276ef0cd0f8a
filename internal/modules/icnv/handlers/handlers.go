// Package handlers provides HTTP handlers for interest rate conversion.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/fincalc/internal/domain"
	"github.com/aristath/fincalc/internal/modules/icnv"
)

// ConversionRequest represents a rate conversion request
type ConversionRequest struct {
	Rate               *float64 `json:"rate"`
	CompoundingPeriods *int     `json:"compounding_periods"`
}

// ConversionResult is the response for both conversion endpoints.
type ConversionResult struct {
	Value float64 `json:"value"`
}

// Handler handles interest conversion HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new interest conversion handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "icnv").Logger(),
	}
}

// HandleNominalToEffective handles POST /api/fin/icnv/nominal-to-effective
func (h *Handler) HandleNominalToEffective(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, "nominal-to-effective", icnv.NominalToEffective)
}

// HandleEffectiveToNominal handles POST /api/fin/icnv/effective-to-nominal
func (h *Handler) HandleEffectiveToNominal(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, "effective-to-nominal", icnv.EffectiveToNominal)
}

func (h *Handler) convert(
	w http.ResponseWriter,
	r *http.Request,
	direction string,
	conversion func(rate float64, compoundingPeriods int) (float64, error),
) {
	var req ConversionRequest
	if err := decodeRequest(r, &req); err != nil {
		h.log.Warn().Err(err).Str("direction", direction).Msg("Failed to decode request body")
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Rate == nil {
		h.writeError(w, http.StatusBadRequest, domain.Required(icnv.FieldRate, "Rate").Error())
		return
	}
	if req.CompoundingPeriods == nil {
		h.writeError(w, http.StatusBadRequest, domain.Required(icnv.FieldCompoundingPeriods, "Compounding periods").Error())
		return
	}

	value, err := conversion(*req.Rate, *req.CompoundingPeriods)
	if err != nil {
		h.log.Warn().
			Err(err).
			Str("direction", direction).
			Str("field", domain.FieldOf(err)).
			Msg("Rate conversion rejected")
		h.writeError(w, domain.HTTPStatus(err), err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, ConversionResult{Value: value})
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

// decodeRequest decodes a single JSON value from the body and rejects
// anything after it.
func decodeRequest(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after request body")
	}
	return nil
}
