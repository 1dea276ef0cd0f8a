// Package handlers provides HTTP handlers for time-value-of-money calculations.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/fincalc/internal/domain"
	"github.com/aristath/fincalc/internal/modules/tvm"
)

// DefaultPaymentsPerYear is used when a request omits pyr.
const DefaultPaymentsPerYear = 12

// CalculationRequest carries the TVM inputs. Pointer fields distinguish an
// omitted value from zero.
type CalculationRequest struct {
	N   *float64 `json:"n"`
	I   *float64 `json:"i"`
	PV  *float64 `json:"pv"`
	PMT *float64 `json:"pmt"`
	FV  *float64 `json:"fv"`
	PYR *int     `json:"pyr"`
	End *bool    `json:"end"`
}

// CalculationResult is the response for every TVM endpoint.
type CalculationResult struct {
	Value float64 `json:"value"`
}

var labels = map[string]string{
	tvm.FieldPV:   "Present value (PV)",
	tvm.FieldFV:   "Future value (FV)",
	tvm.FieldRate: "Interest rate (I%)",
	tvm.FieldN:    "Number of periods (N)",
}

// require checks the named fields in order and reports the first one missing.
func (req *CalculationRequest) require(fields ...string) error {
	for _, field := range fields {
		var v *float64
		switch field {
		case tvm.FieldPV:
			v = req.PV
		case tvm.FieldFV:
			v = req.FV
		case tvm.FieldRate:
			v = req.I
		case tvm.FieldN:
			v = req.N
		}
		if v == nil {
			return domain.Required(field, labels[field])
		}
	}

	if req.PYR != nil && *req.PYR < 1 {
		return domain.InvalidArgument("pyr", "must be at least 1")
	}
	return nil
}

// payment returns PMT, defaulting to 0.
func (req *CalculationRequest) payment() float64 {
	if req.PMT == nil {
		return 0
	}
	return *req.PMT
}

// timing maps end (default true) to the payment timing flag.
func (req *CalculationRequest) timing() tvm.PaymentTiming {
	if req.End == nil {
		return tvm.EndOfPeriod
	}
	return tvm.TimingFromEnd(*req.End)
}

func (req *CalculationRequest) paymentsPerYear() int {
	if req.PYR == nil {
		return DefaultPaymentsPerYear
	}
	return *req.PYR
}

// Handler handles TVM HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new TVM handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "tvm").Logger(),
	}
}

// HandleCalculatePresentValue handles POST /api/fin/tvm/pv
func (h *Handler) HandleCalculatePresentValue(w http.ResponseWriter, r *http.Request) {
	h.calculate(w, r, "pv", []string{tvm.FieldFV, tvm.FieldRate, tvm.FieldN},
		func(req *CalculationRequest) (float64, error) {
			return tvm.PresentValue(*req.FV, *req.I, *req.N, req.payment(), req.timing())
		})
}

// HandleCalculateFutureValue handles POST /api/fin/tvm/fv
func (h *Handler) HandleCalculateFutureValue(w http.ResponseWriter, r *http.Request) {
	h.calculate(w, r, "fv", []string{tvm.FieldPV, tvm.FieldRate, tvm.FieldN},
		func(req *CalculationRequest) (float64, error) {
			return tvm.FutureValue(*req.PV, *req.I, *req.N, req.payment(), req.timing())
		})
}

// HandleCalculatePayment handles POST /api/fin/tvm/pmt
func (h *Handler) HandleCalculatePayment(w http.ResponseWriter, r *http.Request) {
	h.calculate(w, r, "pmt", []string{tvm.FieldPV, tvm.FieldFV, tvm.FieldRate, tvm.FieldN},
		func(req *CalculationRequest) (float64, error) {
			return tvm.Payment(*req.PV, *req.FV, *req.I, *req.N, req.timing())
		})
}

// HandleCalculatePeriods handles POST /api/fin/tvm/n
func (h *Handler) HandleCalculatePeriods(w http.ResponseWriter, r *http.Request) {
	h.calculate(w, r, "n", []string{tvm.FieldPV, tvm.FieldFV, tvm.FieldRate},
		func(req *CalculationRequest) (float64, error) {
			return tvm.NumberOfPeriods(*req.PV, *req.FV, *req.I, req.payment(), req.timing())
		})
}

// HandleCalculateInterestRate handles POST /api/fin/tvm/i
func (h *Handler) HandleCalculateInterestRate(w http.ResponseWriter, r *http.Request) {
	h.calculate(w, r, "i", []string{tvm.FieldPV, tvm.FieldFV, tvm.FieldN},
		func(req *CalculationRequest) (float64, error) {
			return tvm.InterestRate(*req.PV, *req.FV, *req.N, req.payment(), req.timing())
		})
}

func (h *Handler) calculate(
	w http.ResponseWriter,
	r *http.Request,
	target string,
	required []string,
	solve func(req *CalculationRequest) (float64, error),
) {
	var req CalculationRequest
	if err := decodeRequest(r, &req); err != nil {
		h.log.Warn().Err(err).Str("target", target).Msg("Failed to decode request body")
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.require(required...); err != nil {
		h.log.Warn().Str("target", target).Str("field", domain.FieldOf(err)).Msg(err.Error())
		h.writeError(w, domain.HTTPStatus(err), err.Error())
		return
	}

	// pyr is accepted for API compatibility; rate and periods are already per payment period.
	h.log.Debug().
		Str("target", target).
		Int("pyr", req.paymentsPerYear()).
		Str("timing", req.timing().String()).
		Msg("Solving TVM")

	value, err := solve(&req)
	if err != nil {
		status := domain.HTTPStatus(err)
		event := h.log.Warn()
		if status >= http.StatusInternalServerError {
			event = h.log.Error()
		}
		event.Err(err).Str("target", target).Msg("TVM calculation failed")
		h.writeError(w, status, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, CalculationResult{Value: value})
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
