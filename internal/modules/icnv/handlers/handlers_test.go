package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestHandler() *Handler {
	return NewHandler(zerolog.New(nil).Level(zerolog.Disabled))
}

func postJSON(handle http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	handle(w, req)
	return w
}

func TestHandleNominalToEffective(t *testing.T) {
	handler := setupTestHandler()

	w := postJSON(handler.HandleNominalToEffective, "/api/fin/icnv/nominal-to-effective",
		`{"rate": 6.0, "compounding_periods": 12}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ConversionResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 6.1678, math.Round(response.Value*10000)/10000)
}

func TestHandleEffectiveToNominal(t *testing.T) {
	handler := setupTestHandler()

	w := postJSON(handler.HandleEffectiveToNominal, "/api/fin/icnv/effective-to-nominal",
		`{"rate": 6.1678, "compounding_periods": 12}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ConversionResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.InDelta(t, 6.0, response.Value, 1e-4)
}

func TestInvalidInputs(t *testing.T) {
	handler := setupTestHandler()

	tests := []struct {
		name     string
		handle   http.HandlerFunc
		path     string
		body     string
		expected string
	}{
		{"negative rate", handler.HandleNominalToEffective, "/api/fin/icnv/nominal-to-effective",
			`{"rate": -6, "compounding_periods": 12}`, "rate must be positive"},
		{"zero compounding periods", handler.HandleEffectiveToNominal, "/api/fin/icnv/effective-to-nominal",
			`{"rate": 6.0, "compounding_periods": 0}`, "compounding_periods must be at least 1"},
		{"missing rate", handler.HandleNominalToEffective, "/api/fin/icnv/nominal-to-effective",
			`{"compounding_periods": 12}`, "Rate is required"},
		{"missing compounding periods", handler.HandleEffectiveToNominal, "/api/fin/icnv/effective-to-nominal",
			`{"rate": 6.0}`, "Compounding periods is required"},
		{"fractional compounding periods", handler.HandleNominalToEffective, "/api/fin/icnv/nominal-to-effective",
			`{"rate": 6.0, "compounding_periods": 2.5}`, "Invalid request body"},
		{"malformed json", handler.HandleNominalToEffective, "/api/fin/icnv/nominal-to-effective",
			`{invalid-json}`, "Invalid request body"},
		{"trailing data", handler.HandleEffectiveToNominal, "/api/fin/icnv/effective-to-nominal",
			`{"rate": 6.0, "compounding_periods": 12} xyz`, "Invalid request body"},
		{"overflowing conversion", handler.HandleNominalToEffective, "/api/fin/icnv/nominal-to-effective",
			`{"rate": 1000000, "compounding_periods": 1000}`, "rate is too large to convert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(tt.handle, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expected, response["error"])
		})
	}
}
