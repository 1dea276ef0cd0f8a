package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgument("rate", "must be positive")

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrNoSolution))
	assert.Equal(t, "rate must be positive", err.Error())
	assert.Equal(t, "rate", FieldOf(err))
}

func TestRequired(t *testing.T) {
	err := Required("fv", "Future value (FV)")

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, "Future value (FV) is required", err.Error())
	assert.Equal(t, "fv", FieldOf(err))
}

func TestNoSolution(t *testing.T) {
	cause := errors.New("did not converge after 100 iterations")
	err := NoSolution("interest rate could not be solved", cause)

	assert.True(t, errors.Is(err, ErrNoSolution))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "interest rate could not be solved: did not converge after 100 iterations", err.Error())
	assert.Empty(t, FieldOf(err))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("present value: %w", InvalidArgument("n", "must not be negative"))

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, "n", FieldOf(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid argument", InvalidArgument("rate", "must be positive"), http.StatusBadRequest},
		{"no solution", NoSolution("degenerate", nil), http.StatusBadRequest},
		{"wrapped", fmt.Errorf("wrap: %w", NoSolution("degenerate", nil)), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
