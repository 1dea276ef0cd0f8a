package tvm

import (
	"errors"
	"math"
	"testing"

	"github.com/aristath/fincalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResidual_ZeroAtKnownRoot(t *testing.T) {
	// 10% coupon bond bought at par: pay 1000, receive 100 a period and 1000 back.
	assert.InDelta(t, 0, residual(0.1, 10, 100, -1000, 1000, EndOfPeriod), 1e-9)

	// Zero rate falls back to the linear identity.
	assert.Equal(t, 0.0, residual(0, 12, 100, -1200, 0, EndOfPeriod))
}

func TestResidualDerivative_MatchesFiniteDifference(t *testing.T) {
	const h = 1e-7
	for _, when := range []PaymentTiming{EndOfPeriod, BeginningOfPeriod} {
		for _, r := range []float64{-0.05, 0.01, 0.1, 0.3} {
			numeric := (residual(r+h, 48, 263.34, -10000, 500, when) -
				residual(r-h, 48, 263.34, -10000, 500, when)) / (2 * h)
			analytic := residualDerivative(r, 48, 263.34, -10000, when)
			assert.InDelta(t, numeric, analytic, 1e-3*math.Max(1, math.Abs(analytic)), "r=%v timing=%s", r, when)
		}
	}
}

func TestNewtonRate(t *testing.T) {
	r, err := newtonRate(360, 599.5505251527569, -100000, 0, EndOfPeriod)
	require.NoError(t, err)
	assert.InDelta(t, 0.005, r, 1e-8)
}

func TestNewtonRate_NoRoot(t *testing.T) {
	_, err := newtonRate(10, 100, 1000, 1000, EndOfPeriod)
	assert.Error(t, err)
}

func TestMinimizeRate(t *testing.T) {
	r, err := minimizeRate(48, 263.3383543192775, -10000, 0, EndOfPeriod)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, r, 1e-5)
}

func TestMinimizeRate_NoRoot(t *testing.T) {
	_, err := minimizeRate(10, 100, 1000, 1000, EndOfPeriod)
	assert.Error(t, err)
}

func TestCompoundRate(t *testing.T) {
	r, err := compoundRate(10, -1000, 1628.894626777442)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, r, 1e-12)

	_, err = compoundRate(10, -1000, -1000)
	assert.True(t, errors.Is(err, domain.ErrNoSolution))
}

func TestSolveRate_ReportsBothFailures(t *testing.T) {
	_, err := solveRate(10, 100, 1000, 1000, EndOfPeriod)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoSolution))
	assert.Contains(t, err.Error(), "fallback")
}
