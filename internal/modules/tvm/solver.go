package tvm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/optimize"

	"github.com/aristath/fincalc/internal/domain"
)

const (
	rateGuess     = 0.1
	rateTolerance = 1e-6
	rateMaxIter   = 100

	// Residuals are compared relative to the size of the cash flows.
	residualTolerance = 1e-7
)

// solveRate finds the decimal periodic rate r > -1 satisfying the annuity
// identity for present value x (already in identity sign convention),
// future value y and payment p over n periods.
func solveRate(n, p, x, y float64, when PaymentTiming) (float64, error) {
	if n == 0 {
		return 0, domain.NoSolution("interest rate is undefined for zero periods", nil)
	}

	if p == 0 {
		return compoundRate(n, x, y)
	}

	scale := cashFlowScale(n, p, x, y)
	if scalar.EqualWithinAbs(residual(0, n, p, x, y, when)/scale, 0, residualTolerance) {
		return 0, nil
	}

	r, newtonErr := newtonRate(n, p, x, y, when)
	if newtonErr == nil {
		return r, nil
	}

	r, err := minimizeRate(n, p, x, y, when)
	if err != nil {
		return 0, domain.NoSolution("interest rate could not be solved", fmt.Errorf("%v; fallback: %w", newtonErr, err))
	}
	return r, nil
}

// compoundRate solves x*(1+r)^n + y = 0, the identity without payments.
func compoundRate(n, x, y float64) (float64, error) {
	if x == 0 {
		return 0, domain.NoSolution("interest rate is undefined for a zero present value", nil)
	}
	ratio := -y / x
	if ratio <= 0 {
		return 0, domain.NoSolution("present and future value must have the same sign", nil)
	}
	return math.Pow(ratio, 1/n) - 1, nil
}

// newtonRate iterates Newton-Raphson from rateGuess until successive
// iterates agree within rateTolerance.
func newtonRate(n, p, x, y float64, when PaymentTiming) (float64, error) {
	rn := rateGuess
	for iter := 0; iter < rateMaxIter; iter++ {
		g := residual(rn, n, p, x, y, when)
		gp := residualDerivative(rn, n, p, x, when)
		if gp == 0 || math.IsNaN(gp) || math.IsInf(gp, 0) {
			return 0, fmt.Errorf("derivative vanished at iteration %d", iter)
		}

		next := rn - g/gp
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, fmt.Errorf("diverged at iteration %d", iter)
		}
		if scalar.EqualWithinAbs(next, rn, rateTolerance) {
			if next <= -1 {
				return 0, fmt.Errorf("converged to rate %.6f below -100%%", next)
			}
			return next, nil
		}
		rn = next
	}

	return 0, fmt.Errorf("did not converge after %d iterations", rateMaxIter)
}

// minimizeRate searches for a root of the identity by minimizing its
// absolute residual with Nelder-Mead. It is only trusted when the residual
// at the optimum is effectively zero.
func minimizeRate(n, p, x, y float64, when PaymentTiming) (float64, error) {
	scale := cashFlowScale(n, p, x, y)
	problem := optimize.Problem{
		Func: func(v []float64) float64 {
			r := v[0]
			if r <= -1 {
				return math.Inf(1)
			}
			g := math.Abs(residual(r, n, p, x, y, when)) / scale
			if math.IsNaN(g) {
				return math.Inf(1)
			}
			return g
		},
	}

	settings := &optimize.Settings{
		MajorIterations: 5000,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-14,
			Iterations: 100,
		},
	}

	result, err := optimize.Minimize(problem, []float64{rateGuess}, settings, &optimize.NelderMead{})
	if err != nil {
		return 0, fmt.Errorf("minimization failed: %w", err)
	}

	r := result.X[0]
	if r <= -1 || result.F > residualTolerance {
		return 0, fmt.Errorf("no root found (status=%v, residual=%g)", result.Status, result.F)
	}
	return r, nil
}

// residual evaluates the annuity identity at rate r.
func residual(r, n, p, x, y float64, when PaymentTiming) float64 {
	if r == 0 {
		return x + p*n + y
	}
	growth := math.Pow(1+r, n)
	return y + growth*x + p*annuityFactor(r, growth, when)
}

// residualDerivative is d(residual)/dr for r != 0.
func residualDerivative(r, n, p, x float64, when PaymentTiming) float64 {
	w := float64(when)
	t1 := math.Pow(1+r, n)
	t2 := math.Pow(1+r, n-1)
	return n*t2*x -
		p*(t1-1)*(r*w+1)/(r*r) +
		n*p*t2*(r*w+1)/r +
		p*(t1-1)*w/r
}

func cashFlowScale(n, p, x, y float64) float64 {
	return math.Max(1, math.Abs(x)+math.Abs(y)+math.Abs(p)*math.Max(n, 1))
}
