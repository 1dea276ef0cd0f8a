// Package tvm solves the time-value-of-money annuity identity for any one
// of present value, future value, payment, number of periods or rate.
//
// All rates are percentages per period (5 means 5%). The caller's present
// value uses "money you have now" semantics: it is negated before it enters
// the identity
//
//	PV*(1+r)^N + PMT*(1+r*w)*((1+r)^N - 1)/r + FV = 0
//
// so callers never pre-negate PV.
package tvm

import (
	"math"

	"github.com/aristath/fincalc/internal/domain"
)

// PaymentTiming says whether payments fall at the end or the beginning of
// each period.
type PaymentTiming int

const (
	EndOfPeriod       PaymentTiming = 0
	BeginningOfPeriod PaymentTiming = 1
)

// TimingFromEnd maps the API's "end" flag to a PaymentTiming.
func TimingFromEnd(end bool) PaymentTiming {
	if end {
		return EndOfPeriod
	}
	return BeginningOfPeriod
}

func (w PaymentTiming) String() string {
	switch w {
	case EndOfPeriod:
		return "end"
	case BeginningOfPeriod:
		return "begin"
	default:
		return "unknown"
	}
}

// Request field names, used when reporting invalid input.
const (
	FieldPV     = "pv"
	FieldFV     = "fv"
	FieldRate   = "i"
	FieldN      = "n"
	FieldPMT    = "pmt"
	FieldTiming = "end"
)

// PresentValue returns the PV that grows into fv over nper periods at rate
// percent with periodic payment pmt.
func PresentValue(fv, rate, nper, pmt float64, when PaymentTiming) (float64, error) {
	if err := validate(
		finite(FieldFV, fv),
		validRate(rate),
		validPeriods(nper),
		finite(FieldPMT, pmt),
		validTiming(when),
	); err != nil {
		return 0, err
	}

	r := rate / 100
	var pv float64
	if r == 0 {
		pv = -(fv + pmt*nper)
	} else {
		growth := math.Pow(1+r, nper)
		pv = -(fv + pmt*annuityFactor(r, growth, when)) / growth
	}

	return checkResult(-pv, "present value")
}

// FutureValue returns the value of pv after nper periods at rate percent
// with periodic payment pmt.
func FutureValue(pv, rate, nper, pmt float64, when PaymentTiming) (float64, error) {
	if err := validate(
		finite(FieldPV, pv),
		validRate(rate),
		validPeriods(nper),
		finite(FieldPMT, pmt),
		validTiming(when),
	); err != nil {
		return 0, err
	}

	r := rate / 100
	x := -pv
	var fv float64
	if r == 0 {
		fv = -(x + pmt*nper)
	} else {
		growth := math.Pow(1+r, nper)
		fv = -(x*growth + pmt*annuityFactor(r, growth, when))
	}

	return checkResult(fv, "future value")
}

// Payment returns the periodic payment that takes pv to fv over nper
// periods at rate percent.
func Payment(pv, fv, rate, nper float64, when PaymentTiming) (float64, error) {
	if err := validate(
		finite(FieldPV, pv),
		finite(FieldFV, fv),
		validRate(rate),
		validPeriods(nper),
		validTiming(when),
	); err != nil {
		return 0, err
	}

	r := rate / 100
	x := -pv
	growth := math.Pow(1+r, nper)
	factor := nper
	if r != 0 {
		factor = annuityFactor(r, growth, when)
	}
	if factor == 0 {
		return 0, domain.NoSolution("payment is undefined for zero periods", nil)
	}

	return checkResult(-(fv+x*growth)/factor, "payment")
}

// NumberOfPeriods returns how many periods it takes pv to reach fv at rate
// percent with periodic payment pmt. The result may be fractional.
func NumberOfPeriods(pv, fv, rate, pmt float64, when PaymentTiming) (float64, error) {
	if err := validate(
		finite(FieldPV, pv),
		finite(FieldFV, fv),
		validRate(rate),
		finite(FieldPMT, pmt),
		validTiming(when),
	); err != nil {
		return 0, err
	}

	r := rate / 100
	x := -pv
	if r == 0 {
		if pmt == 0 {
			return 0, domain.NoSolution("number of periods is undefined with zero rate and zero payment", nil)
		}
		return checkPeriods(-(fv + x) / pmt)
	}

	z := pmt * (1 + r*float64(when)) / r
	ratio := (z - fv) / (x + z)
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0, domain.NoSolution("future value is unreachable with these cash flows", nil)
	}

	return checkPeriods(math.Log(ratio) / math.Log1p(r))
}

// InterestRate returns the rate percent per period that takes pv to fv over
// nper periods with periodic payment pmt.
func InterestRate(pv, fv, nper, pmt float64, when PaymentTiming) (float64, error) {
	if err := validate(
		finite(FieldPV, pv),
		finite(FieldFV, fv),
		validPeriods(nper),
		finite(FieldPMT, pmt),
		validTiming(when),
	); err != nil {
		return 0, err
	}

	r, err := solveRate(nper, pmt, -pv, fv, when)
	if err != nil {
		return 0, err
	}

	return checkResult(r*100, "interest rate")
}

// annuityFactor is (1+r*w)*((1+r)^N - 1)/r for r != 0.
func annuityFactor(r, growth float64, when PaymentTiming) float64 {
	return (1 + r*float64(when)) * (growth - 1) / r
}

func checkResult(v float64, what string) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NoSolution(what+" has no finite solution for these inputs", nil)
	}
	return v, nil
}

func checkPeriods(n float64) (float64, error) {
	n, err := checkResult(n, "number of periods")
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, domain.NoSolution("future value is unreachable with these cash flows", nil)
	}
	return n, nil
}

func validate(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.InvalidArgument(field, "must be a finite number")
	}
	return nil
}

func validRate(rate float64) error {
	if err := finite(FieldRate, rate); err != nil {
		return err
	}
	if rate <= -100 {
		return domain.InvalidArgument(FieldRate, "must be greater than -100")
	}
	return nil
}

func validPeriods(nper float64) error {
	if err := finite(FieldN, nper); err != nil {
		return err
	}
	if nper < 0 {
		return domain.InvalidArgument(FieldN, "must not be negative")
	}
	return nil
}

func validTiming(when PaymentTiming) error {
	if when != EndOfPeriod && when != BeginningOfPeriod {
		return domain.InvalidArgument(FieldTiming, "must be end or beginning of period")
	}
	return nil
}
