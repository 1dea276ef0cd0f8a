// Package icnv converts interest rates between nominal and effective
// annual conventions.
package icnv

import (
	"math"

	"github.com/aristath/fincalc/internal/domain"
)

// Request field names, used when reporting invalid input.
const (
	FieldRate               = "rate"
	FieldCompoundingPeriods = "compounding_periods"
)

// NominalToEffective converts a nominal annual rate compounded m times a
// year into the equivalent effective annual rate. Rates are percentages.
//
// Formula: effective = (1 + nominal/(100*m))^m - 1
func NominalToEffective(nominalRate float64, compoundingPeriods int) (float64, error) {
	if err := validate(nominalRate, compoundingPeriods); err != nil {
		return 0, err
	}

	m := float64(compoundingPeriods)
	ratePerPeriod := nominalRate / 100 / m
	effective := math.Pow(1+ratePerPeriod, m) - 1

	return checkResult(effective * 100)
}

// EffectiveToNominal converts an effective annual rate into the nominal
// annual rate that yields it when compounded m times a year. Rates are
// percentages.
//
// Formula: nominal = m * ((1 + effective/100)^(1/m) - 1)
func EffectiveToNominal(effectiveRate float64, compoundingPeriods int) (float64, error) {
	if err := validate(effectiveRate, compoundingPeriods); err != nil {
		return 0, err
	}

	m := float64(compoundingPeriods)
	ratePerPeriod := math.Pow(1+effectiveRate/100, 1/m) - 1

	return checkResult(ratePerPeriod * m * 100)
}

// checkResult rejects conversions that overflow float64.
func checkResult(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.InvalidArgument(FieldRate, "is too large to convert")
	}
	return v, nil
}

func validate(rate float64, compoundingPeriods int) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return domain.InvalidArgument(FieldRate, "must be a finite number")
	}
	if rate <= 0 {
		return domain.InvalidArgument(FieldRate, "must be positive")
	}
	if compoundingPeriods <= 0 {
		return domain.InvalidArgument(FieldCompoundingPeriods, "must be at least 1")
	}
	return nil
}
