package model

import (
	"github.com/shopspring/decimal"
)

const (
	// IntermediateScale is the number of decimal places kept for rates and
	// division results before the final rounding to money.
	IntermediateScale = 10
	// MoneyScale is the number of decimal places of every monetary amount.
	MoneyScale = 2
)

var (
	one              = decimal.NewFromInt(1)
	monthsPerPercent = decimal.NewFromInt(1200)
)

// MonthlyRate converts an annual percentage rate into a monthly fraction,
// e.g. 12 -> 0.01.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.DivRound(monthsPerPercent, IntermediateScale)
}

// MonthlyPayment computes the fixed annuity installment
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate. (1+r)^n is evaluated exactly; only the final
// division is rounded to IntermediateScale and the result to MoneyScale,
// half away from zero.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, &ComputationError{Op: "monthly payment", Err: ErrInvalidTerm}
	}
	r := MonthlyRate(annualRatePercent)
	if !r.IsPositive() {
		return decimal.Zero, &ComputationError{Op: "monthly payment", Err: ErrNonPositiveRate}
	}

	factor := compound(one.Add(r), termMonths)
	numerator := principal.Mul(r).Mul(factor)
	denominator := factor.Sub(one)

	return numerator.DivRound(denominator, IntermediateScale).Round(MoneyScale), nil
}

// compound returns base^n by binary exponentiation. Every step is an exact
// decimal multiplication.
func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n == 0 {
			return result
		}
		base = base.Mul(base)
	}
}
