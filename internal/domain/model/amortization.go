package model

import (
	"github.com/shopspring/decimal"
)

// PaymentScheduleEntry is an immutable value object representing one
// installment of a repayment schedule.
type PaymentScheduleEntry struct {
	Number          int
	Date            Date
	TotalPayment    decimal.Decimal
	InterestPayment decimal.Decimal
	DebtPayment     decimal.Decimal
	RemainingDebt   decimal.Decimal
}

// GeneratePaymentSchedule builds the month-by-month repayment schedule of an
// annuity loan.
//
// Parameters:
//   - principal:         the amount borrowed, insurance included
//   - annualRatePercent: the annual rate in percent (e.g. 12 = 12%)
//   - monthlyPayment:    the fixed installment from MonthlyPayment
//   - termMonths:        number of monthly periods
//   - startDate:         the evaluation date; the first installment is due one month later
//
// Each period uses:
//
//	interest  = round(balance * r, 2)
//	debt      = round(payment - interest, 2)
//	balance   = round(balance - debt, 2)
//
// The last installment absorbs the accumulated rounding so the balance ends
// at exactly zero.
func GeneratePaymentSchedule(
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	monthlyPayment decimal.Decimal,
	termMonths int,
	startDate Date,
) ([]PaymentScheduleEntry, error) {
	if termMonths <= 0 {
		return nil, &ComputationError{Op: "payment schedule", Err: ErrInvalidTerm}
	}

	r := MonthlyRate(annualRatePercent)
	schedule := make([]PaymentScheduleEntry, 0, termMonths)
	remaining := principal
	dueDate := startDate

	for number := 1; number <= termMonths; number++ {
		dueDate = dueDate.AddMonths(1)

		interest := remaining.Mul(r).Round(MoneyScale)
		debt := monthlyPayment.Sub(interest).Round(MoneyScale)
		total := monthlyPayment

		if number == termMonths {
			debt = remaining
			total = debt.Add(interest)
		}

		remaining = remaining.Sub(debt).Round(MoneyScale)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, PaymentScheduleEntry{
			Number:          number,
			Date:            dueDate,
			TotalPayment:    total,
			InterestPayment: interest,
			DebtPayment:     debt,
			RemainingDebt:   remaining,
		})
	}

	return schedule, nil
}
