package model

import "github.com/shopspring/decimal"

// LoanOffer is one priced option returned by pre-scoring.
type LoanOffer struct {
	RequestedAmount  decimal.Decimal
	TotalAmount      decimal.Decimal // requested amount plus insurance, if any
	Term             int
	MonthlyPayment   decimal.Decimal
	Rate             decimal.Decimal
	InsuranceEnabled bool
	SalaryClient     bool
}

// CreditResult is the approved credit with its repayment schedule.
type CreditResult struct {
	Amount           decimal.Decimal // principal including insurance
	Term             int
	MonthlyPayment   decimal.Decimal
	Rate             decimal.Decimal
	PSK              decimal.Decimal // total cost of credit
	InsuranceEnabled bool
	SalaryClient     bool
	PaymentSchedule  []PaymentScheduleEntry
}
