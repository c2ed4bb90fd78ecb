package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/calculator/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// Aggregate types.
const (
	AggregateOfferCalculation  = "OfferCalculation"
	AggregateCreditCalculation = "CreditCalculation"
)

// Event types.
const (
	TypeOffersCalculated = "calculator.offers.calculated"
	TypeCreditApproved   = "calculator.credit.approved"
	TypeCreditRefused    = "calculator.credit.refused"
)

// ---------------------------------------------------------------------------
// Offer events
// ---------------------------------------------------------------------------

// OffersCalculated is raised when pre-scoring offers were produced.
type OffersCalculated struct {
	events.BaseEvent
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Term            int             `json:"term"`
	OfferCount      int             `json:"offer_count"`
	LowestRate      decimal.Decimal `json:"lowest_rate"`
	HighestRate     decimal.Decimal `json:"highest_rate"`
	Cached          bool            `json:"cached"`
}

func NewOffersCalculated(
	calculationID string,
	amount decimal.Decimal, term, offerCount int,
	lowestRate, highestRate decimal.Decimal,
	cached bool, now time.Time,
) OffersCalculated {
	return OffersCalculated{
		BaseEvent:       events.NewBaseEvent(TypeOffersCalculated, calculationID, AggregateOfferCalculation, now),
		RequestedAmount: amount,
		Term:            term,
		OfferCount:      offerCount,
		LowestRate:      lowestRate,
		HighestRate:     highestRate,
		Cached:          cached,
	}
}

// ---------------------------------------------------------------------------
// Credit events
// ---------------------------------------------------------------------------

// CreditApproved is raised when a scoring profile was priced.
type CreditApproved struct {
	events.BaseEvent
	Amount           decimal.Decimal `json:"amount"`
	Term             int             `json:"term"`
	Rate             decimal.Decimal `json:"rate"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	PSK              decimal.Decimal `json:"psk"`
	InsuranceEnabled bool            `json:"insurance_enabled"`
	SalaryClient     bool            `json:"salary_client"`
}

func NewCreditApproved(
	calculationID string,
	amount decimal.Decimal, term int,
	rate, monthlyPayment, psk decimal.Decimal,
	insuranceEnabled, salaryClient bool, now time.Time,
) CreditApproved {
	return CreditApproved{
		BaseEvent:        events.NewBaseEvent(TypeCreditApproved, calculationID, AggregateCreditCalculation, now),
		Amount:           amount,
		Term:             term,
		Rate:             rate,
		MonthlyPayment:   monthlyPayment,
		PSK:              psk,
		InsuranceEnabled: insuranceEnabled,
		SalaryClient:     salaryClient,
	}
}

// CreditRefused is raised when an eligibility rule declined the applicant.
type CreditRefused struct {
	events.BaseEvent
	Code            string          `json:"code"`
	Reason          string          `json:"reason"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Term            int             `json:"term"`
}

func NewCreditRefused(
	calculationID, code, reason string,
	amount decimal.Decimal, term int, now time.Time,
) CreditRefused {
	return CreditRefused{
		BaseEvent:       events.NewBaseEvent(TypeCreditRefused, calculationID, AggregateCreditCalculation, now),
		Code:            code,
		Reason:          reason,
		RequestedAmount: amount,
		Term:            term,
	}
}
