package service

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/bibbank/calculator/internal/domain/model"
)

// ---------------------------------------------------------------------------
// CreditEngine – full scoring of an applicant profile
// ---------------------------------------------------------------------------

// CreditEngine turns a scoring profile into a priced credit with its
// repayment schedule, or a refusal.
type CreditEngine struct {
	cfg    model.RateConfig
	rates  *RateEngine
	rules  *RefusalRuleChain
	logger *slog.Logger
}

// NewCreditEngine wires the engine from its collaborators.
func NewCreditEngine(cfg model.RateConfig, rates *RateEngine, rules *RefusalRuleChain, logger *slog.Logger) *CreditEngine {
	return &CreditEngine{
		cfg:    cfg,
		rates:  rates,
		rules:  rules,
		logger: logger,
	}
}

// Calculate scores the profile as of evaluationDate. A failed eligibility
// rule is returned as *model.RefusalError; arithmetic failures as
// *model.ComputationError.
func (e *CreditEngine) Calculate(profile model.ScoringProfile, evaluationDate model.Date) (model.CreditResult, error) {
	// 1. Eligibility.
	if decision := e.rules.Evaluate(profile, evaluationDate); !decision.Approved {
		return model.CreditResult{}, decision.Err()
	}

	// 2. Rate.
	breakdown := e.rates.ScoringRate(profile, evaluationDate)
	e.logger.Debug("scoring rate computed",
		"base", breakdown.Base.String(),
		slog.Group("adjustments", adjustmentAttrs(breakdown.Adjustments)...),
		"floored", breakdown.Floored,
		"rate", breakdown.Rate.String(),
	)

	// 3. Financed amount.
	amount := profile.Amount
	if profile.InsuranceEnabled {
		amount = amount.Add(e.cfg.InsuranceCost)
	}

	// 4. Installment and total cost.
	payment, err := model.MonthlyPayment(amount, breakdown.Rate, profile.Term)
	if err != nil {
		return model.CreditResult{}, fmt.Errorf("calculate credit: %w", err)
	}
	psk := payment.Mul(decimal.NewFromInt(int64(profile.Term)))

	// 5. Schedule.
	schedule, err := model.GeneratePaymentSchedule(amount, breakdown.Rate, payment, profile.Term, evaluationDate)
	if err != nil {
		return model.CreditResult{}, fmt.Errorf("calculate credit: %w", err)
	}

	return model.CreditResult{
		Amount:           amount,
		Term:             profile.Term,
		MonthlyPayment:   payment,
		Rate:             breakdown.Rate,
		PSK:              psk,
		InsuranceEnabled: profile.InsuranceEnabled,
		SalaryClient:     profile.SalaryClient,
		PaymentSchedule:  schedule,
	}, nil
}

func adjustmentAttrs(adjustments []RateAdjustment) []any {
	attrs := make([]any, 0, len(adjustments))
	for _, a := range adjustments {
		attrs = append(attrs, slog.String(a.Factor, a.Delta.String()))
	}
	return attrs
}
