package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/calculator/internal/domain/model"
	"github.com/bibbank/calculator/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RateEngine – annual rate pricing for offers and for full scoring
// ---------------------------------------------------------------------------

// RateAdjustment is one named step applied on top of the base rate.
type RateAdjustment struct {
	Factor string
	Delta  decimal.Decimal
}

// RateBreakdown explains how a scoring rate was derived.
type RateBreakdown struct {
	Base        decimal.Decimal
	Adjustments []RateAdjustment
	// Floored reports whether the rate floor replaced the adjusted rate.
	Floored bool
	Rate    decimal.Decimal
}

// Age and gender bands that earn the band discount, inclusive.
const (
	femaleBandMinAge = 32
	femaleBandMaxAge = 60
	maleBandMinAge   = 30
	maleBandMaxAge   = 55
)

var (
	selfEmployedMarkup  = decimal.NewFromInt(2)
	businessOwnerMarkup = decimal.NewFromInt(1)
	midManagerDiscount  = decimal.NewFromInt(-2)
	topManagerDiscount  = decimal.NewFromInt(-3)
	marriedDiscount     = decimal.NewFromInt(-3)
	divorcedMarkup      = decimal.NewFromInt(1)
	ageBandDiscount     = decimal.NewFromInt(-3)
)

// RateEngine prices loans. It has two deliberately separate models: the
// simplified offer rate, which only looks at the insurance and salary-client
// flags, and the scoring rate, which looks at the whole applicant profile.
type RateEngine struct {
	cfg    model.RateConfig
	policy model.RefusalPolicy
}

// NewRateEngine returns a new engine for the given pricing parameters.
func NewRateEngine(cfg model.RateConfig, policy model.RefusalPolicy) *RateEngine {
	return &RateEngine{cfg: cfg, policy: policy}
}

// OfferRate returns the base rate minus the discounts selected by the flags,
// clamped at the rate floor.
func (e *RateEngine) OfferRate(insuranceEnabled, salaryClient bool) decimal.Decimal {
	rate := e.cfg.BaseRate
	if insuranceEnabled {
		rate = rate.Sub(e.cfg.InsuranceDiscount)
	}
	if salaryClient {
		rate = rate.Sub(e.cfg.SalaryClientDiscount)
	}
	return e.cfg.ApplyFloor(rate)
}

// ScoringRate prices a full applicant profile as of the evaluation date.
//
// Adjustments, in order:
//
//	employment     SELF_EMPLOYED +2, BUSINESS_OWNER +1
//	position       MID_MANAGER -2, TOP_MANAGER -3
//	marital status MARRIED -3, DIVORCED +1
//	age/gender     FEMALE 32-60 or MALE 30-55: -3 (when gender bands are enabled)
//	insurance      -InsuranceDiscount
//	salary client  -SalaryClientDiscount
func (e *RateEngine) ScoringRate(profile model.ScoringProfile, evaluationDate model.Date) RateBreakdown {
	var adjustments []RateAdjustment
	add := func(factor string, delta decimal.Decimal) {
		adjustments = append(adjustments, RateAdjustment{Factor: factor, Delta: delta})
	}

	switch profile.Employment.Status {
	case valueobject.EmploymentSelfEmployed:
		add("employment_status", selfEmployedMarkup)
	case valueobject.EmploymentBusinessOwner:
		add("employment_status", businessOwnerMarkup)
	}

	switch profile.Employment.Position {
	case valueobject.PositionMidManager:
		add("position", midManagerDiscount)
	case valueobject.PositionTopManager:
		add("position", topManagerDiscount)
	}

	switch profile.MaritalStatus {
	case valueobject.MaritalMarried:
		add("marital_status", marriedDiscount)
	case valueobject.MaritalDivorced:
		add("marital_status", divorcedMarkup)
	}

	if e.policy.GenderRateBands && inAgeBand(profile, evaluationDate) {
		add("age_gender_band", ageBandDiscount)
	}

	if profile.InsuranceEnabled {
		add("insurance", e.cfg.InsuranceDiscount.Neg())
	}
	if profile.SalaryClient {
		add("salary_client", e.cfg.SalaryClientDiscount.Neg())
	}

	rate := e.cfg.BaseRate
	for _, a := range adjustments {
		rate = rate.Add(a.Delta)
	}
	floored := e.cfg.ApplyFloor(rate)

	return RateBreakdown{
		Base:        e.cfg.BaseRate,
		Adjustments: adjustments,
		Floored:     !floored.Equal(rate),
		Rate:        floored,
	}
}

func inAgeBand(profile model.ScoringProfile, on model.Date) bool {
	age := profile.Birthdate.YearsUntil(on)
	switch profile.Gender {
	case valueobject.GenderFemale:
		return age >= femaleBandMinAge && age <= femaleBandMaxAge
	case valueobject.GenderMale:
		return age >= maleBandMinAge && age <= maleBandMaxAge
	default:
		return false
	}
}
