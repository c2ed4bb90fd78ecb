package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/bibbank/calculator/internal/domain/model"
	"github.com/bibbank/calculator/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RefusalRuleChain – hard eligibility gates evaluated before pricing
// ---------------------------------------------------------------------------

// Eligibility thresholds.
const (
	MinApplicantAge             = 20
	MaxApplicantAge             = 65
	MinTotalExperienceMonths    = 18
	MinCurrentExperienceMonths  = 3
	maxAmountToSalaryMultiplier = 24
)

var salaryMultiplier = decimal.NewFromInt(maxAmountToSalaryMultiplier)

// Decision is the tagged outcome of an eligibility check.
type Decision struct {
	Code     model.RefusalCode
	Reason   string
	Approved bool
}

// Err returns the refusal as a *model.RefusalError, or nil when approved.
func (d Decision) Err() error {
	if d.Approved {
		return nil
	}
	return &model.RefusalError{Code: d.Code, Reason: d.Reason}
}

// RefusalRule pairs a predicate with the refusal it produces.
type RefusalRule struct {
	Code   model.RefusalCode
	Reason string
	// Refuses reports whether the profile fails this rule.
	Refuses func(profile model.ScoringProfile, evaluationDate model.Date) bool
}

// RefusalRuleChain evaluates its rules in order and stops at the first one
// that refuses.
type RefusalRuleChain struct {
	logger *slog.Logger
	rules  []RefusalRule
}

// NewRefusalRuleChain builds the standard rule chain. The non-binary rule is
// only included when the policy asks for it.
func NewRefusalRuleChain(policy model.RefusalPolicy, logger *slog.Logger) *RefusalRuleChain {
	rules := []RefusalRule{
		{
			Code:   model.RefusalUnemployed,
			Reason: "applicant is unemployed",
			Refuses: func(p model.ScoringProfile, _ model.Date) bool {
				return p.Employment.Status == valueobject.EmploymentUnemployed
			},
		},
		{
			Code:   model.RefusalAmountExceedsSalary,
			Reason: "requested amount exceeds 24 monthly salaries",
			Refuses: func(p model.ScoringProfile, _ model.Date) bool {
				return p.Amount.GreaterThan(p.Employment.Salary.Mul(salaryMultiplier))
			},
		},
		{
			Code:   model.RefusalAgeOutOfRange,
			Reason: "applicant age must be between 20 and 65",
			Refuses: func(p model.ScoringProfile, on model.Date) bool {
				age := p.Birthdate.YearsUntil(on)
				return age < MinApplicantAge || age > MaxApplicantAge
			},
		},
	}

	if policy.RejectNonBinary {
		rules = append(rules, RefusalRule{
			Code:   model.RefusalNonBinaryGender,
			Reason: "applicant gender is not eligible",
			Refuses: func(p model.ScoringProfile, _ model.Date) bool {
				return p.Gender == valueobject.GenderNonBinary
			},
		})
	}

	rules = append(rules,
		RefusalRule{
			Code:   model.RefusalInsufficientTotalExperience,
			Reason: "total work experience is less than 18 months",
			Refuses: func(p model.ScoringProfile, _ model.Date) bool {
				return p.Employment.WorkExperienceTotal < MinTotalExperienceMonths
			},
		},
		RefusalRule{
			Code:   model.RefusalInsufficientCurrentExperience,
			Reason: "current work experience is less than 3 months",
			Refuses: func(p model.ScoringProfile, _ model.Date) bool {
				return p.Employment.WorkExperienceCurrent < MinCurrentExperienceMonths
			},
		},
	)

	return &RefusalRuleChain{logger: logger, rules: rules}
}

// Evaluate runs the rules in order. Rules after the first refusal are not
// evaluated.
func (c *RefusalRuleChain) Evaluate(profile model.ScoringProfile, evaluationDate model.Date) Decision {
	for _, rule := range c.rules {
		c.logger.Debug("checking refusal rule", "rule", string(rule.Code))
		if rule.Refuses(profile, evaluationDate) {
			c.logger.Warn("credit refused", "code", string(rule.Code), "reason", rule.Reason)
			return Decision{Code: rule.Code, Reason: rule.Reason}
		}
	}
	return Decision{Approved: true}
}

// Rules returns the rule codes in evaluation order.
func (c *RefusalRuleChain) Rules() []model.RefusalCode {
	codes := make([]model.RefusalCode, 0, len(c.rules))
	for _, r := range c.rules {
		codes = append(codes, r.Code)
	}
	return codes
}
