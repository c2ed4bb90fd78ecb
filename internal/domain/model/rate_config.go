package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// RateConfig holds the pricing parameters every calculation is run against.
// It is built once at startup and passed by value.
type RateConfig struct {
	BaseRate             decimal.Decimal // annual percent
	InsuranceCost        decimal.Decimal // flat fee added to the principal
	InsuranceDiscount    decimal.Decimal // percentage points
	SalaryClientDiscount decimal.Decimal // percentage points
	RateFloor            decimal.Decimal // lowest annual rate ever returned
}

// DefaultRateConfig returns the stock pricing parameters.
func DefaultRateConfig() RateConfig {
	return RateConfig{
		BaseRate:             decimal.NewFromInt(15),
		InsuranceCost:        decimal.NewFromInt(100000),
		InsuranceDiscount:    decimal.NewFromInt(3),
		SalaryClientDiscount: decimal.NewFromInt(1),
		RateFloor:            decimal.NewFromInt(1),
	}
}

// Validate checks the pricing parameters for internal consistency.
func (c RateConfig) Validate() error {
	if !c.BaseRate.IsPositive() {
		return errors.New("base rate must be positive")
	}
	if c.InsuranceCost.IsNegative() {
		return errors.New("insurance cost must not be negative")
	}
	if c.InsuranceDiscount.IsNegative() || c.SalaryClientDiscount.IsNegative() {
		return errors.New("rate discounts must not be negative")
	}
	if c.RateFloor.IsNegative() {
		return errors.New("rate floor must not be negative")
	}
	if c.RateFloor.GreaterThan(c.BaseRate) {
		return fmt.Errorf("rate floor %s exceeds base rate %s", c.RateFloor, c.BaseRate)
	}
	return nil
}

// ApplyFloor raises rate to the configured floor when it falls below it.
func (c RateConfig) ApplyFloor(rate decimal.Decimal) decimal.Decimal {
	if rate.LessThan(c.RateFloor) {
		return c.RateFloor
	}
	return rate
}

// Fingerprint identifies the pricing parameters. Offers computed under one
// fingerprint are not valid under another.
func (c RateConfig) Fingerprint() string {
	return fmt.Sprintf("%s:%s:%s:%s:%s",
		c.BaseRate, c.InsuranceCost, c.InsuranceDiscount, c.SalaryClientDiscount, c.RateFloor)
}

// RefusalPolicy toggles the gender-based rules of the scoring engine.
type RefusalPolicy struct {
	// RejectNonBinary refuses NON_BINARY applicants outright.
	RejectNonBinary bool
	// GenderRateBands applies the gender and age rate adjustments.
	GenderRateBands bool
}

// DefaultRefusalPolicy enables both gender rules.
func DefaultRefusalPolicy() RefusalPolicy {
	return RefusalPolicy{RejectNonBinary: true, GenderRateBands: true}
}

// ValidationLimits bounds the loan parameters accepted at the input boundary.
type ValidationLimits struct {
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal // zero disables the upper bound
	MinTerm   int
	MaxTerm   int
}

// DefaultValidationLimits returns the stock input bounds.
func DefaultValidationLimits() ValidationLimits {
	return ValidationLimits{
		MinAmount: decimal.NewFromInt(10000),
		MaxAmount: decimal.NewFromInt(100_000_000),
		MinTerm:   6,
		MaxTerm:   600,
	}
}
