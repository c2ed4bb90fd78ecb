package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bibbank/calculator/internal/domain/model"
	"github.com/bibbank/calculator/internal/domain/service"
	"github.com/bibbank/calculator/internal/domain/valueobject"
)

func TestRateEngine_OfferRate(t *testing.T) {
	engine := service.NewRateEngine(model.DefaultRateConfig(), model.DefaultRefusalPolicy())

	assert.Equal(t, "15", engine.OfferRate(false, false).String())
	assert.Equal(t, "12", engine.OfferRate(true, false).String())
	assert.Equal(t, "14", engine.OfferRate(false, true).String())
	assert.Equal(t, "11", engine.OfferRate(true, true).String())
}

func TestRateEngine_OfferRateFloor(t *testing.T) {
	cfg := model.DefaultRateConfig()
	cfg.BaseRate = decimal.NewFromInt(2)
	engine := service.NewRateEngine(cfg, model.DefaultRefusalPolicy())

	assert.Equal(t, "1", engine.OfferRate(true, true).String())
}

func TestRateEngine_ScoringRate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.ScoringProfile)
		want   string
	}{
		{
			name:   "married woman in age band",
			mutate: func(p *model.ScoringProfile) {},
			want:   "9",
		},
		{
			name: "self-employed top manager, divorced man outside band",
			mutate: func(p *model.ScoringProfile) {
				p.Employment.Status = valueobject.EmploymentSelfEmployed
				p.Employment.Position = valueobject.PositionTopManager
				p.MaritalStatus = valueobject.MaritalDivorced
				p.Gender = valueobject.GenderMale
				p.Birthdate = model.NewDate(1999, time.January, 1)
			},
			want: "15",
		},
		{
			name: "business owner mid manager, single man aged 30",
			mutate: func(p *model.ScoringProfile) {
				p.Employment.Status = valueobject.EmploymentBusinessOwner
				p.Employment.Position = valueobject.PositionMidManager
				p.MaritalStatus = valueobject.MaritalSingle
				p.Gender = valueobject.GenderMale
				p.Birthdate = model.NewDate(1994, time.June, 1)
			},
			want: "11",
		},
		{
			name: "woman aged 31 is outside band",
			mutate: func(p *model.ScoringProfile) {
				p.Birthdate = model.NewDate(1992, time.June, 2)
			},
			want: "12",
		},
		{
			name: "woman aged 60 is inside band",
			mutate: func(p *model.ScoringProfile) {
				p.Birthdate = model.NewDate(1964, time.June, 1)
			},
			want: "9",
		},
		{
			name: "man aged 56 is outside band",
			mutate: func(p *model.ScoringProfile) {
				p.Gender = valueobject.GenderMale
				p.Birthdate = model.NewDate(1968, time.May, 1)
			},
			want: "12",
		},
		{
			name: "non-binary applicant gets no band",
			mutate: func(p *model.ScoringProfile) {
				p.Gender = valueobject.GenderNonBinary
			},
			want: "12",
		},
		{
			name: "insurance and salary client discounts",
			mutate: func(p *model.ScoringProfile) {
				p.InsuranceEnabled = true
				p.SalaryClient = true
			},
			want: "5",
		},
	}

	engine := service.NewRateEngine(model.DefaultRateConfig(), model.DefaultRefusalPolicy())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := eligibleProfile()
			tt.mutate(&profile)

			got := engine.ScoringRate(profile, evaluationDate)
			assert.Equal(t, tt.want, got.Rate.String())
			assert.False(t, got.Floored)
		})
	}
}

func TestRateEngine_ScoringRateBreakdown(t *testing.T) {
	engine := service.NewRateEngine(model.DefaultRateConfig(), model.DefaultRefusalPolicy())
	profile := eligibleProfile()
	profile.SalaryClient = true

	got := engine.ScoringRate(profile, evaluationDate)

	factors := make([]string, 0, len(got.Adjustments))
	for _, a := range got.Adjustments {
		factors = append(factors, a.Factor)
	}
	assert.Equal(t, []string{"marital_status", "age_gender_band", "salary_client"}, factors)
	assert.Equal(t, "15", got.Base.String())
	assert.Equal(t, "8", got.Rate.String())
}

func TestRateEngine_GenderBandsDisabled(t *testing.T) {
	policy := model.RefusalPolicy{RejectNonBinary: true, GenderRateBands: false}
	engine := service.NewRateEngine(model.DefaultRateConfig(), policy)

	got := engine.ScoringRate(eligibleProfile(), evaluationDate)
	assert.Equal(t, "12", got.Rate.String())
}

func TestRateEngine_ScoringRateFloor(t *testing.T) {
	cfg := model.DefaultRateConfig()
	cfg.BaseRate = decimal.NewFromInt(5)
	engine := service.NewRateEngine(cfg, model.DefaultRefusalPolicy())

	profile := eligibleProfile()
	profile.Employment.Position = valueobject.PositionTopManager
	profile.InsuranceEnabled = true
	profile.SalaryClient = true

	got := engine.ScoringRate(profile, evaluationDate)
	assert.True(t, got.Floored)
	assert.Equal(t, "1", got.Rate.String())
}
