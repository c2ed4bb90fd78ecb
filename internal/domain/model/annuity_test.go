package model_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/calculator/internal/domain/model"
)

func TestMonthlyRate(t *testing.T) {
	assert.Equal(t, "0.01", model.MonthlyRate(decimal.NewFromInt(12)).String())
	assert.Equal(t, "0.0075", model.MonthlyRate(decimal.NewFromInt(9)).String())
	assert.Equal(t, "0.0141666667", model.MonthlyRate(decimal.NewFromInt(17)).String())
}

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      int64
		term      int
		want      string
	}{
		{"12 percent over a year", 100000, 12, 12, "8884.88"},
		{"9 percent over a year", 1000000, 9, 12, "87451.48"},
		{"17 percent over two years", 500000, 17, 24, "24721.13"},
		{"14 percent with insurance", 550000, 14, 24, "26407.09"},
		{"short term", 1000000, 15, 6, "174033.81"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.MonthlyPayment(decimal.NewFromInt(tt.principal), decimal.NewFromInt(tt.rate), tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestMonthlyPayment_CoversPrincipal(t *testing.T) {
	for _, term := range []int{1, 6, 12, 60, 240, 600} {
		for _, rate := range []string{"0.5", "1", "9.75", "15", "35"} {
			principal := decimal.RequireFromString("123456.78")
			payment, err := model.MonthlyPayment(principal, decimal.RequireFromString(rate), term)
			require.NoError(t, err)
			assert.True(t, payment.Mul(decimal.NewFromInt(int64(term))).GreaterThanOrEqual(principal),
				"rate %s term %d: payment %s does not cover principal", rate, term, payment)
		}
	}
}

func TestMonthlyPayment_Errors(t *testing.T) {
	t.Run("zero term", func(t *testing.T) {
		_, err := model.MonthlyPayment(decimal.NewFromInt(100000), decimal.NewFromInt(10), 0)
		require.Error(t, err)
		var compErr *model.ComputationError
		require.True(t, errors.As(err, &compErr))
		assert.ErrorIs(t, err, model.ErrInvalidTerm)
	})

	t.Run("negative term", func(t *testing.T) {
		_, err := model.MonthlyPayment(decimal.NewFromInt(100000), decimal.NewFromInt(10), -3)
		assert.ErrorIs(t, err, model.ErrInvalidTerm)
	})

	t.Run("zero rate", func(t *testing.T) {
		_, err := model.MonthlyPayment(decimal.NewFromInt(100000), decimal.Zero, 12)
		assert.ErrorIs(t, err, model.ErrNonPositiveRate)
	})

	t.Run("negative rate", func(t *testing.T) {
		_, err := model.MonthlyPayment(decimal.NewFromInt(100000), decimal.NewFromInt(-2), 12)
		assert.ErrorIs(t, err, model.ErrNonPositiveRate)
	})
}
