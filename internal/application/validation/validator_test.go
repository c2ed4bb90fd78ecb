package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/calculator/internal/application/dto"
	"github.com/bibbank/calculator/internal/application/validation"
	"github.com/bibbank/calculator/internal/domain/model"
)

func fixedNow() time.Time {
	return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func newValidator() *validation.Validator {
	return validation.New(model.DefaultValidationLimits(), fixedNow)
}

func validOfferRequest() dto.LoanOfferRequest {
	return dto.LoanOfferRequest{
		Amount:    decimal.NewFromInt(500_000),
		Term:      24,
		FirstName: "Ivan",
		LastName:  "Ivanov",
		Email:     "ivan@example.com",
		Birthdate: model.NewDate(1990, time.May, 20),
	}
}

func validScoringRequest() dto.ScoringDataRequest {
	return dto.ScoringDataRequest{
		Amount:            decimal.NewFromInt(500_000),
		Term:              24,
		FirstName:         "Ivan",
		LastName:          "Ivanov",
		Gender:            "MALE",
		Birthdate:         model.NewDate(1990, time.May, 20),
		PassportSeries:    "4510",
		PassportNumber:    "654321",
		PassportIssueDate: model.NewDate(2010, time.June, 1),
		MaritalStatus:     "SINGLE",
		Employment: &dto.EmploymentRequest{
			EmploymentStatus:      "EMPLOYED",
			EmployerINN:           "7707083893",
			Salary:                decimal.NewFromInt(80_000),
			Position:              "WORKER",
			WorkExperienceTotal:   60,
			WorkExperienceCurrent: 12,
		},
	}
}

func requireValidationError(t *testing.T, err error) *model.ValidationError {
	t.Helper()
	require.Error(t, err)
	var vErr *model.ValidationError
	require.True(t, errors.As(err, &vErr), "expected *model.ValidationError, got %T", err)
	return vErr
}

func TestValidator_ValidRequests(t *testing.T) {
	v := newValidator()
	assert.NoError(t, v.Struct(validOfferRequest()))
	assert.NoError(t, v.Struct(validScoringRequest()))
}

func TestValidator_OfferRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *dto.LoanOfferRequest)
		field   string
		message string
	}{
		{"missing amount", func(r *dto.LoanOfferRequest) { r.Amount = decimal.Decimal{} },
			"amount", "amount is required"},
		{"amount below minimum", func(r *dto.LoanOfferRequest) { r.Amount = decimal.RequireFromString("9999.99") },
			"amount", "amount must be at least 10000"},
		{"amount above maximum", func(r *dto.LoanOfferRequest) { r.Amount = decimal.RequireFromString("100000000.01") },
			"amount", "amount must be at most 100000000"},
		{"term below minimum", func(r *dto.LoanOfferRequest) { r.Term = 5 },
			"term", "term must be at least 6 months"},
		{"term above maximum", func(r *dto.LoanOfferRequest) { r.Term = 601 },
			"term", "term must be at most 600 months"},
		{"missing first name", func(r *dto.LoanOfferRequest) { r.FirstName = "" },
			"firstName", "firstName is required"},
		{"short last name", func(r *dto.LoanOfferRequest) { r.LastName = "I" },
			"lastName", "lastName must be at least 2 characters long"},
		{"long middle name", func(r *dto.LoanOfferRequest) { r.MiddleName = "Abcdefghijabcdefghijabcdefghijx" },
			"middleName", "middleName must be at most 30 characters long"},
		{"bad email", func(r *dto.LoanOfferRequest) { r.Email = "not-an-email" },
			"email", "email must be a valid email address"},
		{"missing birthdate", func(r *dto.LoanOfferRequest) { r.Birthdate = model.Date{} },
			"birthdate", "birthdate is required"},
		{"future birthdate", func(r *dto.LoanOfferRequest) { r.Birthdate = model.NewDate(2024, time.June, 2) },
			"birthdate", "birthdate must not be in the future"},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOfferRequest()
			tt.mutate(&req)

			vErr := requireValidationError(t, v.Struct(req))
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, tt.message, vErr.Message)
		})
	}
}

func TestValidator_Boundaries(t *testing.T) {
	v := newValidator()

	req := validOfferRequest()
	req.Amount = decimal.NewFromInt(10_000)
	req.Term = 6
	req.Birthdate = model.NewDate(2024, time.June, 1)
	assert.NoError(t, v.Struct(req))

	req.Term = 600
	assert.NoError(t, v.Struct(req))

	req.Amount = decimal.NewFromInt(100_000_000)
	assert.NoError(t, v.Struct(req))
}

func TestValidator_ExtremeAmounts(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		message string
	}{
		{"huge exponent", "1e5000000", "amount must be at most 100000000"},
		{"huge negative", "-1e5000000", "amount must be at least 10000"},
		{"tiny exponent", "1e-5000000", "amount must be at least 10000"},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := validOfferRequest()
			offer.Amount = decimal.RequireFromString(tt.amount)
			scoring := validScoringRequest()
			scoring.Amount = offer.Amount

			start := time.Now()
			offerErr := requireValidationError(t, v.Struct(offer))
			scoringErr := requireValidationError(t, v.Struct(scoring))
			assert.Less(t, time.Since(start), time.Second)

			assert.Equal(t, "amount", offerErr.Field)
			assert.Equal(t, tt.message, offerErr.Message)
			assert.Equal(t, tt.message, scoringErr.Message)
		})
	}
}

func TestValidator_ScoringRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *dto.ScoringDataRequest)
		field   string
		message string
	}{
		{"unknown gender", func(r *dto.ScoringDataRequest) { r.Gender = "OTHER" },
			"gender", "gender must be one of [MALE, FEMALE, NON_BINARY]"},
		{"short passport series", func(r *dto.ScoringDataRequest) { r.PassportSeries = "451" },
			"passportSeries", "passportSeries must be exactly 4 characters long"},
		{"non-numeric passport number", func(r *dto.ScoringDataRequest) { r.PassportNumber = "65432a" },
			"passportNumber", "passportNumber must contain only digits"},
		{"future passport issue date", func(r *dto.ScoringDataRequest) { r.PassportIssueDate = model.NewDate(2030, time.January, 1) },
			"passportIssueDate", "passportIssueDate must not be in the future"},
		{"missing marital status", func(r *dto.ScoringDataRequest) { r.MaritalStatus = "" },
			"maritalStatus", "maritalStatus is required"},
		{"negative dependents", func(r *dto.ScoringDataRequest) { r.DependentAmount = -1 },
			"dependentAmount", "dependentAmount must be greater than or equal to 0"},
		{"missing employment", func(r *dto.ScoringDataRequest) { r.Employment = nil },
			"employment", "employment is required"},
		{"zero salary", func(r *dto.ScoringDataRequest) { r.Employment.Salary = decimal.Zero },
			"employment.salary", "employment.salary is required"},
		{"negative salary", func(r *dto.ScoringDataRequest) { r.Employment.Salary = decimal.NewFromInt(-10) },
			"employment.salary", "employment.salary must be greater than 0"},
		{"unknown position", func(r *dto.ScoringDataRequest) { r.Employment.Position = "INTERN" },
			"employment.position", "employment.position must be one of [WORKER, MID_MANAGER, TOP_MANAGER, OWNER]"},
		{"negative experience", func(r *dto.ScoringDataRequest) { r.Employment.WorkExperienceCurrent = -2 },
			"employment.workExperienceCurrent", "employment.workExperienceCurrent must be greater than or equal to 0"},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validScoringRequest()
			tt.mutate(&req)

			vErr := requireValidationError(t, v.Struct(req))
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, tt.message, vErr.Message)
		})
	}
}

func TestValidator_FirstViolationWins(t *testing.T) {
	v := newValidator()
	req := validOfferRequest()
	req.Term = 1
	req.LastName = ""

	vErr := requireValidationError(t, v.Struct(req))
	assert.Equal(t, "term", vErr.Field)
}

func TestValidator_ConfiguredLimits(t *testing.T) {
	v := validation.New(model.ValidationLimits{MinAmount: decimal.NewFromInt(50_000), MinTerm: 12, MaxTerm: 120}, fixedNow)

	req := validOfferRequest()
	req.Amount = decimal.NewFromInt(40_000)
	vErr := requireValidationError(t, v.Struct(req))
	assert.Equal(t, "amount must be at least 50000", vErr.Message)

	req = validOfferRequest()
	req.Term = 121
	vErr = requireValidationError(t, v.Struct(req))
	assert.Equal(t, "term must be at most 120 months", vErr.Message)

	// Zero MaxAmount leaves the amount unbounded.
	req = validOfferRequest()
	req.Amount = decimal.NewFromInt(5_000_000_000)
	assert.NoError(t, v.Struct(req))
}
