package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/calculator/internal/application/dto"
	"github.com/bibbank/calculator/internal/application/usecase"
	"github.com/bibbank/calculator/internal/application/validation"
	"github.com/bibbank/calculator/internal/domain/event"
	"github.com/bibbank/calculator/internal/domain/model"
	"github.com/bibbank/calculator/internal/domain/port"
	"github.com/bibbank/calculator/internal/domain/service"
)

var evaluationTime = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func newCreditUseCase(pub *mockEventPublisher, rec *mockDecisionRecorder) *usecase.CalculateCreditUseCase {
	cfg := model.DefaultRateConfig()
	policy := model.DefaultRefusalPolicy()
	logger := testLogger()
	engine := service.NewCreditEngine(cfg,
		service.NewRateEngine(cfg, policy),
		service.NewRefusalRuleChain(policy, logger),
		logger,
	)
	clock := func() time.Time { return evaluationTime }
	v := validation.New(model.DefaultValidationLimits(), clock)
	return usecase.NewCalculateCreditUseCase(v, engine, pub, rec, logger, clock)
}

func validScoringRequest() dto.ScoringDataRequest {
	return dto.ScoringDataRequest{
		Amount:         decimal.NewFromInt(1_000_000),
		Term:           12,
		FirstName:      "Anna",
		LastName:       "Petrova",
		Gender:         "FEMALE",
		Birthdate:      model.NewDate(1984, time.January, 15),
		PassportSeries: "4510",
		PassportNumber: "123456",
		MaritalStatus:  "MARRIED",
		Employment: &dto.EmploymentRequest{
			EmploymentStatus:      "EMPLOYED",
			Salary:                decimal.NewFromInt(50_000),
			Position:              "WORKER",
			WorkExperienceTotal:   120,
			WorkExperienceCurrent: 24,
		},
	}
}

func TestCalculateCredit(t *testing.T) {
	t.Run("approves and schedules credit", func(t *testing.T) {
		pub := &mockEventPublisher{}
		rec := &mockDecisionRecorder{}
		rec.On("RecordCredit", mock.Anything, port.OutcomeApproved, "", mock.Anything).Once()

		uc := newCreditUseCase(pub, rec)
		resp, err := uc.Execute(context.Background(), validScoringRequest())
		require.NoError(t, err)

		assert.Equal(t, "1000000", resp.Amount.String())
		assert.Equal(t, "9", resp.Rate.String())
		assert.Equal(t, "87451.48", resp.MonthlyPayment.StringFixed(2))
		assert.Equal(t, "1049417.76", resp.PSK.StringFixed(2))
		require.Len(t, resp.PaymentSchedule, 12)
		assert.Equal(t, "2024-07-01", resp.PaymentSchedule[0].Date.String())
		assert.True(t, resp.PaymentSchedule[11].RemainingDebt.IsZero())

		require.Len(t, pub.publishedEvents, 1)
		approved, ok := pub.publishedEvents[0].(event.CreditApproved)
		require.True(t, ok)
		assert.Equal(t, event.AggregateCreditCalculation, approved.AggregateType())
		assert.Equal(t, "9", approved.Rate.String())
		assert.True(t, approved.OccurredAt().Equal(evaluationTime))

		rec.AssertExpectations(t)
	})

	t.Run("refuses ineligible applicant", func(t *testing.T) {
		pub := &mockEventPublisher{}
		rec := &mockDecisionRecorder{}
		rec.On("RecordCredit", mock.Anything, port.OutcomeRefused, string(model.RefusalAgeOutOfRange), mock.Anything).Once()

		req := validScoringRequest()
		req.Birthdate = model.NewDate(1950, time.January, 1)

		uc := newCreditUseCase(pub, rec)
		_, err := uc.Execute(context.Background(), req)
		require.Error(t, err)

		var refusal *model.RefusalError
		require.True(t, errors.As(err, &refusal))
		assert.Equal(t, model.RefusalAgeOutOfRange, refusal.Code)

		require.Len(t, pub.publishedEvents, 1)
		refused, ok := pub.publishedEvents[0].(event.CreditRefused)
		require.True(t, ok)
		assert.Equal(t, string(model.RefusalAgeOutOfRange), refused.Code)
		rec.AssertExpectations(t)
	})

	t.Run("rejects invalid profile", func(t *testing.T) {
		pub := &mockEventPublisher{}
		rec := &mockDecisionRecorder{}
		rec.On("RecordCredit", mock.Anything, port.OutcomeInvalid, "", mock.Anything).Once()

		req := validScoringRequest()
		req.PassportNumber = "12"

		uc := newCreditUseCase(pub, rec)
		_, err := uc.Execute(context.Background(), req)

		var vErr *model.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "passportNumber", vErr.Field)
		assert.Empty(t, pub.publishedEvents)
		rec.AssertExpectations(t)
	})

	t.Run("identical input yields identical output", func(t *testing.T) {
		rec := &mockDecisionRecorder{}
		rec.On("RecordCredit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

		uc := newCreditUseCase(&mockEventPublisher{}, rec)
		first, err := uc.Execute(context.Background(), validScoringRequest())
		require.NoError(t, err)
		second, err := uc.Execute(context.Background(), validScoringRequest())
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
