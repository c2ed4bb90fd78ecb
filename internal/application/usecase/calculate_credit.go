package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bibbank/calculator/internal/application/dto"
	"github.com/bibbank/calculator/internal/application/validation"
	"github.com/bibbank/calculator/internal/domain/event"
	"github.com/bibbank/calculator/internal/domain/model"
	"github.com/bibbank/calculator/internal/domain/port"
	"github.com/bibbank/calculator/internal/domain/service"
	"github.com/bibbank/calculator/internal/domain/valueobject"
)

// CalculateCreditUseCase scores a full applicant profile and returns the
// priced credit with its repayment schedule.
type CalculateCreditUseCase struct {
	validator *validation.Validator
	engine    *service.CreditEngine
	publisher port.EventPublisher
	recorder  port.DecisionRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewCalculateCreditUseCase wires dependencies. now supplies the evaluation
// date; nil means time.Now.
func NewCalculateCreditUseCase(
	validator *validation.Validator,
	engine *service.CreditEngine,
	publisher port.EventPublisher,
	recorder port.DecisionRecorder,
	logger *slog.Logger,
	now func() time.Time,
) *CalculateCreditUseCase {
	if now == nil {
		now = time.Now
	}
	return &CalculateCreditUseCase{
		validator: validator,
		engine:    engine,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		now:       now,
	}
}

// Execute validates the profile, runs the eligibility rules and prices the
// credit. Refusals are returned as *model.RefusalError.
func (uc *CalculateCreditUseCase) Execute(
	ctx context.Context,
	req dto.ScoringDataRequest,
) (dto.CreditResponse, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "CalculateCredit")
	defer span.End()

	// 1. Validate.
	if err := uc.validator.Struct(req); err != nil {
		uc.logger.WarnContext(ctx, "scoring request rejected", "error", err)
		uc.recorder.RecordCredit(ctx, port.OutcomeInvalid, "", time.Since(start))
		return dto.CreditResponse{}, fail(span, fmt.Errorf("validate scoring request: %w", err))
	}

	// 2. Build the domain profile.
	profile, err := toScoringProfile(req)
	if err != nil {
		uc.recorder.RecordCredit(ctx, port.OutcomeInvalid, "", time.Since(start))
		return dto.CreditResponse{}, fail(span, fmt.Errorf("map scoring request: %w", err))
	}

	now := uc.now()
	calculationID := uuid.NewString()
	span.SetAttributes(
		attribute.String("calculation.id", calculationID),
		attribute.String("loan.amount", profile.Amount.String()),
		attribute.Int("loan.term", profile.Term),
	)

	// 3. Score.
	result, err := uc.engine.Calculate(profile, model.DateOf(now))
	if err != nil {
		var refusal *model.RefusalError
		if errors.As(err, &refusal) {
			uc.publish(ctx, event.NewCreditRefused(
				calculationID, string(refusal.Code), refusal.Reason, profile.Amount, profile.Term, now,
			))
			uc.recorder.RecordCredit(ctx, port.OutcomeRefused, string(refusal.Code), time.Since(start))
			span.SetAttributes(attribute.String("credit.refusal_code", string(refusal.Code)))
			return dto.CreditResponse{}, fail(span, err)
		}
		uc.recorder.RecordCredit(ctx, port.OutcomeError, "", time.Since(start))
		return dto.CreditResponse{}, fail(span, fmt.Errorf("score credit: %w", err))
	}

	// 4. Publish domain event.
	uc.publish(ctx, event.NewCreditApproved(
		calculationID, result.Amount, result.Term, result.Rate, result.MonthlyPayment, result.PSK,
		result.InsuranceEnabled, result.SalaryClient, now,
	))

	uc.recorder.RecordCredit(ctx, port.OutcomeApproved, "", time.Since(start))
	uc.logger.InfoContext(ctx, "credit calculated",
		"calculation_id", calculationID,
		"rate", result.Rate.String(),
		"monthly_payment", result.MonthlyPayment.String(),
		"psk", result.PSK.String(),
	)

	return toCreditResponse(result), nil
}

func (uc *CalculateCreditUseCase) publish(ctx context.Context, evts ...event.DomainEvent) {
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		uc.logger.WarnContext(ctx, "publish events failed", "error", err)
	}
}

func toScoringProfile(req dto.ScoringDataRequest) (model.ScoringProfile, error) {
	gender, err := valueobject.NewGender(req.Gender)
	if err != nil {
		return model.ScoringProfile{}, &model.ValidationError{Field: "gender", Message: err.Error()}
	}
	marital, err := valueobject.NewMaritalStatus(req.MaritalStatus)
	if err != nil {
		return model.ScoringProfile{}, &model.ValidationError{Field: "maritalStatus", Message: err.Error()}
	}
	if req.Employment == nil {
		return model.ScoringProfile{}, &model.ValidationError{Field: "employment", Message: "employment is required"}
	}
	status, err := valueobject.NewEmploymentStatus(req.Employment.EmploymentStatus)
	if err != nil {
		return model.ScoringProfile{}, &model.ValidationError{Field: "employment.employmentStatus", Message: err.Error()}
	}
	position, err := valueobject.NewPosition(req.Employment.Position)
	if err != nil {
		return model.ScoringProfile{}, &model.ValidationError{Field: "employment.position", Message: err.Error()}
	}

	return model.ScoringProfile{
		LoanRequest: model.LoanRequest{
			Amount:           req.Amount,
			Term:             req.Term,
			FirstName:        req.FirstName,
			LastName:         req.LastName,
			MiddleName:       req.MiddleName,
			Birthdate:        req.Birthdate,
			InsuranceEnabled: req.IsInsuranceEnabled,
			SalaryClient:     req.IsSalaryClient,
		},
		Gender:              gender,
		PassportSeries:      req.PassportSeries,
		PassportNumber:      req.PassportNumber,
		PassportIssueDate:   req.PassportIssueDate,
		PassportIssueBranch: req.PassportIssueBranch,
		MaritalStatus:       marital,
		DependentAmount:     req.DependentAmount,
		Employment: model.EmploymentRecord{
			Status:                status,
			EmployerINN:           req.Employment.EmployerINN,
			Salary:                req.Employment.Salary,
			Position:              position,
			WorkExperienceTotal:   req.Employment.WorkExperienceTotal,
			WorkExperienceCurrent: req.Employment.WorkExperienceCurrent,
		},
		AccountNumber: req.AccountNumber,
	}, nil
}

func toCreditResponse(result model.CreditResult) dto.CreditResponse {
	schedule := make([]dto.PaymentScheduleEntryResponse, 0, len(result.PaymentSchedule))
	for _, e := range result.PaymentSchedule {
		schedule = append(schedule, dto.PaymentScheduleEntryResponse{
			Number:          e.Number,
			Date:            e.Date,
			TotalPayment:    e.TotalPayment,
			InterestPayment: e.InterestPayment,
			DebtPayment:     e.DebtPayment,
			RemainingDebt:   e.RemainingDebt,
		})
	}

	return dto.CreditResponse{
		Amount:             result.Amount,
		Term:               result.Term,
		MonthlyPayment:     result.MonthlyPayment,
		Rate:               result.Rate,
		PSK:                result.PSK,
		IsInsuranceEnabled: result.InsuranceEnabled,
		IsSalaryClient:     result.SalaryClient,
		PaymentSchedule:    schedule,
	}
}
