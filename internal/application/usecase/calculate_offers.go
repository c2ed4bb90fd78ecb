package usecase

import (
	"context"
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
)

// CalculateOffersUseCase validates a pre-scoring request and returns the
// four ranked loan offers.
type CalculateOffersUseCase struct {
	validator *validation.Validator
	generator *service.OfferGenerator
	cache     port.OfferCache
	publisher port.EventPublisher
	recorder  port.DecisionRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewCalculateOffersUseCase wires dependencies. now stamps the published
// events; nil means time.Now.
func NewCalculateOffersUseCase(
	validator *validation.Validator,
	generator *service.OfferGenerator,
	cache port.OfferCache,
	publisher port.EventPublisher,
	recorder port.DecisionRecorder,
	logger *slog.Logger,
	now func() time.Time,
) *CalculateOffersUseCase {
	if now == nil {
		now = time.Now
	}
	return &CalculateOffersUseCase{
		validator: validator,
		generator: generator,
		cache:     cache,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		now:       now,
	}
}

// Execute validates the request and prices the offers, serving them from the
// cache when possible. Cache and event failures are logged, not returned.
func (uc *CalculateOffersUseCase) Execute(
	ctx context.Context,
	req dto.LoanOfferRequest,
) ([]dto.LoanOfferResponse, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "CalculateOffers")
	defer span.End()

	// 1. Validate.
	if err := uc.validator.Struct(req); err != nil {
		uc.logger.WarnContext(ctx, "offer request rejected", "error", err)
		uc.recorder.RecordOffers(ctx, port.OutcomeInvalid, false, time.Since(start))
		return nil, fail(span, fmt.Errorf("validate offer request: %w", err))
	}

	loanReq := toLoanRequest(req)
	span.SetAttributes(
		attribute.String("loan.amount", loanReq.Amount.String()),
		attribute.Int("loan.term", loanReq.Term),
	)

	// 2. Look up cached offers.
	offers, cached := uc.lookup(ctx, loanReq)

	// 3. Generate on a miss.
	if !cached {
		var err error
		offers, err = uc.generator.Generate(loanReq)
		if err != nil {
			uc.recorder.RecordOffers(ctx, port.OutcomeError, false, time.Since(start))
			return nil, fail(span, fmt.Errorf("generate offers: %w", err))
		}

		// 4. Store for later requests.
		if err := uc.cache.Set(ctx, loanReq.Amount, loanReq.Term, offers); err != nil {
			uc.logger.WarnContext(ctx, "offer cache store failed", "error", err)
		}
	}
	span.SetAttributes(attribute.Bool("offers.cached", cached))

	// 5. Publish domain event.
	uc.publish(ctx, event.NewOffersCalculated(
		uuid.NewString(), loanReq.Amount, loanReq.Term, len(offers),
		offers[len(offers)-1].Rate, offers[0].Rate, cached, uc.now(),
	))

	uc.recorder.RecordOffers(ctx, port.OutcomeApproved, cached, time.Since(start))
	uc.logger.InfoContext(ctx, "offers calculated",
		"amount", loanReq.Amount.String(),
		"term", loanReq.Term,
		"cached", cached,
	)

	return toOfferResponses(offers), nil
}

func (uc *CalculateOffersUseCase) lookup(ctx context.Context, req model.LoanRequest) ([]model.LoanOffer, bool) {
	offers, ok, err := uc.cache.Get(ctx, req.Amount, req.Term)
	if err != nil {
		uc.logger.WarnContext(ctx, "offer cache lookup failed", "error", err)
		return nil, false
	}
	if !ok || len(offers) == 0 {
		return nil, false
	}
	return offers, true
}

func (uc *CalculateOffersUseCase) publish(ctx context.Context, evts ...event.DomainEvent) {
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		uc.logger.WarnContext(ctx, "publish events failed", "error", err)
	}
}

func toLoanRequest(req dto.LoanOfferRequest) model.LoanRequest {
	return model.LoanRequest{
		Amount:           req.Amount,
		Term:             req.Term,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		MiddleName:       req.MiddleName,
		Email:            req.Email,
		Birthdate:        req.Birthdate,
		InsuranceEnabled: req.IsInsuranceEnabled,
		SalaryClient:     req.IsSalaryClient,
	}
}

func toOfferResponses(offers []model.LoanOffer) []dto.LoanOfferResponse {
	out := make([]dto.LoanOfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, dto.LoanOfferResponse{
			RequestedAmount:    o.RequestedAmount,
			TotalAmount:        o.TotalAmount,
			Term:               o.Term,
			MonthlyPayment:     o.MonthlyPayment,
			Rate:               o.Rate,
			IsInsuranceEnabled: o.InsuranceEnabled,
			IsSalaryClient:     o.SalaryClient,
		})
	}
	return out
}
