package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/calculator/internal/application/dto"
	"github.com/bibbank/calculator/internal/domain/model"
)

// OffersCalculator produces the pre-scoring offers.
type OffersCalculator interface {
	Execute(ctx context.Context, req dto.LoanOfferRequest) ([]dto.LoanOfferResponse, error)
}

// CreditCalculator scores an applicant and prices the credit.
type CreditCalculator interface {
	Execute(ctx context.Context, req dto.ScoringDataRequest) (dto.CreditResponse, error)
}

// CalculatorHandler implements CalculatorServiceServer over the use cases.
type CalculatorHandler struct {
	UnimplementedCalculatorServiceServer
	offers OffersCalculator
	credit CreditCalculator
}

func NewCalculatorHandler(offers OffersCalculator, credit CreditCalculator) *CalculatorHandler {
	return &CalculatorHandler{
		offers: offers,
		credit: credit,
	}
}

func (h *CalculatorHandler) CalculateOffers(ctx context.Context, req *CalculateOffersRequest) (*CalculateOffersResponse, error) {
	offers, err := h.offers.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &CalculateOffersResponse{Offers: offers}, nil
}

func (h *CalculatorHandler) CalculateCredit(ctx context.Context, req *CalculateCreditRequest) (*CalculateCreditResponse, error) {
	credit, err := h.credit.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &CalculateCreditResponse{Credit: credit}, nil
}

// toStatus maps use case errors onto gRPC status codes.
func toStatus(err error) error {
	var (
		validation  *model.ValidationError
		refusal     *model.RefusalError
		computation *model.ComputationError
	)
	switch {
	case errors.As(err, &validation):
		return status.Error(codes.InvalidArgument, validation.Message)
	case errors.As(err, &refusal):
		return status.Errorf(codes.FailedPrecondition, "%s: %s", refusal.Code, refusal.Reason)
	case errors.As(err, &computation):
		return status.Error(codes.InvalidArgument, computation.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
