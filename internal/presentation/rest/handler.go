package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

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

// Error codes carried in dto.ErrorResponse.Code.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeComputation = "COMPUTATION_ERROR"
	CodeMalformed   = "MALFORMED_REQUEST"
	CodeInternal    = "INTERNAL_ERROR"
)

// CalculatorHandler serves the calculator endpoints.
type CalculatorHandler struct {
	offers OffersCalculator
	credit CreditCalculator
	logger *slog.Logger
}

func NewCalculatorHandler(offers OffersCalculator, credit CreditCalculator, logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		offers: offers,
		credit: credit,
		logger: logger,
	}
}

// CalculateOffers handles POST /calculator/offers.
func (h *CalculatorHandler) CalculateOffers(c *gin.Context) {
	var req dto.LoanOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.malformed(c, err)
		return
	}

	offers, err := h.offers.Execute(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

// CalculateCredit handles POST /calculator/calc.
func (h *CalculatorHandler) CalculateCredit(c *gin.Context) {
	var req dto.ScoringDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.malformed(c, err)
		return
	}

	credit, err := h.credit.Execute(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, credit)
}

func (h *CalculatorHandler) malformed(c *gin.Context, err error) {
	h.logger.WarnContext(c.Request.Context(), "malformed request body",
		"path", c.FullPath(),
		"error", err,
	)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: "malformed request body",
		Code:    CodeMalformed,
	})
}

func (h *CalculatorHandler) fail(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), "calculation failed",
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.AbortWithStatusJSON(status, body)
}

// errorResponse maps a use case error to an HTTP status and body.
func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		validation  *model.ValidationError
		refusal     *model.RefusalError
		computation *model.ComputationError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, dto.ErrorResponse{Message: validation.Message, Code: CodeValidation}
	case errors.As(err, &refusal):
		return http.StatusBadRequest, dto.ErrorResponse{Message: refusal.Reason, Code: string(refusal.Code)}
	case errors.As(err, &computation):
		return http.StatusBadRequest, dto.ErrorResponse{Message: computation.Error(), Code: CodeComputation}
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error", Code: CodeInternal}
	}
}
