package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/calculator/internal/domain/event"
	"github.com/bibbank/calculator/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Cache port
// ---------------------------------------------------------------------------

// OfferCache stores computed offers. Offers depend only on the requested
// amount and term under a given rate configuration.
type OfferCache interface {
	// Get returns the cached offers and true on a hit.
	Get(ctx context.Context, amount decimal.Decimal, term int) ([]model.LoanOffer, bool, error)
	Set(ctx context.Context, amount decimal.Decimal, term int, offers []model.LoanOffer) error
}

// ---------------------------------------------------------------------------
// Metrics port
// ---------------------------------------------------------------------------

// Credit decision outcomes.
const (
	OutcomeApproved = "approved"
	OutcomeRefused  = "refused"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// DecisionRecorder records calculation metrics.
type DecisionRecorder interface {
	RecordOffers(ctx context.Context, outcome string, cached bool, elapsed time.Duration)
	RecordCredit(ctx context.Context, outcome string, refusalCode string, elapsed time.Duration)
}
