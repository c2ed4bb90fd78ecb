package usecase_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/bibbank/calculator/internal/domain/event"
	"github.com/bibbank/calculator/internal/domain/model"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockOfferCache struct {
	getFunc func(ctx context.Context, amount decimal.Decimal, term int) ([]model.LoanOffer, bool, error)
	setFunc func(ctx context.Context, amount decimal.Decimal, term int, offers []model.LoanOffer) error
	stored  [][]model.LoanOffer
}

func (m *mockOfferCache) Get(ctx context.Context, amount decimal.Decimal, term int) ([]model.LoanOffer, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, amount, term)
	}
	return nil, false, nil
}

func (m *mockOfferCache) Set(ctx context.Context, amount decimal.Decimal, term int, offers []model.LoanOffer) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, amount, term, offers)
	}
	m.stored = append(m.stored, offers)
	return nil
}

type mockDecisionRecorder struct {
	mock.Mock
}

func (m *mockDecisionRecorder) RecordOffers(ctx context.Context, outcome string, cached bool, elapsed time.Duration) {
	m.Called(ctx, outcome, cached, elapsed)
}

func (m *mockDecisionRecorder) RecordCredit(ctx context.Context, outcome string, refusalCode string, elapsed time.Duration) {
	m.Called(ctx, outcome, refusalCode, elapsed)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}
