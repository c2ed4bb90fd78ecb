package service

import (
	"fmt"
	"slices"

	"github.com/bibbank/calculator/internal/domain/model"
)

// offerStrategy is one insurance × salary-client combination.
type offerStrategy struct {
	insuranceEnabled bool
	salaryClient     bool
}

// offerStrategies lists the combinations in evaluation order.
var offerStrategies = [...]offerStrategy{
	{insuranceEnabled: false, salaryClient: true},
	{insuranceEnabled: true, salaryClient: true},
	{insuranceEnabled: false, salaryClient: false},
	{insuranceEnabled: true, salaryClient: false},
}

// OfferGenerator produces the four pre-scoring loan offers.
type OfferGenerator struct {
	cfg   model.RateConfig
	rates *RateEngine
}

// NewOfferGenerator returns a generator pricing offers with rates.
func NewOfferGenerator(cfg model.RateConfig, rates *RateEngine) *OfferGenerator {
	return &OfferGenerator{cfg: cfg, rates: rates}
}

// Generate prices one offer per strategy and returns them ordered by rate,
// highest first. Offers with equal rates keep strategy order. A failure in
// any strategy fails the whole call.
func (g *OfferGenerator) Generate(req model.LoanRequest) ([]model.LoanOffer, error) {
	offers := make([]model.LoanOffer, 0, len(offerStrategies))

	for _, s := range offerStrategies {
		offer, err := g.price(req, s)
		if err != nil {
			return nil, fmt.Errorf("price offer (insurance=%t, salary client=%t): %w",
				s.insuranceEnabled, s.salaryClient, err)
		}
		offers = append(offers, offer)
	}

	slices.SortStableFunc(offers, func(a, b model.LoanOffer) int {
		return b.Rate.Cmp(a.Rate)
	})
	return offers, nil
}

func (g *OfferGenerator) price(req model.LoanRequest, s offerStrategy) (model.LoanOffer, error) {
	rate := g.rates.OfferRate(s.insuranceEnabled, s.salaryClient)

	total := req.Amount
	if s.insuranceEnabled {
		total = total.Add(g.cfg.InsuranceCost)
	}

	payment, err := model.MonthlyPayment(total, rate, req.Term)
	if err != nil {
		return model.LoanOffer{}, err
	}

	return model.LoanOffer{
		RequestedAmount:  req.Amount,
		TotalAmount:      total,
		Term:             req.Term,
		MonthlyPayment:   payment,
		Rate:             rate,
		InsuranceEnabled: s.insuranceEnabled,
		SalaryClient:     s.salaryClient,
	}, nil
}
