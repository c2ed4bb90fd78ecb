package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/bibbank/calculator/internal/domain/model"
)

const keyPrefix = "calculator:offers"

// cachedOffer is the stored form of model.LoanOffer.
type cachedOffer struct {
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Term             int             `json:"term"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	Rate             decimal.Decimal `json:"rate"`
	InsuranceEnabled bool            `json:"insurance_enabled"`
	SalaryClient     bool            `json:"salary_client"`
}

// RedisOfferCache implements port.OfferCache on Redis. Keys are namespaced
// by the rate configuration fingerprint so a config change never serves
// offers priced under the old rates.
type RedisOfferCache struct {
	client    redis.UniversalClient
	ttl       time.Duration
	namespace string
}

func NewRedisOfferCache(client redis.UniversalClient, ttl time.Duration, namespace string) *RedisOfferCache {
	return &RedisOfferCache{
		client:    client,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Key returns the cache key for an amount and term.
func (c *RedisOfferCache) Key(amount decimal.Decimal, term int) string {
	if c.namespace == "" {
		return fmt.Sprintf("%s:%s:%d", keyPrefix, amount.String(), term)
	}
	return fmt.Sprintf("%s:%s:%s:%d", keyPrefix, c.namespace, amount.String(), term)
}

func (c *RedisOfferCache) Get(ctx context.Context, amount decimal.Decimal, term int) ([]model.LoanOffer, bool, error) {
	raw, err := c.client.Get(ctx, c.Key(amount, term)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached offers: %w", err)
	}

	var stored []cachedOffer
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, false, fmt.Errorf("decode cached offers: %w", err)
	}

	offers := make([]model.LoanOffer, len(stored))
	for i, o := range stored {
		offers[i] = model.LoanOffer(o)
	}
	return offers, true, nil
}

func (c *RedisOfferCache) Set(ctx context.Context, amount decimal.Decimal, term int, offers []model.LoanOffer) error {
	stored := make([]cachedOffer, len(offers))
	for i, o := range offers {
		stored[i] = cachedOffer(o)
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode offers: %w", err)
	}
	if err := c.client.Set(ctx, c.Key(amount, term), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached offers: %w", err)
	}
	return nil
}

// NoopOfferCache never hits and discards writes.
type NoopOfferCache struct{}

func (NoopOfferCache) Get(context.Context, decimal.Decimal, int) ([]model.LoanOffer, bool, error) {
	return nil, false, nil
}

func (NoopOfferCache) Set(context.Context, decimal.Decimal, int, []model.LoanOffer) error {
	return nil
}
