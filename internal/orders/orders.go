// Package orders is a self-contained demonstration of request deduplication:
// creating an order twice with the same idempotency key returns the first
// response instead of a second order. It is unrelated to the retrieval core.
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Order struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateOrderRequest struct {
	CustomerID  string `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// IdempotencyStore records the first response seen for a key. PutIfAbsent is
// atomic: exactly one concurrent caller stores, the rest read the winner.
type IdempotencyStore interface {
	PutIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (existing []byte, stored bool, err error)
}

type Service struct {
	store IdempotencyStore
	ttl   time.Duration
	log   zerolog.Logger
}

func NewService(store IdempotencyStore, ttl time.Duration, log zerolog.Logger) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{store: store, ttl: ttl, log: log}
}

// CreateOrder creates an order, deduplicated by idempotencyKey. The second
// return value reports whether a stored response was replayed.
func (s *Service) CreateOrder(ctx context.Context, idempotencyKey string, req CreateOrderRequest) (Order, bool, error) {
	if idempotencyKey == "" {
		return Order{}, false, fmt.Errorf("orders: idempotency key is required")
	}
	if req.CustomerID == "" || req.AmountCents <= 0 {
		return Order{}, false, fmt.Errorf("orders: customer id and positive amount are required")
	}

	order := Order{
		ID:          uuid.NewString(),
		CustomerID:  req.CustomerID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Status:      "created",
		CreatedAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return Order{}, false, fmt.Errorf("orders: failed to marshal order: %w", err)
	}

	existing, stored, err := s.store.PutIfAbsent(ctx, "orders:idem:"+idempotencyKey, payload, s.ttl)
	if err != nil {
		return Order{}, false, fmt.Errorf("orders: idempotency store failed: %w", err)
	}
	if stored {
		s.log.Info().Str("order_id", order.ID).Str("key", idempotencyKey).Msg("order created")
		return order, false, nil
	}

	var replayed Order
	if err := json.Unmarshal(existing, &replayed); err != nil {
		return Order{}, false, fmt.Errorf("orders: stored response is unreadable: %w", err)
	}
	s.log.Info().Str("order_id", replayed.ID).Str("key", idempotencyKey).Msg("duplicate request, replaying stored order")
	return replayed, true, nil
}
