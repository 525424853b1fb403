package orders

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCreateOrderDeduplicates(t *testing.T) {
	svc := NewService(NewMemoryStore(), time.Hour, zerolog.Nop())
	req := CreateOrderRequest{CustomerID: "cust-1", AmountCents: 2500, Currency: "EUR"}

	first, replayed, err := svc.CreateOrder(context.Background(), "key-1", req)
	if err != nil {
		t.Fatal(err)
	}
	if replayed {
		t.Error("first request must not be a replay")
	}
	if first.ID == "" || first.Status != "created" {
		t.Errorf("unexpected order: %+v", first)
	}

	second, replayed, err := svc.CreateOrder(context.Background(), "key-1", req)
	if err != nil {
		t.Fatal(err)
	}
	if !replayed {
		t.Error("second request with same key must replay")
	}
	if second.ID != first.ID {
		t.Errorf("replayed order id %s differs from original %s", second.ID, first.ID)
	}
}

func TestCreateOrderDistinctKeys(t *testing.T) {
	svc := NewService(NewMemoryStore(), time.Hour, zerolog.Nop())
	req := CreateOrderRequest{CustomerID: "cust-1", AmountCents: 100, Currency: "USD"}

	a, _, err := svc.CreateOrder(context.Background(), "key-a", req)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := svc.CreateOrder(context.Background(), "key-b", req)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Error("distinct keys must create distinct orders")
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewService(NewMemoryStore(), time.Hour, zerolog.Nop())

	if _, _, err := svc.CreateOrder(context.Background(), "", CreateOrderRequest{CustomerID: "c", AmountCents: 1}); err == nil {
		t.Error("expected error for missing idempotency key")
	}
	if _, _, err := svc.CreateOrder(context.Background(), "k", CreateOrderRequest{CustomerID: "", AmountCents: 1}); err == nil {
		t.Error("expected error for missing customer")
	}
	if _, _, err := svc.CreateOrder(context.Background(), "k", CreateOrderRequest{CustomerID: "c", AmountCents: 0}); err == nil {
		t.Error("expected error for non-positive amount")
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore()

	_, stored, err := store.PutIfAbsent(context.Background(), "k", []byte("v1"), time.Nanosecond)
	if err != nil || !stored {
		t.Fatalf("first put: stored=%v err=%v", stored, err)
	}
	time.Sleep(time.Millisecond)

	_, stored, err = store.PutIfAbsent(context.Background(), "k", []byte("v2"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if !stored {
		t.Error("expired entry should allow a new put")
	}
}
