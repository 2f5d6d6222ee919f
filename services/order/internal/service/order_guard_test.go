package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_orders/internal/models"
	"github.com/Skotchmaster/shop_orders/pkg/events/eventstest"
	"github.com/Skotchmaster/shop_orders/services/order/internal/repo"
)

// lostRaceTx reports enough stock on read but loses the guarded decrement,
// which is what a concurrent buyer committing first looks like.
type lostRaceTx struct {
	product    models.Product
	decrements int
	created    bool
}

func (s *lostRaceTx) LockProduct(_ context.Context, id uint) (*models.Product, error) {
	p := s.product
	p.ID = id
	return &p, nil
}

func (s *lostRaceTx) DecrementStock(context.Context, uint, int) (bool, error) {
	s.decrements++
	return false, nil
}

func (s *lostRaceTx) CreateOrder(context.Context, *models.Order) error {
	s.created = true
	return nil
}

func (s *lostRaceTx) FindOrder(context.Context, uint) (*models.Order, error) {
	return nil, errors.New("unexpected FindOrder")
}

type stubStore struct {
	tx repo.TxStore
}

func (s *stubStore) WithinTx(_ context.Context, fn func(tx repo.TxStore) error) error {
	return fn(s.tx)
}

func (s *stubStore) ListByUser(context.Context, uint) ([]models.Order, error) { return nil, nil }
func (s *stubStore) ListAll(context.Context) ([]models.Order, error)          { return nil, nil }
func (s *stubStore) DeleteOrder(context.Context, uint) error                  { return nil }

func TestPlaceOrder_GuardedDecrementLost(t *testing.T) {
	tx := &lostRaceTx{product: models.Product{Name: "Last One", Price: decimal.NewFromInt(10), Stock: 1}}
	rec := &eventstest.Recorder{}
	svc := NewOrderService(&stubStore{tx: tx}, rec, "order_events", time.Second)

	_, err := svc.PlaceOrder(context.Background(), alice.ID, []LineItem{{ProductID: 9, Quantity: 1}})
	require.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Last One", stockErr.ProductName)

	assert.Equal(t, 1, tx.decrements)
	assert.False(t, tx.created, "order must not be written after a lost decrement")
	assert.Empty(t, rec.Messages())
}
