package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_orders/internal/models"
	"github.com/Skotchmaster/shop_orders/internal/policy"
	"github.com/Skotchmaster/shop_orders/pkg/events"
	"github.com/Skotchmaster/shop_orders/pkg/logging"
	"github.com/Skotchmaster/shop_orders/services/order/internal/repo"
)

type LineItem struct {
	ProductID uint
	Quantity  int
}

type Store interface {
	WithinTx(ctx context.Context, fn func(tx repo.TxStore) error) error
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}

type OrderService struct {
	repo      Store
	events    events.Publisher
	topic     string
	txTimeout time.Duration
}

func NewOrderService(r Store, pub events.Publisher, topic string, txTimeout time.Duration) *OrderService {
	if pub == nil {
		pub = events.Discard{}
	}
	return &OrderService{repo: r, events: pub, topic: topic, txTimeout: txTimeout}
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items required", ErrValidation)
	}
	for i := range items {
		if items[i].ProductID == 0 {
			return fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if items[i].Quantity < 1 {
			return fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}
	}
	return nil
}

// PlaceOrder reserves stock for every item and records the order in a single
// transaction. Either all stock decrements and the order are committed, or
// nothing is.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, items []LineItem) (*models.Order, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	var created *models.Order
	err := s.repo.WithinTx(ctx, func(tx repo.TxStore) error {
		total := decimal.Zero
		pending := make([]models.OrderItem, 0, len(items))

		for _, it := range items {
			product, err := tx.LockProduct(ctx, it.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: it.ProductID}
				}
				return err
			}
			if product.Stock < it.Quantity {
				return &InsufficientStockError{ProductName: product.Name}
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))

			ok, err := tx.DecrementStock(ctx, product.ID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{ProductName: product.Name}
			}

			pending = append(pending, models.OrderItem{
				ProductID:       product.ID,
				Quantity:        it.Quantity,
				PriceAtPurchase: product.Price,
			})
		}

		order := &models.Order{
			UserID:     userID,
			TotalPrice: total,
			Items:      pending,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		reloaded, err := tx.FindOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		created = reloaded
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrInsufficientStock) {
			return nil, err
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.publish(ctx, strconv.FormatUint(uint64(userID), 10), events.New(events.OrderCreated, orderCreatedPayload(created)))
	return created, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context, p policy.Principal) ([]models.Order, error) {
	if err := policy.RequireAdmin(p); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

func (s *OrderService) DeleteByID(ctx context.Context, orderID uint, p policy.Principal) error {
	if err := policy.RequireAdmin(p); err != nil {
		return err
	}

	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return fmt.Errorf("delete order: %w", err)
	}

	s.publish(ctx, strconv.FormatUint(uint64(p.ID), 10), events.New(events.OrderDeleted, map[string]any{
		"order_id":   orderID,
		"deleted_by": p.ID,
	}))
	return nil
}

// publish runs after commit; a broker failure is logged and otherwise ignored.
func (s *OrderService) publish(ctx context.Context, key string, ev events.Event) {
	if err := s.events.PublishEvent(context.WithoutCancel(ctx), s.topic, key, ev); err != nil {
		logging.FromContext(ctx).With("svc", "order").Error("publish_event_failed",
			"type", ev.Type, "event_id", ev.ID, "error", err)
	}
}

func orderCreatedPayload(o *models.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"product_id":        it.ProductID,
			"quantity":          it.Quantity,
			"price_at_purchase": it.PriceAtPurchase.StringFixed(2),
		})
	}
	return map[string]any{
		"order_id":    o.ID,
		"user_id":     o.UserID,
		"total_price": o.TotalPrice.StringFixed(2),
		"items":       items,
	}
}
