package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_orders/internal/models"
	"github.com/Skotchmaster/shop_orders/internal/policy"
	"github.com/Skotchmaster/shop_orders/pkg/events"
	"github.com/Skotchmaster/shop_orders/pkg/logging"
	"github.com/Skotchmaster/shop_orders/services/catalog/internal/repo"
	"github.com/Skotchmaster/shop_orders/services/catalog/internal/transport"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Topic  string
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, offset, limit)
}

func validate(p *models.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name required", ErrValidation)
	case p.Description == "":
		return fmt.Errorf("%w: description required", ErrValidation)
	case p.SKU == "":
		return fmt.Errorf("%w: sku required", ErrValidation)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	return nil
}

func ensureSKUFree(ctx context.Context, r *repo.GormRepo, sku string, exceptID uint) error {
	taken, err := r.SKUTaken(ctx, sku, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: sku %q already exists", ErrConflict, sku)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, actor policy.Principal, req transport.CreateProductRequest) (*models.Product, error) {
	prod := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
		SKU:         strings.TrimSpace(req.SKU),
		OwnerID:     actor.ID,
	}
	if err := validate(prod); err != nil {
		return nil, err
	}
	if err := ensureSKUFree(ctx, s.Repo, prod.SKU, 0); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: sku %q already exists", ErrConflict, prod.SKU)
		}
		return nil, err
	}

	s.publish(ctx, actor, events.New(events.ProductCreated, map[string]any{
		"product_id": prod.ID,
		"name":       prod.Name,
		"sku":        prod.SKU,
	}))
	return prod, nil
}

// PatchProduct writes only the fields present in req. Stock set here is an
// absolute value; concurrent order decrements are not overwritten by patches
// that leave stock alone.
func (s *CatalogService) PatchProduct(ctx context.Context, actor policy.Principal, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	prod, err := s.Repo.UpdateProduct(ctx, id, func(tx *repo.GormRepo, p *models.Product) (map[string]any, error) {
		if err := policy.RequireOwnerOrAdmin(p.OwnerID, actor); err != nil {
			return nil, err
		}

		cols := make(map[string]any)
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
			cols["name"] = p.Name
		}
		if req.Description != nil {
			p.Description = strings.TrimSpace(*req.Description)
			cols["description"] = p.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
			cols["price"] = p.Price
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
			cols["stock"] = p.Stock
		}
		if req.SKU != nil {
			p.SKU = strings.TrimSpace(*req.SKU)
			cols["sku"] = p.SKU
		}
		if err := validate(p); err != nil {
			return nil, err
		}
		if req.SKU != nil {
			if err := ensureSKUFree(ctx, tx, p.SKU, p.ID); err != nil {
				return nil, err
			}
		}
		return cols, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, fmt.Errorf("%w: sku already exists", ErrConflict)
		}
		return nil, err
	}

	s.publish(ctx, actor, events.New(events.ProductUpdated, map[string]any{
		"product_id": prod.ID,
		"name":       prod.Name,
		"price":      prod.Price.StringFixed(2),
		"stock":      prod.Stock,
	}))
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor policy.Principal, id uint) error {
	prod, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.RequireOwnerOrAdmin(prod.OwnerID, actor); err != nil {
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	s.publish(ctx, actor, events.New(events.ProductDeleted, map[string]any{"product_id": id}))
	return nil
}

func (s *CatalogService) publish(ctx context.Context, actor policy.Principal, ev events.Event) {
	if s.Events == nil {
		return
	}
	key := strconv.FormatUint(uint64(actor.ID), 10)
	if err := s.Events.PublishEvent(context.WithoutCancel(ctx), s.Topic, key, ev); err != nil {
		logging.FromContext(ctx).With("svc", "catalog").Error("publish_event_failed",
			"type", ev.Type, "event_id", ev.ID, "error", err)
	}
}
