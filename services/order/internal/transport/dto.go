package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shop_orders/internal/models"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type CreateOrderItem struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
}

type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ProductSummary struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku"`
}

type OrderItemResponse struct {
	ID              uint            `json:"id"`
	ProductID       uint            `json:"productId"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	Product         *ProductSummary `json:"product,omitempty"`
}

type OwnerSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderResponse struct {
	ID         uint                `json:"id"`
	UserID     uint                `json:"userId"`
	TotalPrice decimal.Decimal     `json:"totalPrice"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	Items      []OrderItemResponse `json:"items"`
	User       *OwnerSummary       `json:"user,omitempty"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		Items:      make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		item := OrderItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
		}
		if it.Product != nil {
			item.Product = &ProductSummary{
				ID:          it.Product.ID,
				Name:        it.Product.Name,
				Description: it.Product.Description,
				Price:       it.Product.Price,
				SKU:         it.Product.SKU,
			}
		}
		resp.Items = append(resp.Items, item)
	}
	if o.User != nil {
		resp.User = &OwnerSummary{ID: o.User.ID, Name: o.User.Name, Email: o.User.Email}
	}
	return resp
}

func NewOrderList(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
