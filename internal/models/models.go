package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name         string    `gorm:"not null"                          json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"              json:"email"`
	PasswordHash string    `gorm:"not null"                          json:"-"`
	Role         Role      `gorm:"type:varchar(16);not null;default:'USER'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"         json:"id"`
	Name        string          `gorm:"not null"                         json:"name"`
	Description string          `gorm:"not null"                         json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"      json:"price"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	SKU         string          `gorm:"uniqueIndex;not null"             json:"sku"`
	OwnerID     uint            `gorm:"index;not null"                   json:"owner_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Order is written once together with its items. TotalPrice is the sum of
// the item extensions at creation time and is never recomputed.
type Order struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID     uint            `gorm:"index;not null"              json:"user_id"`
	User       *User           `gorm:"foreignKey:UserID"           json:"user,omitempty"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID"          json:"items"`
	CreatedAt  time.Time       `gorm:"index"                       json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderItem keeps the unit price the product had when the order was placed;
// Product is a display-only reference.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"          json:"id"`
	OrderID         uint            `gorm:"index;not null"                    json:"order_id"`
	ProductID       uint            `gorm:"index;not null"                    json:"product_id"`
	Product         *Product        `gorm:"foreignKey:ProductID"              json:"product,omitempty"`
	Quantity        int             `gorm:"not null;check:quantity > 0"       json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(12,2);not null"       json:"price_at_purchase"`
}

// LineTotal is the item extension: price snapshot times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func All() []any {
	return []any{&User{}, &Product{}, &Order{}, &OrderItem{}}
}
