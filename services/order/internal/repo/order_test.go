package repo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_orders/internal/models"
	"github.com/Skotchmaster/shop_orders/pkg/db/dbtest"
)

func seedProduct(t *testing.T, gdb *gorm.DB, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:        "Product 1",
		Description: "Description for product 1",
		Price:       decimal.NewFromInt(100),
		Stock:       stock,
		SKU:         "SKU-001",
		OwnerID:     1,
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}

func stockOf(t *testing.T, gdb *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, gdb.First(&p, id).Error)
	return p.Stock
}

func TestDecrementStock(t *testing.T) {
	gdb := dbtest.New(t)
	r := &GormRepo{DB: gdb}
	ctx := context.Background()
	p := seedProduct(t, gdb, 3)

	ok, err := r.DecrementStock(ctx, p.ID, 4)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, stockOf(t, gdb, p.ID))

	ok, err = r.DecrementStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, stockOf(t, gdb, p.ID))

	ok, err = r.DecrementStock(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, stockOf(t, gdb, p.ID))

	ok, err = r.DecrementStock(ctx, 999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLockProduct_Missing(t *testing.T) {
	r := &GormRepo{DB: dbtest.New(t)}

	_, err := r.LockProduct(context.Background(), 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLockProduct_SQL(t *testing.T) {
	tests := []struct {
		name      string
		open      func(t *testing.T) *gorm.DB
		forUpdate bool
	}{
		{
			name: "postgres",
			open: func(t *testing.T) *gorm.DB {
				gdb, err := gorm.Open(postgres.Open("host=localhost user=shop dbname=shop sslmode=disable"),
					&gorm.Config{DryRun: true, DisableAutomaticPing: true})
				require.NoError(t, err)
				return gdb
			},
			forUpdate: true,
		},
		{
			name:      "sqlite",
			open:      func(t *testing.T) *gorm.DB { return dbtest.New(t).Session(&gorm.Session{DryRun: true}) },
			forUpdate: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb := tt.open(t)
			var sql string
			require.NoError(t, gdb.Callback().Query().After("gorm:query").Register("test:capture_sql", func(tx *gorm.DB) {
				sql = tx.Statement.SQL.String()
			}))

			_, _ = (&GormRepo{DB: gdb}).LockProduct(context.Background(), 7)

			require.NotEmpty(t, sql)
			if tt.forUpdate {
				assert.Contains(t, sql, "FOR UPDATE")
			} else {
				assert.NotContains(t, sql, "FOR UPDATE")
			}
		})
	}
}

func TestDeleteOrder(t *testing.T) {
	gdb := dbtest.New(t)
	r := &GormRepo{DB: gdb}
	ctx := context.Background()
	p := seedProduct(t, gdb, 5)

	order := &models.Order{
		UserID:     2,
		TotalPrice: decimal.NewFromInt(200),
		Items:      []models.OrderItem{{ProductID: p.ID, Quantity: 2, PriceAtPurchase: p.Price}},
	}
	require.NoError(t, r.CreateOrder(ctx, order))

	require.NoError(t, r.DeleteOrder(ctx, order.ID))

	var items int64
	require.NoError(t, gdb.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&items).Error)
	assert.Zero(t, items)

	require.ErrorIs(t, r.DeleteOrder(ctx, order.ID), gorm.ErrRecordNotFound)
}
