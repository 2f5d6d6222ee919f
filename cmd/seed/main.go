package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_orders/internal/models"
	"github.com/Skotchmaster/shop_orders/pkg/config"
	pkgdb "github.com/Skotchmaster/shop_orders/pkg/db"
	"github.com/Skotchmaster/shop_orders/pkg/hash"
	"github.com/Skotchmaster/shop_orders/pkg/logging"
	"github.com/Skotchmaster/shop_orders/pkg/tokens"
)

const (
	adminEmail = "admin@example.com"
	adminName  = "Admin"
)

type seedProduct struct {
	Name        string
	Description string
	Price       string
	Stock       int
	SKU         string
}

var products = []seedProduct{
	{"Product 1", "Description for product 1", "100", 50, "SKU-001"},
	{"Product 2", "Description for product 2", "200", 30, "SKU-002"},
}

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load")
	password := flag.String("admin-password", "admin123", "password for the seeded admin")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed admin token")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("warning: could not load %s: %v", *envFile, err)
	}

	if err := run(*password, *tokenTTL); err != nil {
		log.Fatal(err)
	}
}

func run(password string, tokenTTL time.Duration) error {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	logger := logging.New(cfg.LogLevel).With("service", "seed")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer pkgdb.Close(db)

	if err := pkgdb.Migrate(db); err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}

	admin, err := seedAdmin(ctx, db, password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	logger.Info("admin ready", "user_id", admin.ID, "email", admin.Email)

	for _, sp := range products {
		p, created, err := seedProductRow(ctx, db, sp, admin.ID)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", sp.SKU, err)
		}
		logger.Info("product ready", "product_id", p.ID, "sku", p.SKU, "created", created)
	}

	if len(cfg.JWTAccessSecret) == 0 {
		return nil
	}
	tok, err := tokens.NewAccessToken(admin.ID, string(admin.Role), admin.Email, time.Now().Add(tokenTTL), cfg.JWTAccessSecret)
	if err != nil {
		return fmt.Errorf("issue admin token: %w", err)
	}
	fmt.Println(tok)
	return nil
}

func seedAdmin(ctx context.Context, db *gorm.DB, password string) (*models.User, error) {
	pw, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{Name: adminName, Email: adminEmail, PasswordHash: pw, Role: models.RoleAdmin}
	if err := db.WithContext(ctx).Where("email = ?", adminEmail).FirstOrCreate(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func seedProductRow(ctx context.Context, db *gorm.DB, sp seedProduct, ownerID uint) (*models.Product, bool, error) {
	p := &models.Product{
		Name:        sp.Name,
		Description: sp.Description,
		Price:       decimal.RequireFromString(sp.Price),
		Stock:       sp.Stock,
		SKU:         sp.SKU,
		OwnerID:     ownerID,
	}
	tx := db.WithContext(ctx).Where("sku = ?", sp.SKU).FirstOrCreate(p)
	if tx.Error != nil {
		return nil, false, tx.Error
	}
	return p, tx.RowsAffected > 0, nil
}
