package config

import (
	"github.com/Skotchmaster/shop_orders/pkg/config"
	"github.com/Skotchmaster/shop_orders/pkg/db"
)

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "catalog"
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustOneOf(cfg.DatabaseDriver, "DATABASE_DRIVER", db.DriverPostgres, db.DriverSQLite)

	return ServiceConfig{Config: cfg}
}
