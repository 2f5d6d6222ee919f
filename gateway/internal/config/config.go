package config

import (
	"github.com/Skotchmaster/shop_orders/pkg/config"
)

type Config struct {
	ListenAddr string
	LogLevel   string
	CatalogURL string
	OrderURL   string
}

func Load() Config {
	cfg := Config{
		ListenAddr: config.EnvDefault("GATEWAY_ADDR", ":8080"),
		LogLevel:   config.EnvDefault("LOG_LEVEL", "info"),
		CatalogURL: config.EnvDefault("CATALOG_URL", ""),
		OrderURL:   config.EnvDefault("ORDER_URL", ""),
	}
	config.MustNonEmpty(cfg.CatalogURL, "CATALOG_URL")
	config.MustNonEmpty(cfg.OrderURL, "ORDER_URL")
	return cfg
}
