package config

import (
	"time"

	pkgcfg "github.com/TBanda27/Ecommerce-bookstore/pkg/config"
)

type Config struct {
	ListenAddr string
	JWTSecret  []byte
	LogLevel   string

	RegistryURL string
	StaticPools map[string][]string

	ConnectTimeout  time.Duration
	UpstreamTimeout time.Duration
}

func Load() *Config {
	pkgcfg.LoadDotenv()

	return &Config{
		ListenAddr: pkgcfg.EnvDefault("GATEWAY_ADDR", ":9090"),
		JWTSecret:  []byte(pkgcfg.MustNonEmpty(pkgcfg.EnvDefault("JWT_SECRET", ""), "JWT_SECRET")),
		LogLevel:   pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		RegistryURL: pkgcfg.EnvDefault("REGISTRY_URL", ""),
		StaticPools: map[string][]string{
			"AUTH-SERVICE":      pkgcfg.CSV(pkgcfg.EnvDefault("AUTH_SERVICE_URL", "")),
			"BOOK-SERVICE":      pkgcfg.CSV(pkgcfg.EnvDefault("BOOK_SERVICE_URL", "")),
			"CATEGORY-SERVICE":  pkgcfg.CSV(pkgcfg.EnvDefault("CATEGORY_SERVICE_URL", "")),
			"PRICE-SERVICE":     pkgcfg.CSV(pkgcfg.EnvDefault("PRICE_SERVICE_URL", "")),
			"INVENTORY-SERVICE": pkgcfg.CSV(pkgcfg.EnvDefault("INVENTORY_SERVICE_URL", "")),
			"REVIEW-SERVICE":    pkgcfg.CSV(pkgcfg.EnvDefault("REVIEW_SERVICE_URL", "")),
		},

		ConnectTimeout:  time.Duration(pkgcfg.EnvIntDefault("UPSTREAM_CONNECT_TIMEOUT_MS", 2000)) * time.Millisecond,
		UpstreamTimeout: time.Duration(pkgcfg.EnvIntDefault("UPSTREAM_TIMEOUT_MS", 30000)) * time.Millisecond,
	}
}
