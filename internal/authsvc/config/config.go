package config

import (
	"time"

	pkgcfg "github.com/TBanda27/Ecommerce-bookstore/pkg/config"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	JWTSecret   []byte
	TokenTTL    time.Duration
	LogLevel    string

	// BaseURL is the public gateway origin used in activation links.
	BaseURL     string
	FrontendURL string

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	KafkaBrokers []string
}

func Load() *Config {
	pkgcfg.LoadDotenv()

	baseURL := pkgcfg.EnvDefault("BASE_URL", "http://localhost:9090")

	return &Config{
		ListenAddr:  pkgcfg.EnvDefault("AUTH_ADDR", ":8084"),
		DatabaseURL: pkgcfg.MustNonEmpty(pkgcfg.EnvDefault("DATABASE_URL", ""), "DATABASE_URL"),
		JWTSecret:   []byte(pkgcfg.MustNonEmpty(pkgcfg.EnvDefault("JWT_SECRET", ""), "JWT_SECRET")),
		TokenTTL:    time.Duration(pkgcfg.EnvIntDefault("JWT_TTL_MS", 86400000)) * time.Millisecond,
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		BaseURL:     baseURL,
		FrontendURL: pkgcfg.EnvDefault("FRONTEND_URL", "http://localhost:8501"),

		MailHost:     pkgcfg.EnvDefault("MAIL_HOST", "localhost"),
		MailPort:     pkgcfg.EnvIntDefault("MAIL_PORT", 587),
		MailUsername: pkgcfg.EnvDefault("MAIL_USERNAME", ""),
		MailPassword: pkgcfg.EnvDefault("MAIL_PASSWORD", ""),
		MailFrom:     pkgcfg.EnvDefault("MAIL_FROM", "no-reply@bookstore.local"),

		GoogleClientID:     pkgcfg.EnvDefault("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: pkgcfg.EnvDefault("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  pkgcfg.EnvDefault("GOOGLE_REDIRECT_URL", baseURL+"/login/oauth2/code/google"),

		KafkaBrokers: pkgcfg.CSV(pkgcfg.EnvDefault("KAFKA_BROKERS", "")),
	}
}
