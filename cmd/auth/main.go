package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/config"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/events"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/httpserver"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/mail"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/models"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/oauth"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/repo"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/service"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/db"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
	loggingmw "github.com/TBanda27/Ecommerce-bookstore/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := gormDB.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	mailer, err := mail.NewSMTP(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom, cfg.BaseURL)
	if err != nil {
		log.Fatalf("mail: %v", err)
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := events.NewKafka(cfg.KafkaBrokers)
		defer kafkaPub.Close()
		publisher = kafkaPub
	}

	svc := &service.UserService{
		Repo:      &repo.GormRepo{DB: gormDB},
		Mailer:    mailer,
		Events:    publisher,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 30 * time.Second

	for _, m := range httpserver.CommonMiddleware() {
		e.Use(m)
	}
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, httpserver.Deps{
		Svc:         svc,
		Provider:    oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL),
		FrontendURL: cfg.FrontendURL,
	})

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
