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

	"github.com/TBanda27/Ecommerce-bookstore/internal/gateway/config"
	"github.com/TBanda27/Ecommerce-bookstore/internal/gateway/httpserver"
	"github.com/TBanda27/Ecommerce-bookstore/internal/gateway/proxy"
	"github.com/TBanda27/Ecommerce-bookstore/internal/gateway/registry"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
	loggingmw "github.com/TBanda27/Ecommerce-bookstore/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reg registry.Registry
	if cfg.RegistryURL != "" {
		httpReg := registry.NewHTTP(cfg.RegistryURL, 15*time.Second)
		go httpReg.Run(logging.IntoContext(ctx, logger))
		reg = httpReg
	} else {
		reg = registry.NewStatic(cfg.StaticPools)
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 45 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	for _, m := range httpserver.CommonMiddleware() {
		e.Use(m)
	}
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		JWTSecret: cfg.JWTSecret,
		Picker:    registry.NewPicker(reg),
		Forwarder: proxy.New(cfg.ConnectTimeout, cfg.UpstreamTimeout),
		Routes:    httpserver.DefaultRoutes(),
		Rules:     httpserver.DefaultPolicy(),
	})

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
