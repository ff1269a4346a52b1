package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/billing-console/internal/application/service"
	"github.com/sangkips/billing-console/internal/config"
	"github.com/sangkips/billing-console/internal/domain/entity"
	"github.com/sangkips/billing-console/internal/infrastructure/billingapi"
	"github.com/sangkips/billing-console/internal/presentation/http/handler"
	"github.com/sangkips/billing-console/internal/presentation/http/middleware"
	"github.com/sangkips/billing-console/internal/presentation/http/routes"
	"github.com/sangkips/billing-console/internal/presentation/render"
	"github.com/sangkips/billing-console/pkg/auth"
	"github.com/sangkips/billing-console/pkg/logger"
	"github.com/sangkips/billing-console/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Operator.PINHash == "" {
		zlog.Warn("OPERATOR_PIN_HASH is not set; operator sign-in is disabled")
	}

	// Billing service client
	client := billingapi.NewClient(cfg.Billing.BaseURL, billingapi.NewHTTPClient(&cfg.Billing), zlog)

	renderer := render.NewRenderer(render.Options{
		CurrencySymbol:  cfg.Display.CurrencySymbol,
		InvoiceViewPath: cfg.Display.InvoiceViewPath,
		Location:        cfg.Display.Location(),
	})
	controller := service.NewWorkflowController(client, renderer, zlog)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		zlog.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.Null()
	}
	defer thermalPrinter.Close()

	printerService := service.NewPrinterService(thermalPrinter, controller, service.ReceiptOptions{
		Header: entity.ReceiptHeader{
			StoreName: cfg.Store.Name,
			Address:   cfg.Store.Address,
			Phone:     cfg.Store.Phone,
			TaxID:     cfg.Store.TaxID,
		},
		Width:    cfg.Printer.Width,
		Location: cfg.Display.Location(),
	}, cfg.Printer.Type, zlog)

	tokens := auth.NewTokenManager(cfg.Operator.JWTSecret, cfg.Operator.TokenExpiry)
	authService := service.NewAuthService(cfg.Operator.PINHash, tokens, zlog)

	rateLimiter := middleware.NewOperatorRateLimiter(
		middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	router := routes.Setup(&routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Console: handler.NewConsoleHandler(controller, renderer),
		Printer: handler.NewPrinterHandler(printerService),
	}, &routes.Deps{
		Tokens:      tokens,
		Cfg:         cfg,
		Log:         zlog,
		RateLimiter: rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8081"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("billing_base_url", cfg.Billing.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("service", cfg.App.Name)), nil
}
