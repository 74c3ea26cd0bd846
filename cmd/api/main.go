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

	"github.com/bidacafe/pos-gateway/internal/application/service"
	"github.com/bidacafe/pos-gateway/internal/config"
	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/database"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/posapi"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/repository"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/handler"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/middleware"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/routes"
	"github.com/bidacafe/pos-gateway/pkg/logger"
	"github.com/bidacafe/pos-gateway/pkg/printer"
	"github.com/bidacafe/pos-gateway/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.Env, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.App.Location()
	if err != nil {
		zlog.Fatal("invalid store timezone", zap.Error(err))
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	sealer, err := utils.NewSealer(cfg.Session.SealKey)
	if err != nil {
		zlog.Fatal("failed to build token sealer", zap.Error(err))
	}

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// POS API clients: one anonymous client for login, one per request otherwise
	upstreamCfg := posapi.Config{BaseURL: cfg.Upstream.BaseURL, Timeout: cfg.Upstream.Timeout}
	loginClient := posapi.NewClient(upstreamCfg, nil, zlog)
	newClient := func(session *posapi.Session) *posapi.Client {
		return posapi.NewClient(upstreamCfg, session, zlog)
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		zlog.Warn("printer disabled", zap.Error(err))
		thermalPrinter, _ = printer.New(printer.Config{Type: printer.TypeNone})
	}

	// Initialize services
	authService := service.NewAuthService(loginClient, sessionRepo, jwtManager, sealer, zlog)
	invoiceService := service.NewInvoiceService(loc, cfg.Store.QRBaseURL, zlog)
	productService := service.NewProductService(cfg.Upstream.ProductPageSize, zlog)
	employeeService := service.NewEmployeeService(zlog)
	overviewService := service.NewOverviewService(loc, zlog)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Width, entity.ReceiptHeader{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
		Phone:     cfg.Store.Phone,
	}, invoiceService, zlog)

	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Product:  handler.NewProductHandler(productService),
		Employee: handler.NewEmployeeHandler(employeeService),
		Overview: handler.NewOverviewHandler(overviewService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Requests: cfg.RateLimit.Requests,
		Window:   time.Duration(cfg.RateLimit.Duration) * time.Second,
	})
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             zlog,
		JWTManager:      jwtManager,
		Sessions:        authService,
		NewClient:       newClient,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database.StartSweeper(ctx, cfg.Session.SweepInterval, zlog, map[string]database.Sweeper{
		"sessions":         sessionRepo,
		"idempotency_keys": idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("pos_api", cfg.Upstream.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
