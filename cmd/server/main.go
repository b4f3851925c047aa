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

	"kitchen-orders/internal/config"
	"kitchen-orders/internal/modules/auth"
	"kitchen-orders/internal/modules/menu"
	"kitchen-orders/internal/modules/orders"
	"kitchen-orders/internal/modules/windows"
	"kitchen-orders/pkg/notification"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		logger.Fatalw("invalid TAX_RATE", "value", cfg.TaxRate, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalw("invalid DATABASE_URL", "error", err)
	}
	// Scan numeric columns straight into decimal.Decimal.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Fatalw("failed to connect to Postgres", "error", err)
	}
	defer pool.Close()

	logger.Info("connected to Postgres")

	// repositories
	menuRepo := menu.NewRepository(pool)
	windowRepo := windows.NewRepository(pool)
	orderRepo := orders.NewRepository(pool)

	// notification: Twilio SMS when configured, SES email otherwise
	notifier, adminContact := buildNotifier(ctx, cfg, logger)

	// window watcher: one-second countdown evaluation over a cached list
	watcher := windows.NewWatcher(windowRepo, logger, time.Minute)
	if err := watcher.Start(); err != nil {
		logger.Fatalw("failed to start window watcher", "error", err)
	}

	// services
	menuService := menu.NewService(menuRepo, logger)
	windowService := windows.NewService(windowRepo, watcher, logger)
	orderService := orders.NewService(orderRepo, windowRepo, notifier, adminContact, taxRate, logger)

	// handlers
	authHandler := auth.NewHandler(cfg.JWTSecret, cfg.AdminPasswordHash, cfg.AdminEmailList())
	menuHandler := menu.NewHandler(menuService)
	windowHandler := windows.NewHandler(windowService)
	orderHandler := orders.NewHandler(orderService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	admin := e.Group("/api/v1", authHandler.JWTMiddleware(), authHandler.RequireAdmin)

	authHandler.RegisterRoutes(api)
	menuHandler.RegisterRoutes(api, admin)
	windowHandler.RegisterRoutes(api, admin)
	orderHandler.RegisterRoutes(api, admin)

	shutdown := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Infow("signal caught", "signal", s.String())

		watcher.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdown <- e.Shutdown(ctx)
	}()

	logger.Infow("server starting", "port", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("server error", "error", err)
	}
	if err := <-shutdown; err != nil {
		logger.Errorw("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

// buildNotifier picks the delivery channel from config. Twilio wins when
// fully configured; SES is the email fallback; with neither, notification
// is disabled and order creation proceeds without it.
func buildNotifier(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (notification.Notifier, string) {
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		logger.Info("notifications via Twilio SMS")
		return notification.NewTwilioSMS(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber), cfg.AdminPhone
	}
	if cfg.SESSender != "" {
		ses, err := notification.NewSESEmail(ctx, cfg.SESSender)
		if err != nil {
			logger.Warnw("SES notifier unavailable, notifications disabled", "error", err)
			return nil, ""
		}
		logger.Info("notifications via SES email")
		return ses, cfg.AdminNotifyEmail
	}
	logger.Warn("no notification channel configured")
	return nil, ""
}
