package main

import (
	"context"
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/atish-2023/Ecommerce-Website/internal/config"
	apphttp "github.com/atish-2023/Ecommerce-Website/internal/http"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/checkout"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/orders"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/payments"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/users"
	"github.com/atish-2023/Ecommerce-Website/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()
	if cfg.StripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is not set in environment variables")
	}
	logger.Info("stripe key loaded", "prefix", keyPrefix(cfg.StripeSecretKey))

	ctx := context.Background()

	docs, err := storage.FromEnv(ctx)
	if err != nil {
		log.Fatalf("failed to configure document storage: %v", err)
	}

	orderStore, err := orders.FromEnv(ctx, docs.Store)
	if err != nil {
		log.Fatalf("failed to open order store: %v", err)
	}
	logger.Info("order store ready", "driver", orderStore.Driver, "storage", docs.Driver)

	provider := payments.NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	userSvc := users.NewService(users.NewFileStore(docs.Store, cfg.UsersFile), cfg.JWTSecret, logger)
	checkoutSvc := checkout.NewService(provider, orderStore.Store, logger, cfg.FrontendURL)
	webhookSvc := payments.NewWebhookService(logger)

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:   logger,
		Cfg:      cfg,
		Provider: provider,
		Orders:   orderStore.Store,
		Users:    userSvc,
		Checkout: checkoutSvc,
		Webhooks: webhookSvc,
	})

	logger.Info("server running", "port", cfg.Port, "frontend_url", cfg.FrontendURL)
	_ = r.Run(":" + cfg.Port)
}

func keyPrefix(key string) string {
	if len(key) > 10 {
		return key[:10] + "..."
	}
	return key
}
