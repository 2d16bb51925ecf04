// Package app wires configuration into a ready gin engine. Both the
// server and the Lambda entry point start here.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"databowl-gateway/pkg/api"
	"databowl-gateway/pkg/clients/databowl"
	"databowl-gateway/pkg/config"
	"databowl-gateway/pkg/logger"
	"databowl-gateway/pkg/services"
	"databowl-gateway/pkg/store"
)

// App is the assembled gateway.
type App struct {
	Router *gin.Engine
	ledger store.Ledger
}

// Build creates clients, services and routes from cfg.
func Build(cfg config.Config, log logger.Logger, opts ...databowl.Option) (*App, error) {
	if cfg.DataBowl.UsesPlaceholderKeys() {
		log.Warn("DataBowl placeholder keys in use, upstream calls will be rejected", map[string]interface{}{
			"hint": "set DATABOWL_PUBLIC_KEY and DATABOWL_PRIVATE_KEY",
		})
	}

	client := databowl.NewClient(cfg.DataBowl, log, opts...)
	ledger := newLedger(cfg.Redis, log)

	validationService := services.NewValidationService(
		services.NewPhoneVerificationService(client, log),
		services.NewEmailVerificationService(client, log, cfg.DataBowl.EmailFallbackOnError),
	)
	submissionService := services.NewLeadSubmissionService(client, ledger, log)

	handlers, err := api.NewHandlers(validationService, submissionService, log)
	if err != nil {
		_ = ledger.Close()
		return nil, fmt.Errorf("error creating handlers: %w", err)
	}

	return &App{
		Router: api.NewRouter(handlers, log),
		ledger: ledger,
	}, nil
}

// Close releases the Redis connection, if any.
func (a *App) Close() error {
	return a.ledger.Close()
}

func newLedger(cfg config.RedisConfig, log logger.Logger) store.Ledger {
	if !cfg.Enabled() {
		log.Info("lead deduplication disabled, no redis address configured", nil)
		return store.NoopLedger{}
	}

	ledger := store.NewRedisLedger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := ledger.Ping(ctx); err != nil {
		log.Warn("redis unreachable at start-up, submissions pass through until it recovers", map[string]interface{}{
			"address": cfg.Address,
			"error":   err.Error(),
		})
	} else {
		log.Info("lead deduplication enabled", map[string]interface{}{
			"address": cfg.Address,
			"ttl":     cfg.DedupeTTL.String(),
		})
	}
	return ledger
}
