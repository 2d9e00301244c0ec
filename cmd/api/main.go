package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"estimate_backend/internal/adapters"
	"estimate_backend/internal/estimates"
	apphttp "estimate_backend/internal/http"
	"estimate_backend/internal/http/router"
	"estimate_backend/internal/invoices"
	"estimate_backend/internal/ledger"
	"estimate_backend/internal/pricebook"
	"estimate_backend/platform/ai/gemini"
	"estimate_backend/platform/config"
	"estimate_backend/platform/db"
	"estimate_backend/platform/events"
	"estimate_backend/platform/logger"
	"estimate_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		var connErr error
		pool, connErr = db.NewPool(ctx, cfg)
		return connErr
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	geminiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:          cfg.GetGeminiAPIKey(),
		Model:           cfg.GetGeminiModel(),
		Timeout:         cfg.GetGenerateTimeout(),
		MaxOutputTokens: cfg.GetGenerateMaxTokens(),
		Temperature:     cfg.GetGenerateTemperature(),
	})
	if err != nil {
		log.Error("failed to initialize gemini client", "error", err)
		panic("failed to initialize gemini client: " + err.Error())
	}
	log.Info("gemini client initialized", "model", geminiClient.Model())

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	pricebookModule := pricebook.NewModule(val)
	ledgerModule := ledger.NewModule(pool, val, log)

	// Anti-corruption layer: each module depends only on its own ports.
	generator := adapters.NewEstimateGenerator(geminiClient)
	priceMatcher := adapters.NewReferencePriceMatcher(pricebookModule.Matcher())
	ledgerRecorder := adapters.NewInvoiceLedgerRecorder(ledgerModule.Service())

	estimatesModule := estimates.NewModule(generator, priceMatcher, cfg, val, log)
	invoicesModule := invoices.NewModule(pool, ledgerRecorder, eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			pricebookModule,
			estimatesModule,
			invoicesModule,
			ledgerModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
