package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/odyssey-shop/internal/app"
	"github.com/odyssey-erp/odyssey-shop/internal/events"
	jobmetrics "github.com/odyssey-erp/odyssey-shop/internal/jobs"
	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/brands"
	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/categories"
	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/products"
	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/reviews"
	"github.com/odyssey-erp/odyssey-shop/internal/observability"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/cache"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/db"
	"github.com/odyssey-erp/odyssey-shop/internal/sales/customers"
	"github.com/odyssey-erp/odyssey-shop/internal/sales/orders"
	"github.com/odyssey-erp/odyssey-shop/internal/shared"
	"github.com/odyssey-erp/odyssey-shop/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("shop stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	dbpool, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	if cfg.DBAutoMigrate {
		if err := db.EnsureSchema(ctx, dbpool); err != nil {
			return err
		}
		logger.Info("schema ready")
	}

	var idempotencyStore *shared.IdempotencyStore
	if cfg.IdempotencyEnabled() {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer closeRedis(logger, redisClient)
		idempotencyStore = shared.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL)
	}

	metrics := observability.NewMetrics()

	var (
		publisher   events.Publisher = events.NopPublisher{}
		jobsHandler *jobs.Handler
	)
	if cfg.EventsEnabled() {
		kafkaPublisher, err := events.NewKafkaPublisher(events.WriterConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOrdersTopic,
			WriteTimeout: cfg.AppWriteTimeout,
		})
		if err != nil {
			return err
		}
		publisher = kafkaPublisher
		logger.Info("order events enabled", slog.String("topic", cfg.KafkaOrdersTopic))

		if cfg.EventRetryEnabled() {
			redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
			queue := jobs.NewClient(redisOpts, cfg.EventRetryMax)
			defer closeQueue(logger, queue)
			inspector := asynq.NewInspector(redisOpts)
			defer inspector.Close()

			publisher = jobs.NewFallbackPublisher(kafkaPublisher, queue, logger, jobmetrics.NewMetrics(metrics.Registerer()))
			jobsHandler = jobs.NewHandler(inspector, logger)
		}
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close event publisher", slog.Any("error", err))
		}
	}()

	productRepo := products.NewRepository(dbpool)
	productService := products.NewService(productRepo)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Metrics:           metrics,
		Idempotency:       idempotencyStore,
		DB:                dbpool,
		BrandsHandler:     brands.NewHandler(logger, brands.NewService(brands.NewRepository(dbpool))),
		CategoriesHandler: categories.NewHandler(logger, categories.NewService(categories.NewRepository(dbpool))),
		ProductsHandler:   products.NewHandler(logger, productService),
		ReviewsHandler:    reviews.NewHandler(logger, reviews.NewService(reviews.NewRepository(dbpool), productService)),
		CustomersHandler:  customers.NewHandler(logger, customers.NewService(customers.NewRepository(dbpool))),
		OrdersHandler:     orders.NewHandler(logger, orders.NewService(orders.NewRepository(dbpool), publisher, logger)),
		JobsHandler:       jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.AppShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func closeRedis(logger *slog.Logger, client *redis.Client) {
	if err := client.Close(); err != nil {
		logger.Warn("redis close", slog.Any("error", err))
	}
}

func closeQueue(logger *slog.Logger, queue *jobs.Client) {
	if err := queue.Close(); err != nil {
		logger.Warn("close redelivery queue", slog.Any("error", err))
	}
}
