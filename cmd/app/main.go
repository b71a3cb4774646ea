package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/wager-escrow/pkg/api"
	"github.com/chris/wager-escrow/pkg/config"
	"github.com/chris/wager-escrow/pkg/escrow"
	"github.com/chris/wager-escrow/pkg/handlers"
	wshandler "github.com/chris/wager-escrow/pkg/handlers/websockets"
	"github.com/chris/wager-escrow/pkg/metrics"
	"github.com/chris/wager-escrow/pkg/middleware"
	"github.com/chris/wager-escrow/pkg/scheduler"
	"github.com/chris/wager-escrow/pkg/storage"
	dydbstore "github.com/chris/wager-escrow/pkg/storage/dynamodb"
	"github.com/chris/wager-escrow/pkg/storage/memory"
	"github.com/chris/wager-escrow/pkg/websockets"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var awsCfg aws.Config
	if cfg.Store.Backend == config.BackendDynamoDB || cfg.Queue.SQSQueueURL != "" {
		var err error
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("unable to load SDK config: %w", err)
		}
	}

	var store storage.Storage
	switch cfg.Store.Backend {
	case config.BackendDynamoDB:
		store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
			Wagers:      cfg.DynamoDB.WagersTable,
			Index:       cfg.DynamoDB.IndexTable,
			Wallets:     cfg.DynamoDB.WalletsTable,
			Ledger:      cfg.DynamoDB.LedgerTable,
			Events:      cfg.DynamoDB.EventsTable,
			Connections: cfg.DynamoDB.ConnectionsTable,
		})
	default:
		logger.Warn("using the in-memory store, state is lost on restart")
		store = memory.New()
	}

	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	opts := []escrow.Option{
		escrow.WithObserver(escrow.LogObserver{Logger: logger}),
		escrow.WithObserver(m),
		escrow.WithCommitHook(m.EventHook),
	}

	// Committed events reach websocket clients through the hub, either
	// directly or through the Redis relay so every instance sees them.
	hub := websockets.NewHub()
	var relay *websockets.RedisRelay
	switch cfg.Websocket.Mode {
	case config.WebsocketLocal:
		opts = append(opts, escrow.WithCommitHook(websockets.EventHook(hub)))
	case config.WebsocketRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: ping %s: %w", cfg.Redis.Addr, err)
		}
		relay = websockets.NewRedisRelay(rdb, cfg.Redis.Channel)
		opts = append(opts, escrow.WithCommitHook(websockets.EventHook(relay)))
	case config.WebsocketAPIGateway:
		pub, err := websockets.NewPublisher(ctx, store, store, cfg.Websocket.APIEndpoint)
		if err != nil {
			return err
		}
		opts = append(opts, escrow.WithCommitHook(websockets.EventHook(pub)))
	}

	ledger := escrow.New(store, cfg.Escrow.Arbiter, opts...)

	var sched scheduler.ResolutionScheduler
	if cfg.Queue.SQSQueueURL != "" {
		sched = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.Queue.SQSQueueURL)
	} else {
		logger.Info("SQS_QUEUE_URL not set, delayed resolution disabled")
	}

	handler := handlers.NewApiHandler(handlers.Config{
		Ledger:      ledger,
		Store:       store,
		Scheduler:   sched,
		SeedBalance: cfg.Wallets.SeedBalance,
	})

	router := chi.NewRouter()
	router.Use(chimw.RequestID, chimw.Recoverer)
	router.Use(middleware.CallerIdentity)
	router.Use(middleware.NewStructuredLogger(logger))
	if cfg.Server.MetricsEnabled {
		router.Use(m.Middleware)
		router.Handle("/metrics", metrics.Handler(reg))
	}
	if cfg.Websocket.Mode == config.WebsocketLocal || cfg.Websocket.Mode == config.WebsocketRedis {
		router.Handle("/ws", wshandler.NewHandler(nil, hub))
	}

	// Use the generated function to mount our handler on the router
	api.HandlerFromMux(handler, router)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", "port", cfg.Server.Port, "backend", cfg.Store.Backend, "websocket", cfg.Websocket.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if relay != nil {
		g.Go(func() error {
			return relay.Run(gctx, hub)
		})
	}

	return g.Wait()
}
