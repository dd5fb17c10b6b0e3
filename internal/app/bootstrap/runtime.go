package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/viralforge/product-event-service/internal/adapters/cache"
	eventadapter "github.com/viralforge/product-event-service/internal/adapters/events"
	httpadapter "github.com/viralforge/product-event-service/internal/adapters/http"
	"github.com/viralforge/product-event-service/internal/adapters/metrics"
	"github.com/viralforge/product-event-service/internal/application"
	"github.com/viralforge/product-event-service/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	var cleanups []func()

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers)
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			cleanups = append(cleanups, func() { _ = kafkaPublisher.Close() })
		}
	}
	publisher = metrics.NewInstrumentedPublisher(publisher)

	var deduper ports.Deduper
	if cfg.RedisURL != "" {
		redisClient, redisErr := cache.Connect(ctx, cfg.RedisURL)
		if redisErr != nil {
			logger.WarnContext(ctx, "redis unavailable, idempotency guard disabled", "error", redisErr)
		} else {
			deduper = cache.NewRedisDeduper(redisClient, cfg.IdempotencyTTL)
			cleanups = append(cleanups, func() { _ = redisClient.Close() })
		}
	}

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:    cfg.ServiceID,
			Topic:          cfg.KafkaTopic,
			PublishTimeout: cfg.PublishTimeout,
		},
		Publisher: publisher,
		Deduper:   deduper,
	})

	handler := httpadapter.NewHandler(service)
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		for _, cleanup := range cleanups {
			cleanup()
		}
		return nil, err
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		cleanupFn: func(context.Context) {
			for _, cleanup := range cleanups {
				cleanup()
			}
		},
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)

	go func() {
		r.logger.InfoContext(ctx, "http listening", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.cfg.ShutdownTimeout)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}
