// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	filestore "github.com/averdugo/inventario-be/internal/adapters/file"
	"github.com/averdugo/inventario-be/internal/adapters/memory"
	redis_a "github.com/averdugo/inventario-be/internal/adapters/redis_adapter"
	s3_a "github.com/averdugo/inventario-be/internal/adapters/s3_adapter"
	"github.com/averdugo/inventario-be/internal/core/ports"
	"github.com/averdugo/inventario-be/internal/core/services"
	"github.com/averdugo/inventario-be/internal/core/store"
	"github.com/averdugo/inventario-be/internal/handlers"
	"github.com/averdugo/inventario-be/internal/handlers/middleware"
	"github.com/averdugo/inventario-be/internal/pkg/config"
	"github.com/averdugo/inventario-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting inventario service",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("storage_backend", cfg.Storage.Backend),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	// Warm the in-memory collections before accepting traffic.
	deps.inventario.Initialize(ctx)

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	redisClient       *redis.Client
	gateway           *store.Gateway
	inventario        *services.InventarioService
	materialHandler   *handlers.MaterialHandler
	movimientoHandler *handlers.MovimientoHandler
	exportHandler     *handlers.ExportHandler
	healthHandler     *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.redisClient != nil {
		d.redisClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	kv, err := buildKeyValueStore(ctx, cfg, slogger, deps)
	if err != nil {
		return nil, err
	}

	deps.gateway = store.NewGateway(kv, slogger)
	materials := store.NewMaterialStore(deps.gateway, slogger)
	ledger := store.NewMovimientoLedger(deps.gateway, slogger)

	deps.inventario = services.NewInventarioService(materials, ledger, slogger)

	deps.materialHandler = handlers.NewMaterialHandler(deps.inventario, slogger)
	deps.movimientoHandler = handlers.NewMovimientoHandler(deps.inventario, slogger)
	deps.exportHandler = handlers.NewExportHandler(deps.inventario, slogger)
	deps.healthHandler = handlers.NewHealthHandler(deps.gateway, cfg.App.Version, slogger)

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

func buildKeyValueStore(ctx context.Context, cfg *config.Config, slogger *slog.Logger, deps *dependencies) (ports.KeyValueStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		slogger.Info("connecting to Redis",
			slog.String("addr", cfg.GetRedisAddr()),
			slog.Int("db", cfg.Redis.DB))

		client := redis.NewClient(&redis.Options{
			Addr:            cfg.GetRedisAddr(),
			Password:        cfg.Redis.Password,
			DB:              cfg.Redis.DB,
			MaxRetries:      cfg.Redis.MaxRetries,
			MinRetryBackoff: cfg.Redis.MinRetryBackoff,
			MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
			DialTimeout:     cfg.Redis.DialTimeout,
			ReadTimeout:     cfg.Redis.ReadTimeout,
			WriteTimeout:    cfg.Redis.WriteTimeout,
			PoolSize:        cfg.Redis.PoolSize,
			MinIdleConns:    cfg.Redis.MinIdleConns,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		deps.redisClient = client

		return redis_a.NewStore(client, cfg.Storage.KeyPrefix, slogger), nil

	case config.BackendS3:
		return s3_a.NewStore(ctx, &s3_a.Config{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.Storage.KeyPrefix,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Endpoint:        cfg.S3.Endpoint,
			UsePathStyle:    cfg.S3.UsePathStyle,
		}, slogger)

	case config.BackendFile:
		return filestore.NewStore(cfg.Storage.DataDir, slogger)

	case config.BackendMemory:
		slogger.Warn("using in-memory storage, state will not survive restarts")
		return memory.NewStore(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	var handler http.Handler = mux

	// Apply middleware in reverse order (innermost first)
	handler = middleware.Logger(slogger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(slogger)(handler)

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	registerRoutes(mux, deps, cfg)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	apiV1 := "/api/v1"

	if cfg.Server.EnableHealthCheck {
		mux.HandleFunc("GET /health", deps.healthHandler.Health)
		mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
	}

	// Material endpoints
	mux.HandleFunc("GET "+apiV1+"/materiales", deps.materialHandler.ListMateriales)
	mux.HandleFunc("POST "+apiV1+"/materiales", deps.materialHandler.CreateMaterial)
	mux.HandleFunc("GET "+apiV1+"/materiales/{id}", deps.materialHandler.GetMaterial)
	mux.HandleFunc("PUT "+apiV1+"/materiales/{id}", deps.materialHandler.UpdateMaterial)
	mux.HandleFunc("DELETE "+apiV1+"/materiales/{id}", deps.materialHandler.DeleteMaterial)
	mux.HandleFunc("GET "+apiV1+"/materiales/{id}/movimientos", deps.movimientoHandler.ListByMaterial)

	// Movement endpoints
	mux.HandleFunc("GET "+apiV1+"/movimientos", deps.movimientoHandler.ListMovimientos)
	mux.HandleFunc("POST "+apiV1+"/movimientos", deps.movimientoHandler.CreateMovimiento)
	mux.HandleFunc("DELETE "+apiV1+"/movimientos/{id}", deps.movimientoHandler.DeleteMovimiento)

	// Export endpoints
	mux.HandleFunc("GET "+apiV1+"/export/excel", deps.exportHandler.ExportExcel)
	mux.HandleFunc("GET "+apiV1+"/export/json", deps.exportHandler.ExportJSON)
}
