// cmd/seeder/main.go
//
// Seeds the configured storage backend with demo inventory data by
// driving the engine's public operations, so every seeded record passes
// the same validation and stock accounting as production traffic.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	filestore "github.com/averdugo/inventario-be/internal/adapters/file"
	"github.com/averdugo/inventario-be/internal/adapters/memory"
	redis_a "github.com/averdugo/inventario-be/internal/adapters/redis_adapter"
	s3_a "github.com/averdugo/inventario-be/internal/adapters/s3_adapter"
	"github.com/averdugo/inventario-be/internal/core/domain"
	"github.com/averdugo/inventario-be/internal/core/ports"
	"github.com/averdugo/inventario-be/internal/core/services"
	"github.com/averdugo/inventario-be/internal/core/store"
	"github.com/averdugo/inventario-be/internal/pkg/config"
	"github.com/averdugo/inventario-be/internal/pkg/logger"
)

type seedMaterial struct {
	nombre   string
	tipo     string
	precio   decimal.Decimal
	entradas []seedEntrada
}

type seedEntrada struct {
	cantidad decimal.Decimal
	precio   decimal.Decimal
	notas    string
}

func main() {
	slogger := logger.SetupLogger("info", "text")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	kv, err := buildKeyValueStore(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	gateway := store.NewGateway(kv, slogger)
	engine := services.NewInventarioService(
		store.NewMaterialStore(gateway, slogger),
		store.NewMovimientoLedger(gateway, slogger),
		slogger,
	)
	engine.Initialize(ctx)

	if len(engine.ListMaterials(ctx)) > 0 {
		slogger.Info("store already has materials, skipping seed")
		return
	}

	if err := seed(ctx, engine, slogger); err != nil {
		slogger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("seeding complete",
		slog.Int("materiales", len(engine.ListMaterials(ctx))),
		slog.Int("movimientos", len(engine.ListMovimientos(ctx))))
}

func seed(ctx context.Context, engine *services.InventarioService, slogger *slog.Logger) error {
	seeds := []seedMaterial{
		{
			nombre: "Cable THW 12 AWG",
			tipo:   "Eléctrico",
			precio: decimal.NewFromFloat(12.50),
			entradas: []seedEntrada{
				{decimal.NewFromInt(200), decimal.NewFromFloat(12.50), "compra inicial"},
				{decimal.NewFromInt(150), decimal.NewFromFloat(13.10), "reposición proveedor A"},
			},
		},
		{
			nombre: "Tubo PVC 1/2\"",
			tipo:   "Plomería",
			precio: decimal.NewFromFloat(3.75),
			entradas: []seedEntrada{
				{decimal.NewFromInt(500), decimal.NewFromFloat(3.75), "compra inicial"},
			},
		},
		{
			nombre: "Cemento gris 42.5kg",
			tipo:   "Construcción",
			precio: decimal.NewFromFloat(8.90),
			entradas: []seedEntrada{
				{decimal.NewFromInt(80), decimal.NewFromFloat(8.90), "compra inicial"},
				{decimal.NewFromInt(40), decimal.NewFromFloat(9.25), "reposición"},
			},
		},
	}

	for _, s := range seeds {
		material := &domain.Material{
			Nombre: s.nombre,
			Tipo:   s.tipo,
			Precio: s.precio,
		}
		if err := engine.AddMaterial(ctx, material); err != nil {
			return fmt.Errorf("seed material %q: %w", s.nombre, err)
		}

		for _, e := range s.entradas {
			mv := &domain.Movimiento{
				MaterialID:    material.ID,
				Tipo:          domain.TipoEntrada,
				Cantidad:      e.cantidad,
				Precio:        e.precio,
				Observaciones: e.notas,
			}
			if err := engine.AddMovimiento(ctx, mv); err != nil {
				return fmt.Errorf("seed entrada for %q: %w", s.nombre, err)
			}
		}

		slogger.Info("seeded material",
			slog.Int("id", material.ID),
			slog.String("nombre", material.Nombre),
			slog.String("cantidad", material.Cantidad.String()))
	}

	return nil
}

func buildKeyValueStore(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (ports.KeyValueStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
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
		return memory.NewStore(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
