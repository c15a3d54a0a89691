package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/vbonduro/homeinv/internal/config"
	"github.com/vbonduro/homeinv/internal/imagestore"
	"github.com/vbonduro/homeinv/internal/imagestore/local"
	"github.com/vbonduro/homeinv/internal/imagestore/miniostore"
	"github.com/vbonduro/homeinv/internal/logging"
	"github.com/vbonduro/homeinv/internal/service"
	"github.com/vbonduro/homeinv/internal/store"
	"github.com/vbonduro/homeinv/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx := context.Background()

	st, storeCleanup, err := store.New(store.Options{
		Backend: cfg.StoreBackend,
		Path:    cfg.InventoryPath,
		DBPath:  cfg.DBPath,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize store", "error", err)
		return
	}
	defer storeCleanup()

	images, err := newImageStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize image store", "error", err)
		return
	}

	inventory, err := service.New(ctx, st, images, logger)
	if err != nil {
		logger.Error("failed to load inventory", "error", err)
		return
	}

	server := web.NewServer(inventory, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newImageStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (imagestore.Store, error) {
	switch cfg.ImageBackend {
	case "minio":
		logger.Info("using minio image backend", "endpoint", cfg.MinioEndpoint, "bucket", cfg.MinioBucket)
		return miniostore.New(ctx, miniostore.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	case "memory":
		logger.Info("using in-memory image backend")
		return imagestore.NewMemoryStore(), nil
	default:
		logger.Info("using local image backend", "path", cfg.ImageLocalPath)
		return local.New(cfg.ImageLocalPath)
	}
}
