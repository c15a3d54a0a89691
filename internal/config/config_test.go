package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.StoreBackend)
	assert.NotEmpty(t, cfg.InventoryPath)
	assert.NotEmpty(t, cfg.ImageBackend)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("DB_PATH", "/custom/homeinv.db")
	t.Setenv("IMAGE_BACKEND", "minio")
	t.Setenv("MINIO_ENDPOINT", "minio.local:9000")
	t.Setenv("MINIO_USE_SSL", "1")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, "/custom/homeinv.db", cfg.DBPath)
	assert.Equal(t, "minio", cfg.ImageBackend)
	assert.Equal(t, "minio.local:9000", cfg.MinioEndpoint)
	assert.True(t, cfg.MinioUseSSL)
}
