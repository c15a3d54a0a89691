package config

import "os"

type Config struct {
	ListenAddr     string
	StoreBackend   string
	InventoryPath  string
	DBPath         string
	ImageBackend   string
	ImageLocalPath string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	LogLevel       string
	LogFile        string
}

func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		StoreBackend:   getEnv("STORE_BACKEND", "json"),
		InventoryPath:  getEnv("INVENTORY_PATH", "/data/inventory.json"),
		DBPath:         getEnv("DB_PATH", "/data/homeinv.db"),
		ImageBackend:   getEnv("IMAGE_BACKEND", "local"),
		ImageLocalPath: getEnv("IMAGE_LOCAL_PATH", "/data/images"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "homeinv-images"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "1",
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
