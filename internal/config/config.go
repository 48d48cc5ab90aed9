package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBase is the Atlantis demo deployment the storefront was
// built against.
const DefaultAPIBase = "https://tpipaxfpf1.execute-api.eu-north-1.amazonaws.com"

type Config struct {
	HTTPAddr    string
	APIBase     string
	DBPath      string
	RabbitURL   string
	HTTPTimeout time.Duration
}

func Load() Config {
	// .env para desarrollo local; en despliegue mandan las variables
	_ = godotenv.Load()

	return Config{
		HTTPAddr:    getenv("STOREFRONT_HTTP_ADDR", ":8080"),
		APIBase:     getenv("ATLANTIS_API_BASE", DefaultAPIBase),
		DBPath:      getenv("STOREFRONT_DB_PATH", "data/storefront.db"),
		RabbitURL:   os.Getenv("RABBITMQ_URL"),
		HTTPTimeout: getdur("HTTP_TIMEOUT", 10*time.Second),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
