package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config drží veškeré nastavení služby solar-web.
// Hodnoty se berou z ENV proměnných, volitelně z lokálního souboru .env.
type Config struct {
	// HTTPPort: Port webového serveru (stránka i API).
	HTTPPort string

	// PredictionDelay: Umělá prodleva, než formulář ukáže výsledek (výchozí 1.5s).
	PredictionDelay time.Duration

	// SessionTTL: Jak dlouho si pamatujeme nečinnou session formuláře.
	SessionTTL time.Duration

	// ValkeyAddr: Adresa Valkey/Redis pro session. Prázdné = session jen v paměti.
	ValkeyAddr string

	// MQTTBroker: Pokud je nastaven, logy se posílají i do MQTT (logs/solar-web).
	MQTTBroker   string
	MQTTClientID string

	LogLevel string

	// Limit požadavků na /api/* (token bucket: RPS a burst).
	APIRateLimit float64
	APIRateBurst int
}

// LoadConfig načte konfiguraci. Neplatné hodnoty se nahradí defaultem.
func LoadConfig() Config {
	// .env je volitelný, hodí se pro lokální vývoj
	_ = godotenv.Load()

	return Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		PredictionDelay: getDuration("PREDICTION_DELAY", 1500*time.Millisecond),
		SessionTTL:      getDuration("SESSION_TTL", 30*time.Minute),
		ValkeyAddr:      getEnv("VALKEY_ADDR", ""),
		MQTTBroker:      getEnv("MQTT_BROKER", ""),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "solar-web"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		APIRateLimit:    getFloat("API_RATE_LIMIT", 5),
		APIRateBurst:    getInt("API_RATE_BURST", 10),
	}
}

// SlogLevel převede LOG_LEVEL na slog.Level (neznámá hodnota = info).
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getEnv je pomocná funkce. Pokud klíč v OS neexistuje, vrátí fallback.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	i, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}
