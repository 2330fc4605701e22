package main

import (
	"os"

	"github.com/joho/godotenv"
)

// Config drží nastavení sběrače logů.
type Config struct {
	MQTTBroker   string
	MQTTClientID string

	// LogTopic: wildcard, pod kterým služby publikují logy (solar-web → logs/solar-web).
	LogTopic string

	// LogDir: adresář, kam vznikají soubory <služba>.log.
	LogDir string
}

// LoadConfig načte konfiguraci z ENV (a z .env, pokud existuje).
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		MQTTBroker:   getEnv("MQTT_BROKER", "tcp://mosquitto:1883"),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "solar-log-collector"),
		LogTopic:     getEnv("LOG_TOPIC", "logs/#"),
		LogDir:       getEnv("LOG_DIR", "/var/log/solar-predictor"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
