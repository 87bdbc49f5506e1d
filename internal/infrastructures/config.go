package infrastructures

import (
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DATABASE_URL       string
	REDIS_ADDRESS      string
	REDIS_PASSWORD     string
	EVENTS_CHANNEL     string
	ANP_BASE_URL       string
	ANP_FETCH_SCHEDULE string
	PORT               string
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		DATABASE_URL:       os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:      os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD:     os.Getenv("REDIS_PASSWORD"),
		EVENTS_CHANNEL:     getEnv("EVENTS_CHANNEL", "fleetfuel.events"),
		ANP_BASE_URL:       getEnv("ANP_BASE_URL", "https://www.gov.br/anp/pt-br/assuntos/precos-e-defesa-da-concorrencia/precos/arquivos-lpc"),
		ANP_FETCH_SCHEDULE: getEnv("ANP_FETCH_SCHEDULE", "0 6 * * 1"),
		PORT:               getEnv("PORT", "8080"),
	}

	return Config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
