package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds process-level options read from the environment.
type Settings struct {
	LogLevel  string
	Env       string // "development" or "production"
	Port      int
	AWSRegion string
}

// Production reports whether production logging should be used.
func (s Settings) Production() bool {
	return strings.EqualFold(s.Env, "production") || strings.EqualFold(s.Env, "prod")
}

// LoadSettings reads settings from the environment, loading the given .env
// files first when they exist. With no files it tries ./.env.
func LoadSettings(envFiles ...string) Settings {
	// missing .env files are expected outside local development
	_ = godotenv.Load(envFiles...)

	return Settings{
		LogLevel:  getEnv("ILPGO_LOG_LEVEL", "info"),
		Env:       getEnv("ILPGO_ENV", "development"),
		Port:      getEnvInt("ILPGO_PORT", 8080),
		AWSRegion: getEnv("AWS_REGION", ""),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
