package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Scale        int    // pixels per model unit
	DiagramScale int    // pixels for the largest diagram ordinate
	DBPath       string // SQLite model library
	Addr         string // HTTP listen address
	ReadTimeout  int    // seconds
	WriteTimeout int    // seconds
	Rate         int    // requests per second per client
	Burst        int
}

// Load reads the optional .env file in the working directory and then the
// MECHANIKA_* environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv(), nil
}

// LoadFile is Load with an explicit env file
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv builds the configuration from environment variables only
func FromEnv() *Config {
	return &Config{
		Scale:        getEnvAsInt("MECHANIKA_SCALE", 50),
		DiagramScale: getEnvAsInt("MECHANIKA_DIAGRAM_SCALE", 100),
		DBPath:       getEnv("MECHANIKA_DB", "data/mechanika.db"),
		Addr:         getEnv("MECHANIKA_ADDR", ":8080"),
		ReadTimeout:  getEnvAsInt("MECHANIKA_READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("MECHANIKA_WRITE_TIMEOUT", 10),
		Rate:         getEnvAsInt("MECHANIKA_RATE", 5),
		Burst:        getEnvAsInt("MECHANIKA_BURST", 10),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
