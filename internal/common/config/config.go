package config

import (
	"os"
	"strconv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	// DXF service
	DBPath    string
	ExportDir string
	Units     string
	Version   string
	BodyLimit int
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		DBPath:       getEnv("DXF_DB_PATH", "data/db/drawings.db"),
		ExportDir:    getEnv("DXF_EXPORT_DIR", "data/exports"),
		Units:        getEnv("DXF_UNITS", "millimeters"),
		Version:      getEnv("DXF_VERSION", "r2000"),
		BodyLimit:    getEnvAsInt("DXF_BODY_LIMIT_MB", 8) * 1024 * 1024,
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
