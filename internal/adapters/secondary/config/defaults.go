package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	config := &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("LESSONDECK_HOST", "localhost"),
			Port:            getEnvIntOrDefault("LESSONDECK_PORT", 8000),
			ReadTimeout:     getEnvIntOrDefault("LESSONDECK_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("LESSONDECK_WRITE_TIMEOUT", 0),
			ShutdownTimeout: getEnvIntOrDefault("LESSONDECK_SHUTDOWN_TIMEOUT", 5),
			CORSOrigins:     getEnvSliceOrDefault("LESSONDECK_CORS_ORIGINS", entities.DefaultCORSOrigins()),
		},
		Model: entities.ModelConfig{
			Name:           getEnvOrDefault("LESSONDECK_MODEL", "gemini-2.0-flash"),
			BaseURL:        getEnvOrDefault("LESSONDECK_MODEL_BASE_URL", ""),
			Temperature:    getEnvFloatOrDefault("LESSONDECK_TEMPERATURE", 0.7),
			TopP:           0.8,
			TopK:           40,
			CandidateCount: 1,
			StopSequences:  []string{"],"},
			Timeout:        getEnvIntOrDefault("LESSONDECK_MODEL_TIMEOUT", 0),
		},
		Output: entities.OutputConfig{
			Directory:     getEnvOrDefault("LESSONDECK_OUTPUT_DIR", "generated"),
			KeepArtifacts: getEnvBoolOrDefault("LESSONDECK_KEEP_ARTIFACTS", false),
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("LESSONDECK_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("LESSONDECK_LOG_VERBOSE", false),
			File:    getEnvOrDefault("LESSONDECK_LOG_FILE", "app.log"),
		},
	}

	return config
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloatOrDefault returns environment variable as float32 or default
func getEnvFloatOrDefault(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns environment variable as slice or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		// Split by comma and trim whitespace
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
