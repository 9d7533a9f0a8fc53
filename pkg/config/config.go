// Package config provides configuration management for the
// bookkeeping tools. It loads configuration from environment
// variables and .env files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	API   APIConfig
	Data  DataConfig
	Debug bool
}

// APIConfig represents the remote bookkeeping API configuration.
// When URL is empty the tools work against the local store only.
type APIConfig struct {
	URL string
}

// DataConfig represents local data configuration.
type DataConfig struct {
	Root       string
	DBPath     string
	ExportsDir string
	LayoutFile string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if
// available. You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		API: APIConfig{
			URL: os.Getenv("CHERRY_API_URL"),
		},
		Data: DataConfig{
			Root:       getEnvOrDefault("CHERRY_DATA_ROOT", "./cherry"),
			DBPath:     os.Getenv("CHERRY_DB_PATH"),
			ExportsDir: os.Getenv("CHERRY_EXPORTS_DIR"),
			LayoutFile: os.Getenv("CHERRY_LAYOUT_FILE"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate checks that the named configuration fields are set.
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, field := range required {
		var value string
		switch field {
		case "api.url":
			value = c.API.URL
		case "data.root":
			value = c.Data.Root
		case "data.dbPath":
			value = c.Data.DBPath
		case "data.exportsDir":
			value = c.Data.ExportsDir
		case "data.layoutFile":
			value = c.Data.LayoutFile
		}

		if value == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a
// default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
