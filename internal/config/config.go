package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DBPathEnv overrides the default archive location
const DBPathEnv = "FFMARKS_DB"

// Config holds application configuration
type Config struct {
	DBPath string
}

// NewConfig creates a new configuration with defaults.
// Values from a .env file in the working directory are loaded first;
// variables already set in the environment take precedence.
func NewConfig() *Config {
	_ = godotenv.Load()

	path := os.Getenv(DBPathEnv)
	if path == "" {
		path = getDefaultDBPath()
	}
	return &Config{
		DBPath: path,
	}
}

// WithDBPath sets a custom database path
func (c *Config) WithDBPath(path string) *Config {
	c.DBPath = path
	return c
}

func getDefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "ffmarks.db"
	}
	return filepath.Join(homeDir, ".bookmarks", "ffmarks.db")
}
