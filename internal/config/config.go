package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values
type Config struct {
	Addr         string        `yaml:"addr"`
	DBDriver     string        `yaml:"db_driver"` // "sqlite3" or "postgres"
	DBPath       string        `yaml:"db_path"`   // sqlite3 database file
	DBDSN        string        `yaml:"db_dsn"`    // postgres connection string
	APIKey       string        `yaml:"api_key"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	DBSource string // where the DB setting was set from: "default", "yaml file", or "env var"
	DemoMode bool   // load sample data on new database (set via -demo flag)
}

// Load loads configuration from YAML file and overrides with env vars if present
func Load(path string) (*Config, error) {
	// Defaults
	cfg := &Config{
		Addr:         ":8080",
		DBDriver:     "sqlite3",
		DBPath:       "./relatrix.db",
		DBSource:     "default",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Load from YAML if file exists
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		prevDBPath := cfg.DBPath
		prevDSN := cfg.DBDSN
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, err
		}
		if cfg.DBPath != prevDBPath || cfg.DBDSN != prevDSN {
			cfg.DBSource = "yaml file"
		}
	}

	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.DBDriver = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
		cfg.DBSource = "env var"
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DBDSN = v
		cfg.DBSource = "env var"
	}
	if v := os.Getenv("ADMIN_API_KEY"); v != "" {
		cfg.APIKey = v
	}

	return cfg, nil
}

// DSN returns the connection string for the active driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DBDSN
	}
	return c.DBPath
}
