package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Workouts  WorkoutsConfig  `yaml:"workouts"`
}

// ServerConfig holds the listener settings. APIKey, when set, is required
// in the X-API-Key header of the ingest endpoints.
type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

// StorageConfig selects where plans and settings are kept. Driver is
// "sqlite" (default), "postgres" or "memory".
type StorageConfig struct {
	Driver     string         `yaml:"driver"`
	Path       string         `yaml:"path"`
	Migrations string         `yaml:"migrations"`
	Database   DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type GeminiConfig struct {
	APIKey    string        `yaml:"api_key"`
	PlanModel string        `yaml:"plan_model"`
	ChatModel string        `yaml:"chat_model"`
	Language  string        `yaml:"language"`
	Timeout   time.Duration `yaml:"timeout"`
	Search    bool          `yaml:"search"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// WorkoutsConfig controls the in-memory workout log.
type WorkoutsConfig struct {
	SeedDemo bool `yaml:"seed_demo"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

func defaults() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:     "sqlite",
			Path:       "data/runpro.db",
			Migrations: "migrations",
		},
		Gemini: GeminiConfig{
			PlanModel: "gemini-3-pro-preview",
			ChatModel: "gemini-3-flash-preview",
			Language:  "th",
			Timeout:   60 * time.Second,
			Search:    true,
		},
		Tailscale: TailscaleConfig{Hostname: "runpro", StateDir: "data/tsnet"},
	}
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. Env vars use the prefix RUNPRO_:
//
//	RUNPRO_SERVER_HOST, RUNPRO_SERVER_PORT, RUNPRO_SERVER_API_KEY,
//	RUNPRO_STORAGE_DRIVER, RUNPRO_STORAGE_PATH,
//	RUNPRO_DB_HOST, RUNPRO_DB_PORT, RUNPRO_DB_NAME,
//	RUNPRO_DB_USER, RUNPRO_DB_PASSWORD, RUNPRO_DB_SSLMODE,
//	RUNPRO_GEMINI_API_KEY, RUNPRO_GEMINI_LANGUAGE, RUNPRO_GEMINI_SEARCH,
//	RUNPRO_TAILSCALE_ENABLED
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RUNPRO_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("RUNPRO_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RUNPRO_SERVER_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("RUNPRO_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("RUNPRO_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	db := &cfg.Storage.Database
	if v := os.Getenv("RUNPRO_DB_HOST"); v != "" {
		db.Host = v
	}
	if v := os.Getenv("RUNPRO_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			db.Port = port
		}
	}
	if v := os.Getenv("RUNPRO_DB_NAME"); v != "" {
		db.Name = v
	}
	if v := os.Getenv("RUNPRO_DB_USER"); v != "" {
		db.User = v
	}
	if v := os.Getenv("RUNPRO_DB_PASSWORD"); v != "" {
		db.Password = v
	}
	if v := os.Getenv("RUNPRO_DB_SSLMODE"); v != "" {
		db.SSLMode = v
	}
	if v := os.Getenv("RUNPRO_GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("RUNPRO_GEMINI_LANGUAGE"); v != "" {
		cfg.Gemini.Language = v
	}
	if v := os.Getenv("RUNPRO_GEMINI_SEARCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Gemini.Search = b
		}
	}
	if v := os.Getenv("RUNPRO_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case "postgres":
		db := c.Storage.Database
		if db.Host == "" {
			return fmt.Errorf("storage.database.host is required")
		}
		if db.Port == 0 {
			return fmt.Errorf("storage.database.port is required")
		}
		if db.Name == "" {
			return fmt.Errorf("storage.database.name is required")
		}
		if db.User == "" {
			return fmt.Errorf("storage.database.user is required")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.driver %q is not one of sqlite, postgres, memory", c.Storage.Driver)
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.api_key is required")
	}
	if c.Gemini.Language != "th" && c.Gemini.Language != "en" {
		return fmt.Errorf("gemini.language must be th or en")
	}
	if c.Gemini.Timeout < 0 {
		return fmt.Errorf("gemini.timeout must not be negative")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
