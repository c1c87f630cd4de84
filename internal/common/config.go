package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Storage     StorageConfig     `toml:"storage"`
	Logging     LoggingConfig     `toml:"logging"`
	Gemini      GeminiConfig      `toml:"gemini"`
	Import      ImportConfig      `toml:"import"`
	Maintenance MaintenanceConfig `toml:"maintenance"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output"`                                       // "stdout", "file"
}

// GeminiConfig contains Google Gemini API configuration for all AI operations
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key for all AI operations
	FlashModel  string  `toml:"flash_model"` // Model for ideas, chat, and image description
	LiteModel   string  `toml:"lite_model"`  // Model for note refinement
	ProModel    string  `toml:"pro_model"`   // Model for grounded document generation
	ImageModel  string  `toml:"image_model"` // Model for text-to-image wireframe generation
	EditModel   string  `toml:"edit_model"`  // Model for image editing
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between API calls (default: "4s" for 15 RPM)
	Temperature float32 `toml:"temperature"` // Completion temperature
}

// ImportConfig contains configuration for URL imports
type ImportConfig struct {
	RequestTimeout string `toml:"request_timeout"` // HTTP fetch timeout as duration string
	MaxBodySize    int64  `toml:"max_body_size"`   // Maximum fetched body size in bytes
}

// MaintenanceConfig contains configuration for background storage upkeep
type MaintenanceConfig struct {
	GCSchedule string `toml:"gc_schedule"` // Cron schedule for Badger value-log GC (empty disables)
}

// NewDefaultConfig returns the configuration defaults applied before any
// config file or environment override.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8710,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/sparkpad",
				ResetOnStartup: false,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Gemini: GeminiConfig{
			APIKey:      "", // User must provide API key (no fallback)
			FlashModel:  "gemini-2.5-flash",
			LiteModel:   "gemini-2.5-flash-lite",
			ProModel:    "gemini-2.5-pro",
			ImageModel:  "imagen-4.0-generate-001",
			EditModel:   "gemini-2.5-flash-image",
			Timeout:     "5m",
			RateLimit:   "4s", // Default to 4s (15 RPM) for free tier
			Temperature: 0.7,
		},
		Import: ImportConfig{
			RequestTimeout: "30s",
			MaxBodySize:    10 * 1024 * 1024,
		},
		Maintenance: MaintenanceConfig{
			GCSchedule: "@every 10m",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files; SPARKPAD_* environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("SPARKPAD_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SPARKPAD_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if badgerPath := os.Getenv("SPARKPAD_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("SPARKPAD_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if apiKey := os.Getenv("SPARKPAD_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	} else if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if timeout := os.Getenv("SPARKPAD_GEMINI_TIMEOUT"); timeout != "" {
		config.Gemini.Timeout = timeout
	}
	if rateLimit := os.Getenv("SPARKPAD_GEMINI_RATE_LIMIT"); rateLimit != "" {
		config.Gemini.RateLimit = rateLimit
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
