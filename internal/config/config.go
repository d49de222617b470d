package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration
type Config struct {
	Analysis struct {
		TargetPath     string `koanf:"target_path"`
		Severity       string `koanf:"severity"`
		TimeoutSeconds int    `koanf:"timeout_seconds"`
		PyrightPath    string `koanf:"pyright_path"`
	} `koanf:"analysis"`

	Pagination struct {
		DefaultPageSize int `koanf:"default_page_size"`
	} `koanf:"pagination"`

	Server struct {
		Port          int     `koanf:"port"`
		RatePerSecond float64 `koanf:"rate_per_second"`
	} `koanf:"server"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"analysis.target_path":         "/app/code",
		"analysis.severity":            "warning",
		"analysis.timeout_seconds":     300,
		"pagination.default_page_size": 50,
		"server.port":                  8888,
		"server.rate_per_second":       5.0,
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		// Try to load from default locations
		defaultPaths := []string{"./pycheck.toml", "$HOME/.pycheck.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix PYCHECK_
	k.Load(env.Provider("PYCHECK_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "PYCHECK_")), "_", ".", 1)
	}), nil)

	// Unmarshal into Config struct
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	// Create sample configuration
	sampleConfig := `# pycheck Configuration

[analysis]
target_path = "/app/code"
severity = "warning"
timeout_seconds = 300
# pyright_path = "/usr/local/bin/pyright"

[pagination]
default_page_size = 50

[server]
port = 8888
rate_per_second = 5.0
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.Analysis.TargetPath == "" {
		return fmt.Errorf("analysis target path is required")
	}

	switch config.Analysis.Severity {
	case "error", "warning", "information":
	default:
		return fmt.Errorf("invalid severity %q (must be error, warning, or information)", config.Analysis.Severity)
	}

	if config.Analysis.TimeoutSeconds <= 0 {
		return fmt.Errorf("analysis timeout must be positive")
	}

	if config.Pagination.DefaultPageSize < 1 {
		return fmt.Errorf("default page size must be at least 1")
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", config.Server.Port)
	}

	return nil
}
