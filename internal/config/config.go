package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"mcpscan/internal/logging"
)

const APP_NAME = "mcpscan" // application name used for config directory

const (
	CurrentVersion = "1.0"

	DefaultMaxDepth    = 15
	DefaultMaxFileSize = 5 * 1024 * 1024
	DefaultAddr        = "127.0.0.1:8080"
	DefaultFormat      = "json"
)

// Formats lists every output format the report encoder understands.
var Formats = []string{"json", "yaml", "markdown", "text"}

// Config holds user configuration for mcpscan. Every field has a usable
// default, so a missing config file is not an error.
type Config struct {
	Version  string       `yaml:"version"`   // Track config version
	InitTime int64        `yaml:"init_time"` // Unix timestamp of first save
	Scan     ScanConfig   `yaml:"scan"`
	Parser   ParserConfig `yaml:"parser"`
	Output   OutputConfig `yaml:"output"`
	Server   ServerConfig `yaml:"server"`
}

// ScanConfig controls which files of a tree are analyzed.
type ScanConfig struct {
	// Include and Exclude are glob patterns matched against slash-separated
	// paths relative to the scan root. An empty Include accepts every file.
	Include       []string `yaml:"include,omitempty"`
	Exclude       []string `yaml:"exclude,omitempty"`
	SkipDirs      []string `yaml:"skip_dirs,omitempty"`
	MaxDepth      int      `yaml:"max_depth"`
	MaxFileSize   int64    `yaml:"max_file_size"`
	IncludeHidden bool     `yaml:"include_hidden"`
}

type ParserConfig struct {
	// StringAwareBraces ignores braces inside quoted strings when extracting
	// annotation blocks.
	StringAwareBraces bool `yaml:"string_aware_braces"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Pretty bool   `yaml:"pretty"`
}

type ServerConfig struct {
	Addr          string `yaml:"addr"`
	AllowedOrigin string `yaml:"allowed_origin,omitempty"`
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config paths", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location. Defaults are returned
// when no config file exists yet.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	if !exists {
		logging.Debug("No config file, using defaults", "path", configPath)
		cfg := DefaultConfig()
		return &cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path. Fields the file leaves out
// keep their default values.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	return primary, false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Version: CurrentVersion,
		Scan: ScanConfig{
			SkipDirs:    []string{".git", "node_modules", "vendor", "dist", "build"},
			MaxDepth:    DefaultMaxDepth,
			MaxFileSize: DefaultMaxFileSize,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Scan.MaxDepth < 1 {
		return fmt.Errorf("scan.max_depth must be at least 1, got %d", c.Scan.MaxDepth)
	}
	if c.Scan.MaxFileSize < 1 {
		return fmt.Errorf("scan.max_file_size must be positive, got %d", c.Scan.MaxFileSize)
	}
	if !IsValidFormat(c.Output.Format) {
		return fmt.Errorf("output.format %q is not one of %v", c.Output.Format, Formats)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	return nil
}

// IsValidFormat reports whether format names a supported output format.
func IsValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Init writes a default config to the standard location unless one is
// already there. It returns the path and whether a file was created.
func Init() (string, bool, error) {
	path, exists := FindConfigFile()
	if exists {
		return path, false, nil
	}

	cfg := DefaultConfig()
	if err := cfg.SaveTo(path); err != nil {
		return "", false, err
	}

	logging.Info("Configuration created successfully", "path", path)
	return path, true, nil
}
