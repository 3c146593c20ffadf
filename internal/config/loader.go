package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DirName is the per-project configuration directory.
const DirName = ".outline"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// LoaderOption customizes a Loader.
type LoaderOption func(*loader)

// WithConfigFile reads the given file instead of searching .outline/.
// A missing explicit file is an error.
func WithConfigFile(path string) LoaderOption {
	return func(l *loader) {
		l.configFile = path
	}
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string, opts ...LoaderOption) Loader {
	l := &loader{
		rootDir: rootDir,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (OUTLINE_*), including ones from <root>/.env
// 2. Config file (.outline/config.yml or .outline/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	// Existing environment variables win over .env entries.
	if err := godotenv.Load(filepath.Join(l.rootDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, DirName))
	}

	v.SetEnvPrefix("OUTLINE")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., OUTLINE_OUTPUT_FILE)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Glob lists are not bound: brace patterns contain commas.
	v.BindEnv("output.file")
	v.BindEnv("scan.concurrency")
	v.BindEnv("scan.cache_capacity")
	v.BindEnv("watch.debounce_ms")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("output.file", defaults.Output.File)

	v.SetDefault("scan.concurrency", defaults.Scan.Concurrency)
	v.SetDefault("scan.cache_capacity", defaults.Scan.CacheCapacity)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
}
