package config

import "time"

// Config represents the complete outline configuration.
// It can be loaded from .outline/config.yml with environment variable overrides.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// OutputConfig defines where the generated document goes.
type OutputConfig struct {
	File string `yaml:"file" mapstructure:"file"` // relative to the workspace root unless absolute
}

// ScanConfig tunes file reading.
type ScanConfig struct {
	Concurrency   int `yaml:"concurrency" mapstructure:"concurrency"`       // files read at once
	CacheCapacity int `yaml:"cache_capacity" mapstructure:"cache_capacity"` // files kept in the watch-mode cache
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before regenerating
}

// Debounce returns the debounce period as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/*.{ts,js,tsx,jsx,java,py,cs}",
			},
			Ignore: []string{
				"**/node_modules/**",
			},
		},
		Output: OutputConfig{
			File: "README.md",
		},
		Scan: ScanConfig{
			Concurrency:   8,
			CacheCapacity: 10_000,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}
