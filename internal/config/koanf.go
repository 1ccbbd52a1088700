package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config files searched in the working
// directory. The first one found is used.
var DefaultConfigPaths = []string{
	"genretrends.yaml",
	"genretrends.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "GENRETRENDS_CONFIG"

const envPrefix = "GENRETRENDS_"

// envKeys maps lowercased environment variable names to koanf keys.
// Variables not listed here are ignored.
var envKeys = map[string]string{
	"genretrends_input":        "input",
	"genretrends_output":       "output",
	"genretrends_pivot":        "pivot_path",
	"genretrends_metrics_file": "metrics_file",
	"genretrends_log_file":     "log.file",
	"genretrends_log_level":    "log.level",
	"genretrends_log_format":   "log.format",
	"genretrends_color":        "log.color",
}

// Load builds a Config from three layers, later ones winning: built-in
// defaults, the optional YAML config file, and GENRETRENDS_* environment
// variables. Flags are applied afterwards by [ParseFlags].
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	path, err := findConfigFile()
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the config file to load, or "" when there is none.
// An explicit GENRETRENDS_CONFIG that does not exist is an error.
func findConfigFile() (string, error) {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s=%s: %w", ConfigPathEnvVar, p, err)
		}
		return p, nil
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// envTransformFunc maps GENRETRENDS_LOG_LEVEL to "log.level" and so on.
// Returning "" tells koanf to skip the variable.
func envTransformFunc(key string) string {
	return envKeys[strings.ToLower(key)]
}
