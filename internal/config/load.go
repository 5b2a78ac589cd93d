package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "TEXTSCENE_CONFIG"

// Load loads configuration with priority: defaults < file < flags.
// The file is the -config flag, else $TEXTSCENE_CONFIG, else the first
// config.yaml found in the working directory or ConfigDir.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = os.Getenv(EnvConfig)
	}
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config.yaml candidate.
func findConfigFile() string {
	for _, path := range []string{
		"config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "TextScene")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "TextScene")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "textscene")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "textscene")
	}
}

// loadFromFile merges the YAML file at path over cfg. Unknown keys are
// rejected so a misspelt setting does not silently keep its default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
