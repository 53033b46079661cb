package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvLanguage selects the display language when set (e.g. "fr").
const EnvLanguage = "DEDMA_LANG"

const (
	DefaultSystemDir = ".dedma"
	DefaultOutput    = "whats_new.md"
	DefaultAdapter   = "sqlite"
	configFileName   = "config.yaml"
)

// Config is the optional file configuration, read from <root>/<system_dir>/config.yaml.
type Config struct {
	Language  string `yaml:"language"`
	Output    string `yaml:"output"`
	SystemDir string `yaml:"system_dir"`
	Adapter   string `yaml:"adapter"`
}

// LoadConfig reads the config file under root, if any, fills defaults and
// applies the EnvLanguage override.
func LoadConfig(root, systemDir string) (Config, error) {
	if systemDir == "" {
		systemDir = DefaultSystemDir
	}

	cfg := Config{}
	path := filepath.Join(root, systemDir, configFileName)
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if cfg.SystemDir == "" {
		cfg.SystemDir = systemDir
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Adapter == "" {
		cfg.Adapter = DefaultAdapter
	}
	if lang, ok := os.LookupEnv(EnvLanguage); ok && lang != "" {
		cfg.Language = lang
	}

	return cfg, nil
}
