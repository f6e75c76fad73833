package config

import (
	"fmt"
	"os"

	"github.com/san-kum/warpsim/internal/metric"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS     = 60
	DefaultTheme   = "nebula"
	DefaultDataDir = ".warpsim"
	DefaultAddr    = "127.0.0.1:8080"
)

type Config struct {
	Mode    metric.Mode   `yaml:"mode"`
	View    metric.View   `yaml:"view"`
	Params  metric.Params `yaml:"params"`
	Animate bool          `yaml:"animate"`
	FPS     int           `yaml:"fps"`
	Theme   string        `yaml:"theme"`
	DataDir string        `yaml:"data_dir"`
	Addr    string        `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:    metric.Time,
		View:    metric.View2D,
		Params:  Defaults(),
		FPS:     DefaultFPS,
		Theme:   DefaultTheme,
		DataDir: DefaultDataDir,
		Addr:    DefaultAddr,
	}
}

// Load reads a YAML file on top of DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays a YAML file onto cfg; keys absent from the file keep
// their current values. Parameters must be finite and are clamped into
// their slider ranges.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Params.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	cfg.Params = Clamp(cfg.Params)
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// ApplyPreset copies a preset's sampling state onto c, leaving the runtime
// settings (fps, theme, paths) alone.
func (c *Config) ApplyPreset(p *Config) {
	c.Mode, c.View, c.Params, c.Animate = p.Mode, p.View, p.Params, p.Animate
}
