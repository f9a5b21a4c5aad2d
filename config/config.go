package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config is read from a TOML file; keys missing from the file keep the
// values of Default.
type Config struct {
	Listen     string `toml:"listen"`
	Static     string `toml:"static"`
	CacheDir   string `toml:"cache_dir"`
	Metrics    bool   `toml:"metrics"`
	LogLevel   string `toml:"log_level"`
	TocTimeout string `toml:"toc_timeout"`
}

func Default() Config {
	return Config{
		Listen:     "127.0.0.1:8000",
		Metrics:    true,
		LogLevel:   "info",
		TocTimeout: "100ms",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// Parse is Load for in-memory TOML.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen is required")
	}
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("listen %q: %w", c.Listen, err)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	if d, err := time.ParseDuration(c.TocTimeout); err != nil {
		return fmt.Errorf("toc_timeout %q: %w", c.TocTimeout, err)
	} else if d <= 0 {
		return fmt.Errorf("toc_timeout must be positive")
	}
	return nil
}

// Timeout is the parsed toc_timeout. Call it on a validated Config.
func (c Config) Timeout() time.Duration {
	d, _ := time.ParseDuration(c.TocTimeout)
	return d
}
