package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/graphsig/pkg/pipeline"
)

// configFile is the config file name inside the config directory.
const configFile = "config.toml"

var configValidate = validator.New()

// Config holds the settings read from the config file.
type Config struct {
	Signature SignatureConfig `toml:"signature"`
	Classify  ClassifyConfig  `toml:"classify"`
	Cache     CacheConfig     `toml:"cache"`
	Server    ServerConfig    `toml:"server"`
}

// SignatureConfig holds [signature] defaults.
type SignatureConfig struct {
	Height    int    `toml:"height" validate:"gte=-1"`
	Invariant string `toml:"invariant" validate:"omitempty,oneof=string int"`
	MaxSteps  int    `toml:"max_steps" validate:"gte=0"`
}

// ClassifyConfig holds [classify] defaults.
type ClassifyConfig struct {
	Workers int `toml:"workers" validate:"gte=0"`
}

// CacheConfig holds [cache] settings.
type CacheConfig struct {
	URL string        `toml:"url"`
	TTL time.Duration `toml:"ttl" validate:"gte=0"`
}

// ServerConfig holds [server] settings.
type ServerConfig struct {
	Addr string `toml:"addr" validate:"omitempty,hostname_port|startswith=:"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Signature: SignatureConfig{
			Height:    pipeline.DefaultHeight,
			Invariant: pipeline.DefaultInvariantType,
		},
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// readConfig decodes and validates the TOML file at path on top of the
// defaults.
func readConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// loadConfig reads path, or the default config file when path is empty. A
// missing default file yields the defaults; a missing explicit file is an
// error.
func loadConfig(path string, explicit bool) (*Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(dir, configFile)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	return readConfig(path)
}
