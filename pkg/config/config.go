// Package config loads skillsync configuration: defaults, then the
// config file, then SKILLSYNC_* environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// SKILLSYNC_ACTIVE_DIR.
const EnvPrefix = "SKILLSYNC_"

// Rule is one configured classification pattern.
type Rule struct {
	Pattern     string `koanf:"pattern" toml:"pattern"`
	Disposition string `koanf:"disposition" toml:"disposition"`
}

// Config is the explicit configuration passed into the orchestrator at
// construction time. There is no global working-directory state.
type Config struct {
	// ActiveDir is the local working directory the machine actually uses.
	ActiveDir string `koanf:"active_dir" toml:"active_dir"`

	// StoreDir is the local clone of the version-controlled store.
	StoreDir string `koanf:"store_dir" toml:"store_dir"`

	// Namespace scopes item names, "global" by default.
	Namespace string `koanf:"namespace" toml:"namespace"`

	// Remote and Branch override what the store repository reports.
	Remote string `koanf:"remote" toml:"remote"`
	Branch string `koanf:"branch" toml:"branch"`

	// Rules are consulted before the interactive prompt.
	Rules []Rule `koanf:"rules" toml:"rules"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "skillsync", "config.toml")
}

func defaults() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		ActiveDir: filepath.Join(home, ".claude", "skills"),
		StoreDir:  filepath.Join(xdg.DataHome, "skillsync", "store"),
		Namespace: "global",
		Remote:    "origin",
	}
}

// Load builds the configuration from defaults, the config file at path
// (DefaultPath when empty; a missing default file is fine, a missing
// explicit one is not), and the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot parse config file %s", path)
		}
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot read environment overrides")
	}

	cfg := defaults()
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot unmarshal configuration")
	}

	cfg.ActiveDir = expandHome(cfg.ActiveDir)
	cfg.StoreDir = expandHome(cfg.StoreDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the orchestrator relies on.
func (c *Config) Validate() error {
	if c.ActiveDir == "" {
		return errors.New(errors.ErrConfigValid, "active_dir must be set")
	}
	if c.StoreDir == "" {
		return errors.New(errors.ErrConfigValid, "store_dir must be set")
	}
	if filepath.Clean(c.ActiveDir) == filepath.Clean(c.StoreDir) {
		return errors.New(errors.ErrConfigValid, "active_dir and store_dir must differ")
	}
	if c.Namespace == "" {
		return errors.New(errors.ErrConfigValid, "namespace must be set")
	}
	return nil
}

// NamespaceDir returns the store subdirectory holding this namespace's
// canonical entries. The global namespace lives at the store root.
func (c *Config) NamespaceDir() string {
	if c.Namespace == "global" {
		return c.StoreDir
	}
	return filepath.Join(c.StoreDir, c.Namespace)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
