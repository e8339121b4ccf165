package util

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const AppName = "kidsrd"

// Catalog sources.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

var ErrUnknownSource = errors.New("unknown catalog source")

// Config holds runtime settings and flags.
type Config struct {
	Theme   string        `toml:"theme"`
	Latency Duration      `toml:"latency"`
	Catalog CatalogConfig `toml:"catalog"`
	Log     LogConfig     `toml:"log"`

	Version string `toml:"-"`
}

// Duration decodes TOML strings such as "3s" or "1500ms".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return errors.Wrap(err, "duration")
	}
	*d = Duration(v)
	return nil
}

// CatalogConfig selects where the seed catalog comes from.
type CatalogConfig struct {
	Source   string `toml:"source"` // builtin|file|postgres
	SeedFile string `toml:"seed_file"`
	DSN      string `toml:"dsn"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	Level       string `toml:"level"`    // debug|info|warn|error
	Encoding    string `toml:"encoding"` // json|console
	File        string `toml:"file"`
	Development bool   `toml:"development"`
}

// DefaultConfig is used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Theme:   "catppuccin",
		Latency: Duration(3 * time.Second),
		Catalog: CatalogConfig{Source: SourceBuiltin},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
			File:     filepath.Join(xdg.StateHome, AppName, AppName+".log"),
		},
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/kidsrd/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// LoadConfig overlays the TOML file at path onto the defaults. A missing file
// is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	if c.Latency < 0 {
		return errors.Errorf("latency must not be negative, got %s", c.Latency.Std())
	}
	switch c.Catalog.Source {
	case SourceBuiltin:
	case SourceFile:
		if c.Catalog.SeedFile == "" {
			return errors.New("catalog source file needs a seed file")
		}
	case SourcePostgres:
		if c.Catalog.DSN == "" {
			return errors.New("catalog source postgres needs a DSN")
		}
	default:
		return errors.Wrapf(ErrUnknownSource, "%q", c.Catalog.Source)
	}
	return nil
}
