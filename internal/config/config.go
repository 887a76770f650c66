// Package config loads the vsv command's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ForrSiis/vsv"
	"github.com/ForrSiis/vsv/internal/formatter"
)

// Config holds the defaults for a decode run. Command-line flags take
// precedence over every value here.
type Config struct {
	Format           string `toml:"format"`
	Charset          string `toml:"charset"`
	StripCR          bool   `toml:"strip_cr"`
	UnescapeEntities bool   `toml:"unescape_entities"`
	LooseBrackets    bool   `toml:"loose_brackets"`
	Log              Log    `toml:"log"`
}

// Log configures diagnostics output.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Format: string(formatter.Pretty),
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultPath returns the user's config file location,
// e.g. ~/.config/vsv/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vsv", "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error when optional is true.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the output format and the charset name.
func (c Config) Validate() error {
	if _, err := formatter.ParseStyle(c.Format); err != nil {
		return err
	}
	if c.Charset != "" {
		if _, err := htmlindex.Get(c.Charset); err != nil {
			return fmt.Errorf("unknown charset %q: %w", c.Charset, err)
		}
	}
	return nil
}

// Options returns the decode options described by c.
func (c Config) Options() []vsv.Option {
	var opts []vsv.Option
	if c.Charset != "" {
		opts = append(opts, vsv.Charset(c.Charset))
	}
	if c.StripCR {
		opts = append(opts, vsv.StripCarriageReturn())
	}
	if c.UnescapeEntities {
		opts = append(opts, vsv.UnescapeEntities())
	}
	if c.LooseBrackets {
		opts = append(opts, vsv.LooseBrackets())
	}
	return opts
}
