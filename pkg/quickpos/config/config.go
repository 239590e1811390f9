// Package config loads the device configuration from a TOML file and lets
// environment variables override individual keys.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/BurntSushi/toml"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Config is the full device configuration.
type Config struct {
	Log     Log     `toml:"log"`
	Pricing Pricing `toml:"pricing"`
	Kiosk   Kiosk   `toml:"kiosk"`
	Locale  Locale  `toml:"locale"`
	Catalog Catalog `toml:"catalog"`
}

type Log struct {
	Path  string `toml:"path"`  // Empty logs to stdout only
	Level string `toml:"level"` // debug, info, warn or error
}

type Pricing struct {
	MaxQuantity int    `toml:"max_quantity"`
	Currency    string `toml:"currency"` // ISO 4217 code
}

type Kiosk struct {
	IdleTimeout  Duration `toml:"idle_timeout"`
	InputDevices []string `toml:"input_devices"` // evdev paths, e.g. /dev/input/event1
}

type Locale struct {
	Language string `toml:"language"` // BCP 47 tag
}

type Catalog struct {
	Path string `toml:"path"` // YAML catalog snapshot
}

// Duration reads Go duration strings such as "90s" or "2m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log:     Log{Level: "info"},
		Pricing: Pricing{MaxQuantity: constants.DefaultMaxQuantity, Currency: constants.DefaultCurrency},
		Kiosk:   Kiosk{IdleTimeout: Duration{constants.DefaultKioskIdle}},
		Locale:  Locale{Language: constants.DefaultLanguage},
	}
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. An empty path uses the defaults and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, quickpos.NewConfigError("read", "", fmt.Errorf("%w: %s", quickpos.ErrMissingConfig, path))
		}
		if err != nil {
			return Config{}, quickpos.NewConfigError("read", "", err)
		}
		if err := cfg.decode(data); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults and validates it. The
// environment is not consulted.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return quickpos.NewConfigError("decode", "", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return quickpos.NewConfigError("decode", undecoded[0].String(),
			fmt.Errorf("%w: unknown key", quickpos.ErrInvalidConfig))
	}
	return nil
}

// ApplyEnv overrides keys from the environment variables named in constants.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(constants.LogPathEnvVar); ok {
		c.Log.Path = v
	}
	if v, ok := lookup(constants.LogLevelEnvVar); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(constants.CatalogPathEnvVar); ok {
		c.Catalog.Path = v
	}
	if v, ok := lookup(constants.LanguageEnvVar); ok {
		c.Locale.Language = v
	}
	if v, ok := lookup(constants.IdleTimeoutEnvVar); ok {
		d, err := parseSeconds(v)
		if err != nil {
			return quickpos.NewConfigError("env", constants.IdleTimeoutEnvVar, err)
		}
		c.Kiosk.IdleTimeout = Duration{d}
	}
	return nil
}

// parseSeconds accepts a duration string or a bare number of seconds.
func parseSeconds(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(raw)
}

// Validate checks every key and fills zero values with defaults.
func (c *Config) Validate() error {
	invalid := func(key, format string, args ...any) error {
		return quickpos.NewConfigError("validate", key,
			fmt.Errorf("%w: "+format, append([]any{quickpos.ErrInvalidConfig}, args...)...))
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level", "unknown level %q", c.Log.Level)
	}

	switch {
	case c.Pricing.MaxQuantity < 0:
		return invalid("pricing.max_quantity", "must be positive, got %d", c.Pricing.MaxQuantity)
	case c.Pricing.MaxQuantity == 0:
		c.Pricing.MaxQuantity = constants.DefaultMaxQuantity
	}

	if c.Pricing.Currency == "" {
		c.Pricing.Currency = constants.DefaultCurrency
	}
	if _, err := currency.ParseISO(c.Pricing.Currency); err != nil {
		return invalid("pricing.currency", "%q is not an ISO 4217 code", c.Pricing.Currency)
	}

	switch {
	case c.Kiosk.IdleTimeout.Duration < 0:
		return invalid("kiosk.idle_timeout", "must not be negative, got %s", c.Kiosk.IdleTimeout)
	case c.Kiosk.IdleTimeout.Duration == 0:
		c.Kiosk.IdleTimeout = Duration{constants.DefaultKioskIdle}
	}

	if c.Locale.Language == "" {
		c.Locale.Language = constants.DefaultLanguage
	}
	if _, err := language.Parse(c.Locale.Language); err != nil {
		return invalid("locale.language", "%q is not a language tag", c.Locale.Language)
	}

	return nil
}
