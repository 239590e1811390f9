package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[log]
path = "/var/log/quickpos/quickpos.log"
level = "debug"

[pricing]
max_quantity = 20
currency = "EUR"

[kiosk]
idle_timeout = "2m"
input_devices = ["/dev/input/event1", "/dev/input/event3"]

[locale]
language = "es-MX"

[catalog]
path = "/etc/quickpos/catalog.yaml"
`

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "/var/log/quickpos/quickpos.log", cfg.Log.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Pricing.MaxQuantity)
	assert.Equal(t, "EUR", cfg.Pricing.Currency)
	assert.Equal(t, 2*time.Minute, cfg.Kiosk.IdleTimeout.Duration)
	assert.Equal(t, []string{"/dev/input/event1", "/dev/input/event3"}, cfg.Kiosk.InputDevices)
	assert.Equal(t, "es-MX", cfg.Locale.Language)
	assert.Equal(t, "/etc/quickpos/catalog.yaml", cfg.Catalog.Path)
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, constants.DefaultMaxQuantity, cfg.Pricing.MaxQuantity)
	assert.Equal(t, constants.DefaultKioskIdle, cfg.Kiosk.IdleTimeout.Duration)
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		toml string
		key  string
	}{
		{"negative quantity", "[pricing]\nmax_quantity = -1", "pricing.max_quantity"},
		{"unknown currency", "[pricing]\ncurrency = \"DOLLARS\"", "pricing.currency"},
		{"negative idle", "[kiosk]\nidle_timeout = \"-5s\"", "kiosk.idle_timeout"},
		{"bad language", "[locale]\nlanguage = \"not a tag!\"", "locale.language"},
		{"bad level", "[log]\nlevel = \"loud\"", "log.level"},
		{"unknown key", "[pricing]\ntax_rate = 0.2", "pricing.tax_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			require.Error(t, err)
			assert.True(t, quickpos.IsConfigError(err))
			assert.ErrorIs(t, err, quickpos.ErrInvalidConfig)

			var cfgErr *quickpos.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("[pricing\nmax_quantity = "))
	require.Error(t, err)
	assert.True(t, quickpos.IsConfigError(err))
	assert.NotErrorIs(t, err, quickpos.ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		constants.LogLevelEnvVar:    "warn",
		constants.CatalogPathEnvVar: "/tmp/catalog.yaml",
		constants.LanguageEnvVar:    "es",
		constants.IdleTimeoutEnvVar: "45",
	}))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, "es", cfg.Locale.Language)
	assert.Equal(t, 45*time.Second, cfg.Kiosk.IdleTimeout.Duration)

	err = cfg.ApplyEnv(lookupFrom(map[string]string{constants.IdleTimeoutEnvVar: "90s"}))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Kiosk.IdleTimeout.Duration)

	err = cfg.ApplyEnv(lookupFrom(map[string]string{constants.IdleTimeoutEnvVar: "soon"}))
	assert.True(t, quickpos.IsConfigError(err))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickpos.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	t.Setenv(constants.LogLevelEnvVar, "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level, "environment wins over the file")
	assert.Equal(t, 20, cfg.Pricing.MaxQuantity)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, quickpos.ErrMissingConfig)
}
