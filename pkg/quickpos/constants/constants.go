// Package constants defines shared constants, types, and configuration values
// used throughout the quickpos core.
package constants

import (
	"os"
	"strings"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables that override values from the config file.
const (
	ConfigPathEnvVar  = "QUICKPOS_CONFIG"
	LogPathEnvVar     = "QUICKPOS_LOG_PATH"
	LogLevelEnvVar    = "QUICKPOS_LOG_LEVEL"
	CatalogPathEnvVar = "QUICKPOS_CATALOG"
	LanguageEnvVar    = "QUICKPOS_LANGUAGE"
	IdleTimeoutEnvVar = "QUICKPOS_KIOSK_IDLE_TIMEOUT"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// UIMode is the operating mode of the device. It is chosen by PIN login and
// stays fixed until logout.
type UIMode int

const (
	UIModeNone    UIMode = iota // Not authenticated
	UIModeCashier               // Staff-operated register
	UIModeKiosk                 // Self-service ordering
)

func (m UIMode) GetName() string {
	switch m {
	case UIModeNone:
		return "None"
	case UIModeCashier:
		return "Cashier"
	case UIModeKiosk:
		return "Kiosk"
	default:
		return "Unknown"
	}
}

func (m UIMode) String() string {
	return m.GetName()
}

// ParseUIMode maps "cashier" or "kiosk" (any case) to a mode.
// Anything else yields UIModeNone and false.
func ParseUIMode(raw string) (UIMode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cashier":
		return UIModeCashier, true
	case "kiosk":
		return UIModeKiosk, true
	default:
		return UIModeNone, false
	}
}

// Default limits and timings.
const (
	DefaultMaxQuantity     = 99               // Upper bound of the quantity stepper
	MinQuantity            = 1                // Lower bound of the quantity stepper
	DefaultKioskIdle       = 90 * time.Second // Kiosk returns home after this much inactivity
	DefaultIdleCheckPeriod = time.Second      // How often the idle timer samples the clock
	DefaultCurrency        = "USD"
	DefaultLanguage        = "en"
)
