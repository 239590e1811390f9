//go:build !linux

package kiosk

import (
	"context"
	"errors"
	"log/slog"
)

// ErrInputUnsupported is returned off Linux, where there are no evdev devices.
var ErrInputUnsupported = errors.New("kiosk: input watching requires linux evdev")

func WatchInput(ctx context.Context, path string, timer *IdleTimer, logger *slog.Logger) error {
	return ErrInputUnsupported
}

func WatchDevices(ctx context.Context, paths []string, timer *IdleTimer, logger *slog.Logger) error {
	if len(paths) == 0 {
		return nil
	}
	return ErrInputUnsupported
}
