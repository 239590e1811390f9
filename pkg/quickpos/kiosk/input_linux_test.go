//go:build linux

package kiosk

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsActivity(t *testing.T) {
	assert.True(t, isActivity(evdev.EV_KEY))
	assert.True(t, isActivity(evdev.EV_ABS))
	assert.True(t, isActivity(evdev.EV_REL))
	assert.False(t, isActivity(evdev.EV_SYN))
	assert.False(t, isActivity(evdev.EV_MSC))
}

func TestWatchInputMissingDevice(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	missing := filepath.Join(t.TempDir(), "event99")

	err := WatchInput(context.Background(), missing, NewIdleTimer(0), logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event99")

	err = WatchDevices(context.Background(), []string{missing, missing + "b"}, NewIdleTimer(0), logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event99b")
}

func TestWatchDevicesNone(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.NoError(t, WatchDevices(context.Background(), nil, NewIdleTimer(0), logger))
}
