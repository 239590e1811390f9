//go:build linux

package kiosk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/holoplot/go-evdev"
)

// isActivity reports whether an input event counts as a customer touching
// the kiosk. Sync and misc frames are bookkeeping and do not.
func isActivity(t evdev.EvType) bool {
	switch t {
	case evdev.EV_KEY, evdev.EV_ABS, evdev.EV_REL:
		return true
	default:
		return false
	}
}

// WatchInput touches the timer on every key, touch or pointer event read from
// the evdev device at path. It blocks until ctx is done or the device fails.
func WatchInput(ctx context.Context, path string, timer *IdleTimer, logger *slog.Logger) error {
	dev, err := evdev.Open(path)
	if err != nil {
		return fmt.Errorf("kiosk: open input device %s: %w", path, err)
	}

	name, _ := dev.Name()
	logger.Debug("Watching kiosk input device", "path", path, "name", name)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// Unblocks ReadOne.
			_ = dev.Close()
		case <-stop:
		}
	}()

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			_ = dev.Close()
			return fmt.Errorf("kiosk: read input device %s: %w", path, err)
		}
		if isActivity(ev.Type) {
			timer.Touch()
		}
	}
}

// WatchDevices runs WatchInput for each path and returns once all watchers
// have stopped. Errors from individual devices are joined.
func WatchDevices(ctx context.Context, paths []string, timer *IdleTimer, logger *slog.Logger) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, path := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := WatchInput(ctx, path, timer, logger); err != nil {
				logger.Error("Kiosk input watcher stopped", "path", path, "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errors.Join(errs...)
}
