package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/config"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/kiosk"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/router"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/session"
	"golang.org/x/sync/errgroup"
)

// runKiosk logs into kiosk mode and sends the router home whenever the input
// devices go quiet for the configured timeout. It stops on SIGINT or SIGTERM.
func runKiosk(cfg config.Config) error {
	logger := quickpos.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := session.New()
	r := router.NewModeRouter(sess)
	r.Login(constants.UIModeKiosk)

	timer := kiosk.NewIdleTimer(cfg.Kiosk.IdleTimeout.Duration,
		kiosk.WithEnabled(func() bool { return sess.Mode() == constants.UIModeKiosk }))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return timer.Run(ctx)
	})
	if len(cfg.Kiosk.InputDevices) > 0 {
		g.Go(func() error {
			return kiosk.WatchDevices(ctx, cfg.Kiosk.InputDevices, timer, logger)
		})
	} else {
		logger.Warn("No kiosk input devices configured, idle timer will fire on schedule")
	}

	logger.Info("Kiosk running", "idle_timeout", timer.Timeout().String(), "session", sess.ID().String())

	// The router is only touched from this loop.
	for done := false; !done; {
		select {
		case <-ctx.Done():
			done = true
		case <-timer.Expired():
			r.OnInactivityTimeout()
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
