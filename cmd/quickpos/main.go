// Command quickpos drives the QuickPOS core from a terminal. It prices an
// item from a catalog snapshot, replays navigation scripts through the mode
// router, or runs the kiosk idle watcher against real input devices.
//
// Usage:
//
//	quickpos [-config quickpos.toml] price -item 42 -variation Size=Large -modifier extras=milk -qty 2
//	quickpos [-config quickpos.toml] replay shift.txt
//	quickpos [-config quickpos.toml] kiosk
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/config"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "quickpos:", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	global := flag.NewFlagSet("quickpos", flag.ContinueOnError)
	global.SetOutput(out)
	configPath := global.String("config", os.Getenv(constants.ConfigPathEnvVar), "path to the TOML config file")
	if err := global.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	quickpos.Init(quickpos.Options{LogPath: cfg.Log.Path, LogLevel: cfg.Log.Level})
	defer quickpos.Close()

	rest := global.Args()
	if len(rest) == 0 {
		return errors.New("expected a command: price, replay or kiosk")
	}

	switch rest[0] {
	case "price":
		return runPrice(cfg, rest[1:], out)
	case "replay":
		return runReplay(cfg, rest[1:], in, out)
	case "kiosk":
		return runKiosk(cfg)
	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}
