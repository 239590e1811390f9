package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/config"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/messages"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/router"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/session"
	"github.com/shopspring/decimal"
)

// amountParser reads cash amounts typed in a script.
type amountParser func(string) decimal.Decimal

// parseIntent reads one script line. Blank lines and # comments yield ok=false.
//
//	login cashier|kiosk
//	open 100.00 [notes]
//	close 245.50 [notes]
//	go item_detail/42
//	back | idle | logout | exit
func parseIntent(line string, parseAmount amountParser) (router.Intent, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return router.Intent{}, false, nil
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	notes := ""
	if len(args) > 1 {
		notes = strings.Join(args[1:], " ")
	}

	switch strings.ToLower(cmd) {
	case "login":
		if len(args) != 1 {
			return router.Intent{}, false, fmt.Errorf("login needs a mode")
		}
		mode, ok := constants.ParseUIMode(args[0])
		if !ok {
			return router.Intent{}, false, fmt.Errorf("unknown mode %q", args[0])
		}
		return router.LoginAs(mode), true, nil
	case "open", "close":
		if len(args) == 0 {
			return router.Intent{}, false, fmt.Errorf("%s needs an amount", cmd)
		}
		amount := parseAmount(args[0])
		if cmd == "open" {
			return router.ShiftOpened(amount, notes), true, nil
		}
		return router.ShiftClosed(amount, notes), true, nil
	case "go":
		if len(args) != 1 {
			return router.Intent{}, false, fmt.Errorf("go needs a path")
		}
		return router.NavigateTo(args[0]), true, nil
	case "back":
		return router.GoBack(), true, nil
	case "idle":
		return router.IdleTimeout(), true, nil
	case "logout":
		return router.SignOut(), true, nil
	case "exit":
		return router.Exit(), true, nil
	default:
		return router.Intent{}, false, fmt.Errorf("unknown command %q", cmd)
	}
}

func describe(d router.Decision) string {
	var b strings.Builder
	b.WriteString(d.Target)
	if d.Redirected() {
		fmt.Fprintf(&b, " (redirected from %s: %s)", d.Requested, d.Reason)
	}
	if d.Summary != nil {
		fmt.Fprintf(&b, " [drawer %s, difference %s]",
			d.Summary.ClosingAmount.StringFixed(2), d.Summary.Difference().StringFixed(2))
	}
	return b.String()
}

// replay feeds a script to a fresh router and prints where each line lands.
// Amounts are read with the translator's locale.
func replay(script io.Reader, out io.Writer, tr *messages.Translator) error {
	nav := router.NewNavigator(router.NewModeRouter(session.New()))
	fmt.Fprintln(out, nav.Router().Current().Path)

	scanner := bufio.NewScanner(script)
	for n := 1; scanner.Scan(); n++ {
		intent, ok, err := parseIntent(scanner.Text(), tr.ParseAmount)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if !ok {
			continue
		}
		d, more := nav.Apply(intent)
		if !more {
			return nil
		}
		fmt.Fprintf(out, "%s -> %s\n", strings.TrimSpace(scanner.Text()), describe(d))
	}
	return scanner.Err()
}

func runReplay(cfg config.Config, args []string, in io.Reader, out io.Writer) error {
	tr, err := messages.New(cfg.Locale.Language, cfg.Pricing.Currency)
	if err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "-" {
		return replay(in, out, tr)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	return replay(f, out, tr)
}
