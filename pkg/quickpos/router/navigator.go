package router

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/route"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/session"
	"github.com/shopspring/decimal"
)

// ErrScreenNotRegistered is returned by Run when a decision targets a route
// with no registered screen function.
var ErrScreenNotRegistered = errors.New("router: screen not registered")

// IntentKind is what a screen asks for when it finishes.
type IntentKind int

const (
	IntentNavigate    IntentKind = iota // Show Intent.Path
	IntentBack                          // Pop history
	IntentLogin                         // PIN accepted, enter Intent.Mode
	IntentOpenShift                     // Opening float counted
	IntentCloseShift                    // Closing cash counted
	IntentLogout                        // Sign out
	IntentIdleTimeout                   // Kiosk idle timer expired
	IntentExit                          // Stop the navigator
)

// Intent is the result of a screen.
type Intent struct {
	Kind   IntentKind
	Path   string
	Mode   constants.UIMode
	Amount decimal.Decimal
	Notes  string
}

// NavigateTo asks for a concrete path such as "item_detail/42".
func NavigateTo(path string) Intent {
	return Intent{Kind: IntentNavigate, Path: path}
}

func GoBack() Intent {
	return Intent{Kind: IntentBack}
}

func LoginAs(mode constants.UIMode) Intent {
	return Intent{Kind: IntentLogin, Mode: mode}
}

func ShiftOpened(amount decimal.Decimal, notes string) Intent {
	return Intent{Kind: IntentOpenShift, Amount: amount, Notes: notes}
}

func ShiftClosed(amount decimal.Decimal, notes string) Intent {
	return Intent{Kind: IntentCloseShift, Amount: amount, Notes: notes}
}

func SignOut() Intent {
	return Intent{Kind: IntentLogout}
}

// IdleTimeout is returned by a kiosk screen whose idle timer fired.
func IdleTimeout() Intent {
	return Intent{Kind: IntentIdleTimeout}
}

func Exit() Intent {
	return Intent{Kind: IntentExit}
}

// Input is what a screen function receives.
type Input struct {
	Path     string
	Route    route.Route
	Params   route.Params
	Decision Decision // How the navigator got here
	Session  *session.Session
}

// ScreenFunc runs a screen until the user leaves it.
type ScreenFunc func(in Input) (Intent, error)

// Navigator runs registered screens one after another. Each screen returns
// an Intent, the ModeRouter turns it into a Decision, and the screen for the
// decision's route runs next.
type Navigator struct {
	screens    map[route.Route]ScreenFunc
	router     *ModeRouter
	onDecision func(Decision)
}

// NewNavigator creates a Navigator driven by the given router.
func NewNavigator(r *ModeRouter) *Navigator {
	return &Navigator{
		screens: make(map[route.Route]ScreenFunc),
		router:  r,
	}
}

// Register adds a screen for a route template.
func (n *Navigator) Register(r route.Route, fn ScreenFunc) *Navigator {
	n.screens[r] = fn
	return n
}

// OnDecision sets a hook called with every decision, including redirects.
func (n *Navigator) OnDecision(fn func(Decision)) *Navigator {
	n.onDecision = fn
	return n
}

// Router returns the underlying state machine.
func (n *Navigator) Router() *ModeRouter {
	return n.router
}

// Apply feeds one intent to the router. It reports false for IntentExit.
func (n *Navigator) Apply(intent Intent) (Decision, bool) {
	r := n.router
	var d Decision

	switch intent.Kind {
	case IntentNavigate:
		d = r.RequestNavigate(intent.Path)
	case IntentBack:
		d = r.Back()
	case IntentLogin:
		d = r.Login(intent.Mode)
	case IntentOpenShift:
		d = r.OpenShiftCompleted(intent.Amount, intent.Notes)
	case IntentCloseShift:
		d = r.CloseShiftCompleted(intent.Amount, intent.Notes)
	case IntentLogout:
		d = r.Logout()
	case IntentIdleTimeout:
		d = r.OnInactivityTimeout()
	case IntentExit:
		return Decision{}, false
	default:
		d = r.RequestNavigate(intent.Path)
	}

	if n.onDecision != nil {
		n.onDecision(d)
	}
	return d, true
}

// Run shows the router's current screen and keeps going until a screen
// returns IntentExit or an error occurs.
func (n *Navigator) Run() error {
	cur := n.router.Current()
	d := n.router.decision(cur, "", ReasonNone, false)

	for {
		fn, ok := n.screens[d.Route]
		if !ok {
			return fmt.Errorf("%w: %s", ErrScreenNotRegistered, d.Route)
		}

		intent, err := fn(Input{
			Path:     d.Target,
			Route:    d.Route,
			Params:   d.Params,
			Decision: d,
			Session:  n.router.Session(),
		})
		if err != nil {
			return fmt.Errorf("router: screen %s error: %w", d.Target, err)
		}

		next, more := n.Apply(intent)
		if !more {
			return nil
		}
		d = next
	}
}
