package router

import (
	"log/slog"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/internal"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/route"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/session"
	"github.com/shopspring/decimal"
)

// Phase is the coarse state of the navigation state machine.
type Phase int

const (
	PhaseAuthPending Phase = iota
	PhaseCashierHome
	PhaseCashierFlow
	PhaseKioskHome
	PhaseKioskFlow
)

func (p Phase) String() string {
	switch p {
	case PhaseAuthPending:
		return "AuthPending"
	case PhaseCashierHome:
		return "CashierHome"
	case PhaseCashierFlow:
		return "CashierFlow"
	case PhaseKioskHome:
		return "KioskHome"
	case PhaseKioskFlow:
		return "KioskFlow"
	default:
		return "Unknown"
	}
}

// Reason explains why a decision did not land where it was asked to.
type Reason int

const (
	ReasonNone         Reason = iota // Landed where requested, or not a navigation request
	ReasonWrongMode                  // Route belongs to the other mode's screens
	ReasonUnknownRoute               // Path matches no route
	ReasonShiftClosed                // Sale screen requested without an open shift
	ReasonNotLoggedIn                // Anything but the login while unauthenticated
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonWrongMode:
		return "wrong_mode"
	case ReasonUnknownRoute:
		return "unknown_route"
	case ReasonShiftClosed:
		return "shift_closed"
	case ReasonNotLoggedIn:
		return "not_logged_in"
	default:
		return "unknown"
	}
}

// Decision is what the caller must do next: show Target. When ClearHistory
// is set the caller drops its own back stack before showing it.
type Decision struct {
	Requested    string // Path the caller asked for; empty for non-navigation transitions
	Target       string // Path to show
	Route        route.Route
	Params       route.Params
	Reason       Reason
	ClearHistory bool
	Phase        Phase
	Summary      *session.Summary // Set when a shift was just closed
}

// Redirected reports whether the caller must show something other than
// what it asked for.
func (d Decision) Redirected() bool {
	return d.Reason != ReasonNone
}

// ModeRouter is the navigation state machine. It gates routes by UI mode and
// shift state and owns the back history. Like the Session it reads, it has a
// single writer: the UI loop.
type ModeRouter struct {
	session *session.Session
	current StackEntry
	phase   Phase
	history *Stack
	logger  *slog.Logger
}

// Option configures a ModeRouter.
type Option func(*ModeRouter)

// WithLogger sets the logger used for decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *ModeRouter) {
		r.logger = logger
	}
}

// NewModeRouter creates a router in AuthPending at the PIN login. A session
// that is already logged in is honored as if Login had been called.
func NewModeRouter(sess *session.Session, opts ...Option) *ModeRouter {
	r := &ModeRouter{
		session: sess,
		current: StackEntry{Path: string(PinLogin), Route: PinLogin},
		phase:   PhaseAuthPending,
		history: NewStack(),
		logger:  internal.GetLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if sess.LoggedIn() {
		r.Login(sess.Mode())
	}
	return r
}

// Session returns the session the router reads.
func (r *ModeRouter) Session() *session.Session {
	return r.session
}

// Phase returns the current state machine phase.
func (r *ModeRouter) Phase() Phase {
	return r.phase
}

// Current returns the entry being shown.
func (r *ModeRouter) Current() StackEntry {
	return r.current
}

// History lists back-stack paths, bottom first, excluding the current one.
func (r *ModeRouter) History() []string {
	return r.history.Paths()
}

// CanGoBack reports whether Back would leave the current screen.
func (r *ModeRouter) CanGoBack() bool {
	return !r.history.IsEmpty()
}

// Login moves out of AuthPending. A cashier without an open shift is sent
// to the open-shift screen first.
func (r *ModeRouter) Login(mode constants.UIMode) Decision {
	if mode == constants.UIModeNone {
		return r.Logout()
	}
	r.session.Login(mode)

	target := ResolveRedirect(mode)
	if mode == constants.UIModeCashier && !r.session.IsShiftOpen() {
		target = OpenShift
	}
	return r.land(entryFor(target), "", ReasonNone, true)
}

// Logout returns to AuthPending and clears the session, including the shift.
func (r *ModeRouter) Logout() Decision {
	r.session.Logout()
	return r.land(entryFor(PinLogin), "", ReasonNone, true)
}

// RequestNavigate asks to show path. Paths outside the current mode, unknown
// paths and sale screens without a shift are silently redirected; the
// returned decision says where to go instead.
func (r *ModeRouter) RequestNavigate(path string) Decision {
	mode := r.session.Mode()
	target, params, family := Resolve(path)

	switch {
	case mode == constants.UIModeNone:
		if family != FamilyAuth {
			return r.land(entryFor(PinLogin), path, ReasonNotLoggedIn, true)
		}
		return r.land(entryFor(PinLogin), path, ReasonNone, true)

	case family == FamilyUnknown:
		return r.land(entryFor(ResolveRedirect(mode)), path, ReasonUnknownRoute, true)

	case family == FamilyAuth:
		// Going back to the PIN pad from inside the app is a logout.
		d := r.Logout()
		d.Requested = path
		return d

	case !IsRouteAllowed(target, mode):
		return r.land(entryFor(ResolveRedirect(mode)), path, ReasonWrongMode, true)

	case mode == constants.UIModeCashier && RequiresOpenShift(target) && !r.session.IsShiftOpen():
		return r.forward(entryFor(OpenShift), path, ReasonShiftClosed)
	}

	entry := StackEntry{Path: path, Route: target, Params: params}
	if target == ResolveRedirect(mode) {
		return r.land(entry, path, ReasonNone, true)
	}
	return r.forward(entry, path, ReasonNone)
}

// OpenShiftCompleted records the opening float and lands on the dashboard
// with a history of one entry.
func (r *ModeRouter) OpenShiftCompleted(openingAmount decimal.Decimal, notes string) Decision {
	mode := r.session.Mode()
	if mode != constants.UIModeCashier {
		return r.land(entryFor(ResolveRedirect(mode)), "", ReasonWrongMode, true)
	}
	r.session.OpenShift(openingAmount, notes)
	return r.land(entryFor(Dashboard), "", ReasonNone, true)
}

// CloseShiftCompleted closes the shift and shows its summary. The history
// under the summary is replaced by the PIN login, so the next Back from the
// summary logs out instead of returning to the dashboard.
func (r *ModeRouter) CloseShiftCompleted(closingAmount decimal.Decimal, notes string) Decision {
	mode := r.session.Mode()
	if mode != constants.UIModeCashier {
		return r.land(entryFor(ResolveRedirect(mode)), "", ReasonWrongMode, true)
	}

	summary, ok := r.session.CloseShift(closingAmount, notes)
	if !ok {
		return r.land(entryFor(OpenShift), "", ReasonShiftClosed, true)
	}

	d := r.land(entryFor(ShiftSummary), "", ReasonNone, true)
	r.history.Reset(entryFor(PinLogin))
	d.Summary = &summary
	return d
}

// Back pops one history entry. Popping onto the PIN login logs out. With
// nothing to pop the current screen stays. Entries that are no longer
// reachable (the shift closed since they were pushed) send the user home.
func (r *ModeRouter) Back() Decision {
	entry := r.history.Pop()
	if entry == nil {
		return r.decision(r.current, "", ReasonNone, false)
	}

	if entry.Route == PinLogin {
		return r.Logout()
	}

	mode := r.session.Mode()
	if !IsRouteAllowed(entry.Route, mode) {
		return r.land(entryFor(ResolveRedirect(mode)), entry.Path, ReasonWrongMode, true)
	}
	if mode == constants.UIModeCashier && RequiresOpenShift(entry.Route) && !r.session.IsShiftOpen() {
		return r.land(entryFor(OpenShift), entry.Path, ReasonShiftClosed, true)
	}

	r.current = *entry
	r.phase = phaseFor(mode, entry.Route)
	return r.decision(r.current, entry.Path, ReasonNone, false)
}

// OnInactivityTimeout resets a kiosk to its home screen with no history.
// The idle timer is owned by the host; outside kiosk mode this does nothing.
func (r *ModeRouter) OnInactivityTimeout() Decision {
	if r.session.Mode() != constants.UIModeKiosk {
		return r.decision(r.current, "", ReasonNone, false)
	}
	r.logger.Info("kiosk idle, returning home", "from", r.current.Path)
	return r.land(entryFor(KioskHome), "", ReasonNone, true)
}

// land replaces the current screen, optionally dropping history.
func (r *ModeRouter) land(entry StackEntry, requested string, reason Reason, clearHistory bool) Decision {
	if clearHistory {
		r.history.Clear()
	}
	r.current = entry
	r.phase = phaseFor(r.session.Mode(), entry.Route)
	return r.decision(entry, requested, reason, clearHistory)
}

// forward pushes the current screen and shows entry. Re-requesting the
// current path does not grow the history.
func (r *ModeRouter) forward(entry StackEntry, requested string, reason Reason) Decision {
	if entry.Path != r.current.Path {
		r.history.Push(r.current)
		r.current = entry
	}
	r.phase = phaseFor(r.session.Mode(), entry.Route)
	return r.decision(entry, requested, reason, false)
}

func (r *ModeRouter) decision(entry StackEntry, requested string, reason Reason, clearHistory bool) Decision {
	d := Decision{
		Requested:    requested,
		Target:       entry.Path,
		Route:        entry.Route,
		Params:       entry.Params,
		Reason:       reason,
		ClearHistory: clearHistory,
		Phase:        r.phase,
	}
	if d.Redirected() {
		r.logger.Info("navigation redirected",
			"requested", requested, "target", d.Target,
			"reason", reason.String(), "mode", r.session.Mode().GetName())
	} else {
		r.logger.Debug("navigation", "target", d.Target, "phase", r.phase.String(), "depth", r.history.Len())
	}
	return d
}

func entryFor(r route.Route) StackEntry {
	return StackEntry{Path: string(r), Route: r}
}

func phaseFor(mode constants.UIMode, r route.Route) Phase {
	switch mode {
	case constants.UIModeCashier:
		if r == Dashboard {
			return PhaseCashierHome
		}
		return PhaseCashierFlow
	case constants.UIModeKiosk:
		if r == KioskHome {
			return PhaseKioskHome
		}
		return PhaseKioskFlow
	default:
		return PhaseAuthPending
	}
}
