// Package session owns the process-wide login state: the UI mode chosen at
// PIN login and the cash shift currently open on the register.
//
// A Session has exactly one writer, the goroutine running the UI loop. The
// mode and shift-open flag are kept in atomics so background helpers such as
// the kiosk idle timer may read them; everything else is only touched by the
// writer.
package session

import (
	"log/slog"
	"time"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/internal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/atomic"
)

// Shift is a bounded work period during which the cash drawer is tracked.
type Shift struct {
	ID            uuid.UUID
	OpenedAt      time.Time
	OpeningAmount decimal.Decimal
	Notes         string
}

// Summary describes a shift that was just closed.
type Summary struct {
	Shift
	ClosedAt      time.Time
	ClosingAmount decimal.Decimal
	ClosingNotes  string
}

// Duration is how long the shift was open.
func (s Summary) Duration() time.Duration {
	return s.ClosedAt.Sub(s.OpenedAt)
}

// Difference is the counted closing cash minus the opening float.
func (s Summary) Difference() decimal.Decimal {
	return s.ClosingAmount.Sub(s.OpeningAmount)
}

// Session is the single holder of mode and shift state.
type Session struct {
	id        uuid.UUID
	mode      *atomic.Int32
	shiftOpen *atomic.Bool
	shift     Shift

	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithLogger sets the logger used for state changes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New creates a logged-out session with no open shift.
func New(opts ...Option) *Session {
	s := &Session{
		mode:      atomic.NewInt32(int32(constants.UIModeNone)),
		shiftOpen: atomic.NewBool(false),
		now:       time.Now,
		logger:    internal.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID identifies the current login. It is uuid.Nil while logged out.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Mode returns the current UI mode. Safe from any goroutine.
func (s *Session) Mode() constants.UIMode {
	return constants.UIMode(s.mode.Load())
}

// LoggedIn reports whether a mode has been chosen.
func (s *Session) LoggedIn() bool {
	return s.Mode() != constants.UIModeNone
}

// IsShiftOpen reports whether a shift is open. Safe from any goroutine.
func (s *Session) IsShiftOpen() bool {
	return s.shiftOpen.Load()
}

// CurrentShift returns the open shift, if any.
func (s *Session) CurrentShift() (Shift, bool) {
	if !s.IsShiftOpen() {
		return Shift{}, false
	}
	return s.shift, true
}

// Login starts a new login in the given mode. Logging in as UIModeNone is
// the same as logging out. An open shift survives a re-login so a cashier
// who signs back in lands on the dashboard.
func (s *Session) Login(mode constants.UIMode) {
	if mode == constants.UIModeNone {
		s.Logout()
		return
	}
	s.id = uuid.New()
	s.mode.Store(int32(mode))
	s.logger.Info("session login", "session", s.id, "mode", mode.GetName(), "shift_open", s.IsShiftOpen())
}

// Logout clears the mode and any shift state.
func (s *Session) Logout() {
	if s.LoggedIn() {
		s.logger.Info("session logout", "session", s.id)
	}
	s.id = uuid.Nil
	s.mode.Store(int32(constants.UIModeNone))
	s.shiftOpen.Store(false)
	s.shift = Shift{}
}

// RestoreShift marks a shift recorded elsewhere (e.g. by the register's
// backend) as open, without going through the open-shift screen.
func (s *Session) RestoreShift(shift Shift) {
	s.shift = shift
	s.shiftOpen.Store(true)
}

// OpenShift starts a new shift with the counted opening float. Opening while
// a shift is already open replaces it.
func (s *Session) OpenShift(openingAmount decimal.Decimal, notes string) Shift {
	if s.IsShiftOpen() {
		s.logger.Warn("opening shift over an open one", "previous", s.shift.ID)
	}
	s.shift = Shift{
		ID:            uuid.New(),
		OpenedAt:      s.now(),
		OpeningAmount: openingAmount,
		Notes:         notes,
	}
	s.shiftOpen.Store(true)
	s.logger.Info("shift opened", "shift", s.shift.ID, "opening_amount", openingAmount.StringFixed(2))
	return s.shift
}

// CloseShift ends the open shift. It returns false when no shift is open.
func (s *Session) CloseShift(closingAmount decimal.Decimal, notes string) (Summary, bool) {
	if !s.IsShiftOpen() {
		return Summary{}, false
	}
	summary := Summary{
		Shift:         s.shift,
		ClosedAt:      s.now(),
		ClosingAmount: closingAmount,
		ClosingNotes:  notes,
	}
	s.shift = Shift{}
	s.shiftOpen.Store(false)
	s.logger.Info("shift closed",
		"shift", summary.ID,
		"closing_amount", closingAmount.StringFixed(2),
		"difference", summary.Difference().StringFixed(2),
		"duration", summary.Duration().String())
	return summary, true
}
