// Package router decides which screen the POS shows next.
//
// The ModeRouter is a state machine over the app's routes. The device runs
// in one of two UI modes chosen at PIN login: Cashier (staff register) or
// Kiosk (self-service). Each mode has its own family of routes; the PIN login
// belongs to both. Requests for a route outside the current mode are never
// errors. They are redirected to the mode's home screen, and the returned
// Decision says so, leaving the caller to perform the navigation it was told.
//
// Cashier sale screens additionally need an open shift. Without one the
// router sends the cashier to the open-shift screen.
//
// # Basic Usage
//
//	sess := session.New()
//	r := router.NewModeRouter(sess)
//
//	d := r.Login(constants.UIModeCashier) // -> open_shift, no shift yet
//	d = r.OpenShiftCompleted(decimal.NewFromInt(100), "")
//	d = r.RequestNavigate("kiosk_item_detail/42")
//	// d.Target == "dashboard", d.Reason == router.ReasonWrongMode
//
// # Running screens
//
// Navigator wraps a ModeRouter with registered screen functions. Each screen
// returns an Intent (navigate, back, open shift, ...), and all routing
// decisions stay in the ModeRouter:
//
//	n := router.NewNavigator(r)
//	n.Register(router.PinLogin, func(in router.Input) (router.Intent, error) {
//	    return router.LoginAs(constants.UIModeKiosk), nil
//	})
//	n.Register(router.KioskHome, kioskHome)
//	n.Run()
//
// # Back navigation
//
// The router keeps its own history. Closing a shift replaces the history
// under the shift summary with the PIN login, so Back from the summary logs
// out rather than returning to a dashboard that needs an open shift to be
// useful.
package router
