package router

import (
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/route"
)

// Auth routes, reachable in every mode.
const (
	PinLogin route.Route = "pin_login"
)

// Cashier routes.
const (
	Dashboard      route.Route = "dashboard"
	OpenShift      route.Route = "open_shift"
	CloseShift     route.Route = "close_shift"
	ShiftSummary   route.Route = "shift_summary"
	Catalog        route.Route = "catalog"
	ItemDetail     route.Route = "item_detail/{itemId}"
	Cart           route.Route = "cart"
	Checkout       route.Route = "checkout"
	Payment        route.Route = "payment"
	PaymentSuccess route.Route = "payment_success/{saleId}"
	SalesHistory   route.Route = "sales_history"
	SaleDetail     route.Route = "sale_detail/{saleId}"
	Settings       route.Route = "settings"
)

// Kiosk routes.
const (
	KioskHome          route.Route = "kiosk_home"
	KioskCatalog       route.Route = "kiosk_catalog"
	KioskItemDetail    route.Route = "kiosk_item_detail/{itemId}"
	KioskCart          route.Route = "kiosk_cart"
	KioskCheckout      route.Route = "kiosk_checkout"
	KioskPayment       route.Route = "kiosk_payment"
	KioskOrderComplete route.Route = "kiosk_order_complete/{orderId}"
)

// Family is the group of screens a route belongs to.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyAuth
	FamilyCashier
	FamilyKiosk
)

func (f Family) String() string {
	switch f {
	case FamilyAuth:
		return "auth"
	case FamilyCashier:
		return "cashier"
	case FamilyKiosk:
		return "kiosk"
	default:
		return "unknown"
	}
}

var (
	AuthRoutes = route.NewTable(PinLogin)

	CashierRoutes = route.NewTable(
		Dashboard, OpenShift, CloseShift, ShiftSummary,
		Catalog, ItemDetail, Cart, Checkout, Payment, PaymentSuccess,
		SalesHistory, SaleDetail, Settings,
	)

	KioskRoutes = route.NewTable(
		KioskHome, KioskCatalog, KioskItemDetail,
		KioskCart, KioskCheckout, KioskPayment, KioskOrderComplete,
	)
)

// Cashier screens that ring up sales need an open shift.
var shiftGated = map[route.Route]bool{
	Catalog:        true,
	ItemDetail:     true,
	Cart:           true,
	Checkout:       true,
	Payment:        true,
	PaymentSuccess: true,
}

// RequiresOpenShift reports whether r is only reachable with a shift open.
func RequiresOpenShift(r route.Route) bool {
	return shiftGated[r]
}

// FamilyOf returns the family a route template belongs to.
func FamilyOf(r route.Route) Family {
	switch {
	case AuthRoutes.Contains(r):
		return FamilyAuth
	case CashierRoutes.Contains(r):
		return FamilyCashier
	case KioskRoutes.Contains(r):
		return FamilyKiosk
	default:
		return FamilyUnknown
	}
}

// Resolve matches a concrete path against every family.
func Resolve(path string) (route.Route, route.Params, Family) {
	for _, fam := range []struct {
		table  *route.Table
		family Family
	}{
		{AuthRoutes, FamilyAuth},
		{CashierRoutes, FamilyCashier},
		{KioskRoutes, FamilyKiosk},
	} {
		if r, params, ok := fam.table.Resolve(path); ok {
			return r, params, fam.family
		}
	}
	return "", nil, FamilyUnknown
}

// IsRouteAllowed reports whether a route template may be shown in mode.
// Auth routes are allowed everywhere; the other families only in their mode.
func IsRouteAllowed(r route.Route, mode constants.UIMode) bool {
	switch FamilyOf(r) {
	case FamilyAuth:
		return true
	case FamilyCashier:
		return mode == constants.UIModeCashier
	case FamilyKiosk:
		return mode == constants.UIModeKiosk
	default:
		return false
	}
}

// IsPathAllowed is IsRouteAllowed for a concrete path such as "kiosk_item_detail/42".
func IsPathAllowed(path string, mode constants.UIMode) bool {
	r, _, fam := Resolve(path)
	if fam == FamilyUnknown {
		return false
	}
	return IsRouteAllowed(r, mode)
}

// ResolveRedirect returns the home route of a mode. Unauthenticated
// sessions go to the PIN login.
func ResolveRedirect(mode constants.UIMode) route.Route {
	switch mode {
	case constants.UIModeCashier:
		return Dashboard
	case constants.UIModeKiosk:
		return KioskHome
	default:
		return PinLogin
	}
}
