package catalog

import (
	"fmt"
	"strings"
)

// BusinessType tells screens how to present a catalog. It never affects pricing.
type BusinessType int

const (
	BusinessRestaurant BusinessType = iota
	BusinessService
	BusinessRetail
)

// ParseBusinessType accepts "restaurant", "service" or "retail" in any case.
func ParseBusinessType(raw string) (BusinessType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "restaurant":
		return BusinessRestaurant, nil
	case "service":
		return BusinessService, nil
	case "retail":
		return BusinessRetail, nil
	default:
		return 0, fmt.Errorf("%w: unknown business type %q", ErrInvalidCatalog, raw)
	}
}

func (b BusinessType) String() string {
	switch b {
	case BusinessRestaurant:
		return "restaurant"
	case BusinessService:
		return "service"
	case BusinessRetail:
		return "retail"
	default:
		return fmt.Sprintf("BusinessType(%d)", int(b))
	}
}

// CatalogTitle is the heading shown above the item grid.
func (b BusinessType) CatalogTitle() string {
	switch b {
	case BusinessRestaurant:
		return "Menu"
	case BusinessService:
		return "Services"
	case BusinessRetail:
		return "Products"
	default:
		return "Catalog"
	}
}

// ModifierHeading is the label used above modifier groups on detail screens.
func (b BusinessType) ModifierHeading() string {
	switch b {
	case BusinessRestaurant:
		return "Add-ons"
	case BusinessService:
		return "Extras"
	case BusinessRetail:
		return "Options"
	default:
		return "Modifiers"
	}
}

func (b BusinessType) MarshalText() ([]byte, error) {
	switch b {
	case BusinessRestaurant, BusinessService, BusinessRetail:
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("%w: unknown business type %d", ErrInvalidCatalog, int(b))
	}
}

func (b *BusinessType) UnmarshalText(text []byte) error {
	parsed, err := ParseBusinessType(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
