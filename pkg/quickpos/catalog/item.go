// Package catalog holds the read-only item snapshots consumed by the pricing
// and screen layers. Snapshots are fetched and cached elsewhere; this package
// only describes them, validates them and searches them.
package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidCatalog is returned when a snapshot violates a catalog invariant.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Item is a sellable catalog entry.
type Item struct {
	ID             string
	Name           string
	BasePrice      decimal.Decimal
	Variations     []Variation
	ModifierGroups []ModifierGroup
	BusinessType   BusinessType
}

// Variation is a named axis of mutually exclusive options, such as size.
type Variation struct {
	Name     string
	Options  []VariationOption
	Required bool
}

// VariationOption is one choice within a Variation.
type VariationOption struct {
	Name            string
	PriceAdjustment decimal.Decimal
}

// ModifierGroup groups optional add-ons under min/max selection limits.
type ModifierGroup struct {
	ID            string
	Name          string
	Modifiers     []Modifier
	Required      bool
	MinSelections int
	MaxSelections int
}

// Modifier is a single add-on. Unavailable modifiers cannot be newly selected.
type Modifier struct {
	ID              string
	Name            string
	PriceAdjustment decimal.Decimal
	Available       bool
}

// Variation returns the variation with the given name.
func (it *Item) Variation(name string) (*Variation, bool) {
	for i := range it.Variations {
		if it.Variations[i].Name == name {
			return &it.Variations[i], true
		}
	}
	return nil, false
}

// ModifierGroup returns the group with the given ID.
func (it *Item) ModifierGroup(id string) (*ModifierGroup, bool) {
	for i := range it.ModifierGroups {
		if it.ModifierGroups[i].ID == id {
			return &it.ModifierGroups[i], true
		}
	}
	return nil, false
}

// HasCustomization reports whether the item opens a detail screen rather
// than going straight to the cart.
func (it *Item) HasCustomization() bool {
	return len(it.Variations) > 0 || len(it.ModifierGroups) > 0
}

// Option returns the option with the given name.
func (v *Variation) Option(name string) (VariationOption, bool) {
	for _, opt := range v.Options {
		if opt.Name == name {
			return opt, true
		}
	}
	return VariationOption{}, false
}

// Modifier returns the modifier with the given ID.
func (g *ModifierGroup) Modifier(id string) (Modifier, bool) {
	for _, m := range g.Modifiers {
		if m.ID == id {
			return m, true
		}
	}
	return Modifier{}, false
}

// Enforceable reports whether a required group can actually block checkout.
// A required group with no minimum never does.
func (g *ModifierGroup) Enforceable() bool {
	return g.Required && g.MinSelections > 0
}

// IsSingleSelect reports radio-button semantics.
func (g *ModifierGroup) IsSingleSelect() bool {
	return g.MaxSelections == 1
}

// Validate checks the structural invariants of an item.
func (it *Item) Validate() error {
	if it.ID == "" {
		return fmt.Errorf("%w: item %q has no id", ErrInvalidCatalog, it.Name)
	}
	if it.BasePrice.IsNegative() {
		return fmt.Errorf("%w: item %s has negative base price %s", ErrInvalidCatalog, it.ID, it.BasePrice)
	}

	variationNames := make(map[string]struct{}, len(it.Variations))
	for _, v := range it.Variations {
		if _, dup := variationNames[v.Name]; dup {
			return fmt.Errorf("%w: item %s repeats variation %q", ErrInvalidCatalog, it.ID, v.Name)
		}
		variationNames[v.Name] = struct{}{}

		optionNames := make(map[string]struct{}, len(v.Options))
		for _, opt := range v.Options {
			if _, dup := optionNames[opt.Name]; dup {
				return fmt.Errorf("%w: variation %q repeats option %q", ErrInvalidCatalog, v.Name, opt.Name)
			}
			optionNames[opt.Name] = struct{}{}
		}
	}

	groupIDs := make(map[string]struct{}, len(it.ModifierGroups))
	for _, g := range it.ModifierGroups {
		if _, dup := groupIDs[g.ID]; dup {
			return fmt.Errorf("%w: item %s repeats modifier group %q", ErrInvalidCatalog, it.ID, g.ID)
		}
		groupIDs[g.ID] = struct{}{}

		if err := g.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the selection limits and modifier IDs of a group.
func (g *ModifierGroup) Validate() error {
	if g.MinSelections < 0 {
		return fmt.Errorf("%w: group %s has negative minimum", ErrInvalidCatalog, g.ID)
	}
	if g.MaxSelections < 1 {
		return fmt.Errorf("%w: group %s allows no selections", ErrInvalidCatalog, g.ID)
	}
	if g.MinSelections > g.MaxSelections {
		return fmt.Errorf("%w: group %s minimum %d exceeds maximum %d",
			ErrInvalidCatalog, g.ID, g.MinSelections, g.MaxSelections)
	}

	ids := make(map[string]struct{}, len(g.Modifiers))
	for _, m := range g.Modifiers {
		if _, dup := ids[m.ID]; dup {
			return fmt.Errorf("%w: group %s repeats modifier %q", ErrInvalidCatalog, g.ID, m.ID)
		}
		ids[m.ID] = struct{}{}
	}
	return nil
}
