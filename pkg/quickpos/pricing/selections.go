package pricing

import (
	"maps"
	"slices"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/catalog"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
)

// Selections is the customization state a detail screen builds up for one
// item. It is treated as a value: every mutator returns a new Selections and
// leaves its input untouched.
type Selections struct {
	Variations map[string]catalog.VariationOption // variation name -> chosen option
	Modifiers  map[string]map[string]struct{}     // group ID -> chosen modifier IDs
	Quantity   int
}

// NewSelections returns an empty selection with quantity 1.
func NewSelections() Selections {
	return Selections{
		Variations: map[string]catalog.VariationOption{},
		Modifiers:  map[string]map[string]struct{}{},
		Quantity:   constants.MinQuantity,
	}
}

// Clone returns a deep copy.
func (s Selections) Clone() Selections {
	out := Selections{
		Variations: maps.Clone(s.Variations),
		Modifiers:  make(map[string]map[string]struct{}, len(s.Modifiers)),
		Quantity:   s.Quantity,
	}
	if out.Variations == nil {
		out.Variations = map[string]catalog.VariationOption{}
	}
	for groupID, ids := range s.Modifiers {
		out.Modifiers[groupID] = maps.Clone(ids)
	}
	return out
}

// IsSelected reports whether a modifier is currently chosen in a group.
func (s Selections) IsSelected(groupID, modifierID string) bool {
	_, ok := s.Modifiers[groupID][modifierID]
	return ok
}

// SelectedModifiers returns the chosen modifier IDs of a group, sorted.
func (s Selections) SelectedModifiers(groupID string) []string {
	return slices.Sorted(maps.Keys(s.Modifiers[groupID]))
}

// SelectedOption returns the chosen option for a variation.
func (s Selections) SelectedOption(variation string) (catalog.VariationOption, bool) {
	opt, ok := s.Variations[variation]
	return opt, ok
}

// resolvedCount is the number of chosen modifiers that still exist in the group.
func resolvedCount(group *catalog.ModifierGroup, ids map[string]struct{}) int {
	n := 0
	for id := range ids {
		if _, ok := group.Modifier(id); ok {
			n++
		}
	}
	return n
}
