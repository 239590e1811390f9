// Package pricing turns an item and a customer's customization choices into a
// price breakdown, and enforces the selection rules of variations and
// modifier groups.
//
// Every function here is total. Stale selections (a modifier or option that
// disappeared from the catalog since it was chosen) are skipped, quantities are
// clamped to the stepper range, and malformed amounts read as zero. The only
// condition that blocks an order is a missing required selection, reported by
// ValidateRequiredSelections.
package pricing

import (
	"strings"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/catalog"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/shopspring/decimal"
)

// LineKind classifies a breakdown line.
type LineKind int

const (
	LineBase LineKind = iota
	LineVariation
	LineModifier
)

// Line is one priced row of a breakdown, ready for display.
type Line struct {
	Kind   LineKind
	Group  string // Variation name or modifier group name; empty for the base line
	Label  string // Item, option or modifier name
	Amount decimal.Decimal
}

// Breakdown is the result of pricing one customized item.
type Breakdown struct {
	Base           decimal.Decimal
	VariationTotal decimal.Decimal
	ModifierTotal  decimal.Decimal
	UnitPrice      decimal.Decimal // Base plus adjustments, never clamped
	Quantity       int
	Total          decimal.Decimal // UnitPrice times Quantity
	Lines          []Line
}

// Pricer prices selections. The zero value uses the default quantity limit.
type Pricer struct {
	MaxQuantity int
}

// New creates a Pricer with the given quantity ceiling. Values below the
// floor fall back to the default ceiling.
func New(maxQuantity int) *Pricer {
	if maxQuantity < constants.MinQuantity {
		maxQuantity = constants.DefaultMaxQuantity
	}
	return &Pricer{MaxQuantity: maxQuantity}
}

func (p *Pricer) maxQuantity() int {
	if p == nil || p.MaxQuantity < constants.MinQuantity {
		return constants.DefaultMaxQuantity
	}
	return p.MaxQuantity
}

// ClampQuantity forces n into [1, MaxQuantity].
func (p *Pricer) ClampQuantity(n int) int {
	return min(max(n, constants.MinQuantity), p.maxQuantity())
}

// ComputeBreakdown prices item with the given selections.
func (p *Pricer) ComputeBreakdown(item catalog.Item, s Selections) Breakdown {
	b := Breakdown{
		Base:           item.BasePrice,
		VariationTotal: decimal.Zero,
		ModifierTotal:  decimal.Zero,
		Quantity:       p.ClampQuantity(s.Quantity),
		Lines:          []Line{{Kind: LineBase, Label: item.Name, Amount: item.BasePrice}},
	}

	// Walk the item rather than the selection maps so lines come out in
	// catalog order and sums do not depend on map iteration.
	for i := range item.Variations {
		v := &item.Variations[i]
		chosen, ok := s.Variations[v.Name]
		if !ok {
			continue
		}
		opt, ok := v.Option(chosen.Name)
		if !ok {
			continue
		}
		b.VariationTotal = b.VariationTotal.Add(opt.PriceAdjustment)
		b.Lines = append(b.Lines, Line{Kind: LineVariation, Group: v.Name, Label: opt.Name, Amount: opt.PriceAdjustment})
	}

	for i := range item.ModifierGroups {
		g := &item.ModifierGroups[i]
		ids := s.Modifiers[g.ID]
		if len(ids) == 0 {
			continue
		}
		for _, m := range g.Modifiers {
			if _, ok := ids[m.ID]; !ok {
				continue
			}
			b.ModifierTotal = b.ModifierTotal.Add(m.PriceAdjustment)
			b.Lines = append(b.Lines, Line{Kind: LineModifier, Group: g.Name, Label: m.Name, Amount: m.PriceAdjustment})
		}
	}

	b.UnitPrice = b.Base.Add(b.VariationTotal).Add(b.ModifierTotal)
	b.Total = b.UnitPrice.Mul(decimal.NewFromInt(int64(b.Quantity)))
	return b
}

// Validation lists what still has to be chosen before an item can be added.
type Validation struct {
	MissingVariations []string // Names of required variations without a selection
	UnmetGroups       []string // IDs of required groups below their minimum
}

// Valid reports whether nothing is missing.
func (v Validation) Valid() bool {
	return len(v.MissingVariations) == 0 && len(v.UnmetGroups) == 0
}

// ValidateRequiredSelections checks every required variation and every
// required group with a positive minimum. Call it after each mutation.
func (p *Pricer) ValidateRequiredSelections(item catalog.Item, s Selections) Validation {
	var res Validation

	for i := range item.Variations {
		v := &item.Variations[i]
		if !v.Required {
			continue
		}
		chosen, ok := s.Variations[v.Name]
		if ok {
			_, ok = v.Option(chosen.Name)
		}
		if !ok {
			res.MissingVariations = append(res.MissingVariations, v.Name)
		}
	}

	for i := range item.ModifierGroups {
		g := &item.ModifierGroups[i]
		if !g.Enforceable() {
			continue
		}
		if resolvedCount(g, s.Modifiers[g.ID]) < g.MinSelections {
			res.UnmetGroups = append(res.UnmetGroups, g.ID)
		}
	}

	return res
}

// ToggleModifier selects or deselects one modifier of group.
//
// Deselecting always succeeds. Selecting is a no-op when the modifier is
// unknown or unavailable, or when the group is already full; a full
// single-select group instead swaps its current choice for the new one.
// A successful selection also drops stale IDs from the group.
func (p *Pricer) ToggleModifier(group catalog.ModifierGroup, modifierID string, selected bool, s Selections) Selections {
	current := s.Modifiers[group.ID]

	if !selected {
		if _, ok := current[modifierID]; !ok {
			return s
		}
		next := s.Clone()
		delete(next.Modifiers[group.ID], modifierID)
		if len(next.Modifiers[group.ID]) == 0 {
			delete(next.Modifiers, group.ID)
		}
		return next
	}

	m, ok := group.Modifier(modifierID)
	if !ok || !m.Available {
		return s
	}
	if _, already := current[modifierID]; already {
		return s
	}

	kept := make(map[string]struct{}, len(current)+1)
	for id := range current {
		if _, ok := group.Modifier(id); ok {
			kept[id] = struct{}{}
		}
	}

	if len(kept) >= group.MaxSelections {
		if !group.IsSingleSelect() {
			return s
		}
		clear(kept)
	}
	kept[modifierID] = struct{}{}

	next := s.Clone()
	next.Modifiers[group.ID] = kept
	return next
}

// SelectVariationOption makes option the only choice for a variation.
func (p *Pricer) SelectVariationOption(variation string, option catalog.VariationOption, s Selections) Selections {
	next := s.Clone()
	next.Variations[variation] = option
	return next
}

// ClearVariation removes the choice for a variation, if any.
func (p *Pricer) ClearVariation(variation string, s Selections) Selections {
	if _, ok := s.Variations[variation]; !ok {
		return s
	}
	next := s.Clone()
	delete(next.Variations, variation)
	return next
}

// SetQuantity stores a clamped quantity.
func (p *Pricer) SetQuantity(n int, s Selections) Selections {
	next := s.Clone()
	next.Quantity = p.ClampQuantity(n)
	return next
}

// Increment is the stepper's plus button.
func (p *Pricer) Increment(s Selections) Selections {
	return p.SetQuantity(p.ClampQuantity(s.Quantity)+1, s)
}

// Decrement is the stepper's minus button.
func (p *Pricer) Decrement(s Selections) Selections {
	return p.SetQuantity(p.ClampQuantity(s.Quantity)-1, s)
}

// ParseAmount reads free-form numeric input such as a price override or an
// opening cash count written with "." as the decimal point. Blank or
// malformed text reads as zero. A currency symbol after or before the minus
// sign is tolerated, and so are "," group separators between groups of three
// digits; "12,50" is malformed, not 1250.
func ParseAmount(text string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), " ", "")

	negative := false
	if rest, ok := strings.CutPrefix(cleaned, "-"); ok {
		negative, cleaned = true, rest
	}
	cleaned = strings.TrimLeft(cleaned, "$€£¥")
	if rest, ok := strings.CutPrefix(cleaned, "-"); ok && !negative {
		negative, cleaned = true, rest
	}

	cleaned, ok := stripGrouping(cleaned)
	if !ok || cleaned == "" || strings.ContainsAny(cleaned, "+-") {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Neg()
	}
	return d
}

// stripGrouping removes "," separators from the integer part, rejecting any
// that do not split it into a 1-3 digit head and 3 digit groups.
func stripGrouping(s string) (string, bool) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if strings.Contains(frac, ",") {
		return "", false
	}
	if !strings.Contains(whole, ",") {
		return s, true
	}

	groups := strings.Split(whole, ",")
	if len(groups[0]) == 0 || len(groups[0]) > 3 {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", false
		}
	}

	out := strings.Join(groups, "")
	if hasFrac {
		out += "." + frac
	}
	return out, true
}
