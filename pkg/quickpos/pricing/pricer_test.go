package pricing

import (
	"testing"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, context ...any) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "want %s, got %s %v", want, got, context)
}

func latte() catalog.Item {
	return catalog.Item{
		ID:        "42",
		Name:      "Latte",
		BasePrice: dec("15.00"),
		Variations: []catalog.Variation{
			{
				Name:     "Size",
				Required: true,
				Options: []catalog.VariationOption{
					{Name: "Regular", PriceAdjustment: decimal.Zero},
					{Name: "Large", PriceAdjustment: dec("3.00")},
				},
			},
			{
				Name: "Cup",
				Options: []catalog.VariationOption{
					{Name: "Reusable", PriceAdjustment: dec("-0.50")},
				},
			},
		},
		ModifierGroups: []catalog.ModifierGroup{
			{
				ID:            "extras",
				Name:          "Extras",
				MaxSelections: 2,
				Modifiers: []catalog.Modifier{
					{ID: "milk", Name: "Milk", PriceAdjustment: dec("1.50"), Available: true},
					{ID: "shot", Name: "Extra Shot", PriceAdjustment: dec("2.00"), Available: true},
					{ID: "cream", Name: "Whipped Cream", PriceAdjustment: dec("1.00"), Available: true},
					{ID: "syrup", Name: "Syrup", PriceAdjustment: dec("0.75"), Available: false},
				},
			},
			{
				ID:            "temp",
				Name:          "Temperature",
				Required:      true,
				MinSelections: 1,
				MaxSelections: 1,
				Modifiers: []catalog.Modifier{
					{ID: "hot", Name: "Hot", PriceAdjustment: decimal.Zero, Available: true},
					{ID: "iced", Name: "Iced", PriceAdjustment: dec("0.50"), Available: true},
				},
			},
		},
	}
}

func group(t *testing.T, item catalog.Item, id string) catalog.ModifierGroup {
	t.Helper()
	g, ok := item.ModifierGroup(id)
	require.True(t, ok, "group %s", id)
	return *g
}

func option(t *testing.T, item catalog.Item, variation, name string) catalog.VariationOption {
	t.Helper()
	v, ok := item.Variation(variation)
	require.True(t, ok, "variation %s", variation)
	opt, ok := v.Option(name)
	require.True(t, ok, "option %s", name)
	return opt
}

func TestComputeBreakdownScenario(t *testing.T) {
	p := New(0)
	item := latte()

	s := NewSelections()
	s = p.SelectVariationOption("Size", option(t, item, "Size", "Large"), s)
	s = p.ToggleModifier(group(t, item, "extras"), "milk", true, s)
	s = p.SetQuantity(2, s)

	b := p.ComputeBreakdown(item, s)
	assertMoney(t, "15.00", b.Base)
	assertMoney(t, "3.00", b.VariationTotal)
	assertMoney(t, "1.50", b.ModifierTotal)
	assertMoney(t, "19.50", b.UnitPrice)
	assert.Equal(t, 2, b.Quantity)
	assertMoney(t, "39.00", b.Total)

	require.Len(t, b.Lines, 3)
	assert.Equal(t, LineBase, b.Lines[0].Kind)
	assert.Equal(t, Line{Kind: LineVariation, Group: "Size", Label: "Large", Amount: b.Lines[1].Amount}, b.Lines[1])
	assert.Equal(t, "Milk", b.Lines[2].Label)
	assert.Equal(t, "Extras", b.Lines[2].Group)
}

func TestComputeBreakdownEmptySelections(t *testing.T) {
	p := New(0)
	item := latte()

	for _, qty := range []int{1, 2, 7, 99} {
		b := p.ComputeBreakdown(item, p.SetQuantity(qty, NewSelections()))
		assertMoney(t, item.BasePrice.Mul(decimal.NewFromInt(int64(qty))).String(), b.Total, "qty %d", qty)
		assert.Len(t, b.Lines, 1)
	}
}

func TestComputeBreakdownOrderIndependent(t *testing.T) {
	p := New(0)
	item := latte()
	extras := group(t, item, "extras")
	temp := group(t, item, "temp")
	large := option(t, item, "Size", "Large")

	a := NewSelections()
	a = p.SelectVariationOption("Size", large, a)
	a = p.ToggleModifier(extras, "milk", true, a)
	a = p.ToggleModifier(extras, "shot", true, a)
	a = p.ToggleModifier(temp, "iced", true, a)

	b := NewSelections()
	b = p.ToggleModifier(temp, "iced", true, b)
	b = p.ToggleModifier(extras, "shot", true, b)
	b = p.ToggleModifier(extras, "milk", true, b)
	b = p.SelectVariationOption("Size", large, b)

	ba := p.ComputeBreakdown(item, a)
	bb := p.ComputeBreakdown(item, b)
	assertMoney(t, "22.00", ba.UnitPrice)
	assert.True(t, ba.UnitPrice.Equal(bb.UnitPrice))
	assert.Equal(t, ba.Lines, bb.Lines)

	sum := ba.Base.Add(ba.VariationTotal).Add(ba.ModifierTotal)
	assert.True(t, sum.Equal(ba.UnitPrice))
}

func TestComputeBreakdownIgnoresStaleSelections(t *testing.T) {
	p := New(0)
	item := latte()

	s := NewSelections()
	s.Variations["Flavor"] = catalog.VariationOption{Name: "Mint", PriceAdjustment: dec("9")}
	s.Variations["Size"] = catalog.VariationOption{Name: "Venti", PriceAdjustment: dec("9")}
	s.Modifiers["extras"] = map[string]struct{}{"milk": {}, "gone": {}}
	s.Modifiers["retired"] = map[string]struct{}{"x": {}}

	b := p.ComputeBreakdown(item, s)
	assertMoney(t, "0", b.VariationTotal)
	assertMoney(t, "1.50", b.ModifierTotal)
	assertMoney(t, "16.50", b.UnitPrice)
}

func TestComputeBreakdownUsesCatalogAdjustment(t *testing.T) {
	p := New(0)
	item := latte()

	s := NewSelections()
	s = p.SelectVariationOption("Size", catalog.VariationOption{Name: "Large", PriceAdjustment: dec("1")}, s)

	b := p.ComputeBreakdown(item, s)
	assertMoney(t, "3.00", b.VariationTotal)
}

func TestComputeBreakdownNegativeUnitPricePassesThrough(t *testing.T) {
	p := New(0)
	item := catalog.Item{
		ID:        "1",
		Name:      "Promo",
		BasePrice: dec("1.00"),
		Variations: []catalog.Variation{{
			Name:    "Coupon",
			Options: []catalog.VariationOption{{Name: "Big", PriceAdjustment: dec("-3.00")}},
		}},
	}

	s := p.SelectVariationOption("Coupon", item.Variations[0].Options[0], NewSelections())
	s = p.SetQuantity(3, s)

	b := p.ComputeBreakdown(item, s)
	assertMoney(t, "-2.00", b.UnitPrice)
	assertMoney(t, "-6.00", b.Total)
}

func TestComputeBreakdownClampsQuantity(t *testing.T) {
	p := New(10)
	item := latte()

	s := NewSelections()
	s.Quantity = 0
	assert.Equal(t, 1, p.ComputeBreakdown(item, s).Quantity)

	s.Quantity = -4
	assert.Equal(t, 1, p.ComputeBreakdown(item, s).Quantity)

	s.Quantity = 500
	b := p.ComputeBreakdown(item, s)
	assert.Equal(t, 10, b.Quantity)
	assertMoney(t, "150", b.Total)
}

func TestValidateRequiredSelections(t *testing.T) {
	p := New(0)
	item := latte()

	v := p.ValidateRequiredSelections(item, NewSelections())
	assert.False(t, v.Valid())
	assert.Equal(t, []string{"Size"}, v.MissingVariations)
	assert.Equal(t, []string{"temp"}, v.UnmetGroups)

	s := p.SelectVariationOption("Size", option(t, item, "Size", "Regular"), NewSelections())
	v = p.ValidateRequiredSelections(item, s)
	assert.False(t, v.Valid())
	assert.Empty(t, v.MissingVariations)
	assert.Equal(t, []string{"temp"}, v.UnmetGroups)

	s = p.ToggleModifier(group(t, item, "temp"), "hot", true, s)
	v = p.ValidateRequiredSelections(item, s)
	assert.True(t, v.Valid())

	// Optional selections never matter.
	s = p.ToggleModifier(group(t, item, "extras"), "milk", true, s)
	assert.True(t, p.ValidateRequiredSelections(item, s).Valid())
}

func TestValidateRequiredSelectionsScenarioMissingSize(t *testing.T) {
	p := New(0)
	item := latte()

	s := p.ToggleModifier(group(t, item, "temp"), "hot", true, NewSelections())
	v := p.ValidateRequiredSelections(item, s)
	require.False(t, v.Valid())
	assert.Equal(t, []string{"Size"}, v.MissingVariations)
	assert.Empty(t, v.UnmetGroups)
}

func TestValidateRequiredSelectionsStaleEntriesDoNotCount(t *testing.T) {
	p := New(0)
	item := latte()

	s := NewSelections()
	s.Variations["Size"] = catalog.VariationOption{Name: "Venti"}
	s.Modifiers["temp"] = map[string]struct{}{"lukewarm": {}}

	v := p.ValidateRequiredSelections(item, s)
	assert.Equal(t, []string{"Size"}, v.MissingVariations)
	assert.Equal(t, []string{"temp"}, v.UnmetGroups)
}

func TestValidateRequiredGroupWithoutMinimumIsNotEnforced(t *testing.T) {
	p := New(0)
	item := catalog.Item{
		ID:        "1",
		Name:      "Bagel",
		BasePrice: dec("2"),
		ModifierGroups: []catalog.ModifierGroup{{
			ID:            "spreads",
			Required:      true,
			MinSelections: 0,
			MaxSelections: 2,
			Modifiers:     []catalog.Modifier{{ID: "butter", Available: true}},
		}},
	}

	assert.True(t, p.ValidateRequiredSelections(item, NewSelections()).Valid())
}

func TestToggleModifierMultiSelectCap(t *testing.T) {
	p := New(0)
	extras := group(t, latte(), "extras")

	s := NewSelections()
	s = p.ToggleModifier(extras, "milk", true, s)
	s = p.ToggleModifier(extras, "shot", true, s)
	require.Equal(t, []string{"milk", "shot"}, s.SelectedModifiers("extras"))

	full := s
	s = p.ToggleModifier(extras, "cream", true, s)
	assert.Equal(t, full, s, "selecting past the maximum is a no-op")
	assert.Len(t, s.SelectedModifiers("extras"), 2)

	s = p.ToggleModifier(extras, "milk", false, s)
	assert.Equal(t, []string{"shot"}, s.SelectedModifiers("extras"))

	s = p.ToggleModifier(extras, "cream", true, s)
	assert.Equal(t, []string{"cream", "shot"}, s.SelectedModifiers("extras"))
}

func TestToggleModifierSingleSelectReplaces(t *testing.T) {
	p := New(0)
	temp := group(t, latte(), "temp")

	s := p.ToggleModifier(temp, "hot", true, NewSelections())
	assert.Equal(t, []string{"hot"}, s.SelectedModifiers("temp"))

	s = p.ToggleModifier(temp, "iced", true, s)
	assert.Equal(t, []string{"iced"}, s.SelectedModifiers("temp"))
	assert.False(t, s.IsSelected("temp", "hot"))
}

func TestToggleModifierDoesNotMutateInput(t *testing.T) {
	p := New(0)
	extras := group(t, latte(), "extras")

	before := p.ToggleModifier(extras, "milk", true, NewSelections())
	after := p.ToggleModifier(extras, "shot", true, before)

	assert.Equal(t, []string{"milk"}, before.SelectedModifiers("extras"))
	assert.Equal(t, []string{"milk", "shot"}, after.SelectedModifiers("extras"))

	removed := p.ToggleModifier(extras, "milk", false, after)
	assert.True(t, after.IsSelected("extras", "milk"))
	assert.False(t, removed.IsSelected("extras", "milk"))
}

func TestToggleModifierAvailability(t *testing.T) {
	p := New(0)
	extras := group(t, latte(), "extras")

	s := p.ToggleModifier(extras, "syrup", true, NewSelections())
	assert.False(t, s.IsSelected("extras", "syrup"), "unavailable modifiers cannot be newly selected")

	s = p.ToggleModifier(extras, "unknown", true, s)
	assert.Empty(t, s.SelectedModifiers("extras"))

	// A modifier that went unavailable after being chosen stays until removed.
	s.Modifiers["extras"] = map[string]struct{}{"syrup": {}}
	s = p.ToggleModifier(extras, "milk", true, s)
	assert.Equal(t, []string{"milk", "syrup"}, s.SelectedModifiers("extras"))

	s = p.ToggleModifier(extras, "syrup", false, s)
	assert.Equal(t, []string{"milk"}, s.SelectedModifiers("extras"))
}

func TestToggleModifierDeselectLastRemovesGroup(t *testing.T) {
	p := New(0)
	temp := group(t, latte(), "temp")

	s := p.ToggleModifier(temp, "hot", true, NewSelections())
	s = p.ToggleModifier(temp, "hot", false, s)
	_, ok := s.Modifiers["temp"]
	assert.False(t, ok)
}

func TestToggleModifierDropsStaleIDsOnSelect(t *testing.T) {
	p := New(0)
	extras := group(t, latte(), "extras")

	s := NewSelections()
	s.Modifiers["extras"] = map[string]struct{}{"gone": {}, "also-gone": {}}

	s = p.ToggleModifier(extras, "milk", true, s)
	assert.Equal(t, []string{"milk"}, s.SelectedModifiers("extras"))
}

func TestSelectVariationOptionIsIdempotent(t *testing.T) {
	p := New(0)
	item := latte()
	large := option(t, item, "Size", "Large")

	once := p.SelectVariationOption("Size", large, NewSelections())
	twice := p.SelectVariationOption("Size", large, once)
	assert.Equal(t, once, twice)

	regular := option(t, item, "Size", "Regular")
	swapped := p.SelectVariationOption("Size", regular, twice)
	got, ok := swapped.SelectedOption("Size")
	require.True(t, ok)
	assert.Equal(t, "Regular", got.Name)
	assert.Len(t, swapped.Variations, 1)

	cleared := p.ClearVariation("Size", swapped)
	_, ok = cleared.SelectedOption("Size")
	assert.False(t, ok)
}

func TestQuantityStepper(t *testing.T) {
	p := New(3)

	s := NewSelections()
	assert.Equal(t, 1, s.Quantity)

	s = p.Decrement(s)
	assert.Equal(t, 1, s.Quantity)

	s = p.Increment(p.Increment(p.Increment(p.Increment(s))))
	assert.Equal(t, 3, s.Quantity)

	s = p.Decrement(s)
	assert.Equal(t, 2, s.Quantity)

	s = p.SetQuantity(1000, s)
	assert.Equal(t, 3, s.Quantity)
}

func TestZeroPricerUsesDefaultLimit(t *testing.T) {
	var p Pricer
	assert.Equal(t, 99, p.ClampQuantity(150))
	assert.Equal(t, 1, p.ClampQuantity(-1))
	assert.Equal(t, 99, New(-5).MaxQuantity)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"12.50":      "12.5",
		" 7 ":        "7",
		"$1,234.00":  "1234",
		"":           "0",
		"abc":        "0",
		"1.2.3":      "0",
		"-4":         "-4",
		"12,50":      "0",
		"1.234,50":   "0",
		"1,23":       "0",
		",500":       "0",
		"12,345,678": "12345678",
		"-$5":        "-5",
		"$-5":        "-5",
		"-$-5":       "0",
		"€ 3.25":     "3.25",
	}
	for in, want := range cases {
		assertMoney(t, want, ParseAmount(in), "input %q", in)
	}
}
