package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/catalog"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/config"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/messages"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/pricing"
)

// pairs collects repeated "key=value" flags.
type pairs []string

func (p *pairs) String() string {
	return strings.Join(*p, ",")
}

func (p *pairs) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	*p = append(*p, v)
	return nil
}

func runPrice(cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("price", flag.ContinueOnError)
	fs.SetOutput(out)
	catalogPath := fs.String("catalog", cfg.Catalog.Path, "path to the YAML catalog snapshot")
	itemID := fs.String("item", "", "catalog item id")
	quantity := fs.Int("qty", 1, "quantity")
	var variations, modifiers pairs
	fs.Var(&variations, "variation", "variation choice as Name=Option (repeatable)")
	fs.Var(&modifiers, "modifier", "modifier as groupId=modifierId (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *catalogPath == "" {
		return errors.New("no catalog: set catalog.path or pass -catalog")
	}
	cat, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		return err
	}
	item, ok := cat.Item(*itemID)
	if !ok {
		return fmt.Errorf("item %q not in catalog", *itemID)
	}

	p := pricing.New(cfg.Pricing.MaxQuantity)
	s, err := buildSelections(p, item, variations, modifiers, *quantity)
	if err != nil {
		return err
	}

	tr, err := messages.New(cfg.Locale.Language, cfg.Pricing.Currency)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %s\n", tr.CatalogTitle(cat.BusinessType), item.Name)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, row := range tr.Breakdown(p.ComputeBreakdown(item, s)) {
		fmt.Fprintf(w, "%s\t%s\t\n", row.Label, row.Amount)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, hint := range tr.ValidationHints(item, p.ValidateRequiredSelections(item, s)) {
		fmt.Fprintln(out, "!", hint)
	}
	return nil
}

// buildSelections applies command-line choices through the pricer so they
// obey the same rules as taps on the detail screen.
func buildSelections(p *pricing.Pricer, item catalog.Item, variations, modifiers []string, quantity int) (pricing.Selections, error) {
	s := pricing.NewSelections()

	for _, pair := range variations {
		name, choice, _ := strings.Cut(pair, "=")
		v, ok := item.Variation(name)
		if !ok {
			return s, fmt.Errorf("item %s has no variation %q", item.ID, name)
		}
		opt, ok := v.Option(choice)
		if !ok {
			return s, fmt.Errorf("variation %s has no option %q", name, choice)
		}
		s = p.SelectVariationOption(name, opt, s)
	}

	for _, pair := range modifiers {
		groupID, modifierID, _ := strings.Cut(pair, "=")
		g, ok := item.ModifierGroup(groupID)
		if !ok {
			return s, fmt.Errorf("item %s has no modifier group %q", item.ID, groupID)
		}
		s = p.ToggleModifier(*g, modifierID, true, s)
	}

	return p.SetQuantity(quantity, s), nil
}
