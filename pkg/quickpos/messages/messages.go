// Package messages turns pricing results into text for the screens:
// localized hints for incomplete selections, business-type labels and
// currency amounts formatted for the device locale.
package messages

import (
	"embed"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"unicode"

	"github.com/BrandonKowalski/quickpos/pkg/quickpos/catalog"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/constants"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/internal"
	"github.com/BrandonKowalski/quickpos/pkg/quickpos/pricing"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed locales/*.toml
var locales embed.FS

// Supported lists the bundled languages. The first one is the fallback.
var Supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(Supported)

// Translator formats text for one language and currency. It is immutable
// and safe for concurrent use.
type Translator struct {
	tag       language.Tag
	unit      currency.Unit
	scale     int
	group     rune // Zero when the locale does not group digits
	point     rune
	localizer *i18n.Localizer
	printer   *message.Printer
	logger    *slog.Logger
}

// DisplayLine is one row of a price breakdown ready for rendering.
type DisplayLine struct {
	Label  string
	Amount string
}

// New builds a Translator for the closest supported match of lang and the
// ISO 4217 currency code. Empty values fall back to the defaults.
func New(lang, currencyCode string) (*Translator, error) {
	if strings.TrimSpace(lang) == "" {
		lang = constants.DefaultLanguage
	}
	if strings.TrimSpace(currencyCode) == "" {
		currencyCode = constants.DefaultCurrency
	}

	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(currencyCode)))
	if err != nil {
		return nil, fmt.Errorf("messages: currency %q: %w", currencyCode, err)
	}

	bundle, err := newBundle()
	if err != nil {
		return nil, err
	}

	_, index, _ := matcher.Match(language.Make(lang))
	tag := Supported[index]
	scale, _ := currency.Standard.Rounding(unit)
	printer := message.NewPrinter(tag)
	group, point := separators(printer)

	return &Translator{
		tag:       tag,
		unit:      unit,
		scale:     scale,
		group:     group,
		point:     point,
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
		printer:   printer,
		logger:    internal.GetLogger(),
	}, nil
}

// separators asks the locale how it writes 12345.5 and picks the group and
// decimal marks out of the result.
func separators(p *message.Printer) (group, point rune) {
	sample := []rune(p.Sprint(number.Decimal(12345.5, number.Scale(1))))
	if len(sample) < 4 {
		return ',', '.'
	}
	point = sample[len(sample)-2]
	if g := sample[2]; !unicode.IsDigit(g) {
		group = g
	}
	return group, point
}

func newBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, tag := range Supported {
		file := path.Join("locales", tag.String()+".toml")
		if _, err := bundle.LoadMessageFileFS(locales, file); err != nil {
			return nil, fmt.Errorf("messages: load %s: %w", file, err)
		}
	}
	return bundle, nil
}

// Language is the matched language.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// Currency is the display currency.
func (t *Translator) Currency() currency.Unit {
	return t.unit
}

func (t *Translator) localize(id string, data map[string]any, count any) string {
	cfg := &i18n.LocalizeConfig{MessageID: id, TemplateData: data}
	if count != nil {
		cfg.PluralCount = count
	}
	text, err := t.localizer.Localize(cfg)
	if err != nil {
		t.logger.Debug("Missing translation", "id", id, "language", t.tag.String(), "error", err)
		if text == "" {
			return id
		}
	}
	return text
}

// ValidationHints explains each failed requirement, variations first and
// then modifier groups, in the order the validation reported them.
func (t *Translator) ValidationHints(item catalog.Item, v pricing.Validation) []string {
	hints := make([]string, 0, len(v.MissingVariations)+len(v.UnmetGroups))

	for _, name := range v.MissingVariations {
		hints = append(hints, t.localize("choose_variation", map[string]any{"Name": name}, nil))
	}

	for _, id := range v.UnmetGroups {
		name, minimum := id, 1
		if g, ok := item.ModifierGroup(id); ok {
			name, minimum = g.Name, max(g.MinSelections, 1)
		}
		hints = append(hints, t.localize("group_minimum", map[string]any{
			"Count": minimum,
			"Group": name,
		}, minimum))
	}

	return hints
}

// CatalogTitle is the localized heading above the item grid.
func (t *Translator) CatalogTitle(b catalog.BusinessType) string {
	text := t.localize("catalog_title_"+b.String(), nil, nil)
	if text == "catalog_title_"+b.String() {
		return b.CatalogTitle()
	}
	return text
}

// ModifierHeading is the localized label above modifier groups.
func (t *Translator) ModifierHeading(b catalog.BusinessType) string {
	text := t.localize("modifier_heading_"+b.String(), nil, nil)
	if text == "modifier_heading_"+b.String() {
		return b.ModifierHeading()
	}
	return text
}

// Money formats an amount as "<ISO code> <locale number>", rounded to the
// currency's standard number of minor digits, e.g. "USD 1,234.50". The digits
// come from the decimal itself, so large amounts keep every digit.
func (t *Translator) Money(amount decimal.Decimal) string {
	fixed := amount.Round(int32(t.scale)).StringFixed(int32(t.scale))
	sign, digits := "", fixed
	if rest, ok := strings.CutPrefix(fixed, "-"); ok {
		sign, digits = "-", rest
	}
	whole, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	b.WriteString(t.unit.String())
	b.WriteByte(' ')
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && t.group != 0 && (len(whole)-i)%3 == 0 {
			b.WriteRune(t.group)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteRune(t.point)
		b.WriteString(frac)
	}
	return b.String()
}

// ParseAmount reads an amount typed with this locale's separators, so "12,50"
// is twelve and a half under Spanish. Malformed text reads as zero, as with
// pricing.ParseAmount.
func (t *Translator) ParseAmount(text string) decimal.Decimal {
	canonical := strings.Map(func(r rune) rune {
		switch {
		case r == t.point:
			return '.'
		case t.group != 0 && r == t.group:
			return ','
		case r == '.' || r == ',':
			// A separator this locale does not use.
			return '#'
		default:
			return r
		}
	}, text)
	return pricing.ParseAmount(canonical)
}

// Breakdown renders a computed breakdown as display rows: one per priced
// line, then the unit price, the quantity and the total.
func (t *Translator) Breakdown(b pricing.Breakdown) []DisplayLine {
	rows := make([]DisplayLine, 0, len(b.Lines)+3)

	for _, line := range b.Lines {
		label := line.Label
		if line.Group != "" {
			label = line.Group + ": " + line.Label
		}
		rows = append(rows, DisplayLine{Label: label, Amount: t.Money(line.Amount)})
	}

	rows = append(rows,
		DisplayLine{Label: t.localize("line_unit_price", nil, nil), Amount: t.Money(b.UnitPrice)},
		DisplayLine{Label: t.localize("line_quantity", nil, nil), Amount: t.printer.Sprint(number.Decimal(b.Quantity))},
		DisplayLine{Label: t.localize("line_total", nil, nil), Amount: t.Money(b.Total)},
	)
	return rows
}
