package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Catalog is an immutable, validated snapshot of items in display order.
type Catalog struct {
	BusinessType BusinessType
	items        []Item
	byID         map[string]int
}

type snapshotFile struct {
	BusinessType *BusinessType  `yaml:"business_type"` // Required
	Items        []snapshotItem `yaml:"items"`
}

type snapshotItem struct {
	ID             string              `yaml:"id"`
	Name           string              `yaml:"name"`
	Price          decimal.Decimal     `yaml:"price"`
	BusinessType   *BusinessType       `yaml:"business_type"`
	Variations     []snapshotVariation `yaml:"variations"`
	ModifierGroups []snapshotGroup     `yaml:"modifier_groups"`
}

type snapshotVariation struct {
	Name     string           `yaml:"name"`
	Required bool             `yaml:"required"`
	Options  []snapshotOption `yaml:"options"`
}

type snapshotOption struct {
	Name  string          `yaml:"name"`
	Price decimal.Decimal `yaml:"price"`
}

type snapshotGroup struct {
	ID        string             `yaml:"id"`
	Name      string             `yaml:"name"`
	Required  bool               `yaml:"required"`
	Min       int                `yaml:"min_selections"`
	Max       *int               `yaml:"max_selections"`
	Modifiers []snapshotModifier `yaml:"modifiers"`
}

type snapshotModifier struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	Price     decimal.Decimal `yaml:"price"`
	Available *bool           `yaml:"available"`
}

// LoadFile reads a YAML catalog snapshot from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog snapshot. Omitted max_selections means
// single-select, omitted available means available.
func Parse(data []byte) (*Catalog, error) {
	var raw snapshotFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog snapshot: %w", err)
	}

	if raw.BusinessType == nil {
		return nil, fmt.Errorf("%w: business_type is required", ErrInvalidCatalog)
	}
	businessType := *raw.BusinessType

	items := make([]Item, 0, len(raw.Items))
	for _, ri := range raw.Items {
		item := Item{
			ID:           ri.ID,
			Name:         ri.Name,
			BasePrice:    ri.Price,
			BusinessType: businessType,
		}
		if ri.BusinessType != nil {
			item.BusinessType = *ri.BusinessType
		}

		for _, rv := range ri.Variations {
			v := Variation{Name: rv.Name, Required: rv.Required}
			for _, ro := range rv.Options {
				v.Options = append(v.Options, VariationOption{Name: ro.Name, PriceAdjustment: ro.Price})
			}
			item.Variations = append(item.Variations, v)
		}

		for _, rg := range ri.ModifierGroups {
			g := ModifierGroup{
				ID:            rg.ID,
				Name:          rg.Name,
				Required:      rg.Required,
				MinSelections: rg.Min,
				MaxSelections: 1,
			}
			if rg.Max != nil {
				g.MaxSelections = *rg.Max
			}
			for _, rm := range rg.Modifiers {
				available := true
				if rm.Available != nil {
					available = *rm.Available
				}
				g.Modifiers = append(g.Modifiers, Modifier{
					ID:              rm.ID,
					Name:            rm.Name,
					PriceAdjustment: rm.Price,
					Available:       available,
				})
			}
			item.ModifierGroups = append(item.ModifierGroups, g)
		}

		items = append(items, item)
	}

	return New(businessType, items)
}

// New validates items and builds a catalog. Item IDs must be unique.
func New(businessType BusinessType, items []Item) (*Catalog, error) {
	c := &Catalog{
		BusinessType: businessType,
		items:        make([]Item, 0, len(items)),
		byID:         make(map[string]int, len(items)),
	}

	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %q", ErrInvalidCatalog, it.ID)
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns a copy of the items in display order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item looks an item up by ID.
func (c *Catalog) Item(id string) (Item, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[idx], true
}

// Search returns items whose name contains query, compared case-insensitively.
// An empty query returns every item.
func (c *Catalog) Search(query string) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Items()
	}

	fold := cases.Fold()
	needle := fold.String(query)

	var out []Item
	for _, it := range c.items {
		if strings.Contains(fold.String(it.Name), needle) {
			out = append(out, it)
		}
	}
	return out
}
