package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"coffee-shop-bot/internal/models"
)

var (
	// ErrItemNotFound is returned when a (category, name) pair is not on the menu
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidOption is returned when an option key is not in its option set
	ErrInvalidOption = errors.New("invalid option")
)

//go:embed menu.yaml
var embeddedMenu []byte

// Catalog is the read-only menu: categories, items and option sets.
// Loaded once at process start and never mutated afterwards.
type Catalog struct {
	categories []models.Category
	items      map[models.Category][]models.CatalogItem
	itemIndex  map[models.Category]map[string]models.CatalogItem
	options    map[models.OptionKind][]models.OptionEntry
	optIndex   map[models.OptionKind]map[string]models.OptionEntry
	defaults   map[models.OptionKind]models.OptionEntry
}

type menuFile struct {
	Categories []struct {
		Name  models.Category `yaml:"name"`
		Items []struct {
			Name  string  `yaml:"name"`
			Glyph string  `yaml:"glyph"`
			Price float64 `yaml:"price"`
		} `yaml:"items"`
	} `yaml:"categories"`
	Options map[models.OptionKind][]models.OptionEntry `yaml:"options"`
}

// Embedded builds the catalog from the menu compiled into the binary
func Embedded() (*Catalog, error) {
	return parse(embeddedMenu)
}

// LoadFile builds the catalog from an operator-supplied menu file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var menu menuFile
	if err := yaml.Unmarshal(data, &menu); err != nil {
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}

	var items []models.CatalogItem
	for _, cat := range menu.Categories {
		for _, it := range cat.Items {
			items = append(items, models.CatalogItem{
				Category:  cat.Name,
				Name:      it.Name,
				BasePrice: it.Price,
				Glyph:     it.Glyph,
			})
		}
	}

	return New(items, menu.Options)
}

// New builds and validates a catalog from flat item and option lists.
// Item order within a category and option order within a set are preserved.
func New(items []models.CatalogItem, options map[models.OptionKind][]models.OptionEntry) (*Catalog, error) {
	c := &Catalog{
		items:     make(map[models.Category][]models.CatalogItem),
		itemIndex: make(map[models.Category]map[string]models.CatalogItem),
		options:   make(map[models.OptionKind][]models.OptionEntry),
		optIndex:  make(map[models.OptionKind]map[string]models.OptionEntry),
		defaults:  make(map[models.OptionKind]models.OptionEntry),
	}

	for _, item := range items {
		if !item.Category.Valid() {
			return nil, fmt.Errorf("unknown category %q for item %q", item.Category, item.Name)
		}
		if item.Name == "" {
			return nil, fmt.Errorf("item in category %q has no name", item.Category)
		}
		if item.BasePrice < 0 {
			return nil, fmt.Errorf("item %q has negative price %.2f", item.Name, item.BasePrice)
		}
		if _, ok := c.itemIndex[item.Category]; !ok {
			c.categories = append(c.categories, item.Category)
			c.itemIndex[item.Category] = make(map[string]models.CatalogItem)
		}
		if _, dup := c.itemIndex[item.Category][item.Name]; dup {
			return nil, fmt.Errorf("duplicate item %q in category %q", item.Name, item.Category)
		}
		c.items[item.Category] = append(c.items[item.Category], item)
		c.itemIndex[item.Category][item.Name] = item
	}

	if len(c.categories) == 0 {
		return nil, fmt.Errorf("menu has no items")
	}

	for _, kind := range []models.OptionKind{models.OptionSize, models.OptionSugar, models.OptionIce} {
		entries := options[kind]
		if len(entries) == 0 {
			return nil, fmt.Errorf("option set %q is empty", kind)
		}
		c.optIndex[kind] = make(map[string]models.OptionEntry)
		defaults := 0
		for _, entry := range entries {
			if entry.Key == "" {
				return nil, fmt.Errorf("option set %q has an entry without a key", kind)
			}
			if _, dup := c.optIndex[kind][entry.Key]; dup {
				return nil, fmt.Errorf("duplicate key %q in option set %q", entry.Key, kind)
			}
			c.options[kind] = append(c.options[kind], entry)
			c.optIndex[kind][entry.Key] = entry
			if entry.Default {
				c.defaults[kind] = entry
				defaults++
			}
		}
		if defaults != 1 {
			return nil, fmt.Errorf("option set %q must have exactly one default, has %d", kind, defaults)
		}
	}

	return c, nil
}

// Categories returns the menu categories in declaration order
func (c *Catalog) Categories() []models.Category {
	return c.categories
}

// Items returns the items of a category in menu order
func (c *Catalog) Items(category models.Category) []models.CatalogItem {
	return c.items[category]
}

// Item looks up a single item by category and name
func (c *Catalog) Item(category models.Category, name string) (models.CatalogItem, error) {
	item, ok := c.itemIndex[category][name]
	if !ok {
		return models.CatalogItem{}, fmt.Errorf("%w: %s/%s", ErrItemNotFound, category, name)
	}
	return item, nil
}

// Options returns the entries of an option set in declaration order
func (c *Catalog) Options(kind models.OptionKind) []models.OptionEntry {
	return c.options[kind]
}

// Option looks up a single option entry by kind and key
func (c *Catalog) Option(kind models.OptionKind, key string) (models.OptionEntry, error) {
	entry, ok := c.optIndex[kind][key]
	if !ok {
		return models.OptionEntry{}, fmt.Errorf("%w: %s/%s", ErrInvalidOption, kind, key)
	}
	return entry, nil
}

// DefaultOption returns the default entry of an option set
func (c *Catalog) DefaultOption(kind models.OptionKind) models.OptionEntry {
	return c.defaults[kind]
}

// OptionDelta returns the price delta of an option key, or 0 for unknown keys
func (c *Catalog) OptionDelta(kind models.OptionKind, key string) float64 {
	return c.optIndex[kind][key].PriceDelta
}

// OptionLabel returns the display label of an option key, falling back
// to the key itself when unknown
func (c *Catalog) OptionLabel(kind models.OptionKind, key string) string {
	if entry, ok := c.optIndex[kind][key]; ok {
		return entry.Label
	}
	return key
}
