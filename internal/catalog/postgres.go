package catalog

import (
	"context"
	"fmt"

	"coffee-shop-bot/internal/database"
	"coffee-shop-bot/internal/models"
)

// LoadDatabase builds the catalog from the menu_items and menu_options
// tables. The menu is read once; the catalog stays immutable afterwards.
func LoadDatabase(ctx context.Context, db *database.DB) (*Catalog, error) {
	items, err := loadItems(ctx, db)
	if err != nil {
		return nil, err
	}

	options, err := loadOptions(ctx, db)
	if err != nil {
		return nil, err
	}

	return New(items, options)
}

func loadItems(ctx context.Context, db *database.DB) ([]models.CatalogItem, error) {
	rows, err := db.Query(ctx, database.GetMenuItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []models.CatalogItem
	for rows.Next() {
		var item models.CatalogItem
		if err := rows.Scan(&item.Category, &item.Name, &item.BasePrice, &item.Glyph); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu items: %w", err)
	}

	return items, nil
}

func loadOptions(ctx context.Context, db *database.DB) (map[models.OptionKind][]models.OptionEntry, error) {
	rows, err := db.Query(ctx, database.GetMenuOptionsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu options: %w", err)
	}
	defer rows.Close()

	options := make(map[models.OptionKind][]models.OptionEntry)
	for rows.Next() {
		var kind models.OptionKind
		var entry models.OptionEntry
		if err := rows.Scan(&kind, &entry.Key, &entry.Label, &entry.PriceDelta, &entry.Default); err != nil {
			return nil, fmt.Errorf("failed to scan menu option: %w", err)
		}
		options[kind] = append(options[kind], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu options: %w", err)
	}

	return options, nil
}
