package database

// Menu queries. The menu tables are read-only from the bot's point of view;
// rows are ordered by position so the operator controls display order.
const (
	GetMenuItemsSQL = `
		SELECT category, name, price, glyph
		FROM menu_items
		ORDER BY category, position ASC`

	GetMenuOptionsSQL = `
		SELECT kind, key, label, price_delta, is_default
		FROM menu_options
		ORDER BY kind, position ASC`
)
