package reports

// Column describes one field of a step-report table the portal renders.
// Lookup names a reference entity ("user", "market") resolved client-side.
type Column struct {
	Field  string `json:"field"`
	Label  string `json:"label"`
	Kind   string `json:"kind"` // text, number, bool, photo, date
	Lookup string `json:"lookup,omitempty"`
}

// TableConfig is the declarative rendering description for one report table.
type TableConfig struct {
	Table   string   `json:"table"`
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
}

// tableConfigs is the single source of truth for which report tables exist
// and how their rows are shaped. The repository trusts only names present
// here, so the table identifier can be spliced into SQL safely.
var tableConfigs = map[string]TableConfig{
	"availability_reports": {
		Table: "availability_reports",
		Title: "Availability",
		Columns: []Column{
			{Field: "visit_user_id", Label: "User", Kind: "number", Lookup: "user"},
			{Field: "visit_market_id", Label: "Market", Kind: "number", Lookup: "market"},
			{Field: "visit_date", Label: "Date", Kind: "date"},
			{Field: "sku", Label: "SKU", Kind: "text"},
			{Field: "available", Label: "Available", Kind: "bool"},
			{Field: "quantity", Label: "Qty", Kind: "number"},
			{Field: "notes", Label: "Notes", Kind: "text"},
		},
	},
	"damage_reports": {
		Table: "damage_reports",
		Title: "Damage",
		Columns: []Column{
			{Field: "visit_user_id", Label: "User", Kind: "number", Lookup: "user"},
			{Field: "visit_market_id", Label: "Market", Kind: "number", Lookup: "market"},
			{Field: "visit_date", Label: "Date", Kind: "date"},
			{Field: "sku", Label: "SKU", Kind: "text"},
			{Field: "quantity", Label: "Qty", Kind: "number"},
			{Field: "damage_kind", Label: "Damage", Kind: "text"},
			{Field: "photo_url", Label: "Photo", Kind: "photo"},
		},
	},
	"warehouse_counts": {
		Table: "warehouse_counts",
		Title: "Warehouse Count",
		Columns: []Column{
			{Field: "visit_user_id", Label: "User", Kind: "number", Lookup: "user"},
			{Field: "visit_market_id", Label: "Market", Kind: "number", Lookup: "market"},
			{Field: "visit_date", Label: "Date", Kind: "date"},
			{Field: "sku", Label: "SKU", Kind: "text"},
			{Field: "counted", Label: "Counted", Kind: "number"},
			{Field: "expected", Label: "Expected", Kind: "number"},
		},
	},
	"shelf_share_reports": {
		Table: "shelf_share_reports",
		Title: "Share of Shelf",
		Columns: []Column{
			{Field: "visit_user_id", Label: "User", Kind: "number", Lookup: "user"},
			{Field: "visit_market_id", Label: "Market", Kind: "number", Lookup: "market"},
			{Field: "visit_date", Label: "Date", Kind: "date"},
			{Field: "category", Label: "Category", Kind: "text"},
			{Field: "own_facings", Label: "Own Facings", Kind: "number"},
			{Field: "total_facings", Label: "Total Facings", Kind: "number"},
		},
	},
	"competitor_activities": {
		Table: "competitor_activities",
		Title: "Competitor Activity",
		Columns: []Column{
			{Field: "visit_user_id", Label: "User", Kind: "number", Lookup: "user"},
			{Field: "visit_market_id", Label: "Market", Kind: "number", Lookup: "market"},
			{Field: "visit_date", Label: "Date", Kind: "date"},
			{Field: "competitor", Label: "Competitor", Kind: "text"},
			{Field: "activity", Label: "Activity", Kind: "text"},
			{Field: "photo_url", Label: "Photo", Kind: "photo"},
		},
	},
	"promoter_reports": {
		Table: "promoter_reports",
		Title: "Promoter",
		Columns: []Column{
			{Field: "visit_user_id", Label: "User", Kind: "number", Lookup: "user"},
			{Field: "visit_market_id", Label: "Market", Kind: "number", Lookup: "market"},
			{Field: "visit_date", Label: "Date", Kind: "date"},
			{Field: "sku", Label: "SKU", Kind: "text"},
			{Field: "sold_units", Label: "Sold", Kind: "number"},
			{Field: "sampling", Label: "Sampling", Kind: "number"},
			{Field: "notes", Label: "Notes", Kind: "text"},
		},
	},
}

// ConfigFor returns the table config, or false for unknown tables.
func ConfigFor(table string) (TableConfig, bool) {
	cfg, ok := tableConfigs[table]
	return cfg, ok
}

// Tables lists the known report table names.
func Tables() []string {
	names := make([]string, 0, len(tableConfigs))
	for name := range tableConfigs {
		names = append(names, name)
	}
	return names
}
