package masterdata

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductRow is the denormalized shape the product table renders. Missing
// source fields degrade to "-", nil, or false; the table never sees an error
// from normalization.
type ProductRow struct {
	ID                string           `json:"id"`
	SKU               string           `json:"sku"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Packaging         *string          `json:"packaging"`
	Category          string           `json:"category"`
	CategoryID        string           `json:"categoryId"`
	Price             *decimal.Decimal `json:"price"`
	PriceID           string           `json:"priceId"`
	SpicyVariant      bool             `json:"spicyVariant"`
	AdditionalVariant bool             `json:"additionalVariant"`
	Status            string           `json:"status"`
	CreatedAt         string           `json:"createdAt"`
}

// CategoryOption is a product category as offered in the table's filter.
type CategoryOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ProductPayloads carries the raw upstream responses feeding the product
// table. Each field may be a bare array, a {"data": [...]} wrapper, or
// garbage; variant items may arrive as their own list or embedded in the
// variant rows.
type ProductPayloads struct {
	Menus        any
	Prices       any
	Variants     any
	VariantItems any
	Categories   any
}

// ProductTable is the normalized output: one row per menu plus the category
// filter options.
type ProductTable struct {
	Rows       []ProductRow     `json:"rows"`
	Categories []CategoryOption `json:"categories"`
}

var (
	packagingKeywords = map[string]bool{"packaging": true}
	spicyKeywords     = map[string]bool{"pedas": true, "spicy": true}
)

// Display statuses for the tri-state active flag.
const (
	StatusActive  = "Aktif"
	StatusDraft   = "Draft"
	StatusUnknown = "-"
)

// NormalizeProducts folds the four upstream payloads into table rows and
// category options. It is pure and never fails: malformed payloads produce
// empty slices, malformed fields produce placeholder values.
func NormalizeProducts(in ProductPayloads) ProductTable {
	prices := resolvePrices(UnwrapArray(in.Prices))
	variants := collectVariants(UnwrapArray(in.Variants))
	itemNames := collectVariantItems(UnwrapArray(in.VariantItems), UnwrapArray(in.Variants))
	categories, labels := normalizeCategories(UnwrapArray(in.Categories))

	menus := UnwrapArray(in.Menus)
	rows := make([]ProductRow, 0, len(menus))
	for i, raw := range menus {
		rows = append(rows, assembleRow(i, asObject(raw), prices, variants, itemNames, labels))
	}

	return ProductTable{Rows: rows, Categories: categories}
}

// resolvedPrice is the winning MenuPrice for one menu.
type resolvedPrice struct {
	id    string
	price decimal.Decimal
	date  time.Time
	dated bool
}

// resolvePrices picks the effective price per menu: the latest parseable
// effectiveDate wins, an undated price counts only when no dated price
// exists, and equal candidates resolve to the last one seen.
func resolvePrices(rows []any) map[string]resolvedPrice {
	out := make(map[string]resolvedPrice)
	for _, raw := range rows {
		obj := asObject(raw)
		menuRef, ok := pickFirst(obj, "menuId", "menu_id", "menuID", "idMenu")
		if !ok {
			continue
		}
		menuKey := keyOf(menuRef)
		if menuKey == "" {
			continue
		}

		priceVal, ok := pickFirst(obj, "price", "amount", "value", "nominal", "harga")
		if !ok {
			continue
		}
		price, ok := toDecimal(priceVal)
		if !ok {
			continue
		}

		cand := resolvedPrice{price: price}
		if idVal, ok := pickFirst(obj, "id", "priceId", "price_id"); ok {
			cand.id = keyOf(idVal)
		}
		if dateVal, ok := pickFirst(obj, "effectiveDate", "effective_date", "startDate", "start_date", "date"); ok {
			if ts, parsed := parseDate(dateVal); parsed {
				cand.date = ts
				cand.dated = true
			}
		}

		prev, exists := out[menuKey]
		if !exists {
			out[menuKey] = cand
			continue
		}
		switch {
		case cand.dated && !prev.dated:
			out[menuKey] = cand
		case cand.dated == prev.dated && !cand.date.Before(prev.date):
			// Equal dates (and the all-undated case, where both dates are
			// zero) intentionally fall through to last-seen-wins.
			out[menuKey] = cand
		}
	}
	return out
}

// menuVariants aggregates the variant groups attached to one menu.
type menuVariants struct {
	names        []string // distinct, original casing of first occurrence
	packagingIDs []string // variant group ids whose name tokenizes to "packaging"
}

func collectVariants(rows []any) map[string]menuVariants {
	out := make(map[string]menuVariants)
	seen := make(map[string]map[string]bool) // menuKey -> lowercased names
	for _, raw := range rows {
		obj := asObject(raw)
		menuRef, ok := pickFirst(obj, "menuId", "menu_id", "menuID", "idMenu")
		if !ok {
			continue
		}
		menuKey := keyOf(menuRef)
		if menuKey == "" {
			continue
		}

		nameVal, _ := pickFirst(obj, "name", "variantName", "variant_name", "title")
		name := toString(nameVal)

		agg := out[menuKey]
		if name != "" {
			lower := strings.ToLower(name)
			if seen[menuKey] == nil {
				seen[menuKey] = make(map[string]bool)
			}
			if !seen[menuKey][lower] {
				seen[menuKey][lower] = true
				agg.names = append(agg.names, name)
			}
			if hasKeywordToken(name, packagingKeywords) {
				if idVal, ok := pickFirst(obj, "id", "variantId", "variant_id"); ok {
					if key := keyOf(idVal); key != "" {
						agg.packagingIDs = append(agg.packagingIDs, key)
					}
				}
			}
		}
		out[menuKey] = agg
	}
	return out
}

// collectVariantItems groups selectable option names by their owning variant
// group id. Items usually arrive as their own list; some backend versions
// embed them in the variant rows instead, so both shapes are folded in.
func collectVariantItems(itemRows, variantRows []any) map[string][]string {
	out := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	add := func(variantKey, name string) {
		if variantKey == "" || name == "" {
			return
		}
		lower := strings.ToLower(name)
		if seen[variantKey] == nil {
			seen[variantKey] = make(map[string]bool)
		}
		if seen[variantKey][lower] {
			return
		}
		seen[variantKey][lower] = true
		out[variantKey] = append(out[variantKey], name)
	}

	for _, raw := range itemRows {
		obj := asObject(raw)
		ref, ok := pickFirst(obj, "menuVariantId", "menu_variant_id", "variantId", "variant_id")
		if !ok {
			continue
		}
		nameVal, _ := pickFirst(obj, "name", "itemName", "item_name", "title")
		add(keyOf(ref), toString(nameVal))
	}

	for _, raw := range variantRows {
		obj := asObject(raw)
		idVal, ok := pickFirst(obj, "id", "variantId", "variant_id")
		if !ok {
			continue
		}
		variantKey := keyOf(idVal)
		embedded, ok := pickFirst(obj, "items", "variantItems", "menuVariantItems", "options")
		if !ok {
			continue
		}
		for _, itemRaw := range UnwrapArray(embedded) {
			nameVal, _ := pickFirst(asObject(itemRaw), "name", "itemName", "item_name", "title")
			add(variantKey, toString(nameVal))
		}
	}

	return out
}

// NormalizeCategories reshapes a categories payload into filter options,
// applying the same ingredient exclusion and label fallbacks the product
// table uses.
func NormalizeCategories(payload any) []CategoryOption {
	options, _ := normalizeCategories(UnwrapArray(payload))
	return options
}

// normalizeCategories filters out ingredient categories, resolves a display
// label per entry, and deduplicates by id preserving first occurrence order.
func normalizeCategories(rows []any) ([]CategoryOption, map[string]string) {
	options := make([]CategoryOption, 0, len(rows))
	labels := make(map[string]string)
	for _, raw := range rows {
		obj := asObject(raw)
		if obj == nil {
			continue
		}
		if typeVal, ok := pickFirst(obj, "type", "categoryType", "category_type"); ok {
			if strings.EqualFold(strings.TrimSpace(toString(typeVal)), "ingredient") {
				continue
			}
		}

		labelVal, _ := pickFirst(obj, "name", "label", "title", "description")
		label := toString(labelVal)

		idVal, hasID := pickFirst(obj, "id", "categoryId", "category_id")
		if !hasID && label == "" {
			continue
		}
		key := keyOf(idVal)
		if _, dup := labels[key]; dup {
			continue
		}
		labels[key] = label
		options = append(options, CategoryOption{ID: key, Label: label})
	}
	return options, labels
}

func assembleRow(
	index int,
	menu map[string]any,
	prices map[string]resolvedPrice,
	variants map[string]menuVariants,
	itemNames map[string][]string,
	categoryLabels map[string]string,
) ProductRow {
	row := ProductRow{
		SKU:         "-",
		Name:        "-",
		Description: "-",
		Category:    "-",
		Status:      StatusUnknown,
		CreatedAt:   "-",
	}

	var menuKey string
	if idVal, ok := pickFirst(menu, "id", "menuId", "menu_id", "_id"); ok {
		menuKey = keyOf(idVal)
	}
	if menuKey != "" {
		row.ID = menuKey
	} else {
		row.ID = syntheticID(index)
	}

	if v, ok := pickFirst(menu, "sku", "code", "menuCode", "menu_code"); ok {
		row.SKU = toString(v)
	}
	if v, ok := pickFirst(menu, "name", "menuName", "menu_name", "title"); ok {
		row.Name = toString(v)
	}
	if v, ok := pickFirst(menu, "description", "desc"); ok {
		row.Description = toString(v)
	}
	if v, ok := pickFirst(menu, "createdAt", "created_at", "createdDate", "created_date"); ok {
		row.CreatedAt = toString(v)
	}

	if v, ok := pickFirst(menu, "categoryId", "category_id", "categoryID", "idCategory"); ok {
		row.CategoryID = keyOf(v)
	}
	if row.CategoryID != "" {
		if label, ok := categoryLabels[row.CategoryID]; ok && label != "" {
			row.Category = label
		} else {
			row.Category = "Kategori " + row.CategoryID
		}
	}

	// Embedded menu price wins over the MenuPrice lookup; the lookup still
	// supplies priceId so edits target the right price record.
	resolved, hasResolved := prices[menuKey]
	if hasResolved {
		row.PriceID = resolved.id
	}
	if v, ok := pickFirst(menu, "price", "sellingPrice", "selling_price", "basePrice", "base_price", "harga"); ok {
		if d, parsed := toDecimal(v); parsed {
			row.Price = &d
		}
	}
	if row.Price == nil && hasResolved {
		p := resolved.price
		row.Price = &p
	}

	if agg, ok := variants[menuKey]; ok {
		row.AdditionalVariant = len(agg.names) > 0
		for _, name := range agg.names {
			if hasKeywordToken(name, spicyKeywords) {
				row.SpicyVariant = true
				break
			}
		}
		var parts []string
		for _, variantID := range agg.packagingIDs {
			parts = append(parts, itemNames[variantID]...)
		}
		if len(parts) > 0 {
			joined := strings.Join(parts, ", ")
			row.Packaging = &joined
		}
	}

	if v, ok := pickFirst(menu, "isActive", "is_active", "active", "status"); ok {
		switch active := toBoolTri(v); {
		case active == nil:
			row.Status = StatusUnknown
		case *active:
			row.Status = StatusActive
		default:
			row.Status = StatusDraft
		}
	}

	return row
}
