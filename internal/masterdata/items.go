package masterdata

import "github.com/shopspring/decimal"

// AddOnRow is an add-on (extra topping, side) as listed on its CRUD page.
type AddOnRow struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Price  *decimal.Decimal `json:"price"`
	Status string           `json:"status"`
}

// NormalizeAddOns reshapes the add-ons payload into table rows.
func NormalizeAddOns(payload any) []AddOnRow {
	raws := UnwrapArray(payload)
	rows := make([]AddOnRow, 0, len(raws))
	for i, raw := range raws {
		obj := asObject(raw)
		row := AddOnRow{Name: "-", Status: StatusUnknown}

		if v, ok := pickFirst(obj, "id", "addonId", "addon_id"); ok {
			row.ID = keyOf(v)
		} else {
			row.ID = syntheticID(i)
		}
		if v, ok := pickFirst(obj, "name", "addonName", "addon_name", "title"); ok {
			row.Name = toString(v)
		}
		if v, ok := pickFirst(obj, "price", "sellingPrice", "selling_price", "harga"); ok {
			if d, parsed := toDecimal(v); parsed {
				row.Price = &d
			}
		}
		row.Status = activeStatus(obj)
		rows = append(rows, row)
	}
	return rows
}

// IngredientRow is a raw ingredient as listed on its CRUD page.
type IngredientRow struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Unit   string           `json:"unit"`
	Stock  *decimal.Decimal `json:"stock"`
	Status string           `json:"status"`
}

// NormalizeIngredients reshapes the ingredients payload into table rows.
func NormalizeIngredients(payload any) []IngredientRow {
	raws := UnwrapArray(payload)
	rows := make([]IngredientRow, 0, len(raws))
	for i, raw := range raws {
		obj := asObject(raw)
		row := IngredientRow{Name: "-", Unit: "-", Status: StatusUnknown}

		if v, ok := pickFirst(obj, "id", "ingredientId", "ingredient_id"); ok {
			row.ID = keyOf(v)
		} else {
			row.ID = syntheticID(i)
		}
		if v, ok := pickFirst(obj, "name", "ingredientName", "ingredient_name"); ok {
			row.Name = toString(v)
		}
		if v, ok := pickFirst(obj, "unit", "uom", "satuan"); ok {
			row.Unit = toString(v)
		}
		if v, ok := pickFirst(obj, "stock", "quantity", "qty"); ok {
			if d, parsed := toDecimal(v); parsed {
				row.Stock = &d
			}
		}
		row.Status = activeStatus(obj)
		rows = append(rows, row)
	}
	return rows
}

// activeStatus resolves the shared tri-state active flag into its display
// string.
func activeStatus(obj map[string]any) string {
	v, ok := pickFirst(obj, "isActive", "is_active", "active")
	if !ok {
		return StatusUnknown
	}
	switch active := toBoolTri(v); {
	case active == nil:
		return StatusUnknown
	case *active:
		return StatusActive
	default:
		return StatusDraft
	}
}
