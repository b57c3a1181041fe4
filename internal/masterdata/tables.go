package masterdata

// TableRow is a dining table as shown on the floor view.
type TableRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

// NormalizeTables reshapes the dining tables payload. Status defaults to
// "available" so a missing field still renders as a seatable table; local
// overrides are applied by the caller on top.
func NormalizeTables(payload any) []TableRow {
	raws := UnwrapArray(payload)
	rows := make([]TableRow, 0, len(raws))
	for i, raw := range raws {
		obj := asObject(raw)
		row := TableRow{Name: "-", Status: "available"}

		if v, ok := pickFirst(obj, "id", "tableId", "table_id"); ok {
			row.ID = keyOf(v)
		} else {
			row.ID = syntheticID(i)
		}
		if v, ok := pickFirst(obj, "name", "tableName", "table_name", "number", "tableNumber", "table_number"); ok {
			row.Name = toString(v)
		}
		if v, ok := pickFirst(obj, "capacity", "seats", "pax"); ok {
			if n, parsed := toNumber(v); parsed && n > 0 {
				row.Capacity = int(n)
			}
		}
		if v, ok := pickFirst(obj, "status", "state"); ok {
			row.Status = toString(v)
		}
		rows = append(rows, row)
	}
	return rows
}
