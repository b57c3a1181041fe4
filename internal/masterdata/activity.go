package masterdata

// ActivityRow is one entry of the audit/activity log page.
type ActivityRow struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Detail    string `json:"detail"`
	CreatedAt string `json:"createdAt"`
}

// NormalizeActivityLogs reshapes the activity log payload into table rows.
// The actor may be an inline name or a nested user object.
func NormalizeActivityLogs(payload any) []ActivityRow {
	raws := UnwrapArray(payload)
	rows := make([]ActivityRow, 0, len(raws))
	for i, raw := range raws {
		obj := asObject(raw)
		row := ActivityRow{Actor: "-", Action: "-", Detail: "-", CreatedAt: "-"}

		if v, ok := pickFirst(obj, "id", "logId", "log_id"); ok {
			row.ID = keyOf(v)
		} else {
			row.ID = syntheticID(i)
		}
		if v, ok := pickFirst(obj, "actor", "userName", "user_name", "user"); ok {
			switch actor := v.(type) {
			case string:
				row.Actor = actor
			case map[string]any:
				if nameVal, ok := pickFirst(actor, "name", "fullName", "full_name", "email"); ok {
					row.Actor = toString(nameVal)
				}
			}
		}
		if v, ok := pickFirst(obj, "action", "activity", "event"); ok {
			row.Action = toString(v)
		}
		if v, ok := pickFirst(obj, "detail", "description", "message", "target"); ok {
			row.Detail = toString(v)
		}
		if v, ok := pickFirst(obj, "createdAt", "created_at", "timestamp", "time"); ok {
			row.CreatedAt = toString(v)
		}
		rows = append(rows, row)
	}
	return rows
}
