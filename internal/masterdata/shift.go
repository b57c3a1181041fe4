package masterdata

// ShiftInfo identifies the active cashier shift, used to scope notification
// read markers.
type ShiftInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartedAt string `json:"startedAt"`
}

// NormalizeShift reshapes the active-shift payload. The backend answers with
// either a bare object, a {"data": {...}} wrapper, or a one-element list.
func NormalizeShift(payload any) ShiftInfo {
	obj := asObject(payload)
	if inner, ok := obj["data"].(map[string]any); ok {
		obj = inner
	}
	if obj == nil {
		if arr := UnwrapArray(payload); len(arr) > 0 {
			obj = asObject(arr[0])
		}
	}

	var info ShiftInfo
	if v, ok := pickFirst(obj, "id", "shiftId", "shift_id"); ok {
		info.ID = keyOf(v)
	}
	if v, ok := pickFirst(obj, "name", "shiftName", "shift_name"); ok {
		info.Name = toString(v)
	}
	if v, ok := pickFirst(obj, "startedAt", "started_at", "startTime", "start_time"); ok {
		info.StartedAt = toString(v)
	}
	return info
}
