package masterdata

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The upstream backend is inconsistent about response shapes: the same
// endpoint may answer with a bare array, {"data": [...]}, or another wrapper.
// Field names mix camelCase and snake_case, ids flip between numbers and
// strings, and booleans arrive as bool, 0/1, or "yes"/"no". This file is the
// single place where that looseness is tolerated; everything past it works on
// typed rows.

var wrapperKeys = []string{"data", "items", "results", "result", "rows"}

// UnwrapArray extracts the row list from an arbitrarily wrapped payload.
// It tries the known wrapper keys in order and recurses one level into
// "data" for shapes like {"data": {"items": [...]}}. Unrecognizable
// payloads yield nil.
func UnwrapArray(payload any) []any {
	switch v := payload.(type) {
	case nil:
		return nil
	case []any:
		return v
	case map[string]any:
		for _, key := range wrapperKeys {
			if arr, ok := v[key].([]any); ok {
				return arr
			}
		}
		if inner, ok := v["data"].(map[string]any); ok {
			for _, key := range wrapperKeys {
				if arr, ok := inner[key].([]any); ok {
					return arr
				}
			}
		}
	}
	return nil
}

// asObject returns the row as a string-keyed object, or nil for anything else.
func asObject(row any) map[string]any {
	obj, _ := row.(map[string]any)
	return obj
}

// pickFirst returns the first present, non-nil, non-empty-string value among
// the given keys.
func pickFirst(obj map[string]any, keys ...string) (any, bool) {
	if obj == nil {
		return nil, false
	}
	for _, key := range keys {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// toString renders a scalar as its display string. Numbers drop a trailing
// ".0" so ids survive the round trip through float64.
func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// toNumber coerces a scalar to a float64. Non-finite values and unparseable
// or empty strings count as absent.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// toDecimal coerces a scalar to a decimal for money fields.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		f, ok := toNumber(v)
		if !ok {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(f), true
	}
}

// toBoolTri interprets the backend's assorted truthy encodings as a
// tri-state: true, false, or unknown (nil).
func toBoolTri(v any) *bool {
	yes, no := true, false
	switch t := v.(type) {
	case bool:
		if t {
			return &yes
		}
		return &no
	case float64:
		if t == 1 {
			return &yes
		}
		if t == 0 {
			return &no
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1":
			return &yes
		case "false", "no", "0":
			return &no
		}
	}
	return nil
}

// keyOf renders an id value as a map key so that numeric and string ids from
// different payloads land on the same entry ("7" and 7 both become "7").
func keyOf(v any) string {
	if v == nil {
		return ""
	}
	return toString(v)
}

// syntheticID is the 1-based positional fallback for rows whose source id is
// missing, so table selection keys stay stable within one response.
func syntheticID(index int) string {
	return strconv.Itoa(index + 1)
}

// tokens lowercases a name and splits it on non-alphanumeric runes.
// Matching whole tokens avoids substring false positives ("Pedasant" does
// not contain the token "pedas").
func tokens(name string) []string {
	return strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

// hasKeywordToken reports whether any token of name is in the keyword set.
func hasKeywordToken(name string, keywords map[string]bool) bool {
	for _, tok := range tokens(name) {
		if keywords[tok] {
			return true
		}
	}
	return false
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate parses the backend's assorted date encodings: RFC3339 strings,
// date-only strings, or epoch milliseconds.
func parseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	case float64:
		if t > 1e12 { // epoch millis
			return time.UnixMilli(int64(t)).UTC(), true
		}
		if t > 1e9 { // epoch seconds
			return time.Unix(int64(t), 0).UTC(), true
		}
	}
	return time.Time{}, false
}
