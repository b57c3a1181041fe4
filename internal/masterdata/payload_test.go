package masterdata

import (
	"reflect"
	"testing"
)

func TestUnwrapArray(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantLen int
	}{
		{"bare array", `[1, 2, 3]`, 3},
		{"data wrapper", `{"data": [1, 2]}`, 2},
		{"items wrapper", `{"items": [1]}`, 1},
		{"results wrapper", `{"results": [1, 2, 3, 4]}`, 4},
		{"result wrapper", `{"result": [1]}`, 1},
		{"rows wrapper", `{"rows": [1, 2]}`, 2},
		{"nested data", `{"data": {"items": [1, 2, 3]}}`, 3},
		{"null", `null`, 0},
		{"scalar", `42`, 0},
		{"unknown object", `{"payload": [1]}`, 0},
		{"data is scalar", `{"data": 7}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnwrapArray(mustParse(t, tt.payload))
			if len(got) != tt.wantLen {
				t.Errorf("UnwrapArray: got %d elements, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestPickFirst(t *testing.T) {
	obj := map[string]any{
		"name":  "",
		"label": "   ",
		"title": "Minuman",
		"gone":  nil,
	}

	v, ok := pickFirst(obj, "name", "label", "title")
	if !ok || v != "Minuman" {
		t.Errorf("pickFirst: got (%v, %v), want (Minuman, true)", v, ok)
	}

	if _, ok := pickFirst(obj, "name", "label", "gone"); ok {
		t.Error("pickFirst: empty strings and nils must not match")
	}

	if _, ok := pickFirst(nil, "name"); ok {
		t.Error("pickFirst on nil object must not match")
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 12.5, 12.5, true},
		{"int", 7, 7, true},
		{"numeric string", "25000", 25000, true},
		{"padded string", " 10 ", 10, true},
		{"empty string", "", 0, false},
		{"word", "harga", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toNumber(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("toNumber(%v): got (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{float64(7), "7"},
		{"7", "7"},
		{float64(7.0), "7"},
		{" 7 ", "7"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := keyOf(tt.in); got != tt.want {
			t.Errorf("keyOf(%v): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Pedas Level", []string{"pedas", "level"}},
		{"Take-Away (Box)", []string{"take", "away", "box"}},
		{"Pedasant", []string{"pedasant"}},
		{"", nil},
		{"---", nil},
	}

	for _, tt := range tests {
		got := tokens(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("tokens(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToBoolTri(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string // "true", "false", "nil"
	}{
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"one", float64(1), "true"},
		{"zero", float64(0), "false"},
		{"other number", float64(2), "nil"},
		{"yes", "yes", "true"},
		{"NO", "NO", "false"},
		{"garbage", "banana", "nil"},
		{"nil", nil, "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toBoolTri(tt.in)
			switch tt.want {
			case "nil":
				if got != nil {
					t.Errorf("toBoolTri(%v): got %v, want nil", tt.in, *got)
				}
			case "true":
				if got == nil || !*got {
					t.Errorf("toBoolTri(%v): got %v, want true", tt.in, got)
				}
			case "false":
				if got == nil || *got {
					t.Errorf("toBoolTri(%v): got %v, want false", tt.in, got)
				}
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		ok   bool
	}{
		{"rfc3339", "2024-06-01T10:00:00Z", true},
		{"date only", "2024-06-01", true},
		{"datetime", "2024-06-01 10:00:00", true},
		{"epoch millis", float64(1717236000000), true},
		{"epoch seconds", float64(1717236000), true},
		{"empty", "", false},
		{"word", "kemarin", false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseDate(tt.in)
			if ok != tt.ok {
				t.Errorf("parseDate(%v): got ok=%v, want %v", tt.in, ok, tt.ok)
			}
		})
	}
}
