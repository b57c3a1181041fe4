package listing_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/eaterno-pos/backoffice/internal/listing"
)

func TestParseParams(t *testing.T) {
	q := url.Values{}
	q.Set("page", "3")
	q.Set("pageSize", "500")
	q.Set("q", "nasi")
	q.Set("status", "Aktif")
	q.Set("category", "")

	p := listing.ParseParams(q, "status", "category")

	if p.Page != 3 {
		t.Errorf("page: got %d, want 3", p.Page)
	}
	if p.PageSize != 100 {
		t.Errorf("pageSize must clamp: got %d, want 100", p.PageSize)
	}
	if p.Query != "nasi" {
		t.Errorf("query: got %q", p.Query)
	}
	if p.Filter("status") != "Aktif" {
		t.Errorf("status filter: got %q", p.Filter("status"))
	}
	if p.Filter("category") != "" {
		t.Errorf("empty filter must stay unset: got %q", p.Filter("category"))
	}
}

func TestParseParams_Defaults(t *testing.T) {
	p := listing.ParseParams(url.Values{})
	if p.Page != 1 || p.PageSize != 10 {
		t.Errorf("defaults: got page=%d pageSize=%d, want 1/10", p.Page, p.PageSize)
	}

	q := url.Values{}
	q.Set("page", "-2")
	q.Set("pageSize", "0")
	p = listing.ParseParams(q)
	if p.Page != 1 || p.PageSize != 10 {
		t.Errorf("invalid values must fall back: got page=%d pageSize=%d", p.Page, p.PageSize)
	}
}

func TestPaginate(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name       string
		page, size int
		wantRows   []int
		wantPages  int
	}{
		{"first page", 1, 3, []int{1, 2, 3}, 3},
		{"middle page", 2, 3, []int{4, 5, 6}, 3},
		{"short last page", 3, 3, []int{7}, 3},
		{"past the end", 9, 3, []int{}, 3},
		{"whole list", 1, 100, rows, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := listing.Paginate(rows, tt.page, tt.size)
			if len(page.Rows) != len(tt.wantRows) {
				t.Fatalf("rows: got %v, want %v", page.Rows, tt.wantRows)
			}
			for i, v := range tt.wantRows {
				if page.Rows[i] != v {
					t.Fatalf("rows: got %v, want %v", page.Rows, tt.wantRows)
				}
			}
			if page.Total != len(rows) || page.TotalPages != tt.wantPages {
				t.Errorf("envelope: got total=%d pages=%d", page.Total, page.TotalPages)
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	page := listing.Paginate([]string{}, 1, 10)
	if page.Rows == nil {
		t.Error("rows must be an empty slice, not nil")
	}
	if page.TotalPages != 1 {
		t.Errorf("totalPages: got %d, want 1", page.TotalPages)
	}
}

func TestResourceLoad(t *testing.T) {
	res := listing.Resource[string]{
		Fetch: func(context.Context) (any, error) {
			return []any{"nasi bakar", "es teh", "nasi goreng"}, nil
		},
		Normalize: func(payload any) []string {
			arr, _ := payload.([]any)
			out := make([]string, 0, len(arr))
			for _, v := range arr {
				if s, ok := v.(string); ok {
					out = append(out, s)
				}
			}
			return out
		},
		Match: func(row string, p listing.Params) bool {
			return p.Query == "" || strings.Contains(row, p.Query)
		},
		Less: func(a, b string) bool { return a < b },
	}

	page, err := res.Load(context.Background(), listing.Params{Page: 1, PageSize: 10, Query: "nasi"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(page.Rows) != 2 || page.Rows[0] != "nasi bakar" || page.Rows[1] != "nasi goreng" {
		t.Errorf("rows: got %v", page.Rows)
	}
	if page.Total != 2 {
		t.Errorf("total: got %d, want 2", page.Total)
	}
}

func TestResourceLoad_FetchError(t *testing.T) {
	wantErr := errors.New("upstream down")
	res := listing.Resource[string]{
		Fetch:     func(context.Context) (any, error) { return nil, wantErr },
		Normalize: func(any) []string { return nil },
	}

	_, err := res.Load(context.Background(), listing.Params{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("error: got %v, want %v", err, wantErr)
	}
}
