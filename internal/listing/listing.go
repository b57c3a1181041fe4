// Package listing factors the fetch → unwrap → normalize → filter/sort/
// paginate pattern shared by every table page into one reusable resource,
// parameterized by the entity's fetch function, normalizer, and predicates.
package listing

import (
	"context"
	"net/url"
	"sort"
	"strconv"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Params are the client-side list controls parsed from the query string.
type Params struct {
	Page     int
	PageSize int
	Query    string
	Filters  map[string]string
}

// Filter returns the named filter value, or "" when unset.
func (p Params) Filter(name string) string {
	return p.Filters[name]
}

// ParseParams reads page, pageSize, q, and any additional named filters from
// the query string. Out-of-range values are clamped rather than rejected.
func ParseParams(q url.Values, filterNames ...string) Params {
	p := Params{
		Page:     1,
		PageSize: defaultPageSize,
		Query:    q.Get("q"),
		Filters:  make(map[string]string),
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil && n > 0 {
		p.PageSize = min(n, maxPageSize)
	}
	for _, name := range filterNames {
		if v := q.Get(name); v != "" {
			p.Filters[name] = v
		}
	}
	return p
}

// Page is one page of a filtered list plus its pagination envelope.
type Page[T any] struct {
	Rows       []T `json:"rows"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Resource describes one remote list end to end. Match and Less are
// optional; a nil Match keeps every row and a nil Less preserves upstream
// order.
type Resource[T any] struct {
	Fetch     func(ctx context.Context) (any, error)
	Normalize func(payload any) []T
	Match     func(row T, p Params) bool
	Less      func(a, b T) bool
}

// Load fetches the payload, normalizes it, and applies the client-side
// filter/sort/paginate controls. Fetch errors propagate; normalization never
// fails (malformed payloads just produce an empty page).
func (r Resource[T]) Load(ctx context.Context, p Params) (Page[T], error) {
	payload, err := r.Fetch(ctx)
	if err != nil {
		return Page[T]{}, err
	}
	rows := r.Normalize(payload)
	return Apply(rows, p, r.Match, r.Less), nil
}

// Apply filters, sorts, and paginates in-memory rows.
func Apply[T any](rows []T, p Params, match func(T, Params) bool, less func(a, b T) bool) Page[T] {
	filtered := rows
	if match != nil {
		filtered = make([]T, 0, len(rows))
		for _, row := range rows {
			if match(row, p) {
				filtered = append(filtered, row)
			}
		}
	}
	if less != nil {
		sorted := make([]T, len(filtered))
		copy(sorted, filtered)
		sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
		filtered = sorted
	}
	return Paginate(filtered, p.Page, p.PageSize)
}

// Paginate slices rows into a 1-based page. Pages past the end come back
// empty with the envelope intact.
func Paginate[T any](rows []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}

	total := len(rows)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := min(start+size, total)

	out := make([]T, end-start)
	copy(out, rows[start:end])

	return Page[T]{
		Rows:       out,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}
}
