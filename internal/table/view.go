// Package table filters and paginates passenger records for the dashboard table.
package table

import (
	"net/url"
	"strconv"
	"strings"

	"titanicdash/internal/models"
)

// PageSize is the number of rows shown per table page
const PageSize = 25

// Survival filter values
const (
	SurvivedYes = "yes"
	SurvivedNo  = "no"
)

// Filter holds the table filters. Empty fields do not filter.
type Filter struct {
	Sex      string
	Survived string
	Class    string
	Name     string
}

// FilterFromQuery reads filters from URL query parameters, dropping unknown values
func FilterFromQuery(q url.Values) Filter {
	f := Filter{
		Sex:      q.Get("sex"),
		Survived: q.Get("survived"),
		Class:    q.Get("pclass"),
		Name:     q.Get("q"),
	}
	return f.Normalize()
}

// Normalize clears filter values that cannot match any record
func (f Filter) Normalize() Filter {
	if f.Sex != models.SexMale && f.Sex != models.SexFemale {
		f.Sex = ""
	}
	if f.Survived != SurvivedYes && f.Survived != SurvivedNo {
		f.Survived = ""
	}
	if f.Class != "1" && f.Class != "2" && f.Class != "3" {
		f.Class = ""
	}
	return f
}

// Query encodes the filters as URL query parameters
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.Sex != "" {
		q.Set("sex", f.Sex)
	}
	if f.Survived != "" {
		q.Set("survived", f.Survived)
	}
	if f.Class != "" {
		q.Set("pclass", f.Class)
	}
	if f.Name != "" {
		q.Set("q", f.Name)
	}
	return q
}

// Active reports whether any filter is set
func (f Filter) Active() bool {
	return f != Filter{}
}

// Match reports whether a passenger passes every filter
func (f Filter) Match(p models.Passenger) bool {
	if f.Sex != "" && p.Sex != f.Sex {
		return false
	}
	if f.Survived != "" {
		want := 0
		if f.Survived == SurvivedYes {
			want = 1
		}
		if p.Survived != want {
			return false
		}
	}
	if f.Class != "" && strconv.Itoa(p.Class) != f.Class {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

// Apply returns the records matching the filter, in source order
func Apply(records []models.Passenger, f Filter) []models.Passenger {
	out := make([]models.Passenger, 0, len(records))
	for _, p := range records {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// View is the state of the passenger table: source records, filters and current page
type View struct {
	source   []models.Passenger
	filter   Filter
	filtered []models.Passenger
	page     int
	pageSize int
}

// NewView creates a view over records showing the first page
func NewView(records []models.Passenger) *View {
	v := &View{source: records, page: 1, pageSize: PageSize}
	v.recompute()
	return v
}

// SetSource replaces the records, keeping the page within bounds
func (v *View) SetSource(records []models.Passenger) {
	v.source = records
	v.recompute()
	v.GoTo(v.page)
}

// SetFilter applies new filters and returns to the first page
func (v *View) SetFilter(f Filter) {
	v.filter = f
	v.recompute()
	v.page = 1
}

// Filter returns the active filters
func (v *View) Filter() Filter {
	return v.filter
}

func (v *View) recompute() {
	v.filtered = Apply(v.source, v.filter)
}

// Page returns the current 1-based page number
func (v *View) Page() int {
	return v.page
}

// TotalPages returns the number of pages, at least 1
func (v *View) TotalPages() int {
	pages := (len(v.filtered) + v.pageSize - 1) / v.pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Matches returns the number of records passing the filters
func (v *View) Matches() int {
	return len(v.filtered)
}

// HasPrev reports whether a previous page exists
func (v *View) HasPrev() bool {
	return v.page > 1
}

// HasNext reports whether a next page exists
func (v *View) HasNext() bool {
	return v.page < v.TotalPages()
}

// Next moves to the next page; no-op on the last page
func (v *View) Next() {
	if v.HasNext() {
		v.page++
	}
}

// Prev moves to the previous page; no-op on the first page
func (v *View) Prev() {
	if v.HasPrev() {
		v.page--
	}
}

// GoTo moves to page n, clamped to [1, TotalPages]
func (v *View) GoTo(n int) {
	switch {
	case n < 1:
		v.page = 1
	case n > v.TotalPages():
		v.page = v.TotalPages()
	default:
		v.page = n
	}
}

// Rows returns the records on the current page
func (v *View) Rows() []models.Passenger {
	start := (v.page - 1) * v.pageSize
	if start >= len(v.filtered) {
		return nil
	}
	end := start + v.pageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return v.filtered[start:end]
}

// PageQuery returns the query string selecting page n with the current filters
func (v *View) PageQuery(n int) string {
	q := v.filter.Query()
	q.Set("page", strconv.Itoa(n))
	return q.Encode()
}
