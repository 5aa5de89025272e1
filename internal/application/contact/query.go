package contact

import (
	"fmt"
	"slices"
	"strings"
	"time"

	domain "github.com/arkenix/client-portal/internal/domain/contact"
)

const (
	DefaultPageSize = 10
	pageWindowSize  = 5
	dateLayout      = "2006-01-02"
)

// isDateColumn reports whether a column sorts chronologically.
func isDateColumn(name string) bool {
	return strings.HasSuffix(name, "_at") || strings.Contains(name, "date")
}

func knownColumn(name string) bool {
	return slices.Contains(domain.Columns(), name)
}

type dateRange struct {
	from time.Time
	to   time.Time
}

func parseDateRange(from, to string) (dateRange, error) {
	var r dateRange
	if s := strings.TrimSpace(from); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return r, fmt.Errorf("%w: start date %q must be YYYY-MM-DD", ErrInvalidQuery, s)
		}
		r.from = t
	}
	if s := strings.TrimSpace(to); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return r, fmt.Errorf("%w: end date %q must be YYYY-MM-DD", ErrInvalidQuery, s)
		}
		r.to = t.AddDate(0, 0, 1)
	}
	return r, nil
}

// contains is inclusive on both ends; the end date covers its whole day.
func (r dateRange) contains(t time.Time) bool {
	t = t.UTC()
	if !r.from.IsZero() && t.Before(r.from) {
		return false
	}
	if !r.to.IsZero() && !t.Before(r.to) {
		return false
	}
	return true
}

func matchesSearch(rec domain.Record, needle string, columns []string) bool {
	if needle == "" {
		return true
	}
	for _, col := range columns {
		if strings.Contains(strings.ToLower(rec.Column(col)), needle) {
			return true
		}
	}
	return false
}

func matchesColumnFilters(rec domain.Record, filters map[string][]string) bool {
	for col, values := range filters {
		if len(values) == 0 {
			continue
		}
		if !slices.Contains(values, rec.Column(col)) {
			return false
		}
	}
	return true
}

func sortRecords(records []domain.Record, column string, desc bool) {
	if column == "" {
		return
	}
	date := isDateColumn(column)

	slices.SortStableFunc(records, func(a, b domain.Record) int {
		var c int
		if date {
			c = compareTime(dateValue(a, column), dateValue(b, column))
		} else {
			c = strings.Compare(strings.ToLower(a.Column(column)), strings.ToLower(b.Column(column)))
		}
		if desc {
			return -c
		}
		return c
	})
}

func dateValue(r domain.Record, column string) time.Time {
	switch column {
	case "created_at":
		return r.CreatedAt
	case "updated_at":
		return r.UpdatedAt
	}
	t, _ := time.Parse(time.RFC3339, r.Column(column))
	return t
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// pageWindow returns at most five page numbers centred on page.
func pageWindow(page, totalPages int) []int {
	start := page - pageWindowSize/2
	if start > totalPages-pageWindowSize+1 {
		start = totalPages - pageWindowSize + 1
	}
	if start < 1 {
		start = 1
	}
	end := min(start+pageWindowSize-1, totalPages)

	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}
