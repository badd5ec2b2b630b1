package sqlite

import (
	"time"

	"github.com/vitalog/vitalog/internal/api/store"
)

// timeRange converts a date-based ListFilter into timestamp bounds for the
// time-keyed tables. The To bound is inclusive of the whole day. Malformed
// dates are ignored; handlers validate the format before we get here.
func timeRange(f store.ListFilter) (from, to time.Time, hasFrom, hasTo bool) {
	if f.From != "" {
		if t, err := time.Parse("2006-01-02", f.From); err == nil {
			from, hasFrom = t, true
		}
	}
	if f.To != "" {
		if t, err := time.Parse("2006-01-02", f.To); err == nil {
			to, hasTo = t.Add(24*time.Hour), true
		}
	}
	return
}

// dateRange builds the WHERE-clause fragments and args for a date-string
// keyed table (daily_metrics, mood_entries). Dates compare lexically in
// YYYY-MM-DD form.
func dateRange(f store.ListFilter) (clauses []string, args []any) {
	if f.From != "" {
		clauses = append(clauses, `date >= ?`)
		args = append(args, f.From)
	}
	if f.To != "" {
		clauses = append(clauses, `date <= ?`)
		args = append(args, f.To)
	}
	return
}
