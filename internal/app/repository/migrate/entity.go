package migrate

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// column is one column of a values-join bulk update. The cast pins the
// parameter type inside the VALUES list, which postgres cannot infer from a
// bare placeholder.
type column struct {
	name string
	cast string
}

// bulkUpdateSpec describes one guarded bulk update: join the target table
// against a VALUES list of (key, new values) rows and set the columns only
// where the guard holds. The guard is what keeps already-populated target
// values untouched and makes re-runs safe.
type bulkUpdateSpec struct {
	table   string
	key     column
	columns []column
	guard   string
}

// markerSpeedUpdate writes GPS speeds onto markers that never had one.
var markerSpeedUpdate = bulkUpdateSpec{
	table:   "markers",
	key:     column{"id", "bigint"},
	columns: []column{{"speed", "double precision"}},
	guard:   "t.speed IS NULL OR t.speed = 0",
}

// spectrumFlagUpdate raises has_spectrum, never lowers it.
var spectrumFlagUpdate = bulkUpdateSpec{
	table:   "markers",
	key:     column{"id", "bigint"},
	columns: []column{{"has_spectrum", "boolean"}},
	guard:   "t.has_spectrum = false",
}

// spectrumChannelsUpdate backfills channel data on spectra rows that were
// migrated before channels were parsed.
var spectrumChannelsUpdate = bulkUpdateSpec{
	table: "spectra",
	key:   column{"id", "bigint"},
	columns: []column{
		{"channels", "bigint[]"},
		{"channel_count", "bigint"},
		{"energy_min_kev", "double precision"},
		{"energy_max_kev", "double precision"},
		{"live_time_sec", "double precision"},
		{"real_time_sec", "double precision"},
	},
	guard: "t.channels IS NULL",
}

// build renders the UPDATE ... FROM (VALUES ...) statement for n rows.
func (s bulkUpdateSpec) build(n int) string {
	cols := append([]column{s.key}, s.columns...)

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(s.table)
	b.WriteString(" AS t SET ")
	for i, c := range s.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.name)
		b.WriteString(" = v.")
		b.WriteString(c.name)
	}

	b.WriteString(" FROM (VALUES ")
	placeholder := 1
	for row := 0; row < n; row++ {
		if row > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for i, c := range cols {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d::%s", placeholder, c.cast)
			placeholder++
		}
		b.WriteString(")")
	}

	b.WriteString(") AS v (")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.name)
	}
	b.WriteString(") WHERE t.")
	b.WriteString(s.key.name)
	b.WriteString(" = v.")
	b.WriteString(s.key.name)
	b.WriteString(" AND (")
	b.WriteString(s.guard)
	b.WriteString(")")

	return b.String()
}

// exec runs one batch inside the given transaction and reports how many
// target rows actually changed. The guard can legitimately no-op a whole
// batch on re-run, so affected may be less than len(rows).
func (s bulkUpdateSpec) exec(tx *sql.Tx, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	res, err := tx.Exec(s.build(len(rows)), lo.Flatten(rows)...)
	if err != nil {
		return 0, fmt.Errorf("bulk update of %s failed: %w", s.table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk update of %s failed: %w", s.table, err)
	}
	return affected, nil
}
