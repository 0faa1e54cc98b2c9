package pg

import "fmt"

func (t *TargetDB) count(query string) (int, error) {
	var n int
	if err := t.db.QueryRow(query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return n, nil
}

func (t *TargetDB) CountMarkers() (int, error) {
	return t.count(`SELECT COUNT(*) FROM markers`)
}

func (t *TargetDB) CountMarkersWithSpectrum() (int, error) {
	return t.count(`SELECT COUNT(*) FROM markers WHERE has_spectrum = true`)
}

func (t *TargetDB) CountMarkersWithSpeed() (int, error) {
	return t.count(`SELECT COUNT(*) FROM markers WHERE speed IS NOT NULL AND speed > 0`)
}

func (t *TargetDB) CountSpectra() (int, error) {
	return t.count(`SELECT COUNT(*) FROM spectra`)
}

// CountSpectraMissingChannels counts target rows the backfill still owes.
func (t *TargetDB) CountSpectraMissingChannels() (int, error) {
	return t.count(`SELECT COUNT(*) FROM spectra WHERE channels IS NULL`)
}

// ExistingSpectrumIDs returns the set of spectrum ids already present in the
// target. One pass up front replaces a per-row existence query during the
// insert phase.
func (t *TargetDB) ExistingSpectrumIDs() (map[int64]struct{}, error) {
	rows, err := t.db.Query(`SELECT id FROM spectra`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		ids[id] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return ids, nil
}
