package sqlite

import (
	"fmt"

	"safecast-migrate/internal/app/model"
)

func (s *SourceDB) count(query string) (int, error) {
	var n int
	if err := s.db.QueryRow(query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return n, nil
}

func (s *SourceDB) CountMarkers() (int, error) {
	return s.count(`SELECT COUNT(*) FROM markers`)
}

func (s *SourceDB) CountMarkersWithSpectrum() (int, error) {
	return s.count(`SELECT COUNT(*) FROM markers WHERE has_spectrum = 1`)
}

func (s *SourceDB) CountMarkersWithSpeed() (int, error) {
	return s.count(`SELECT COUNT(*) FROM markers WHERE speed IS NOT NULL AND speed > 0`)
}

func (s *SourceDB) CountSpectra() (int, error) {
	return s.count(`SELECT COUNT(*) FROM spectra`)
}

// FetchSpectra returns every spectrum row, ordered by id.
func (s *SourceDB) FetchSpectra() ([]model.Spectrum, error) {
	rows, err := s.db.Query(`
		SELECT id, marker_id, channels, channel_count, energy_min_kev, energy_max_kev,
		       live_time_sec, real_time_sec, device_model, calibration,
		       source_format, filename, raw_data, created_at
		FROM spectra
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var spectra []model.Spectrum
	for rows.Next() {
		var sp model.Spectrum
		err = rows.Scan(&sp.ID, &sp.MarkerID, &sp.Channels, &sp.ChannelCount,
			&sp.EnergyMinKeV, &sp.EnergyMaxKeV, &sp.LiveTimeSec, &sp.RealTimeSec,
			&sp.DeviceModel, &sp.Calibration, &sp.SourceFormat, &sp.Filename,
			&sp.RawData, &sp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		spectra = append(spectra, sp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return spectra, nil
}

// FetchSpectraWithChannels returns the channel columns of every spectrum
// that has channel data, ordered by id. Used by the backfill path.
func (s *SourceDB) FetchSpectraWithChannels() ([]model.ChannelUpdate, error) {
	rows, err := s.db.Query(`
		SELECT id, channels, channel_count, energy_min_kev, energy_max_kev,
		       live_time_sec, real_time_sec
		FROM spectra
		WHERE channels IS NOT NULL
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var updates []model.ChannelUpdate
	for rows.Next() {
		var u model.ChannelUpdate
		err = rows.Scan(&u.ID, &u.Channels, &u.ChannelCount,
			&u.EnergyMinKeV, &u.EnergyMaxKeV, &u.LiveTimeSec, &u.RealTimeSec)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		updates = append(updates, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return updates, nil
}

// MarkerIDsWithSpectrum returns the ids of all markers flagged has_spectrum.
func (s *SourceDB) MarkerIDsWithSpectrum() ([]int64, error) {
	rows, err := s.db.Query(`SELECT id FROM markers WHERE has_spectrum = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return ids, nil
}

// SpeedBatches pages through markers carrying a positive speed and hands
// each page to fn. Paging keeps the memory footprint bounded when the
// markers table holds millions of rows.
func (s *SourceDB) SpeedBatches(batchSize int, fn func([]model.SpeedValue) error) error {
	offset := 0
	for {
		rows, err := s.db.Query(`
			SELECT id, speed
			FROM markers
			WHERE speed IS NOT NULL AND speed > 0
			ORDER BY id
			LIMIT ? OFFSET ?`, batchSize, offset)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}

		var batch []model.SpeedValue
		for rows.Next() {
			var v model.SpeedValue
			if err = rows.Scan(&v.MarkerID, &v.Speed); err != nil {
				rows.Close()
				return fmt.Errorf("db scan failed: %w", err)
			}
			batch = append(batch, v)
		}
		if err = rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("rows iteration failed: %w", err)
		}
		rows.Close()

		if len(batch) == 0 {
			return nil
		}
		if err = fn(batch); err != nil {
			return err
		}
		offset += batchSize
	}
}
