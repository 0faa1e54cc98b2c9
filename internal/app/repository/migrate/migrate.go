// Package migrate implements the reconciling bulk copier that moves
// spectral and speed data from the SQLite source store into PostgreSQL.
//
// Every phase is idempotent: inserts are skipped when the primary key
// already exists in the target, and updates carry a guard that only touches
// rows whose current value is still unset. Update phases commit one batch
// at a time, so an interrupted run can simply be re-run and picks up the
// batches that never committed.
package migrate

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"safecast-migrate/internal/app/model"
	"safecast-migrate/internal/app/repository/pg"
	"safecast-migrate/internal/app/repository/sqlite"
)

const insertSpectrumSQL = `INSERT INTO spectra (
		id, marker_id, channels, channel_count, energy_min_kev, energy_max_kev,
		live_time_sec, real_time_sec, device_model, calibration,
		source_format, filename, raw_data, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// Migrator owns one connection to each store for the duration of a single
// run. It is not safe for concurrent use and is not meant to be: the whole
// job is one linear pass.
type Migrator struct {
	source    *sqlite.SourceDB
	target    *pg.TargetDB
	batchSize int
	log       *zap.SugaredLogger
	progress  *ProgressManager
}

// NewMigrator wires a migrator for one run. Every log line carries the run
// id so interleaved re-runs can be told apart in aggregated logs.
func NewMigrator(source *sqlite.SourceDB, target *pg.TargetDB, batchSize int, logger *zap.Logger) *Migrator {
	return &Migrator{
		source:    source,
		target:    target,
		batchSize: batchSize,
		log:       logger.Sugar().With("run_id", uuid.NewString()),
		progress:  NewProgressManager(ProgressConfig{Enabled: ShouldShowProgress(false)}),
	}
}

// Shutdown releases the progress renderer. Call once after the last phase.
func (m *Migrator) Shutdown() {
	m.progress.Shutdown()
}

// SourceCounts snapshots the source store.
func (m *Migrator) SourceCounts() (Counts, error) {
	return gatherCounts(
		m.source.CountMarkers,
		m.source.CountMarkersWithSpectrum,
		m.source.CountMarkersWithSpeed,
		m.source.CountSpectra,
	)
}

// TargetCounts snapshots the target store.
func (m *Migrator) TargetCounts() (Counts, error) {
	return gatherCounts(
		m.target.CountMarkers,
		m.target.CountMarkersWithSpectrum,
		m.target.CountMarkersWithSpeed,
		m.target.CountSpectra,
	)
}

func gatherCounts(markers, withSpectrum, withSpeed, spectra func() (int, error)) (Counts, error) {
	var c Counts
	var err error
	if c.Markers, err = markers(); err != nil {
		return Counts{}, err
	}
	if c.MarkersWithSpectrum, err = withSpectrum(); err != nil {
		return Counts{}, err
	}
	if c.MarkersWithSpeed, err = withSpeed(); err != nil {
		return Counts{}, err
	}
	if c.Spectra, err = spectra(); err != nil {
		return Counts{}, err
	}
	return c, nil
}

// Preflight snapshots both stores and computes the migration plan.
func (m *Migrator) Preflight() (Plan, error) {
	source, err := m.SourceCounts()
	if err != nil {
		return Plan{}, fmt.Errorf("analyzing sqlite database: %w", err)
	}
	target, err := m.TargetCounts()
	if err != nil {
		return Plan{}, fmt.Errorf("analyzing postgres database: %w", err)
	}
	return computePlan(source, target), nil
}

// Verify recomputes target counts after the run and compares them against
// the pre-run source snapshot.
func (m *Migrator) Verify(source Counts) (VerifyResult, error) {
	target, err := m.TargetCounts()
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verifying postgres database: %w", err)
	}
	return verifyCounts(source, target), nil
}

// InsertResult tallies the spectra insert phase.
type InsertResult struct {
	Inserted    int
	Skipped     int
	BadChannels int
}

// UpdateResult tallies one batched update phase. Updated counts rows the
// guard actually let through, which on a re-run is typically less than
// Processed.
type UpdateResult struct {
	Processed int
	Updated   int
	Skipped   int
	Batches   int
}

// CopyMissingSpectra inserts every source spectrum whose id is absent from
// the target, preserving ids and marker linkage. All inserts share one
// transaction; any failure rolls the whole phase back.
func (m *Migrator) CopyMissingSpectra() (InsertResult, error) {
	var res InsertResult

	spectra, err := m.source.FetchSpectra()
	if err != nil {
		return res, fmt.Errorf("fetching spectra from sqlite: %w", err)
	}
	if len(spectra) == 0 {
		return res, nil
	}

	existing, err := m.target.ExistingSpectrumIDs()
	if err != nil {
		return res, fmt.Errorf("listing target spectra: %w", err)
	}

	tx, err := m.target.DB().Begin()
	if err != nil {
		return res, fmt.Errorf("starting insert transaction: %w", err)
	}

	stmt, err := tx.Prepare(insertSpectrumSQL)
	if err != nil {
		tx.Rollback()
		return res, fmt.Errorf("preparing spectrum insert: %w", err)
	}
	defer stmt.Close()

	bar := m.progress.CreateBar(len(spectra), "Inserting spectra")
	defer bar.Complete()

	for _, sp := range spectra {
		bar.Increment()

		if _, ok := existing[sp.ID]; ok {
			res.Skipped++
			continue
		}

		channels, err := parseChannels(sp.Channels)
		if err != nil {
			m.log.Warnw("skipping spectrum with unparseable channels",
				"spectrum_id", sp.ID, "marker_id", sp.MarkerID, "error", err)
			res.BadChannels++
			continue
		}
		var channelsArg any
		if channels != nil {
			channelsArg = pq.Array(channels)
		}

		_, err = stmt.Exec(sp.ID, sp.MarkerID, channelsArg, sp.ChannelCount,
			sp.EnergyMinKeV, sp.EnergyMaxKeV, sp.LiveTimeSec, sp.RealTimeSec,
			sp.DeviceModel, sp.Calibration, sp.SourceFormat, sp.Filename,
			sp.RawData, epochToTime(sp.CreatedAt))
		if err != nil {
			tx.Rollback()
			return InsertResult{}, fmt.Errorf("inserting spectrum %d: %w", sp.ID, err)
		}

		res.Inserted++
		if res.Inserted%100 == 0 {
			m.log.Infof("inserted %d spectral records...", res.Inserted)
		}
	}

	if err := tx.Commit(); err != nil {
		return InsertResult{}, fmt.Errorf("committing spectrum inserts: %w", err)
	}

	m.log.Infow("spectra insert phase complete",
		"inserted", res.Inserted, "skipped", res.Skipped, "bad_channels", res.BadChannels)
	return res, nil
}

// UpdateSpectrumFlags raises has_spectrum on target markers that carry it in
// the source. The guard never lowers a flag that is already true.
func (m *Migrator) UpdateSpectrumFlags() (UpdateResult, error) {
	var res UpdateResult

	ids, err := m.source.MarkerIDsWithSpectrum()
	if err != nil {
		return res, fmt.Errorf("fetching flagged markers from sqlite: %w", err)
	}
	if len(ids) == 0 {
		return res, nil
	}

	bar := m.progress.CreateBar(len(ids), "Updating marker flags")
	defer bar.Complete()

	for _, batch := range lo.Chunk(ids, m.batchSize) {
		rows := lo.Map(batch, func(id int64, _ int) []any {
			return []any{id, true}
		})

		updated, err := m.applyBatch(spectrumFlagUpdate, rows)
		if err != nil {
			return UpdateResult{}, err
		}

		res.Processed += len(batch)
		res.Updated += int(updated)
		res.Batches++
		bar.IncrBy(len(batch))
	}

	m.log.Infow("marker flag phase complete",
		"processed", res.Processed, "updated", res.Updated, "batches", res.Batches)
	return res, nil
}

// UpdateSpeeds copies positive source speeds onto target markers whose
// speed is still NULL or zero. One transaction per batch: an interrupted
// run leaves completed batches committed and the guard re-selects the rest
// on the next run.
func (m *Migrator) UpdateSpeeds() (UpdateResult, error) {
	var res UpdateResult

	total, err := m.source.CountMarkersWithSpeed()
	if err != nil {
		return res, fmt.Errorf("counting speed markers in sqlite: %w", err)
	}
	if total == 0 {
		return res, nil
	}

	bar := m.progress.CreateBar(total, "Updating speeds")
	defer bar.Complete()

	err = m.source.SpeedBatches(m.batchSize, func(batch []model.SpeedValue) error {
		rows := lo.Map(batch, func(v model.SpeedValue, _ int) []any {
			return []any{v.MarkerID, v.Speed}
		})

		updated, err := m.applyBatch(markerSpeedUpdate, rows)
		if err != nil {
			return err
		}

		res.Processed += len(batch)
		res.Updated += int(updated)
		res.Batches++
		bar.IncrBy(len(batch))

		m.log.Infof("speed progress: %d/%d (%.1f%%)",
			res.Processed, total, float64(res.Processed)/float64(total)*100)
		return nil
	})
	if err != nil {
		return UpdateResult{}, err
	}

	m.log.Infow("speed phase complete",
		"processed", res.Processed, "updated", res.Updated, "batches", res.Batches)
	return res, nil
}

// BackfillChannels re-parses source channel data and writes it onto target
// spectra whose channels column is still NULL, together with the dependent
// channel metadata columns.
func (m *Migrator) BackfillChannels() (UpdateResult, error) {
	var res UpdateResult

	updates, err := m.source.FetchSpectraWithChannels()
	if err != nil {
		return res, fmt.Errorf("fetching channel data from sqlite: %w", err)
	}
	if len(updates) == 0 {
		return res, nil
	}

	rows := make([][]any, 0, len(updates))
	for _, u := range updates {
		channels, err := parseChannels(u.Channels)
		if err != nil {
			m.log.Warnw("skipping spectrum with unparseable channels",
				"spectrum_id", u.ID, "error", err)
			res.Skipped++
			continue
		}
		rows = append(rows, []any{u.ID, pq.Array(channels), u.ChannelCount,
			u.EnergyMinKeV, u.EnergyMaxKeV, u.LiveTimeSec, u.RealTimeSec})
	}

	bar := m.progress.CreateBar(len(rows), "Backfilling channels")
	defer bar.Complete()

	for _, batch := range lo.Chunk(rows, m.batchSize) {
		updated, err := m.applyBatch(spectrumChannelsUpdate, batch)
		if err != nil {
			return UpdateResult{}, err
		}

		res.Processed += len(batch)
		res.Updated += int(updated)
		res.Batches++
		bar.IncrBy(len(batch))
	}

	m.log.Infow("channel backfill phase complete",
		"processed", res.Processed, "updated", res.Updated,
		"skipped", res.Skipped, "batches", res.Batches)
	return res, nil
}

// ChannelBackfillStatus reports how many target spectra still lack channel
// data and how many already have it.
func (m *Migrator) ChannelBackfillStatus() (pending, populated int, err error) {
	pending, err = m.target.CountSpectraMissingChannels()
	if err != nil {
		return 0, 0, fmt.Errorf("counting spectra missing channels: %w", err)
	}
	total, err := m.target.CountSpectra()
	if err != nil {
		return 0, 0, fmt.Errorf("counting target spectra: %w", err)
	}
	return pending, total - pending, nil
}

// applyBatch runs one guarded bulk update in its own transaction.
func (m *Migrator) applyBatch(spec bulkUpdateSpec, rows [][]any) (int64, error) {
	tx, err := m.target.DB().Begin()
	if err != nil {
		return 0, fmt.Errorf("starting batch transaction: %w", err)
	}

	updated, err := spec.exec(tx, rows)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing batch: %w", err)
	}
	return updated, nil
}
