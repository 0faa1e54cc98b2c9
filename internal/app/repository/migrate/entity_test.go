package migrate

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkUpdateSpec_Build(t *testing.T) {
	t.Run("speed_single_row", func(t *testing.T) {
		got := markerSpeedUpdate.build(1)
		assert.Equal(t,
			"UPDATE markers AS t SET speed = v.speed"+
				" FROM (VALUES ($1::bigint, $2::double precision))"+
				" AS v (id, speed)"+
				" WHERE t.id = v.id AND (t.speed IS NULL OR t.speed = 0)",
			got)
	})

	t.Run("speed_two_rows", func(t *testing.T) {
		got := markerSpeedUpdate.build(2)
		assert.Equal(t,
			"UPDATE markers AS t SET speed = v.speed"+
				" FROM (VALUES ($1::bigint, $2::double precision), ($3::bigint, $4::double precision))"+
				" AS v (id, speed)"+
				" WHERE t.id = v.id AND (t.speed IS NULL OR t.speed = 0)",
			got)
	})

	t.Run("flag_guard_never_lowers", func(t *testing.T) {
		got := spectrumFlagUpdate.build(1)
		assert.Contains(t, got, "has_spectrum = v.has_spectrum")
		assert.Contains(t, got, "(t.has_spectrum = false)")
	})

	t.Run("channels_multi_column", func(t *testing.T) {
		got := spectrumChannelsUpdate.build(1)
		assert.Contains(t, got, "UPDATE spectra AS t SET channels = v.channels, channel_count = v.channel_count")
		assert.Contains(t, got, "$2::bigint[]")
		assert.Contains(t, got, "(t.channels IS NULL)")
		// One placeholder per column including the key.
		assert.Contains(t, got, "$7::double precision")
	})
}

func TestBulkUpdateSpec_Exec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(markerSpeedUpdate.build(2))).
		WithArgs(int64(42), 55.3, int64(43), 12.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	affected, err := markerSpeedUpdate.exec(tx, [][]any{
		{int64(42), 55.3},
		{int64(43), 12.0},
	})
	require.NoError(t, err)
	// The guard filtered one of the two rows.
	assert.Equal(t, int64(1), affected)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdateSpec_Exec_EmptyBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	affected, err := markerSpeedUpdate.exec(tx, nil)
	require.NoError(t, err)
	assert.Zero(t, affected)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
