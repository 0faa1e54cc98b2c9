package model

import "database/sql"

// Spectrum is a gamma-ray energy-channel histogram plus acquisition
// metadata, linked to a marker. Channels holds the value exactly as scanned
// from the source: the SQLite column is TEXT with a JSON array literal in
// most rows, a BLOB in some early imports, or NULL. Normalization into a
// native array happens in the copier.
type Spectrum struct {
	ID           int64
	MarkerID     int64
	Channels     []byte
	ChannelCount sql.NullInt64
	EnergyMinKeV sql.NullFloat64
	EnergyMaxKeV sql.NullFloat64
	LiveTimeSec  sql.NullFloat64
	RealTimeSec  sql.NullFloat64
	DeviceModel  sql.NullString
	Calibration  sql.NullString
	SourceFormat sql.NullString
	Filename     sql.NullString
	RawData      []byte
	CreatedAt    float64 // epoch seconds in the source store
}

// ChannelUpdate is the projection used when backfilling channel columns on
// spectra that already exist in the target.
type ChannelUpdate struct {
	ID           int64
	Channels     []byte
	ChannelCount sql.NullInt64
	EnergyMinKeV sql.NullFloat64
	EnergyMaxKeV sql.NullFloat64
	LiveTimeSec  sql.NullFloat64
	RealTimeSec  sql.NullFloat64
}
