package model

import "database/sql"

// Marker is a single sensor reading record. Only the columns this tool
// reconciles are carried; the rest of the row never leaves the source.
type Marker struct {
	ID          int64
	HasSpectrum bool
	Speed       sql.NullFloat64
}

// SpeedValue is one (marker id, speed) pair for the batched speed update.
type SpeedValue struct {
	MarkerID int64
	Speed    float64
}
