package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/reelstats/reelstats/internal/sanitize"
)

// DataSource tags which upstream API a record came from.
type DataSource string

const (
	SourceTMDB    DataSource = "tmdb"
	SourceOMDb    DataSource = "omdb"
	SourceYouTube DataSource = "youtube"
)

// RunStatus is the outcome of a single store call.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// NullableFloat64 handles nullable REAL columns. Scanning is lenient: any
// value that does not sanitize to a finite number scans as missing.
type NullableFloat64 struct {
	Float64 float64
	Valid   bool
}

// NewNullableFloat64 wraps a sanitized value.
func NewNullableFloat64(f float64, ok bool) NullableFloat64 {
	if !ok {
		return NullableFloat64{}
	}
	return NullableFloat64{Float64: f, Valid: true}
}

func (n NullableFloat64) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Float64, nil
}

func (n *NullableFloat64) Scan(value interface{}) error {
	n.Float64, n.Valid = sanitize.ParseRating(value)
	return nil
}

func (n NullableFloat64) String() string {
	if !n.Valid {
		return sanitize.MissingRating
	}
	return fmt.Sprintf("%g", n.Float64)
}
