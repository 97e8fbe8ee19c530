package models

import (
	"time"

	"github.com/uptrace/bun"
)

// IngestRun records the outcome of one batch store call.
type IngestRun struct {
	bun.BaseModel `bun:"table:ingest_runs,alias:ir"`

	ID         int64      `bun:"id,pk,autoincrement" json:"id"`
	RunID      string     `bun:"run_id,unique,notnull" json:"run_id"`
	Source     DataSource `bun:"source,notnull" json:"source"`
	StartedAt  time.Time  `bun:"started_at,notnull" json:"started_at"`
	FinishedAt *time.Time `bun:"finished_at" json:"finished_at,omitempty"`
	Status     RunStatus  `bun:"status,notnull" json:"status"`
	Received   int        `bun:"received,notnull,default:0" json:"received"`
	Added      int        `bun:"added,notnull,default:0" json:"added"`
	Skipped    int        `bun:"skipped,notnull,default:0" json:"skipped"`
	Failed     int        `bun:"failed,notnull,default:0" json:"failed"`
	ErrorLog   *string    `bun:"error_log" json:"error_log,omitempty"`
}
