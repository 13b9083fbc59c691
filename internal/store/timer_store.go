package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nhle/dailykit/internal/model"
)

var timerSchema = Schema[model.Timer]{
	Table:   "timers",
	Columns: []string{"label", "duration_ms", "started_at", "ended_at", "created_at"},
	OrderBy: "started_at DESC, id DESC",
	Bind: func(t model.Timer) ([]any, error) {
		return []any{
			t.Label, t.Duration.Milliseconds(), toMillis(t.StartedAt),
			nullMillis(t.EndedAt), toMillis(t.CreatedAt),
		}, nil
	},
	Scan: scanTimer,
	ID:   func(t model.Timer) int64 { return t.ID },
}

// Timers returns the record store for timers.
func (s *SQLiteStore) Timers() *Table[model.Timer] {
	return NewTable(s, timerSchema)
}

func scanTimer(row rowScanner) (model.Timer, error) {
	var (
		timer      model.Timer
		durationMs int64
		startedAt  int64
		endedAt    sql.NullInt64
		createdAt  int64
	)

	err := row.Scan(&timer.ID, &timer.Label, &durationMs, &startedAt, &endedAt, &createdAt)
	if err != nil {
		return model.Timer{}, fmt.Errorf("scanning timer row: %w", err)
	}

	timer.Duration = time.Duration(durationMs) * time.Millisecond
	timer.StartedAt = fromMillis(startedAt)
	timer.EndedAt = optionalTime(endedAt)
	timer.CreatedAt = fromMillis(createdAt)

	return timer, nil
}
