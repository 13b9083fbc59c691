package store

import (
	"fmt"

	"github.com/nhle/dailykit/internal/model"
)

var calcSchema = Schema[model.CalcEntry]{
	Table:   "calc_history",
	Columns: []string{"expression", "result", "favorite", "created_at"},
	OrderBy: "created_at DESC, id DESC",
	Bind: func(c model.CalcEntry) ([]any, error) {
		return []any{c.Expression, c.Result, boolToInt(c.Favorite), toMillis(c.CreatedAt)}, nil
	},
	Scan: scanCalcEntry,
	ID:   func(c model.CalcEntry) int64 { return c.ID },
}

// CalcHistory returns the record store for calculator history.
func (s *SQLiteStore) CalcHistory() *Table[model.CalcEntry] {
	return NewTable(s, calcSchema)
}

func scanCalcEntry(row rowScanner) (model.CalcEntry, error) {
	var (
		entry     model.CalcEntry
		favorite  int
		createdAt int64
	)

	if err := row.Scan(&entry.ID, &entry.Expression, &entry.Result, &favorite, &createdAt); err != nil {
		return model.CalcEntry{}, fmt.Errorf("scanning calc history row: %w", err)
	}

	entry.Favorite = favorite != 0
	entry.CreatedAt = fromMillis(createdAt)
	return entry, nil
}
