package store

import (
	"fmt"

	"github.com/nhle/dailykit/internal/model"
)

// The date_key index is not unique: one-per-day is the caller's rule.
var fortuneSchema = Schema[model.Fortune]{
	Table:   "fortunes",
	Columns: []string{"date_key", "text", "created_at"},
	OrderBy: "date_key DESC, id DESC",
	Bind: func(f model.Fortune) ([]any, error) {
		return []any{f.DateKey, f.Text, toMillis(f.CreatedAt)}, nil
	},
	Scan: scanFortune,
	ID:   func(f model.Fortune) int64 { return f.ID },
}

// Fortunes returns the record store for daily fortunes.
func (s *SQLiteStore) Fortunes() *Table[model.Fortune] {
	return NewTable(s, fortuneSchema)
}

func scanFortune(row rowScanner) (model.Fortune, error) {
	var (
		fortune   model.Fortune
		createdAt int64
	)

	if err := row.Scan(&fortune.ID, &fortune.DateKey, &fortune.Text, &createdAt); err != nil {
		return model.Fortune{}, fmt.Errorf("scanning fortune row: %w", err)
	}

	fortune.CreatedAt = fromMillis(createdAt)
	return fortune, nil
}
