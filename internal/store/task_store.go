package store

import (
	"database/sql"
	"fmt"

	"github.com/nhle/dailykit/internal/model"
)

var taskSchema = Schema[model.Task]{
	Table: "tasks",
	Columns: []string{
		"title", "is_done", "priority", "category", "repeat",
		"due_date", "created_at", "updated_at",
	},
	OrderBy: "updated_at DESC, id DESC",
	// Unset or unknown enums are stored as their defaults.
	Bind: func(t model.Task) ([]any, error) {
		t = t.Normalize()
		return []any{
			t.Title, boolToInt(t.IsDone),
			string(t.Priority), string(t.Category), string(t.Repeat),
			nullMillis(t.DueDate), toMillis(t.CreatedAt), toMillis(t.UpdatedAt),
		}, nil
	},
	Scan: scanTask,
	ID:   func(t model.Task) int64 { return t.ID },
}

// Tasks returns the record store for tasks.
func (s *SQLiteStore) Tasks() *Table[model.Task] {
	return NewTable(s, taskSchema)
}

// scanTask scans a task row.
func scanTask(row rowScanner) (model.Task, error) {
	var (
		task      model.Task
		isDone    int
		priority  string
		category  string
		repeat    string
		dueDate   sql.NullInt64
		createdAt int64
		updatedAt int64
	)

	err := row.Scan(
		&task.ID, &task.Title, &isDone, &priority, &category, &repeat,
		&dueDate, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.IsDone = isDone != 0
	task.Priority = model.Priority(priority)
	task.Category = model.Category(category)
	task.Repeat = model.Repeat(repeat)
	task.DueDate = optionalTime(dueDate)
	task.CreatedAt = fromMillis(createdAt)
	task.UpdatedAt = fromMillis(updatedAt)

	return task, nil
}
