package store

import (
	"encoding/json"
	"fmt"

	"github.com/nhle/dailykit/internal/model"
)

var noteSchema = Schema[model.Note]{
	Table: "notes",
	Columns: []string{
		"title", "content", "tags", "is_pinned", "is_archived", "is_locked",
		"created_at", "updated_at",
	},
	OrderBy: "updated_at DESC, id DESC",
	Bind: func(n model.Note) ([]any, error) {
		tags, err := encodeTags(n.Tags)
		if err != nil {
			return nil, err
		}
		return []any{
			n.Title, n.Content, tags,
			boolToInt(n.IsPinned), boolToInt(n.IsArchived), boolToInt(n.IsLocked),
			toMillis(n.CreatedAt), toMillis(n.UpdatedAt),
		}, nil
	},
	Scan: scanNote,
	ID:   func(n model.Note) int64 { return n.ID },
}

// Notes returns the record store for notes. LockPin is not persisted here.
func (s *SQLiteStore) Notes() *Table[model.Note] {
	return NewTable(s, noteSchema)
}

func scanNote(row rowScanner) (model.Note, error) {
	var (
		note       model.Note
		tags       string
		isPinned   int
		isArchived int
		isLocked   int
		createdAt  int64
		updatedAt  int64
	)

	err := row.Scan(
		&note.ID, &note.Title, &note.Content, &tags,
		&isPinned, &isArchived, &isLocked,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("scanning note row: %w", err)
	}

	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &note.Tags); err != nil {
			return model.Note{}, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}
	note.IsPinned = isPinned != 0
	note.IsArchived = isArchived != 0
	note.IsLocked = isLocked != 0
	note.CreatedAt = fromMillis(createdAt)
	note.UpdatedAt = fromMillis(updatedAt)

	return note, nil
}

// encodeTags stores an empty tag set as the empty string so it reads back as nil.
func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshaling tags: %w", err)
	}
	return string(data), nil
}
