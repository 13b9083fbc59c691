package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// rowScanner is satisfied by *sqlx.Row and *sqlx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Schema maps one entity kind onto its table.
type Schema[T any] struct {
	// Table is the SQL table name.
	Table string

	// Columns lists every column except id, in Bind order.
	Columns []string

	// OrderBy is the declared scan order, e.g. "updated_at DESC, id DESC".
	OrderBy string

	// Bind returns the column values of v in Columns order.
	Bind func(v T) ([]any, error)

	// Scan reads id followed by Columns.
	Scan func(row rowScanner) (T, error)

	// ID returns the store-assigned id of v.
	ID func(v T) int64
}

// Table is the record store of one entity kind.
type Table[T any] struct {
	db     *sqlx.DB
	schema Schema[T]

	selectSQL string
	insertSQL string
	updateSQL string
}

// NewTable binds schema to the store's database.
func NewTable[T any](s *SQLiteStore, schema Schema[T]) *Table[T] {
	cols := strings.Join(schema.Columns, ", ")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(schema.Columns)), ", ")

	sets := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		sets[i] = c + " = ?"
	}

	return &Table[T]{
		db:        s.db,
		schema:    schema,
		selectSQL: fmt.Sprintf("SELECT id, %s FROM %s", cols, schema.Table),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", schema.Table, cols, placeholders),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", schema.Table, strings.Join(sets, ", ")),
	}
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.schema.Table }

// Insert stores v and returns the assigned id. Any id carried by v is ignored.
func (t *Table[T]) Insert(ctx context.Context, v T) (int64, error) {
	args, err := t.schema.Bind(v)
	if err != nil {
		return 0, t.fail("insert", err)
	}

	result, err := t.db.ExecContext(ctx, t.insertSQL, args...)
	if err != nil {
		return 0, t.fail("insert", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, t.fail("insert", fmt.Errorf("reading assigned id: %w", err))
	}
	return id, nil
}

// Get returns the row with the given id, or ErrNotFound.
func (t *Table[T]) Get(ctx context.Context, id int64) (T, error) {
	row := t.db.QueryRowxContext(ctx, t.selectSQL+" WHERE id = ?", id)

	v, err := t.schema.Scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", t.schema.Table, id, ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, t.fail("get", err)
	}
	return v, nil
}

// Put replaces every column of an existing row with the values of v.
func (t *Table[T]) Put(ctx context.Context, v T) error {
	args, err := t.schema.Bind(v)
	if err != nil {
		return t.fail("put", err)
	}
	id := t.schema.ID(v)
	args = append(args, id)

	result, err := t.db.ExecContext(ctx, t.updateSQL, args...)
	if err != nil {
		return t.fail("put", err)
	}

	return t.expectRow("put", id, result)
}

// expectRow reports ErrNotFound when result touched no row.
func (t *Table[T]) expectRow(op string, id int64, result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return t.fail(op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s %d: %w", t.schema.Table, id, ErrNotFound)
	}
	return nil
}

// Delete removes the row with the given id. Deleting an absent id is not an error.
func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	_, err := t.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.schema.Table), id)
	if err != nil {
		return t.fail("delete", err)
	}
	return nil
}

// ClearAll removes every row. Ids are not reused afterwards.
func (t *Table[T]) ClearAll(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", t.schema.Table))
	if err != nil {
		return t.fail("clear", err)
	}
	return nil
}

// ScanAll yields every row in the declared order. The sequence is lazy and
// each range over it runs a fresh query.
func (t *Table[T]) ScanAll(ctx context.Context) iter.Seq2[T, error] {
	return t.Where(ctx, "")
}

// Where yields the rows matching cond (a SQL boolean expression over the
// table's columns) in the declared order. An empty cond matches every row.
func (t *Table[T]) Where(ctx context.Context, cond string, args ...any) iter.Seq2[T, error] {
	query := t.selectSQL
	if cond != "" {
		query += " WHERE " + cond
	}
	query += " ORDER BY " + t.schema.OrderBy

	return func(yield func(T, error) bool) {
		var zero T

		rows, err := t.db.QueryxContext(ctx, query, args...)
		if err != nil {
			yield(zero, t.fail("scan", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			v, err := t.schema.Scan(rows)
			if err != nil {
				yield(zero, t.fail("scan", err))
				return
			}
			if !yield(v, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, t.fail("scan", err))
		}
	}
}

func (t *Table[T]) fail(op string, err error) error {
	return &Error{Op: op, Table: t.schema.Table, Err: err}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// toMillis converts t to epoch milliseconds.
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// fromMillis converts epoch milliseconds to a local time.
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// nullMillis converts an optional instant to a nullable column value.
func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

// optionalTime converts a nullable column value back to an optional instant.
func optionalTime(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromMillis(n.Int64)
	return &t
}
