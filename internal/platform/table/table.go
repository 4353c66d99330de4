// Package table implements the CRUD contract shared by every record kind.
//
// A record kind describes itself once with a Mapping and gets GetAll,
// CountTotal, GetOneOrNone, Insert, Update and Delete from Table. Repositories
// compose a *Table rather than inheriting from a common base, so record kinds
// that need extra queries (products, reviews) add them next to it.
package table

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/odyssey-shop/internal/platform/db"
	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

// KeyColumn is the store-assigned primary key of every table.
const KeyColumn = "id"

// Accessor is the table-access contract for record kind T.
type Accessor[T any] interface {
	GetAll(ctx context.Context, page, perPage int) ([]T, error)
	CountTotal(ctx context.Context) (int, error)
	GetOneOrNone(ctx context.Context, id int64) (*T, error)
	Insert(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, rec *T) error
}

// Mapping binds a record kind to its table.
type Mapping[T any] struct {
	// Table is the SQL table name.
	Table string
	// Columns lists the writable columns, excluding the key.
	Columns []string
	// Key returns a pointer to the record's primary key.
	Key func(*T) *int64
	// Values returns the column values in Columns order.
	Values func(*T) []any
	// Fields returns scan targets for the key followed by Columns.
	Fields func(*T) []any
}

// SelectColumns returns the key followed by Columns, qualified with prefix when set.
func (m Mapping[T]) SelectColumns(prefix string) []string {
	cols := make([]string, 0, len(m.Columns)+1)
	cols = append(cols, qualify(prefix, KeyColumn))
	for _, c := range m.Columns {
		cols = append(cols, qualify(prefix, c))
	}
	return cols
}

func qualify(prefix, column string) string {
	if prefix == "" {
		return column
	}
	return prefix + "." + column
}

// Table implements Accessor on PostgreSQL. Every write runs as its own
// statement and commits immediately unless the DBTX is a transaction.
type Table[T any] struct {
	db      db.DBTX
	mapping Mapping[T]
	sb      squirrel.StatementBuilderType
}

// New constructs a Table for the given mapping.
func New[T any](conn db.DBTX, mapping Mapping[T]) *Table[T] {
	return &Table[T]{
		db:      conn,
		mapping: mapping,
		sb:      Builder(),
	}
}

// Builder returns a squirrel builder using PostgreSQL placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Mapping exposes the record mapping, e.g. for join queries.
func (t *Table[T]) Mapping() Mapping[T] {
	return t.mapping
}

// KeyRange returns the half-open key interval [start, end) served by page.
// Pages are key ranges, not row offsets: deleted ids leave holes, and ids
// starting at 1 leave page 1 one row short.
// Pages past the last representable key get an empty range.
func KeyRange(page, perPage int) (start, end int64) {
	if page < 1 || perPage < 1 {
		return 0, 0
	}
	if int64(page) > math.MaxInt64/int64(perPage) {
		return math.MaxInt64, math.MaxInt64
	}
	start = int64(page-1) * int64(perPage)
	return start, start + int64(perPage)
}

// GetAll returns the records whose key lies in KeyRange(page, perPage).
func (t *Table[T]) GetAll(ctx context.Context, page, perPage int) ([]T, error) {
	start, end := KeyRange(page, perPage)
	query, args, err := t.sb.
		Select(t.mapping.SelectColumns("")...).
		From(t.mapping.Table).
		Where(squirrel.GtOrEq{KeyColumn: start}).
		Where(squirrel.Lt{KeyColumn: end}).
		OrderBy(KeyColumn).
		ToSql()
	if err != nil {
		return nil, t.errorf("build get all", err)
	}

	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, Translate(t.mapping.Table, "get all", err)
	}
	defer rows.Close()

	records := make([]T, 0, perPage)
	for rows.Next() {
		var rec T
		if err := rows.Scan(t.mapping.Fields(&rec)...); err != nil {
			return nil, t.errorf("scan", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, Translate(t.mapping.Table, "get all", err)
	}
	return records, nil
}

// CountTotal returns the number of rows in the table.
func (t *Table[T]) CountTotal(ctx context.Context) (int, error) {
	query, args, err := t.sb.Select("COUNT(*)").From(t.mapping.Table).ToSql()
	if err != nil {
		return 0, t.errorf("build count", err)
	}
	var total int64
	if err := t.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, Translate(t.mapping.Table, "count", err)
	}
	return int(total), nil
}

// GetOneOrNone returns the record with the given key, or nil when absent.
func (t *Table[T]) GetOneOrNone(ctx context.Context, id int64) (*T, error) {
	query, args, err := t.sb.
		Select(t.mapping.SelectColumns("")...).
		From(t.mapping.Table).
		Where(squirrel.Eq{KeyColumn: id}).
		ToSql()
	if err != nil {
		return nil, t.errorf("build get one", err)
	}

	var rec T
	if err := t.db.QueryRow(ctx, query, args...).Scan(t.mapping.Fields(&rec)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, Translate(t.mapping.Table, "get one", err)
	}
	return &rec, nil
}

// Insert persists rec and stores the assigned key back into it.
func (t *Table[T]) Insert(ctx context.Context, rec *T) error {
	query, args, err := t.sb.
		Insert(t.mapping.Table).
		Columns(t.mapping.Columns...).
		Values(t.mapping.Values(rec)...).
		Suffix("RETURNING " + KeyColumn).
		ToSql()
	if err != nil {
		return t.errorf("build insert", err)
	}
	if err := t.db.QueryRow(ctx, query, args...).Scan(t.mapping.Key(rec)); err != nil {
		return Translate(t.mapping.Table, "insert", err)
	}
	return nil
}

// Update writes every mutable column of rec back to its row.
func (t *Table[T]) Update(ctx context.Context, rec *T) error {
	values := t.mapping.Values(rec)
	set := make(map[string]any, len(values))
	for i, col := range t.mapping.Columns {
		set[col] = values[i]
	}
	query, args, err := t.sb.
		Update(t.mapping.Table).
		SetMap(set).
		Where(squirrel.Eq{KeyColumn: *t.mapping.Key(rec)}).
		ToSql()
	if err != nil {
		return t.errorf("build update", err)
	}
	return t.execOne(ctx, "update", query, args)
}

// Delete removes rec's row.
func (t *Table[T]) Delete(ctx context.Context, rec *T) error {
	query, args, err := t.sb.
		Delete(t.mapping.Table).
		Where(squirrel.Eq{KeyColumn: *t.mapping.Key(rec)}).
		ToSql()
	if err != nil {
		return t.errorf("build delete", err)
	}
	return t.execOne(ctx, "delete", query, args)
}

func (t *Table[T]) execOne(ctx context.Context, op, query string, args []any) error {
	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return Translate(t.mapping.Table, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table %s: %s: %w", t.mapping.Table, op, shared.ErrNotFound)
	}
	return nil
}

func (t *Table[T]) errorf(op string, err error) error {
	return fmt.Errorf("table %s: %s: %w", t.mapping.Table, op, err)
}

var _ Accessor[struct{}] = (*Table[struct{}])(nil)
