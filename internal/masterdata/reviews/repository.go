package reviews

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/odyssey-erp/odyssey-shop/internal/platform/db"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/table"
)

type Repository interface {
	table.Accessor[ProductReview]
	ListByProduct(ctx context.Context, productID int64) ([]ProductReview, error)
}

type repository struct {
	*table.Table[ProductReview]
	db db.DBTX
	sb squirrel.StatementBuilderType
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{
		Table: table.New(conn, Mapping),
		db:    conn,
		sb:    table.Builder(),
	}
}

func (r *repository) ListByProduct(ctx context.Context, productID int64) ([]ProductReview, error) {
	query, args, err := r.sb.
		Select(Mapping.SelectColumns("")...).
		From(Mapping.Table).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy(table.KeyColumn).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, table.Translate(Mapping.Table, "list by product", err)
	}
	defer rows.Close()

	var out []ProductReview
	for rows.Next() {
		var rec ProductReview
		if err := rows.Scan(Mapping.Fields(&rec)...); err != nil {
			return nil, table.Translate(Mapping.Table, "scan", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
