package products

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/brands"
	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/categories"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/db"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/table"
)

// Repository adds brand/category read-through to the product table.
type Repository interface {
	table.Accessor[Product]
	ListDetails(ctx context.Context, page, perPage int) ([]Detail, error)
	GetDetail(ctx context.Context, id int64) (*Detail, error)
}

type repository struct {
	*table.Table[Product]
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

// detailQuery joins the brand (required) and category (optional) in one round trip.
func (r *repository) detailQuery() squirrel.SelectBuilder {
	cols := Mapping.SelectColumns("p")
	cols = append(cols, brands.Mapping.SelectColumns("b")...)
	cols = append(cols, categories.Mapping.SelectColumns("c")...)
	return r.sb.
		Select(cols...).
		From(Mapping.Table + " p").
		Join(brands.Mapping.Table + " b ON b.id = p.brand_id").
		LeftJoin(categories.Mapping.Table + " c ON c.id = p.category_id")
}

func (r *repository) ListDetails(ctx context.Context, page, perPage int) ([]Detail, error) {
	start, end := table.KeyRange(page, perPage)
	query, args, err := r.detailQuery().
		Where(squirrel.GtOrEq{"p.id": start}).
		Where(squirrel.Lt{"p.id": end}).
		OrderBy("p.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, table.Translate(Mapping.Table, "list details", err)
	}
	defer rows.Close()

	details := make([]Detail, 0, perPage)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, table.Translate(Mapping.Table, "scan detail", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, table.Translate(Mapping.Table, "list details", err)
	}
	return details, nil
}

func (r *repository) GetDetail(ctx context.Context, id int64) (*Detail, error) {
	query, args, err := r.detailQuery().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	d, err := scanDetail(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, table.Translate(Mapping.Table, "get detail", err)
	}
	return &d, nil
}

func scanDetail(row pgx.Row) (Detail, error) {
	var (
		d        Detail
		catID    *int64
		catName  *string
		catDescr *string
	)
	dest := Mapping.Fields(&d.Product)
	dest = append(dest, brands.Mapping.Fields(&d.Brand)...)
	dest = append(dest, &catID, &catName, &catDescr)
	if err := row.Scan(dest...); err != nil {
		return Detail{}, err
	}
	if catID != nil {
		d.Category = &categories.Category{ID: *catID}
		if catName != nil {
			d.Category.Name = *catName
		}
		if catDescr != nil {
			d.Category.Description = *catDescr
		}
	}
	return d, nil
}
