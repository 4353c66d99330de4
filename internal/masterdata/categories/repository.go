package categories

import (
	"github.com/odyssey-erp/odyssey-shop/internal/platform/db"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/table"
)

type Repository interface {
	table.Accessor[Category]
}

func NewRepository(conn db.DBTX) Repository {
	return table.New(conn, Mapping)
}
