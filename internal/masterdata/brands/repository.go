package brands

import (
	"github.com/odyssey-erp/odyssey-shop/internal/platform/db"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/table"
)

type Repository interface {
	table.Accessor[Brand]
}

func NewRepository(conn db.DBTX) Repository {
	return table.New(conn, Mapping)
}
