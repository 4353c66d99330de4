package orders

import (
	"github.com/odyssey-erp/odyssey-shop/internal/platform/db"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/table"
)

type Repository interface {
	table.Accessor[Order]
}

func NewRepository(conn db.DBTX) Repository {
	return table.New(conn, Mapping)
}
