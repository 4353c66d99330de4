package shared

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPage is used when ?page is missing or unparsable.
	DefaultPage = 1
	// PerPage is the fixed listing page size.
	PerPage = 10
)

// Pagination contains the page requested by a listing call.
type Pagination struct {
	Page    int
	PerPage int
}

// PageFromRequest reads ?page, falling back to DefaultPage.
func PageFromRequest(r *http.Request) Pagination {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	return Pagination{Page: page, PerPage: PerPage}
}
