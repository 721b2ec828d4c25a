// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"
)

// PageSize is the default number of rows returned by paged listings.
// Keep this as an int because call sites add one for look-ahead and then
// cast to int64 for Mongo Find().SetLimit().
const PageSize = 50

// LimitPlusOne returns PageSize+1 as int64 for look-ahead pagination
// (fetch one extra document to detect hasNext).
func LimitPlusOne() int64 { return int64(PageSize + 1) }

// Skip returns the number of documents to skip for a 1-based page number.
func Skip(page int) int64 { return int64(page-1) * PageSize }

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := r.URL.Query().Get("page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TrimPage trims a slice fetched with LimitPlusOne down to PageSize.
// It modifies the slice in place and reports whether a next page exists.
func TrimPage[T any](rows *[]T) bool {
	if len(*rows) > PageSize {
		*rows = (*rows)[:PageSize]
		return true
	}
	return false
}
