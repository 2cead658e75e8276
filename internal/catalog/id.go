package catalog

import "github.com/google/uuid"

// newID mirrors the teacher's NewToolProfile/NewStockSheet constructors:
// a truncated UUID is unique enough for a local preset library.
func newID() string {
	return uuid.New().String()[:8]
}
