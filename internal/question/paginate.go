package question

import (
	"strconv"
	"strings"
)

// Paginate returns the 1-based page of items. Pages below 1 and pages past the
// end are empty; the slice is never out of range.
func Paginate[T any](page, size int, items []T) []T {
	if page < 1 || size < 1 || page-1 > len(items)/size {
		return []T{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end]
}

// ParsePage reads the ?page= query value. Absent or non-numeric input means page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}
