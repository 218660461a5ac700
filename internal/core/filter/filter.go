// Package filter implements the client-side search box of the list pages.
// This is part of the Functional Core - no I/O, only pure functions.
package filter

import "strings"

// Fields extracts the indexed text fields of a record.
type Fields[T any] func(item T) []string

// Apply returns the items whose indexed fields contain term as a
// case-insensitive substring, preserving order. An empty or blank term
// returns every item.
func Apply[T any](items []T, term string, fields Fields[T]) []T {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return items
	}

	matched := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(fields(item), needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

// Matches reports whether any value contains the already lower-cased needle.
func Matches(values []string, needle string) bool {
	for _, v := range values {
		if v != "" && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
