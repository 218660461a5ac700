// Package cli renders application results for the terminal.
package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/tabwriter"
)

// Column renders one table column of records of type R.
type Column[R any] struct {
	Header string
	Value  func(R) string
}

// Labeler resolves a foreign key against the lookup list loaded from path.
type Labeler func(path, id string) string

// Rows returns the headers and plain-text cells of items, as used by the
// table and by the spreadsheet export.
func Rows[R any](items []R, cols []Column[R]) ([]string, [][]string) {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = c.Value(item)
		}
		rows[i] = row
	}
	return headers, rows
}

var ansiSequence = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// PlainRows is Rows with terminal colors removed.
func PlainRows[R any](items []R, cols []Column[R]) ([]string, [][]string) {
	headers, rows := Rows(items, cols)
	for _, row := range rows {
		for i, cell := range row {
			row[i] = ansiSequence.ReplaceAllString(cell, "")
		}
	}
	return headers, rows
}

// RenderTable writes items as an aligned table, or empty when there are none.
func RenderTable[R any](out io.Writer, items []R, cols []Column[R], empty string) {
	if len(items) == 0 {
		fmt.Fprintln(out, empty)
		return
	}
	headers, rows := Rows(items, cols)
	writeTable(out, headers, rows)
}

func writeTable(out io.Writer, headers []string, rows [][]string) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	underline := make([]string, len(headers))
	for i, h := range headers {
		underline[i] = strings.Repeat("-", len([]rune(h)))
	}
	fmt.Fprintln(w, strings.Join(underline, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
