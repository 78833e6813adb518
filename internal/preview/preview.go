// Package preview shows the first rows of the sample loan dataset.
package preview

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"loan-approval/internal/common"

	"github.com/mattn/go-isatty"
)

const (
	stripeOn  = "\x1b[48;5;254m"
	stripeOff = "\x1b[0m"
)

// Table is the header plus at most the requested number of records.
type Table struct {
	Header []string
	Rows   [][]string
}

// Load reads the header and up to maxRows records from a CSV file.
func Load(path string, maxRows int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Read(f, maxRows)
}

// Read is Load over an arbitrary reader.
func Read(r io.Reader, maxRows int) (*Table, error) {
	if maxRows < common.MinPreviewRows || maxRows > common.MaxPreviewRows {
		return nil, fmt.Errorf("preview rows must be between %d and %d, got %d",
			common.MinPreviewRows, common.MaxPreviewRows, maxRows)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset is empty")
		}
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	t := &Table{Header: header}
	for len(t.Rows) < maxRows {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// Render writes t as an aligned table. With striped set, odd rows get a
// shaded background.
func Render(w io.Writer, t *Table, striped bool) error {
	widths := make([]int, len(t.Header))
	measure := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}

	if _, err := fmt.Fprintln(w, formatRow(t.Header, widths)); err != nil {
		return err
	}
	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}
	if _, err := fmt.Fprintln(w, strings.Join(rule, "-+-")); err != nil {
		return err
	}

	for i, row := range t.Rows {
		line := formatRow(row, widths)
		if striped && i%2 == 1 {
			line = stripeOn + line + stripeOff
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(row []string, widths []int) string {
	cells := make([]string, len(widths))
	for i, n := range widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = cell + strings.Repeat(" ", n-utf8.RuneCountInString(cell))
	}
	return strings.Join(cells, " | ")
}

// IsTerminal reports whether f is an interactive terminal, which is when
// striping is worth the escape codes.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
