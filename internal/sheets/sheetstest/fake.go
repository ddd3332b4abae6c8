// Package sheetstest provides an in-memory spreadsheet for tests.
package sheetstest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ignite-agency/website/api/internal/sheets"
)

// Fake stores one table per sheet name and understands the A1 references
// produced by sheets.Cell and sheets.Span.
type Fake struct {
	mu     sync.Mutex
	tables map[string][][]string

	AppendErr error
	ReadErr   error
	UpdateErr error

	Appends       int
	Reads         int
	UpdatedRanges []string
}

// New returns an empty spreadsheet.
func New() *Fake {
	return &Fake{tables: make(map[string][][]string)}
}

// Seed appends rows to sheet without counting them as API calls.
func (f *Fake) Seed(sheet string, rows ...[]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		f.tables[sheet] = append(f.tables[sheet], append([]string(nil), row...))
	}
}

// Rows returns a copy of the rows stored for sheet.
func (f *Fake) Rows(sheet string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyRows(f.tables[sheet])
}

// DeleteRow removes the 1-based row n of sheet, shifting later rows up.
func (f *Fake) DeleteRow(sheet string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.tables[sheet]
	if n < 1 || n > len(rows) {
		return
	}
	f.tables[sheet] = append(rows[:n-1], rows[n:]...)
}

func (f *Fake) AppendRow(ctx context.Context, rng string, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Appends++
	if f.AppendErr != nil {
		return f.AppendErr
	}
	sheet := sheets.SheetName(rng)
	f.tables[sheet] = append(f.tables[sheet], append([]string(nil), row...))
	return nil
}

func (f *Fake) ReadRows(ctx context.Context, rng string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reads++
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	return copyRows(f.tables[sheets.SheetName(rng)]), nil
}

func (f *Fake) UpdateRow(ctx context.Context, rng string, row []string) (sheets.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdatedRanges = append(f.UpdatedRanges, rng)
	if f.UpdateErr != nil {
		return sheets.UpdateResult{}, f.UpdateErr
	}

	sheet := sheets.SheetName(rng)
	col, rowNum, err := parseStartCell(rng)
	if err != nil {
		return sheets.UpdateResult{}, err
	}

	table := f.tables[sheet]
	for len(table) < rowNum {
		table = append(table, nil)
	}
	target := table[rowNum-1]
	for len(target) < col+len(row) {
		target = append(target, "")
	}
	copy(target[col:], row)
	table[rowNum-1] = target
	f.tables[sheet] = table

	return sheets.UpdateResult{
		SpreadsheetID:  "fake",
		UpdatedRange:   rng,
		UpdatedRows:    1,
		UpdatedColumns: int64(len(row)),
		UpdatedCells:   int64(len(row)),
	}, nil
}

// parseStartCell returns the zero-based column and one-based row of the
// top-left cell of rng.
func parseStartCell(rng string) (int, int, error) {
	ref := rng
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	if idx := strings.Index(ref, ":"); idx >= 0 {
		ref = ref[:idx]
	}

	i := 0
	col := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A'+1)
		i++
	}
	row, err := strconv.Atoi(ref[i:])
	if col == 0 || err != nil || row < 1 {
		return 0, 0, fmt.Errorf("sheetstest: unsupported cell reference %q", rng)
	}
	return col - 1, row, nil
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
