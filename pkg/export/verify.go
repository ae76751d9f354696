package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/dd0wney/regnet-monotone/pkg/present"
)

// ReadCSV loads a CSV written by present.WriteCSV, compressed or not. It
// returns the config column labels and the bit rows without the index
// column.
func ReadCSV(path string) ([]string, [][]int, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("export: open %s: %w", path, err)
	}
	defer ra.Close()

	var r io.Reader = io.NewSectionReader(ra, 0, int64(ra.Len()))
	if strings.HasSuffix(path, SnappySuffix) {
		r = snappy.NewReader(r)
	}

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("export: parse %s: %w", path, err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, nil, fmt.Errorf("export: %s has no header", path)
	}

	columns := records[0][1:]
	rows := make([][]int, 0, len(records)-1)
	for i, rec := range records[1:] {
		row := make([]int, len(rec)-1)
		for j, cell := range rec[1:] {
			bit, err := strconv.Atoi(cell)
			if err != nil || (bit != 0 && bit != 1) {
				return nil, nil, fmt.Errorf("export: %s row %d column %d: invalid bit %q", path, i+1, j+1, cell)
			}
			row[j] = bit
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}

// Verify checks that the export at path holds exactly the table's columns
// and rows, in order.
func Verify(path string, t *present.Table) error {
	columns, rows, err := ReadCSV(path)
	if err != nil {
		return err
	}
	if !slices.Equal(columns, t.Columns) {
		return fmt.Errorf("%w: columns %v, want %v", ErrMismatch, columns, t.Columns)
	}
	if len(rows) != len(t.Rows) {
		return fmt.Errorf("%w: %d rows, want %d", ErrMismatch, len(rows), len(t.Rows))
	}
	for i := range rows {
		if !slices.Equal(rows[i], t.Rows[i]) {
			return fmt.Errorf("%w: row %d is %v, want %v", ErrMismatch, i+1, rows[i], t.Rows[i])
		}
	}
	return nil
}
