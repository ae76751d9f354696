package present

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the table with an unnamed index column numbered from 1
// and one column per config label:
//
//	,"(0, 0)","(1, 0)",...
//	1,0,0,1,...
func WriteCSV(w io.Writer, t *Table) (retErr error) {
	csvWriter := csv.NewWriter(w)
	defer func() {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil && retErr == nil {
			retErr = fmt.Errorf("present: flush csv: %w", err)
		}
	}()

	header := append([]string{""}, t.Columns...)
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("present: write csv header: %w", err)
	}

	for i, row := range t.Rows {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.Itoa(i+1))
		for _, bit := range row {
			record = append(record, strconv.Itoa(bit))
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("present: write csv row %d: %w", i+1, err)
		}
	}
	return nil
}
