package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV tokenizes a comma-separated statement. Quoting follows RFC 4180;
// a malformed line aborts the whole file with the line and column.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rowsFromRecords(records)
}
