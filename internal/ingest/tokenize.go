package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingAmountColumn = errors.New("statement header has no amount column")
	ErrEmptyStatement      = errors.New("statement has no header row")
	ErrUnsupportedFormat   = errors.New("unsupported statement format")
)

// rowsFromRecords turns raw records into header-keyed rows. The first
// non-blank record is the header. Blank records are skipped, short records
// only set the columns they have, and extra cells are ignored.
func rowsFromRecords(records [][]string) ([]Row, error) {
	var header []string
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		if header == nil {
			header = normalizeHeader(rec)
			if !contains(header, ColumnAmount) {
				return nil, fmt.Errorf("%w (found %s)", ErrMissingAmountColumn, strings.Join(header, ", "))
			}
			continue
		}
		row := make(Row, len(header))
		for i, v := range rec {
			if i >= len(header) {
				break
			}
			if header[i] == "" {
				continue
			}
			row[header[i]] = v
		}
		rows = append(rows, row)
	}
	if header == nil {
		return nil, ErrEmptyStatement
	}
	return rows, nil
}

func normalizeHeader(rec []string) []string {
	out := make([]string, len(rec))
	for i, h := range rec {
		h = strings.TrimPrefix(h, "\ufeff")
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

// isBlank reports whether a record is an empty line. A record of empty
// cells separated by delimiters is still data.
func isBlank(rec []string) bool {
	return len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
