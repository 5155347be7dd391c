package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"budgetplanner/internal/core"
)

// Format identifies a statement file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Statement is a parsed upload waiting to be merged into a ledger.
type Statement struct {
	Filename string
	Format   Format
	Expenses []core.Expense
	Invalid  int
}

// DetectFormat picks a tokenizer from the file extension, falling back to
// the declared content type.
func DetectFormat(filename, contentType string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	ct := strings.ToLower(contentType)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "text/csv", "application/csv", "text/plain":
		return FormatCSV, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

// Tokenize reads rows from r using the tokenizer for format.
func Tokenize(format Format, r io.Reader) ([]Row, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Parse tokenizes and ingests a whole statement. Any tokenizer error aborts
// the statement; per-row amount problems only increase Invalid.
func (i *Ingestor) Parse(filename, contentType string, r io.Reader) (Statement, error) {
	format, err := DetectFormat(filename, contentType)
	if err != nil {
		return Statement{}, err
	}
	rows, err := Tokenize(format, r)
	if err != nil {
		return Statement{}, err
	}
	expenses := i.Ingest(rows)
	return Statement{
		Filename: filename,
		Format:   format,
		Expenses: expenses,
		Invalid:  CountInvalid(expenses),
	}, nil
}
