package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name, ct string
		want     Format
		ok       bool
	}{
		{"march.csv", "", FormatCSV, true},
		{"MARCH.CSV", "application/octet-stream", FormatCSV, true},
		{"march.xlsx", "", FormatXLSX, true},
		{"upload", "text/csv; charset=utf-8", FormatCSV, true},
		{"upload", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatXLSX, true},
		{"report.pdf", "application/pdf", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name+tc.ct, func(t *testing.T) {
			got, err := DetectFormat(tc.name, tc.ct)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCSVStatement(t *testing.T) {
	st, err := NewIngestor(nil).Parse("s.csv", "text/csv", strings.NewReader("amount,description\n4.5,Starbucks\nx,gym\n"))
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, st.Format)
	assert.Len(t, st.Expenses, 2)
	assert.Equal(t, 1, st.Invalid)
	assert.Equal(t, "Dining Out", st.Expenses[0].Category)
}

func TestParseXLSXStatement(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Amount", "Description", "Category"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"12.50", "Lyft", ""}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"30", "power", "Bills"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	st, err := NewIngestor(nil).Parse("s.xlsx", "", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, st.Expenses, 2)
	assert.Equal(t, 12.5, st.Expenses[0].Amount)
	assert.Equal(t, "Transport", st.Expenses[0].Category)
	assert.Equal(t, "Bills", st.Expenses[1].Category)
	assert.Equal(t, 0, st.Invalid)
}

func TestParseXLSXFormattedAmounts(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Amount", "Description"}))
	require.NoError(t, f.SetCellValue(sheet, "A2", 1234.5))
	require.NoError(t, f.SetCellValue(sheet, "B2", "rent"))
	require.NoError(t, f.SetCellValue(sheet, "A3", 12.5))
	require.NoError(t, f.SetCellValue(sheet, "B3", "uber"))

	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "A2", "A2", thousands))
	currency, err := f.NewStyle(&excelize.Style{NumFmt: 7})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "A3", "A3", currency))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	st, err := NewIngestor(nil).Parse("s.xlsx", "", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, st.Expenses, 2)
	assert.Equal(t, 1234.5, st.Expenses[0].Amount)
	assert.Equal(t, 12.5, st.Expenses[1].Amount)
	assert.Equal(t, 0, st.Invalid)
}

func TestParseXLSXGarbage(t *testing.T) {
	_, err := NewIngestor(nil).Parse("s.xlsx", "", strings.NewReader("not a zip"))
	assert.Error(t, err)
}
