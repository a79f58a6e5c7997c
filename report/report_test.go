package report_test

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/malusev998/cbu-rates"
	"github.com/malusev998/cbu-rates/report"
)

func table() currency.Table {
	return currency.Table{
		currency.NewRateRecord("USD", currency.NewDate(2024, time.January, 1), decimal.RequireFromString("12300.50")),
		currency.NewEmptyRateRecord("USD", currency.NewDate(2024, time.January, 2)),
	}
}

func TestConvertToFormatFromString(t *testing.T) {
	assert := require.New(t)
	values := []struct {
		value    string
		expected report.Format
		hasErr   bool
	}{
		{"xlsx", report.XLSX, false},
		{"XLSX", report.XLSX, false},
		{"", report.XLSX, false},
		{"csv", report.CSV, false},
		{"pdf", report.Format(""), true},
	}

	for _, value := range values {
		format, err := report.ConvertToFormatFromString(value.value)
		assert.Equal(value.expected, format)
		assert.Equal(value.hasErr, err != nil)
	}
}

func TestNewWriter(t *testing.T) {
	assert := require.New(t)

	writer, err := report.NewWriter(report.XLSX)
	assert.NoError(err)
	assert.Equal("xlsx", writer.Extension())

	writer, err = report.NewWriter(report.CSV)
	assert.NoError(err)
	assert.Equal("csv", writer.Extension())

	writer, err = report.NewWriter(report.Format("pdf"))
	assert.Nil(writer)
	assert.True(errors.Is(err, report.ErrFormatNotFound))
}

func TestFileName(t *testing.T) {
	assert := require.New(t)
	name := report.FileName(currency.NewDate(2024, time.January, 1), currency.NewDate(2024, time.January, 2), "xlsx")

	assert.Equal("currency_data_2024-01-01_to_2024-01-02.xlsx", name)
}

func TestCheckWritable(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	dir := t.TempDir()

	asserts.NoError(report.CheckWritable(dir))

	entries, err := os.ReadDir(dir)
	asserts.NoError(err)
	asserts.Empty(entries)

	err = report.CheckWritable(filepath.Join(dir, "missing", "dir"))
	asserts.True(errors.Is(err, report.ErrWrite))
}

func TestXLSXWriter_Write(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	// existing files are overwritten
	asserts.NoError(os.WriteFile(path, []byte("stale"), 0o600))
	asserts.NoError(report.XLSXWriter{}.Write(path, table()))

	f, err := excelize.OpenFile(path)
	asserts.NoError(err)
	defer f.Close()

	rows, err := f.GetRows(report.DefaultSheet)
	asserts.NoError(err)
	asserts.Len(rows, 3)
	asserts.Equal(currency.Columns, rows[0])

	asserts.Equal("01.01.2024", rows[1][0])
	asserts.Equal("12300.50", rows[1][1])
	asserts.Equal([]string{"USD", "1", "UZS"}, rows[1][2:])

	asserts.Equal("02.01.2024", rows[2][0])
	asserts.Equal("", rows[2][1])
	asserts.Equal([]string{"USD", "1", "UZS"}, rows[2][2:])
}

func TestXLSXWriter_Write_Precision(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	date := currency.NewDate(2024, time.January, 1)
	rates := []string{"12300.50", "0.0075", "10", "13500.1", "12300.55"}

	records := make(currency.Table, 0, len(rates))
	for _, rate := range rates {
		records = append(records, currency.NewRateRecord("USD", date, decimal.RequireFromString(rate)))
	}

	asserts.NoError(report.XLSXWriter{SheetName: "Rates"}.Write(path, records))

	f, err := excelize.OpenFile(path)
	asserts.NoError(err)
	defer f.Close()

	for i, rate := range rates {
		cell, _ := excelize.CoordinatesToCellName(2, i+2)

		value, err := f.GetCellValue("Rates", cell)
		asserts.NoError(err)
		asserts.Equal(rate, value)

		cellType, err := f.GetCellType("Rates", cell)
		asserts.NoError(err)
		asserts.NotEqual(excelize.CellTypeSharedString, cellType)
	}
}

func TestXLSXWriter_Write_InvalidSheetName(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "report.xlsx")
	err := report.XLSXWriter{SheetName: "Rates[2024]"}.Write(path, table())

	require.True(t, errors.Is(err, report.ErrWrite))
}

func TestXLSXWriter_Write_Unwritable(t *testing.T) {
	t.Parallel()
	err := report.XLSXWriter{}.Write(filepath.Join(t.TempDir(), "missing", "report.xlsx"), table())

	require.True(t, errors.Is(err, report.ErrWrite))
}

func TestCSVWriter_Write(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	path := filepath.Join(t.TempDir(), "report.csv")

	asserts.NoError(report.CSVWriter{}.Write(path, table()))

	file, err := os.Open(path)
	asserts.NoError(err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	asserts.NoError(err)
	asserts.Equal([][]string{
		{"Date", "Rate", "Currency", "BaseNominal", "BaseCurrency"},
		{"01.01.2024", "12300.50", "USD", "1", "UZS"},
		{"02.01.2024", "", "USD", "1", "UZS"},
	}, rows)

	err = report.CSVWriter{}.Write(filepath.Join(t.TempDir(), "missing", "report.csv"), table())
	asserts.True(errors.Is(err, report.ErrWrite))
}
