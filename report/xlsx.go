package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/malusev998/cbu-rates"
)

const DefaultSheet = "Sheet1"

type XLSXWriter struct {
	SheetName string
}

func (w XLSXWriter) Extension() string {
	return string(XLSX)
}

func (w XLSXWriter) Write(path string, table currency.Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("%w: %v", ErrWrite, closeErr)
		}
	}()

	sheet := DefaultSheet
	if w.SheetName != "" && w.SheetName != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, w.SheetName); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}

		sheet = w.SheetName
	}

	header := make([]interface{}, 0, len(currency.Columns))
	for _, column := range currency.Columns {
		header = append(header, column)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	styles := rateStyles{file: f, ids: make(map[int]int)}

	for i, record := range table {
		if err := writeRow(f, sheet, i+2, record, styles); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return nil
}

// rateStyles holds one number format per published precision.
type rateStyles struct {
	file *excelize.File
	ids  map[int]int
}

func (s rateStyles) get(precision int) (int, error) {
	if id, ok := s.ids[precision]; ok {
		return id, nil
	}

	numFmt := "0"
	if precision > 0 {
		numFmt += "." + strings.Repeat("0", precision)
	}

	id, err := s.file.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return 0, err
	}

	s.ids[precision] = id

	return id, nil
}

func writeRow(f *excelize.File, sheet string, row int, record currency.RateRecord, styles rateStyles) error {
	cell := func(col int) string {
		name, _ := excelize.CoordinatesToCellName(col, row)
		return name
	}

	if err := f.SetCellStr(sheet, cell(1), record.Date.DisplayString()); err != nil {
		return err
	}

	if record.Rate.Valid {
		rate, _ := record.Rate.Decimal.Float64()
		if err := f.SetCellFloat(sheet, cell(2), rate, record.RatePrecision(), 64); err != nil {
			return err
		}

		style, err := styles.get(record.RatePrecision())
		if err != nil {
			return err
		}

		if err := f.SetCellStyle(sheet, cell(2), cell(2), style); err != nil {
			return err
		}
	}

	if err := f.SetCellStr(sheet, cell(3), record.Currency); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, cell(4), record.BaseNominal); err != nil {
		return err
	}

	return f.SetCellStr(sheet, cell(5), record.BaseCurrency)
}
