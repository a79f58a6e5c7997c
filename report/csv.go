package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/malusev998/cbu-rates"
)

type CSVWriter struct {
	Comma rune
}

func (w CSVWriter) Extension() string {
	return string(CSV)
}

func (w CSVWriter) Write(path string, table currency.Table) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("%w: %v", ErrWrite, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if w.Comma != 0 {
		writer.Comma = w.Comma
	}

	if err := writer.Write(currency.Columns); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	for _, record := range table {
		row := []string{
			record.Date.DisplayString(),
			record.RateString(),
			record.Currency,
			strconv.Itoa(record.BaseNominal),
			record.BaseCurrency,
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return nil
}
