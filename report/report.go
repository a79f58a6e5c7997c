package report

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/malusev998/cbu-rates"
)

type Format string

const (
	XLSX Format = "xlsx"
	CSV  Format = "csv"
)

var (
	ErrWrite          = errors.New("report is not writable")
	ErrFormatNotFound = errors.New("report format is not found")
)

func ConvertToFormatFromString(str string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "", "xlsx":
		return XLSX, nil
	case "csv":
		return CSV, nil
	}

	return "", fmt.Errorf("value %s is not valid Format", str)
}

func NewWriter(format Format) (currency.ReportWriter, error) {
	switch format {
	case XLSX:
		return XLSXWriter{}, nil
	case CSV:
		return CSVWriter{}, nil
	}

	return nil, ErrFormatNotFound
}

// FileName derives the report name from the queried range only, so two runs
// over the same range write the same file.
func FileName(start, end currency.Date, extension string) string {
	return fmt.Sprintf("currency_data_%s_to_%s.%s", start.URLString(), end.URLString(), extension)
}

// CheckWritable fails when files cannot be created in dir.
func CheckWritable(dir string) error {
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, ".cbu-rates-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	name := f.Name()
	_ = f.Close()

	if err := os.Remove(name); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return nil
}
