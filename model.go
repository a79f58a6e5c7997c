package currency

import (
	"github.com/shopspring/decimal"
)

const (
	BaseCurrency = "UZS"
	BaseNominal  = 1
)

// Columns is the fixed column order of a report.
var Columns = []string{"Date", "Rate", "Currency", "BaseNominal", "BaseCurrency"}

type (
	RunConfig struct {
		DaysToFetch int
		Currencies  []string
		EndDate     Date
		BaseURL     string
		Locale      string
	}

	RateRecord struct {
		Date         Date
		Rate         decimal.NullDecimal
		Currency     string
		BaseNominal  int
		BaseCurrency string
	}

	Table []RateRecord
)

func (c RunConfig) StartDate() Date {
	return c.EndDate.AddDays(-c.DaysToFetch)
}

func (c RunConfig) DateRange() []Date {
	return NewDateRange(c.EndDate, c.DaysToFetch)
}

func NewRateRecord(currency string, date Date, rate decimal.Decimal) RateRecord {
	return RateRecord{
		Date:         date,
		Rate:         decimal.NewNullDecimal(rate),
		Currency:     currency,
		BaseNominal:  BaseNominal,
		BaseCurrency: BaseCurrency,
	}
}

// NewEmptyRateRecord is the placeholder for a day with no published rate.
func NewEmptyRateRecord(currency string, date Date) RateRecord {
	return RateRecord{
		Date:         date,
		Currency:     currency,
		BaseNominal:  BaseNominal,
		BaseCurrency: BaseCurrency,
	}
}

// RatePrecision is the number of fractional digits the rate was published with.
func (r RateRecord) RatePrecision() int {
	if !r.Rate.Valid || r.Rate.Decimal.Exponent() >= 0 {
		return 0
	}

	return int(-r.Rate.Decimal.Exponent())
}

// RateString renders the rate with its published precision, or "" when absent.
func (r RateRecord) RateString() string {
	if !r.Rate.Valid {
		return ""
	}

	return r.Rate.Decimal.StringFixed(int32(r.RatePrecision()))
}
