package currency

import "time"

const (
	URLDateLayout     = "2006-01-02"
	DisplayDateLayout = "02.01.2006"
)

// Date is a calendar day without a time of day or location.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(str string) (Date, error) {
	t, err := time.Parse(URLDateLayout, str)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Time() time.Time {
	return d.t
}

// URLString formats the date the way the archive endpoint expects it.
func (d Date) URLString() string {
	return d.t.Format(URLDateLayout)
}

// DisplayString formats the date for the report.
func (d Date) DisplayString() string {
	return d.t.Format(DisplayDateLayout)
}

func (d Date) String() string {
	return d.URLString()
}

// NewDateRange returns every day from end-days to end, inclusive and ascending.
func NewDateRange(end Date, days int) []Date {
	if days < 0 {
		return []Date{}
	}

	start := end.AddDays(-days)
	dates := make([]Date, 0, days+1)

	for i := 0; i <= days; i++ {
		dates = append(dates, start.AddDays(i))
	}

	return dates
}
