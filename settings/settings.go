// Package settings loads a run configuration from an INI file.
package settings

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"github.com/malusev998/cbu-rates"
)

const (
	SettingsSection = "settings"
	CBUSection      = "cbu"

	DefaultBaseURL = "https://cbu.uz"
	DefaultLocale  = "ru"
)

// Overrides replace values read from the file when set.
type Overrides struct {
	EndDate     string
	DaysToFetch *int
}

// Load reads the configuration from source, which is anything ini.Load
// accepts (a file name, []byte or io.ReadCloser). now is used when no end
// date is configured.
func Load(source any, now time.Time, overrides Overrides) (currency.RunConfig, error) {
	cfg, err := ini.Load(source)
	if err != nil {
		return currency.RunConfig{}, fmt.Errorf("%w: unable to load config file: %v", currency.ErrConfig, err)
	}

	section, err := cfg.GetSection(SettingsSection)
	if err != nil {
		return currency.RunConfig{}, fmt.Errorf("%w: section [%s] not found", currency.ErrConfig, SettingsSection)
	}

	days, err := daysToFetch(section, overrides.DaysToFetch)
	if err != nil {
		return currency.RunConfig{}, err
	}

	currencies, err := splitCurrencies(section.Key("currencies").String())
	if err != nil {
		return currency.RunConfig{}, err
	}

	endDateStr := overrides.EndDate
	if endDateStr == "" {
		endDateStr = section.Key("end_date").String()
	}

	endDate, err := parseEndDate(endDateStr, now)
	if err != nil {
		return currency.RunConfig{}, err
	}

	cbu := cfg.Section(CBUSection)

	return currency.RunConfig{
		DaysToFetch: days,
		Currencies:  currencies,
		EndDate:     endDate,
		BaseURL:     strings.TrimRight(cbu.Key("base_url").MustString(DefaultBaseURL), "/"),
		Locale:      cbu.Key("locale").MustString(DefaultLocale),
	}, nil
}

func daysToFetch(section *ini.Section, override *int) (int, error) {
	var days int

	if override != nil {
		days = *override
	} else {
		if !section.HasKey("days_to_fetch") {
			return 0, fmt.Errorf("%w: days_to_fetch is required", currency.ErrConfig)
		}

		value, err := section.Key("days_to_fetch").Int()
		if err != nil {
			return 0, fmt.Errorf("%w: days_to_fetch must be an integer: %v", currency.ErrConfig, err)
		}

		days = value
	}

	if days < 0 {
		return 0, fmt.Errorf("%w: days_to_fetch must not be negative, got %d", currency.ErrConfig, days)
	}

	return days, nil
}

func splitCurrencies(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: currencies is required", currency.ErrConfig)
	}

	parts := strings.Split(value, ",")
	currencies := make([]string, 0, len(parts))

	for _, part := range parts {
		code := strings.TrimSpace(part)
		if code == "" {
			return nil, fmt.Errorf("%w: currencies contains an empty entry", currency.ErrConfig)
		}

		currencies = append(currencies, code)
	}

	return currencies, nil
}

func parseEndDate(value string, now time.Time) (currency.Date, error) {
	// everything after ';' is a comment
	value, _, _ = strings.Cut(value, ";")
	value = strings.TrimSpace(value)

	if value == "" {
		return currency.DateOf(now), nil
	}

	date, err := currency.ParseDate(value)
	if err != nil {
		return currency.Date{}, fmt.Errorf("%w: end_date must be formatted as YYYY-MM-DD: %v", currency.ErrConfig, err)
	}

	return date, nil
}
