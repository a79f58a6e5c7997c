package fetchers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/malusev998/cbu-rates"
)

const (
	archivePath   = "arkhiv-kursov-valyut/json"
	defaultLocale = "ru"

	// MaxResponseSize caps the body read from the archive.
	MaxResponseSize = 1 << 20
)

type CBUFetcher struct {
	Client *http.Client
	URL    string
	Locale string
}

// ArchiveURL returns the endpoint holding the rates of code for the given day.
func (f CBUFetcher) ArchiveURL(code string, date currency.Date) string {
	base := f.URL
	if base == "" {
		base = CBUURL
	}

	locale := f.Locale
	if locale == "" {
		locale = defaultLocale
	}

	return fmt.Sprintf("%s/%s/%s/%s/%s/",
		strings.TrimRight(base, "/"),
		locale,
		archivePath,
		url.PathEscape(code),
		date.URLString(),
	)
}

// Fetch issues a single request for code on date. An empty answer yields one
// record without a rate. Cancellation of ctx is returned as is, every other
// failure wraps ErrStatus, ErrParse or ErrTransport.
func (f CBUFetcher) Fetch(ctx context.Context, code string, date currency.Date) ([]currency.RateRecord, error) {
	req, err := newRequest(ctx, f.ArchiveURL(code, date))
	if err != nil {
		return nil, err
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, fmt.Errorf("%w: %s on %s: %v", ErrTransport, code, date.URLString(), err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{Currency: code, Date: date, StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrTransport, err)
	}

	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("%s on %s: %w: body exceeds %d bytes", code, date.URLString(), ErrParse, MaxResponseSize)
	}

	rates, err := parseRates(body)
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %w", code, date.URLString(), err)
	}

	if len(rates) == 0 {
		return []currency.RateRecord{currency.NewEmptyRateRecord(code, date)}, nil
	}

	records := make([]currency.RateRecord, 0, len(rates))
	for _, rate := range rates {
		records = append(records, currency.NewRateRecord(code, date, rate))
	}

	return records, nil
}

func parseRates(body []byte) ([]decimal.Decimal, error) {
	var items []json.RawMessage

	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array: %v", ErrParse, err)
	}

	if items == nil {
		return nil, fmt.Errorf("%w: expected a JSON array, got null", ErrParse)
	}

	rates := make([]decimal.Decimal, 0, len(items))

	for i, item := range items {
		var fields map[string]json.RawMessage

		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrParse, i)
		}

		raw, ok := fields["Rate"]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("%w: element %d has no Rate", ErrParse, i)
		}

		var rate decimal.Decimal
		if err := rate.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrParse, i, err)
		}

		rates = append(rates, rate)
	}

	return rates, nil
}
