package fetchers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/malusev998/cbu-rates"
)

const CBUURL = "https://cbu.uz"

var (
	ErrStatus    = errors.New("unexpected status code")
	ErrParse     = errors.New("malformed response")
	ErrTransport = errors.New("request failed")
)

// StatusError is returned when the archive answers with anything but 200.
type StatusError struct {
	Currency   string
	Date       currency.Date
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s on %s: %v %d", e.Currency, e.Date.URLString(), ErrStatus, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}

func newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")

	return req, nil
}
