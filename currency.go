package currency

import (
	"context"
	"errors"
)

var ErrConfig = errors.New("invalid configuration")

type (
	Fetcher interface {
		Fetch(ctx context.Context, currency string, date Date) ([]RateRecord, error)
	}

	ReportWriter interface {
		Write(path string, table Table) error
		Extension() string
	}

	Service interface {
		Save(ctx context.Context, config RunConfig) (string, error)
	}
)
