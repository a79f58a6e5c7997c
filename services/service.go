package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/malusev998/cbu-rates"
	"github.com/malusev998/cbu-rates/fetchers"
	"github.com/malusev998/cbu-rates/report"
)

var ErrNoCurrencies = errors.New("no currencies to fetch")

type (
	// Stats summarises a single collection run.
	Stats struct {
		Pairs        int
		Rows         int
		Placeholders int
		Failures     int
	}

	Service struct {
		Fetcher currency.Fetcher
		Writer  currency.ReportWriter
		OutDir  string
		Logger  zerolog.Logger
	}
)

// Collect queries every currency for every day of the configured range, one
// request at a time. Failed pairs are logged and skipped; only cancellation of
// ctx stops the run early.
func (s Service) Collect(ctx context.Context, config currency.RunConfig) (currency.Table, Stats, error) {
	var stats Stats

	if len(config.Currencies) == 0 {
		return nil, stats, ErrNoCurrencies
	}

	dates := config.DateRange()
	table := make(currency.Table, 0, len(config.Currencies)*len(dates))

	for _, code := range config.Currencies {
		s.Logger.Info().Str("currency", code).Msg("checking currency")

		for _, date := range dates {
			if err := ctx.Err(); err != nil {
				return table, stats, err
			}

			s.Logger.Info().Str("currency", code).Str("date", date.DisplayString()).Msg("fetching data")
			stats.Pairs++

			records, err := s.Fetcher.Fetch(ctx, code, date)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return table, stats, ctxErr
				}

				stats.Failures++
				s.logFailure(code, date, err)

				continue
			}

			for _, record := range records {
				if !record.Rate.Valid {
					stats.Placeholders++
				}
			}

			stats.Rows += len(records)
			table = append(table, records...)
		}
	}

	return table, stats, nil
}

func (s Service) logFailure(code string, date currency.Date, err error) {
	event := s.Logger.Warn().
		Str("currency", code).
		Str("date", date.URLString())

	var statusErr *fetchers.StatusError
	if errors.As(err, &statusErr) {
		event = event.Int("status", statusErr.StatusCode)
	}

	event.Err(err).Msg("failed to retrieve data")
}

// Save collects the rates and writes them into OutDir. The destination is
// checked before the first request so that an unwritable directory does not
// waste a whole run.
func (s Service) Save(ctx context.Context, config currency.RunConfig) (string, error) {
	if s.Writer == nil {
		return "", report.ErrFormatNotFound
	}

	if err := report.CheckWritable(s.OutDir); err != nil {
		return "", err
	}

	table, stats, err := s.Collect(ctx, config)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.OutDir, report.FileName(config.StartDate(), config.EndDate, s.Writer.Extension()))

	if err := s.Writer.Write(path, table); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	s.Logger.Info().
		Str("file", path).
		Int("pairs", stats.Pairs).
		Int("rows", stats.Rows).
		Int("empty", stats.Placeholders).
		Int("failed", stats.Failures).
		Msg("data saved")

	return path, nil
}
