package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/malusev998/cbu-rates/fetchers"
	"github.com/malusev998/cbu-rates/report"
	"github.com/malusev998/cbu-rates/services"
	"github.com/malusev998/cbu-rates/settings"
)

func fetchCobraCommand(config *Config, v *viper.Viper) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd.OutOrStdout(), v.GetBool("debug")).
			With().
			Str("run_id", uuid.NewString()).
			Logger()

		now := time.Now
		if config.Now != nil {
			now = config.Now
		}

		overrides := settings.Overrides{EndDate: v.GetString("end-date")}
		if v.IsSet("days") {
			days := v.GetInt("days")
			overrides.DaysToFetch = &days
		}

		path := configPath(v)
		runConfig, err := settings.Load(path, now(), overrides)
		if err != nil {
			return err
		}

		logger.Debug().
			Str("config", path).
			Int("days_to_fetch", runConfig.DaysToFetch).
			Strs("currencies", runConfig.Currencies).
			Str("start_date", runConfig.StartDate().URLString()).
			Str("end_date", runConfig.EndDate.URLString()).
			Msg("configuration loaded")

		format, err := report.ConvertToFormatFromString(v.GetString("format"))
		if err != nil {
			return err
		}

		writer, err := report.NewWriter(format)
		if err != nil {
			return err
		}

		service := services.Service{
			Fetcher: fetchers.NewCBUFetcher(fetchers.CBUConfig{
				BaseConfig: fetchers.BaseConfig{
					URL:     runConfig.BaseURL,
					Timeout: v.GetDuration("timeout"),
					Client:  config.Client,
				},
				Locale: runConfig.Locale,
			}),
			Writer: writer,
			OutDir: v.GetString("out-dir"),
			Logger: logger,
		}

		filename, err := service.Save(cmd.Context(), runConfig)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Data saved to %s\n", filename)

		return nil
	}
}

func fetch(config *Config, v *viper.Viper) *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download rates for the configured currencies and date range into a spreadsheet",
		Args:  cobra.NoArgs,
	}

	fetchCmd.RunE = fetchCobraCommand(config, v)
	fetchCmd.Flags().String("out-dir", ".", "Directory the report is written to")
	fetchCmd.Flags().String("format", string(report.XLSX), "Report format: xlsx or csv")
	fetchCmd.Flags().Duration("timeout", fetchers.DefaultTimeout, "Timeout of a single request")
	fetchCmd.Flags().String("end-date", "", "Last day to fetch (YYYY-MM-DD), overrides end_date")
	fetchCmd.Flags().Int("days", 0, "Number of days before the end date to fetch, overrides days_to_fetch")
	_ = v.BindPFlags(fetchCmd.Flags())

	return fetchCmd
}
