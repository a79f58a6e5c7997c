package cmd

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "CBU_RATES"

type Config struct {
	Ctx context.Context
	// Now defaults to time.Now.
	Now func() time.Time
	// Client overrides the HTTP client used by the fetcher.
	Client *http.Client
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewRootCommand wires the command tree to its own viper instance so flags and
// CBU_RATES_* environment variables never leak between invocations.
func NewRootCommand(config *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:          "cbu-rates",
		Short:        "Central Bank of Uzbekistan exchange rate downloader",
		Version:      "v1.0.0",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Debug flag")
	rootCmd.PersistentFlags().String("config", "./config.ini", "Path to config file")
	_ = v.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(fetch(config, v))

	return rootCmd
}

func Execute(config *Config) error {
	ctx := config.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	return NewRootCommand(config).ExecuteContext(ctx)
}

func configPath(v *viper.Viper) string {
	absolutePath, err := filepath.Abs(v.GetString("config"))
	if err != nil {
		return v.GetString("config")
	}

	return absolutePath
}
