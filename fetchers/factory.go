package fetchers

import (
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

type (
	BaseConfig struct {
		URL     string
		Timeout time.Duration
		Client  *http.Client
	}

	CBUConfig struct {
		BaseConfig
		Locale string
	}
)

// NewCBUFetcher builds a fetcher for the Central Bank of Uzbekistan archive.
// A nil Client gets a fresh one limited by Timeout.
func NewCBUFetcher(config CBUConfig) CBUFetcher {
	client := config.Client

	if client == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}

		client = &http.Client{Timeout: timeout}
	}

	return CBUFetcher{
		Client: client,
		URL:    config.URL,
		Locale: config.Locale,
	}
}
