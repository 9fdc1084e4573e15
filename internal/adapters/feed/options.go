// Package feed polls an external draft feed for picks made by other teams.
package feed

import (
	"net/http"
	"time"

	"github.com/okian/sherrin/pkg/logger"
)

// Option applies a configuration option to the Poller.
type Option func(*Poller)

// WithInterval sets the time between feed polls.
func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithHTTPClient sets a custom HTTP client for feed requests.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Poller) {
		if client != nil {
			p.client = client
		}
	}
}

// WithLogger sets a custom logger for the poller.
func WithLogger(l logger.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}
