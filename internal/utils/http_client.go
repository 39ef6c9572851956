package utils

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
)

// HTTPClient is a resty client preset for a JSON peer on a fixed base URL.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client that sends every request to baseURL with a
// JSON Accept header and gives up after timeout. resty's own diagnostics are
// written to log. Requests are never retried: the peer may not tolerate a
// command being delivered twice.
func NewHTTPClient(baseURL string, timeout time.Duration, log *logger.Logger) *HTTPClient {
	if log == nil {
		log = logger.Nop()
	}

	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(restyLogger{log})
	if timeout > 0 {
		c.SetTimeout(timeout)
	}

	return &HTTPClient{Client: c}
}

// restyLogger adapts *logger.Logger to resty.Logger.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug().Str("component", "resty").Msg(fmt.Sprintf(format, v...))
}
