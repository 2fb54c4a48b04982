package http

import (
	"redfin-etl/pkg/log"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called immediately after receiving an error response (error HTTP status)
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)

	// LogRequestRetry is called when backoff exists and a retry attempt is about to be made
	LogRequestRetry(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error, retryCount, maxRetries int)
}

// ZapLogger is an HTTPLogger backed by the application logger. Request and
// success lines go to debug so large payloads stay out of production logs.
type ZapLogger struct{}

var _ HTTPLogger = (*ZapLogger)(nil)

func NewZapLogger() *ZapLogger {
	return &ZapLogger{}
}

func (l *ZapLogger) LogRequest(method, url string, headers map[string]string, body string) {
	log.Debugw("http request",
		"method", method,
		"url", url,
	)
}

func (l *ZapLogger) LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64) {
	log.Debugw("http response",
		"method", method,
		"url", url,
		"status", httpStatus,
		"latency_ms", latency,
	)
}

func (l *ZapLogger) LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warnw("http request failed",
		"method", method,
		"url", url,
		"status", httpStatus,
		"latency_ms", latency,
		"error", err,
	)
}

func (l *ZapLogger) LogRequestRetry(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error, retryCount, maxRetries int) {
	log.Warnw("http request retry",
		"method", method,
		"url", url,
		"status", httpStatus,
		"error", err,
		"retry", retryCount,
		"max_retries", maxRetries,
	)
}
