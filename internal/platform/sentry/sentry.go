// Package sentry wires crash/error observability into the HTTP server and
// the background pipeline runner.
package sentry

import (
	"time"

	"github.com/gin-gonic/gin"
	sentrygo "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/yamada-labo/prospectline/internal/config"
)

// Init configures the global Sentry client. A blank DSN disables reporting
// entirely rather than erroring, since Sentry is optional observability,
// not a startup dependency.
func Init(cfg config.SentryConfig, environment string) error {
	if cfg.DSN == "" {
		return nil
	}

	return sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      environment,
		AttachStacktrace: true,
		TracesSampleRate: 0.1,
	})
}

// Middleware returns a gin handler that reports panics and 5xx responses
// to Sentry. Safe to register even when Init was a no-op.
func Middleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// Recover captures a panic recovered outside of an HTTP request (the
// background pipeline runner) and flushes before returning.
func Recover(recovered interface{}) {
	sentrygo.CurrentHub().Recover(recovered)
	sentrygo.Flush(2 * time.Second)
}

// Flush blocks until buffered events are sent or the timeout elapses.
// Call on graceful shutdown.
func Flush(timeout time.Duration) bool {
	return sentrygo.Flush(timeout)
}
