package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Options controls how the process logger is assembled.
type Options struct {
	// Development switches to a text handler at debug level.
	Development bool
	// SentryDSN enables forwarding of error-level records to Sentry.
	SentryDSN string
}

// New builds the process logger writing to stdout and installs it as the slog default.
func New(opts Options) *slog.Logger {
	l := NewWithWriter(os.Stdout, opts)
	slog.SetDefault(l)
	return l
}

// NewWithWriter builds a logger writing to w. Development mode uses a text
// handler at debug level, otherwise JSON at info level. When a Sentry DSN is
// configured, error records are fanned out to Sentry as well.
func NewWithWriter(w io.Writer, opts Options) *slog.Logger {
	var handlers []slog.Handler

	if opts.Development {
		handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			TracesSampleRate: 1.0,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// Flush waits up to timeout for buffered Sentry events to be delivered. Call
// it before exiting the process; it is a no-op when Sentry is not configured.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
