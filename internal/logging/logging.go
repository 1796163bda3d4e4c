package logging

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	loggerContextKey = "_log"
	requestIDHeader  = "X-Request-Id"
)

// Setup configures the global zerolog logger from level and format names.
// Unknown levels fall back to info; format "pretty" writes to a console writer.
func Setup(level, format string) {
	Configure(os.Stderr, level, format)
}

// Configure is Setup with an explicit writer.
func Configure(out io.Writer, level, format string) {
	zerolog.TimeFieldFormat = time.RFC3339
	if format == "pretty" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// FromContext returns the request logger stored by Middleware, or the global logger.
func FromContext(c *gin.Context) zerolog.Logger {
	if c != nil {
		if value, ok := c.Get(loggerContextKey); ok {
			if logger, ok := value.(zerolog.Logger); ok {
				return logger
			}
		}
	}
	return log.Logger
}

// Middleware tags each request with an id and logs the outcome.
// 4xx responses log at warn, 5xx at error, everything else at debug.
func Middleware(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		id := xid.New().String()
		c.Writer.Header().Set(requestIDHeader, id)

		reqLogger := log.Logger.With().Str("request_id", id).Logger()
		c.Set(loggerContextKey, reqLogger)

		c.Next()

		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			return
		}

		status := c.Writer.Status()
		msg := "request"
		if len(c.Errors) > 0 {
			msg = c.Errors.String()
		}

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = reqLogger.Error()
		case status >= 400:
			event = reqLogger.Warn()
		default:
			event = reqLogger.Debug()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg(msg)
	}
}
