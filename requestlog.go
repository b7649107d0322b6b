package trellis

import (
	"time"

	"go.uber.org/zap"
)

// LogRequests returns a middleware recording one zap entry per
// request.
func LogRequests() Middleware {
	return func(next Handler) Handler {
		return func(c *Context) error {
			start := time.Now()
			path := c.request.Path()
			query := c.request.RawQuery()
			method := c.request.Method()

			err := next(c)

			latency := time.Since(start)
			if latency > time.Minute {
				latency = latency - latency%time.Second
			}
			Log.Info("request record",
				zap.Int("status", c.Status()),
				zap.String("method", method),
				zap.String("path", path),
				zap.String("query", query),
				zap.String("ip", c.ClientIP()),
				zap.String("request-id", RequestIDFrom(c)),
				zap.String("user-agent", c.request.req.UserAgent()),
				zap.Duration("latency", latency))

			return err
		}
	}
}
