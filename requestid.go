package trellis

import "github.com/google/uuid"

const (
	// RequestIDHeader is the response header carrying the request id.
	RequestIDHeader = "X-Request-Id"

	requestIDKey = "trellis_requestid"
)

// RequestID returns a middleware assigning each request a uuid,
// exposed on the response header and via RequestIDFrom.
func RequestID() Middleware {
	return func(next Handler) Handler {
		return func(c *Context) error {
			id := uuid.NewString()
			c.SetKey(requestIDKey, id)
			c.Response().SetHeader(RequestIDHeader, id)
			return next(c)
		}
	}
}

// RequestIDFrom returns the id assigned by RequestID, or "" when the
// middleware did not run.
func RequestIDFrom(c *Context) string {
	return c.GetKeyString(requestIDKey)
}
