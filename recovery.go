package trellis

import (
	"net/http/httputil"
	"runtime"

	"go.uber.org/zap"
)

// Recovery returns a middleware that recovers from any panics in
// later pipeline stages or the handler and answers with a 500.
func Recovery() Middleware {
	return func(next Handler) Handler {
		return func(c *Context) error {
			defer func() {
				if err := recover(); err != nil {
					const size = 64 << 10
					buf := make([]byte, size)
					buf = buf[:runtime.Stack(buf, false)]

					var rawReq []byte
					if req := c.request.req; req != nil {
						rawReq, _ = httputil.DumpRequest(req, false)
					}
					Log.Error("http call panic",
						zap.ByteString("rawReq", rawReq),
						zap.Any("error", err),
						zap.ByteString("buf", buf))
					c.Error(500, "internal server error")
				}
			}()
			return next(c)
		}
	}
}
