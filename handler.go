package trellis

// Handler processes one request through its context.
type Handler func(*Context) error

// HandlerFactory produces a fresh handler instance per dispatch.
// Handlers may carry per-request mutable state, so instances are
// never reused across requests.
type HandlerFactory func() Handler

// SharedHandler adapts a stateless handler into a factory that hands
// out the same function every time.
func SharedHandler(h Handler) HandlerFactory {
	return func() Handler { return h }
}
