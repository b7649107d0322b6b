package trellis

// StatusHandler builds the fallback response for one status code,
// with access to the request's final state.
type StatusHandler func(*Context) error

// ResponseFinalizerBuilder collects per-status overrides during the
// registration phase.
type ResponseFinalizerBuilder struct {
	overrides map[int]StatusHandler
	finalized bool
}

func NewResponseFinalizerBuilder() *ResponseFinalizerBuilder {
	return &ResponseFinalizerBuilder{overrides: make(map[int]StatusHandler)}
}

// RegisterOverride installs h as the response builder for status.
// Registering after Finalize is a programming error and panics.
func (b *ResponseFinalizerBuilder) RegisterOverride(status int, h StatusHandler) {
	if b.finalized {
		panic("trellis: override registered on a finalized response finalizer")
	}
	b.overrides[status] = h
}

// Finalize converts the builder into its immutable form.
func (b *ResponseFinalizerBuilder) Finalize() *ResponseFinalizer {
	b.finalized = true
	return &ResponseFinalizer{overrides: b.overrides}
}

// ResponseFinalizer produces fallback responses for requests no route
// handled. The router invokes it exactly when path lookup or method
// matching fails, never on the success path.
type ResponseFinalizer struct {
	overrides map[int]StatusHandler
}

// FinalizeResponse writes the response for status: the registered
// override if present, a minimal status-only response otherwise.
func (f *ResponseFinalizer) FinalizeResponse(c *Context, status int) error {
	c.SetStatus(status)
	if h, ok := f.overrides[status]; ok {
		return h(c)
	}
	c.response.WriteHeader(status)
	return nil
}
