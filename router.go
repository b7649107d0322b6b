package trellis

import (
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Router is the finalized entry point: path lookup, method match,
// dispatch, finalizer fallback. All mutation happened during the
// builder phase; a Router is immutable and safe for any number of
// concurrent requests without locking.
type Router struct {
	tree        *tree
	finalizer   *ResponseFinalizer
	contextPool sync.Pool
}

func newRouter(t *tree, f *ResponseFinalizer) *Router {
	r := &Router{tree: t, finalizer: f}
	r.contextPool.New = func() any { return &Context{router: r} }
	return r
}

// ServeHTTP resolves the request to a route and dispatches it, or
// falls back to the response finalizer with 404 or 405.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	c := r.newContext(req, w)
	defer c.Close()

	lf, err := r.tree.lookup(splitPath(req.URL.Path))
	if err != nil {
		r.finalize(c, http.StatusNotFound)
		return
	}

	for i := range lf.params {
		c.addParameter(lf.params[i].name, lf.params[i].value)
	}
	c.remainder = lf.remainder

	var allowed []string
	for _, route := range lf.node.routes {
		matchErr := route.Match(req)
		if matchErr == nil {
			r.dispatch(c, route)
			return
		}

		var mismatch *RouteMismatch
		if errors.As(matchErr, &mismatch) {
			allowed = mergeMethods(allowed, mismatch.Allowed)
		}
	}

	if len(allowed) > 0 {
		c.response.SetHeader(allowHeader, strings.Join(allowed, ", "))
		r.finalize(c, http.StatusMethodNotAllowed)
		return
	}

	// Routes exist here but none accepted the request for a reason
	// other than the method, so the path effectively has no route.
	r.finalize(c, http.StatusNotFound)
}

func (r *Router) dispatch(c *Context, route *Route) {
	if err := route.Extract(c); err != nil {
		Log.Debug("request extraction failed",
			zap.Error(err),
			zap.String("path", c.request.Path()))
		r.finalize(c, http.StatusBadRequest)
		return
	}

	if err := route.Dispatch(c); err != nil {
		Log.Error("error in handler",
			zap.Error(err),
			zap.String("method", c.request.Method()),
			zap.String("path", c.request.Path()))
		if !c.response.Written() {
			r.finalize(c, http.StatusInternalServerError)
		}
	}
}

func (r *Router) finalize(c *Context, status int) {
	if err := r.finalizer.FinalizeResponse(c, status); err != nil {
		Log.Error("error in response finalizer override",
			zap.Error(err),
			zap.Int("status", status))
		if !c.response.Written() {
			c.response.WriteHeader(http.StatusInternalServerError)
		}
	}
}

// newContext takes a context from the pool and resets it for req.
func (r *Router) newContext(req *http.Request, w http.ResponseWriter) *Context {
	c := r.contextPool.Get().(*Context)
	c.status = http.StatusOK
	c.request.req = req
	c.response.rw = w
	c.response.wrote = false
	c.paramCount = 0
	c.remainder = nil
	c.sameSite = 0
	c.keys = nil

	// captures bound above a delegating mount point
	if params, ok := req.Context().Value(delegatedParamsKey).(map[string]string); ok {
		for name, value := range params {
			c.addParameter(name, value)
		}
	}
	return c
}

func mergeMethods(into []string, methods []string) []string {
	for _, m := range methods {
		seen := false
		for _, existing := range into {
			if existing == m {
				seen = true
				break
			}
		}
		if !seen {
			into = append(into, m)
		}
	}
	return into
}
