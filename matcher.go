package trellis

import (
	"net/http"
	"strings"
)

// RouteMatcher decides whether a route at a matched node accepts the
// request. The baseline policy is method-only, but implementations
// may inspect headers, content type or anything else on the request.
type RouteMatcher interface {
	Match(req *http.Request) error
}

// RouteMismatch is returned when a matcher rejects a request whose
// path did reach the route's node. Allowed carries the methods the
// matcher would have accepted, so the router can aggregate a correct
// Allow header on the 405 response.
type RouteMismatch struct {
	Allowed []string
}

func (m *RouteMismatch) Error() string {
	return "method not allowed, expected one of: " + strings.Join(m.Allowed, ", ")
}

// MethodMatcher accepts requests whose method is in its set.
type MethodMatcher struct {
	methods []string
}

func NewMethodMatcher(methods ...string) *MethodMatcher {
	normalized := make([]string, len(methods))
	for i, m := range methods {
		normalized[i] = strings.ToUpper(m)
	}
	return &MethodMatcher{methods: normalized}
}

func (m *MethodMatcher) Match(req *http.Request) error {
	for _, method := range m.methods {
		if req.Method == method {
			return nil
		}
	}
	return &RouteMismatch{Allowed: m.methods}
}

// Methods returns the accepted method set.
func (m *MethodMatcher) Methods() []string {
	return m.methods
}

// anyMatcher accepts every request. Delegating routes use it so the
// nested router decides the method outcome itself.
type anyMatcher struct{}

func (anyMatcher) Match(*http.Request) error {
	return nil
}
