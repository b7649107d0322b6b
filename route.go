package trellis

import "net/http"

// Delegation controls whether a matched route terminates routing here
// or hands the remaining path to a nested router.
type Delegation uint8

const (
	DelegationInternal Delegation = iota
	DelegationExternal
)

// Extractors hold a route's request extraction hooks, run after a
// successful match and before dispatch. The zero value extracts
// nothing. The bind package supplies the usual implementations.
type Extractors struct {
	Path  func(*Context) error
	Query func(*Context) error
}

func (e Extractors) extract(c *Context) error {
	if e.Path != nil {
		if err := e.Path(c); err != nil {
			return err
		}
	}
	if e.Query != nil {
		if err := e.Query(c); err != nil {
			return err
		}
	}
	return nil
}

// Route is the unit stored at a tree node: a matcher deciding whether
// the route accepts a request, and a dispatcher producing the
// response. Routes are immutable once added to a node.
type Route struct {
	matcher    RouteMatcher
	dispatcher Dispatcher
	extractors Extractors
	delegation Delegation
}

func NewRoute(matcher RouteMatcher, dispatcher Dispatcher, extractors Extractors, delegation Delegation) *Route {
	return &Route{
		matcher:    matcher,
		dispatcher: dispatcher,
		extractors: extractors,
		delegation: delegation,
	}
}

func (r *Route) Match(req *http.Request) error {
	return r.matcher.Match(req)
}

// Extract runs the route's extraction rules against the context.
func (r *Route) Extract(c *Context) error {
	return r.extractors.extract(c)
}

func (r *Route) Dispatch(c *Context) error {
	return r.dispatcher.Dispatch(c)
}

func (r *Route) Delegation() Delegation {
	return r.delegation
}
