package trellis

import "net/http"

// BuildRouter runs the registration phase against a fresh tree and
// response finalizer, then finalizes both into an immutable Router.
//
//	pipelines := trellis.NewPipelineSet()
//	session := pipelines.Add(trellis.NewPipeline().Add(sessionMiddleware).Build())
//	set := trellis.FinalizePipelineSet(pipelines)
//
//	router := trellis.BuildRouter(trellis.Chain{session}, set, func(route *trellis.RouterBuilder) {
//		route.Get("/").ToFunc(welcome)
//		route.Post("/api/submit").ToFunc(submit)
//	})
func BuildRouter(chain Chain, pipelines *PipelineSet, register func(*RouterBuilder)) *Router {
	treeBuilder := NewTreeBuilder()
	finalizerBuilder := NewResponseFinalizerBuilder()

	builder := &RouterBuilder{
		node:      treeBuilder.BorrowRoot(),
		chain:     chain,
		pipelines: pipelines,
		finalizer: finalizerBuilder,
	}
	register(builder)

	return newRouter(treeBuilder.Finalize(), finalizerBuilder.Finalize())
}

// RouterBuilder is the registration surface handed to the BuildRouter
// closure. It is only valid inside that closure; the finalized Router
// shares nothing with it.
type RouterBuilder struct {
	node      *NodeBuilder
	chain     Chain
	pipelines *PipelineSet
	finalizer *ResponseFinalizerBuilder
}

// Get registers for GET and HEAD requests on path.
func (b *RouterBuilder) Get(path string) *RouteBuilder {
	return b.Request([]string{http.MethodGet, http.MethodHead}, path)
}

// Post registers for POST requests on path.
func (b *RouterBuilder) Post(path string) *RouteBuilder {
	return b.Request([]string{http.MethodPost}, path)
}

// Put registers for PUT requests on path.
func (b *RouterBuilder) Put(path string) *RouteBuilder {
	return b.Request([]string{http.MethodPut}, path)
}

// Patch registers for PATCH requests on path.
func (b *RouterBuilder) Patch(path string) *RouteBuilder {
	return b.Request([]string{http.MethodPatch}, path)
}

// Delete registers for DELETE requests on path.
func (b *RouterBuilder) Delete(path string) *RouteBuilder {
	return b.Request([]string{http.MethodDelete}, path)
}

// Request returns a continuation for the given methods and path. The
// route only comes into existence once To or ToFunc is called on the
// continuation; an abandoned continuation leaves no trace in the tree.
func (b *RouterBuilder) Request(methods []string, path string) *RouteBuilder {
	return &RouteBuilder{
		node:       b.descend(path),
		matcher:    NewMethodMatcher(methods...),
		chain:      b.chain,
		pipelines:  b.pipelines,
		delegation: DelegationInternal,
	}
}

// Scope runs fn against a builder rooted at prefix. Registrations
// inside share the pipeline chain and response finalizer.
func (b *RouterBuilder) Scope(prefix string, fn func(*RouterBuilder)) {
	fn(&RouterBuilder{
		node:      b.descend(prefix),
		chain:     b.chain,
		pipelines: b.pipelines,
		finalizer: b.finalizer,
	})
}

// WithPipelineChain returns a builder whose registrations wrap their
// handlers in chain instead of the inherited one.
func (b *RouterBuilder) WithPipelineChain(chain Chain) *RouterBuilder {
	return &RouterBuilder{
		node:      b.node,
		chain:     chain,
		pipelines: b.pipelines,
		finalizer: b.finalizer,
	}
}

// Delegate returns a continuation mounting a nested router at path.
// The mount point claims the whole subtree below it.
func (b *RouterBuilder) Delegate(path string) *DelegateBuilder {
	return &DelegateBuilder{node: b.descend(path)}
}

// HandleStatus registers a response finalizer override for status,
// replacing the minimal status-only fallback.
func (b *RouterBuilder) HandleStatus(status int, h StatusHandler) {
	b.finalizer.RegisterOverride(status, h)
}

// descend walks the builder tree along path, creating intermediate
// nodes as needed. Revisiting an existing (name, type) child extends
// it rather than duplicating, so registration is idempotent per node.
func (b *RouterBuilder) descend(path string) *NodeBuilder {
	current := b.node
	for _, raw := range splitPath(path) {
		segment := parseSegment(raw)
		if !current.HasChild(segment.Name, segment.Type) {
			current.AddChild(newNodeBuilder(segment))
		}
		current = current.Child(segment.Name, segment.Type)
	}
	return current
}

// RouteBuilder is the typed continuation returned by Get, Post and
// Request. It finalizes into a route via To or ToFunc.
type RouteBuilder struct {
	node       *NodeBuilder
	matcher    RouteMatcher
	chain      Chain
	pipelines  *PipelineSet
	extractors Extractors
	delegation Delegation
}

// WithMatcher replaces the method matcher built from the registration
// call. Custom matchers may inspect anything on the request.
func (rb *RouteBuilder) WithMatcher(m RouteMatcher) *RouteBuilder {
	rb.matcher = m
	return rb
}

// WithPathExtractor runs fn against the context after a successful
// match, before dispatch. A failure finalizes the request with 400.
func (rb *RouteBuilder) WithPathExtractor(fn func(*Context) error) *RouteBuilder {
	rb.extractors.Path = fn
	return rb
}

// WithQueryExtractor is WithPathExtractor for the query string.
func (rb *RouteBuilder) WithQueryExtractor(fn func(*Context) error) *RouteBuilder {
	rb.extractors.Query = fn
	return rb
}

// To finalizes the registration, building the route and inserting it
// into the target node.
func (rb *RouteBuilder) To(factory HandlerFactory) {
	d := NewDispatcher(factory, rb.chain, rb.pipelines)
	rb.node.AddRoute(NewRoute(rb.matcher, d, rb.extractors, rb.delegation))
}

// ToFunc registers a stateless handler function.
func (rb *RouteBuilder) ToFunc(h Handler) {
	rb.To(SharedHandler(h))
}

// DelegateBuilder is the continuation returned by Delegate.
type DelegateBuilder struct {
	node *NodeBuilder
}

// ToRouter finalizes the delegation: requests reaching the node hand
// their remaining path to sub, which resolves it independently.
func (d *DelegateBuilder) ToRouter(sub *Router) {
	route := NewRoute(anyMatcher{}, &routerDispatcher{sub: sub}, Extractors{}, DelegationExternal)
	d.node.AddRoute(route)
}
