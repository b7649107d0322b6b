package trellis

import (
	stdContext "context"
	"fmt"
	"strings"
)

// Dispatcher runs a route's pipeline chain around its handler,
// producing the response.
type Dispatcher interface {
	Dispatch(*Context) error
}

type dispatcher struct {
	factory   HandlerFactory
	chain     Chain
	pipelines *PipelineSet
}

// NewDispatcher binds a handler factory to a pipeline chain. Every
// handle in the chain must name a pipeline in the set; an unknown
// handle is a registration bug and panics immediately rather than
// surfacing at request time.
func NewDispatcher(factory HandlerFactory, chain Chain, pipelines *PipelineSet) Dispatcher {
	for _, h := range chain {
		if _, ok := pipelines.get(h); !ok {
			panic(fmt.Sprintf("trellis: pipeline chain references unknown handle %d", h))
		}
	}
	return &dispatcher{factory: factory, chain: chain, pipelines: pipelines}
}

// Dispatch creates a fresh handler instance and runs the chain's
// pipelines around it, outermost first. A pipeline that does not call
// through short-circuits everything after it.
func (d *dispatcher) Dispatch(c *Context) error {
	h := d.factory()
	for i := len(d.chain) - 1; i >= 0; i-- {
		p, _ := d.pipelines.get(d.chain[i])
		h = p.wrap(h)
	}
	return h(c)
}

type delegatedParamsKeyType struct{}

// delegatedParamsKey carries captures bound above a mount point into
// the nested router's context.
var delegatedParamsKey delegatedParamsKeyType

// routerDispatcher hands the remaining path of a delegating route to
// a nested router.
type routerDispatcher struct {
	sub *Router
}

func (d *routerDispatcher) Dispatch(c *Context) error {
	req := c.request.req
	req.URL.Path = "/" + strings.Join(c.remainder, "/")

	if c.paramCount > 0 {
		ctx := stdContext.WithValue(req.Context(), delegatedParamsKey, c.exportParams())
		req = req.WithContext(ctx)
	}

	d.sub.ServeHTTP(c.response.rw, req)
	return nil
}
