package trellis

// Middleware wraps a handler with shared behaviour. Returning without
// calling the wrapped handler short-circuits the request; the handler
// and any later stage never run.
type Middleware func(Handler) Handler

// Pipeline is an ordered middleware sequence shared across routes.
type Pipeline struct {
	stages []Middleware
}

// wrap composes the pipeline's middleware around h, first stage
// outermost.
func (p Pipeline) wrap(h Handler) Handler {
	for i := len(p.stages) - 1; i >= 0; i-- {
		h = p.stages[i](h)
	}
	return h
}

// PipelineBuilder assembles a Pipeline.
type PipelineBuilder struct {
	stages []Middleware
}

func NewPipeline() *PipelineBuilder {
	return &PipelineBuilder{}
}

func (b *PipelineBuilder) Add(m Middleware) *PipelineBuilder {
	b.stages = append(b.stages, m)
	return b
}

func (b *PipelineBuilder) Build() Pipeline {
	stages := make([]Middleware, len(b.stages))
	copy(stages, b.stages)
	return Pipeline{stages: stages}
}

// Handle is an opaque reference to a pipeline registered in a set.
// Handles are stable for the lifetime of the set and unique within it.
type Handle int

// Chain is an ordered list of handles describing which pipelines wrap
// a dispatcher, outermost first. Chains are plain values and copy
// cheaply when attached to many routes.
type Chain []Handle

// Append returns a new chain with h added innermost, leaving the
// receiver untouched.
func (c Chain) Append(h Handle) Chain {
	out := make(Chain, len(c), len(c)+1)
	copy(out, c)
	return append(out, h)
}

// PipelineSetBuilder registers pipelines during the registration
// phase.
type PipelineSetBuilder struct {
	pipelines map[Handle]Pipeline
	next      Handle
	finalized bool
}

func NewPipelineSet() *PipelineSetBuilder {
	return &PipelineSetBuilder{pipelines: make(map[Handle]Pipeline)}
}

// Add registers a pipeline and returns its handle. Adding after
// FinalizePipelineSet is a programming error and panics.
func (b *PipelineSetBuilder) Add(p Pipeline) Handle {
	if b.finalized {
		panic("trellis: pipeline added to a finalized pipeline set")
	}
	h := b.next
	b.pipelines[h] = p
	b.next++
	return h
}

// FinalizePipelineSet converts the builder into the immutable,
// concurrently shareable set. No further registration is permitted.
func FinalizePipelineSet(b *PipelineSetBuilder) *PipelineSet {
	b.finalized = true
	return &PipelineSet{pipelines: b.pipelines}
}

// PipelineSet is the finalized, read-only pipeline registry.
type PipelineSet struct {
	pipelines map[Handle]Pipeline
}

func (s *PipelineSet) get(h Handle) (Pipeline, bool) {
	p, ok := s.pipelines[h]
	return p, ok
}
