package trellis

import "fmt"

// NodeBuilder is the mutable, registration-phase form of a tree node.
// Children are keyed by (name, segment type) and routes accumulate in
// registration order. NodeBuilders never outlive the builder phase;
// Finalize converts the whole tree into its immutable lookup form.
type NodeBuilder struct {
	segment  Segment
	children []*NodeBuilder
	routes   []*Route
}

func newNodeBuilder(segment Segment) *NodeBuilder {
	return &NodeBuilder{segment: segment}
}

// Segment returns the segment identifying this node under its parent.
func (n *NodeBuilder) Segment() Segment {
	return n.segment
}

// HasChild reports whether a child keyed by (name, t) already exists.
// Callers must check this before AddChild so revisiting a path during
// registration extends the existing subtree instead of clobbering it.
func (n *NodeBuilder) HasChild(name string, t SegmentType) bool {
	return n.Child(name, t) != nil
}

// AddChild inserts child under its (name, type) key. Inserting a
// duplicate key would orphan routes already attached to the existing
// subtree, so it panics as a registration bug.
func (n *NodeBuilder) AddChild(child *NodeBuilder) {
	if n.HasChild(child.segment.Name, child.segment.Type) {
		panic(fmt.Sprintf("trellis: duplicate child %q on node %q", child.segment.Name, n.segment.Name))
	}
	n.children = append(n.children, child)
}

// Child returns the mutable child keyed by (name, t), or nil.
func (n *NodeBuilder) Child(name string, t SegmentType) *NodeBuilder {
	for _, child := range n.children {
		if child.segment.Name == name && child.segment.Type == t {
			return child
		}
	}
	return nil
}

// AddRoute appends a route to this node. Multiple routes may share a
// node (one per method set, say) and are tried in registration order.
func (n *NodeBuilder) AddRoute(r *Route) {
	n.routes = append(n.routes, r)
}

// finalize recursively converts the subtree into its immutable form,
// consuming children and routes.
func (n *NodeBuilder) finalize() *node {
	fin := &node{
		segment: n.segment,
		routes:  n.routes,
	}

	for _, r := range n.routes {
		if r.Delegation() == DelegationExternal {
			fin.delegates = true
			break
		}
	}

	for _, child := range n.children {
		fc := child.finalize()
		switch child.segment.Type {
		case SegmentStatic:
			if fin.static == nil {
				fin.static = make(map[string]*node, len(n.children))
			}
			fin.static[child.segment.Name] = fc
		case SegmentDynamic:
			// dynamic siblings keep registration order; the
			// first declared wins at lookup time
			fin.dynamic = append(fin.dynamic, fc)
		}
	}

	return fin
}

// node is the finalized, immutable tree node shared across requests.
type node struct {
	segment   Segment
	static    map[string]*node
	dynamic   []*node
	routes    []*Route
	delegates bool
}
