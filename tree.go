package trellis

import "github.com/pkg/errors"

// ErrNotFound reports that no tree path matches the request path. It
// is a lookup failure, distinct from a matcher rejecting the method.
var ErrNotFound = errors.New("no route matches the path")

// TreeBuilder owns the mutable segment tree during registration. The
// tree always has exactly one root, representing the empty path.
type TreeBuilder struct {
	root *NodeBuilder
}

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{root: newNodeBuilder(Segment{})}
}

// BorrowRoot returns the mutable root to navigate and extend during
// registration.
func (t *TreeBuilder) BorrowRoot() *NodeBuilder {
	return t.root
}

// Finalize converts the tree into its immutable, shareable form. The
// builder must not be used afterwards.
func (t *TreeBuilder) Finalize() *tree {
	return &tree{root: t.root.finalize()}
}

type tree struct {
	root *node
}

// leaf is a successful lookup: the node holding candidate routes, the
// dynamic captures collected on the way down and, when the node
// delegates to a nested router, the unconsumed path segments.
type leaf struct {
	node      *node
	params    []param
	remainder []string
}

type param struct {
	name  string
	value string
}

// lookup walks the tree from the root, consuming one segment per
// level. Static children win over dynamic ones; among dynamic
// siblings the first declared wins, with no backtracking. A node
// holding a delegating route claims everything below it.
func (t *tree) lookup(segments []string) (*leaf, error) {
	current := t.root
	var params []param

	for i, segment := range segments {
		if current.delegates {
			return &leaf{node: current, params: params, remainder: segments[i:]}, nil
		}

		if next, ok := current.static[segment]; ok {
			current = next
			continue
		}

		if len(current.dynamic) == 0 {
			return nil, ErrNotFound
		}
		next := current.dynamic[0]
		params = append(params, param{name: next.segment.Name, value: segment})
		current = next
	}

	if len(current.routes) == 0 {
		return nil, ErrNotFound
	}
	return &leaf{node: current, params: params}, nil
}
