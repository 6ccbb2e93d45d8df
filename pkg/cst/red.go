package cst

import "github.com/sysml-tools/sysmlcore/pkg/token"

// RedNode is a parent-aware view over an immutable GreenNode: it knows its
// absolute byte offset and its parent, neither of which the green tree
// itself carries. Red nodes are cheap to construct and are not shared —
// every RedNode.Children() call builds fresh lightweight wrappers lazily.
type RedNode struct {
	Green  *GreenNode
	Parent *RedNode
	Offset int // absolute byte offset of this node's first byte
}

// NewRoot builds the red root view over a parsed tree.
func NewRoot(green *GreenNode) *RedNode {
	return &RedNode{Green: green, Offset: 0}
}

func (r *RedNode) Kind() NodeKind { return r.Green.Kind }
func (r *RedNode) Start() int     { return r.Offset }
func (r *RedNode) End() int       { return r.Offset + r.Green.width() }

// Children returns the direct child elements as red views, lazily
// computing each one's absolute offset from the running total of its
// preceding siblings' widths.
func (r *RedNode) Children() []RedElement {
	out := make([]RedElement, 0, len(r.Green.Children))
	off := r.Offset
	for _, c := range r.Green.Children {
		switch v := c.(type) {
		case *GreenToken:
			out = append(out, RedElement{Token: &RedToken{Green: v, Offset: off}})
		case *GreenNode:
			out = append(out, RedElement{Node: &RedNode{Green: v, Parent: r, Offset: off}})
		}
		off += c.width()
	}
	return out
}

// ChildNodes returns only the node children, in order.
func (r *RedNode) ChildNodes() []*RedNode {
	var out []*RedNode
	for _, e := range r.Children() {
		if e.Node != nil {
			out = append(out, e.Node)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child node of the given kind.
func (r *RedNode) FirstChildOfKind(k NodeKind) *RedNode {
	for _, e := range r.Children() {
		if e.Node != nil && e.Node.Kind() == k {
			return e.Node
		}
	}
	return nil
}

// Tokens returns every leaf token directly under r (not recursive).
func (r *RedNode) Tokens() []*RedToken {
	var out []*RedToken
	for _, e := range r.Children() {
		if e.Token != nil {
			out = append(out, e.Token)
		}
	}
	return out
}

// FirstTokenOfKind returns the first direct child token of kind k.
func (r *RedNode) FirstTokenOfKind(k token.Kind) *RedToken {
	for _, e := range r.Children() {
		if e.Token != nil && e.Token.Kind() == k {
			return e.Token
		}
	}
	return nil
}

// NodeAtOffset returns the innermost (narrowest) node whose span contains
// offset, walking down from r. Used by position-based IDE queries (§4.9).
func (r *RedNode) NodeAtOffset(offset int) *RedNode {
	if offset < r.Start() || offset > r.End() {
		return nil
	}
	best := r
	for _, child := range r.ChildNodes() {
		if found := child.NodeAtOffset(offset); found != nil {
			best = found
		}
	}
	return best
}

// Text reconstructs the exact source text covered by this subtree.
func (r *RedNode) Text() string { return r.Green.Text() }

// RedToken is a leaf view with an absolute offset.
type RedToken struct {
	Green  *GreenToken
	Offset int
}

func (t *RedToken) Kind() token.Kind { return t.Green.Kind }
func (t *RedToken) Text() string     { return t.Green.Text }
func (t *RedToken) Start() int       { return t.Offset }
func (t *RedToken) End() int         { return t.Offset + len(t.Green.Text) }

// RedElement is a discriminated union: exactly one of Node/Token is set.
type RedElement struct {
	Node  *RedNode
	Token *RedToken
}
