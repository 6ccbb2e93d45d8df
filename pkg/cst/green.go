package cst

import "github.com/sysml-tools/sysmlcore/pkg/token"

// GreenElement is either a GreenToken (leaf) or a *GreenNode (inner node).
// Green nodes are immutable and structurally shared: two trees that share
// a subtree share the same *GreenNode pointer, so a small edit only
// rebuilds the spine from the edited leaf to the root.
type GreenElement interface {
	width() int
	isGreen()
}

// GreenToken is a leaf: one lexer token, verbatim.
type GreenToken struct {
	Kind token.Kind
	Text string
}

func (t *GreenToken) width() int { return len(t.Text) }
func (*GreenToken) isGreen()     {}

// GreenNode is an inner node: a NodeKind plus an ordered list of children
// (tokens and/or nodes). Concatenating the text of every leaf reachable
// from a GreenNode reproduces exactly the source span it covers.
type GreenNode struct {
	Kind     NodeKind
	Children []GreenElement
}

func (n *GreenNode) width() int {
	w := 0
	for _, c := range n.Children {
		w += c.width()
	}
	return w
}
func (*GreenNode) isGreen() {}

// Text reconstructs the exact source slice covered by n by concatenating
// every leaf token's text. Used by the losslessness property (§8.1).
func (n *GreenNode) Text() string {
	var b []byte
	var walk func(GreenElement)
	walk = func(e GreenElement) {
		switch v := e.(type) {
		case *GreenToken:
			b = append(b, v.Text...)
		case *GreenNode:
			for _, c := range v.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return string(b)
}

// NewToken builds a green leaf from a lexer token.
func NewToken(t token.Token) *GreenToken {
	return &GreenToken{Kind: t.Kind, Text: t.Text}
}

// Builder accumulates GreenElements for one GreenNode under construction.
// pkg/parser uses one Builder per tree node it opens.
type Builder struct {
	kind     NodeKind
	children []GreenElement
}

func NewBuilder(kind NodeKind) *Builder {
	return &Builder{kind: kind}
}

func (b *Builder) PushToken(t token.Token) {
	b.children = append(b.children, NewToken(t))
}

func (b *Builder) PushNode(n *GreenNode) {
	if n == nil {
		return
	}
	b.children = append(b.children, n)
}

func (b *Builder) Finish() *GreenNode {
	return &GreenNode{Kind: b.kind, Children: b.children}
}
