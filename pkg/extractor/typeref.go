package extractor

import (
	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// nameToken returns the IDENT/QUOTED_NAME leaf directly under n, if any.
func nameToken(n *cst.RedNode) (*cst.RedToken, bool) {
	if t := n.FirstTokenOfKind(token.IDENT); t != nil {
		return t, true
	}
	if t := n.FirstTokenOfKind(token.QUOTED_NAME); t != nil {
		return t, true
	}
	return nil, false
}

// flattenChain walks an NK_EXPR_CHAIN (or a bare NK_EXPR_NAME) into its
// ordered segment names and spans (§4.4: "a single TypeRefChain whose
// first segment is ChainFirst, subsequent ChainMember").
func (c *Context) flattenChain(n *cst.RedNode) ([]string, []cst.Span) {
	if n.Kind() == cst.NK_EXPR_CHAIN {
		children := n.ChildNodes()
		if len(children) < 2 {
			return nil, nil
		}
		names, spans := c.flattenChain(children[0])
		if t, ok := nameToken(children[1]); ok {
			names = append(names, t.Text())
			spans = append(spans, c.TokenSpan(t))
		}
		return names, spans
	}
	if n.Kind() == cst.NK_EXPR_NAME {
		if t, ok := nameToken(n); ok {
			return []string{t.Text()}, []cst.Span{c.TokenSpan(t)}
		}
	}
	return nil, nil
}

// CollectTypeRefChains recursively scans an expression subtree for name
// and feature-chain references, used wherever §4.4 calls for collecting
// type_refs from an expression (initializers, multiplicities, constraint
// bodies, metadata annotation bodies, and similar clauses).
func (c *Context) CollectTypeRefChains(n *cst.RedNode) []symbol.TypeRefChain {
	var out []symbol.TypeRefChain
	var walk func(*cst.RedNode)
	walk = func(node *cst.RedNode) {
		if node == nil {
			return
		}
		switch node.Kind() {
		case cst.NK_EXPR_CHAIN:
			names, spans := c.flattenChain(node)
			if len(names) > 0 {
				out = append(out, symbol.NewFeatureChain(names, spans))
			}
			return
		case cst.NK_EXPR_NAME:
			if t, ok := nameToken(node); ok {
				out = append(out, symbol.TypeRefChain{Segments: []symbol.TypeRef{
					{Name: t.Text(), Span: c.TokenSpan(t), Kind: symbol.RefExpressionRef},
				}})
			}
			return
		}
		for _, ch := range node.ChildNodes() {
			walk(ch)
		}
	}
	walk(n)
	return out
}

// firstChildOfKinds returns the first direct child node matching any of
// kinds, in child order.
func firstChildOfKinds(n *cst.RedNode, kinds ...cst.NodeKind) *cst.RedNode {
	for _, c := range n.ChildNodes() {
		for _, k := range kinds {
			if c.Kind() == k {
				return c
			}
		}
	}
	return nil
}

// connectorClauseKeyword returns the via/from/to/by/first/then keyword that
// opened an NK_CONNECTOR_ENDS node.
func connectorClauseKeyword(c *cst.RedNode) (token.Kind, bool) {
	for _, t := range c.Tokens() {
		switch t.Kind() {
		case token.KW_VIA, token.KW_FROM, token.KW_TO, token.KW_BY, token.KW_FIRST, token.KW_THEN:
			return t.Kind(), true
		}
	}
	return token.EOF, false
}

// connectorRelationshipKind maps a connector-clause keyword to its
// relationship kind. `first`/`then` mean different things depending on
// whether the enclosing decl is a succession or a transition (§3.4).
func connectorRelationshipKind(kw token.Kind, primaryKeyword string) symbol.RelationshipKind {
	switch kw {
	case token.KW_VIA:
		return symbol.Via
	case token.KW_FROM:
		return symbol.FlowFrom
	case token.KW_TO:
		return symbol.FlowTo
	case token.KW_BY:
		return symbol.By
	case token.KW_FIRST:
		if primaryKeyword == "transition" {
			return symbol.TransitionSource
		}
		return symbol.SuccessionFirst
	case token.KW_THEN:
		if primaryKeyword == "transition" {
			return symbol.TransitionTarget
		}
		return symbol.SuccessionThen
	}
	return symbol.Specializes
}

// refKindForRelationship maps a relationship kind to the ref_kind its
// specialization-clause type_ref segment carries.
func refKindForRelationship(k symbol.RelationshipKind) symbol.RefKind {
	switch k {
	case symbol.Redefines:
		return symbol.RefRedefines
	case symbol.Subsets:
		return symbol.RefSubsets
	case symbol.TypedBy:
		return symbol.RefTypedBy
	default:
		return symbol.RefSpecializes
	}
}
