package parser

import (
	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// parseNameToken consumes a single IDENT or QUOTED_NAME, or records a
// diagnostic and leaves the stream untouched if neither is present.
func (p *parser) parseNameToken(b *cst.Builder) {
	if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
		p.bump(b)
		return
	}
	p.expect(b, token.IDENT)
}

// parseQualifiedName parses a `::`-joined sequence of names into a single
// NK_QUALIFIED_NAME node (§3.2, §4.3). It is used wherever the grammar
// references a type, a feature, or a package by its declared path — the
// separators between segments are the literal tokens, so the node stays
// lossless even when a reference is malformed.
func (p *parser) parseQualifiedName() *cst.GreenNode {
	b := cst.NewBuilder(cst.NK_QUALIFIED_NAME)
	p.parseNameToken(b)
	for p.at(token.COLONCOLON) {
		p.bump(b)
		p.parseNameToken(b)
	}
	return b.Finish()
}

// parseShortName parses `<'alias'>` immediately following a declared name.
func (p *parser) parseShortName(b *cst.Builder) {
	if !p.at(token.LT) {
		return
	}
	p.bump(b)
	p.parseNameToken(b)
	p.expect(b, token.GT)
}

// parseMultiplicity parses `[ expr ('..' expr)? ]` and appends it to parent.
func (p *parser) parseMultiplicity(parent *cst.Builder) {
	b := cst.NewBuilder(cst.NK_MULTIPLICITY)
	p.bump(b) // [
	b.PushNode(p.parseExpr())
	if p.at(token.DOTDOT) {
		p.bump(b)
		b.PushNode(p.parseExpr())
	}
	p.expect(b, token.RBRACKET)
	parent.PushNode(b.Finish())
}

// isSpecOp reports whether k opens a specialization clause (§3.4, §4.2).
// A bare `:` is the plain feature-typing shorthand (`name : Type;`) and is
// just as much a specialization operator as `:>` — it opens a TypedBy
// relationship rather than Specializes.
func isSpecOp(k token.Kind) bool {
	switch k {
	case token.COLON, token.COLONGT, token.COLONGTGT, token.KW_SUBSETS, token.KW_REDEFINES,
		token.KW_CONJUGATES, token.KW_TYPED, token.KW_SPECIALIZES:
		return true
	}
	return false
}

// parseSpecOperator consumes the operator token(s) of a specialization
// clause: a single punctuation/keyword token, or `typed` optionally
// followed by `by`.
func (p *parser) parseSpecOperator(b *cst.Builder) {
	p.bump(b)
	if p.at(token.KW_BY) {
		// only reachable right after KW_TYPED, since that's the only
		// operator token BY can legally follow here.
		p.bump(b)
	}
}

// parseSpecializationList parses the (possibly empty) run of specialization
// clauses following a declared name/multiplicity (§3.4). Clauses under one
// operator may list several comma-separated targets; continuation targets
// after a comma carry no operator token of their own and inherit the
// operator of the clause that opened the list — pkg/extractor resolves that
// inheritance when it reads the tree.
func (p *parser) parseSpecializationList() *cst.GreenNode {
	list := cst.NewBuilder(cst.NK_SPECIALIZATION_LIST)
	for isSpecOp(p.curKind()) {
		one := cst.NewBuilder(cst.NK_SPECIALIZATION)
		p.parseSpecOperator(one)
		one.PushNode(p.parseQualifiedName())
		list.PushNode(one.Finish())
		for p.at(token.COMMA) {
			p.bump(list)
			cont := cst.NewBuilder(cst.NK_SPECIALIZATION)
			cont.PushNode(p.parseQualifiedName())
			list.PushNode(cont.Finish())
		}
	}
	return list.Finish()
}
