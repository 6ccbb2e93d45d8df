package parser

import (
	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// parseMember parses one top-level or body-level member and pushes it onto
// parent: a package/library, an import, an alias, a comment/doc, a bare
// metadata annotation, or a definition/usage dispatched through classify.
func (p *parser) parseMember(parent *cst.Builder) {
	switch {
	case p.at(token.KW_PACKAGE) || p.at(token.KW_LIBRARY):
		parent.PushNode(p.parsePackage())

	case p.at(token.KW_PUBLIC) && p.nth(1).Kind == token.KW_IMPORT:
		parent.PushNode(p.parseImport())

	case p.at(token.KW_IMPORT):
		parent.PushNode(p.parseImport())

	case p.at(token.KW_ALIAS):
		parent.PushNode(p.parseAlias())

	case p.at(token.KW_COMMENT) || p.at(token.KW_DOC):
		parent.PushNode(p.parseCommentOrDoc())

	case p.at(token.AT):
		parent.PushNode(p.parseMetadataAnnotation())

	case p.at(token.HASH):
		prefix := cst.NewBuilder(cst.NK_METADATA_PREFIX)
		p.bump(prefix) // #
		prefix.PushNode(p.parseQualifiedName())
		cls := p.classify()
		if cls.primary == token.EOF {
			p.errorAndSkip(parent, "expected a declaration after metadata prefix")
			return
		}
		parent.PushNode(p.parseDefinitionOrUsage(cls, prefix.Finish()))

	default:
		cls := p.classify()
		if cls.primary == token.EOF {
			p.errorAndSkip(parent, "expected a package, import, alias, or declaration")
			return
		}
		parent.PushNode(p.parseDefinitionOrUsage(cls, nil))
	}
}

// parsePackage parses `package|library [Name [<'short'>]] (body | ';')`.
func (p *parser) parsePackage() *cst.GreenNode {
	b := cst.NewBuilder(cst.NK_PACKAGE)
	p.bump(b) // package | library
	if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
		b.PushNode(p.parseQualifiedName())
		p.parseShortName(b)
	}
	if p.at(token.LBRACE) {
		b.PushNode(p.parseBody())
	} else {
		p.expect(b, token.SEMI)
	}
	return b.Finish()
}

// parseBody parses `{ member* }`.
func (p *parser) parseBody() *cst.GreenNode {
	b := cst.NewBuilder(cst.NK_BODY)
	p.bump(b) // {
	for !p.at(token.RBRACE) && p.curKind() != token.EOF {
		before := p.pos
		p.parseMember(b)
		if p.pos == before {
			p.errorAndSkip(b, "unexpected token in body")
		}
	}
	p.expect(b, token.RBRACE)
	return b.Finish()
}

// parseImportPath parses the target of an import: a qualified name
// optionally terminated by `::*` (wildcard) or `::**` (recursive
// wildcard) (§3.5).
func (p *parser) parseImportPath(b *cst.Builder) {
	p.parseNameToken(b)
	for p.at(token.COLONCOLON) {
		p.bump(b)
		if p.at(token.STAR) {
			p.bump(b)
			return
		}
		if p.at(token.STARSTAR) {
			p.bump(b)
			return
		}
		p.parseNameToken(b)
	}
}

// parseImport parses all five import shapes from §3.5: selective,
// wildcard, recursive wildcard, filtered (one or more `[@Meta]` suffixes),
// and `public`-prefixed re-export.
func (p *parser) parseImport() *cst.GreenNode {
	b := cst.NewBuilder(cst.NK_IMPORT)
	if p.at(token.KW_PUBLIC) {
		p.bump(b)
	}
	p.expect(b, token.KW_IMPORT)
	p.parseImportPath(b)
	for p.at(token.LBRACKET) && p.nth(1).Kind == token.AT {
		fb := cst.NewBuilder(cst.NK_FILTER_PACKAGE)
		p.bump(fb) // [
		p.bump(fb) // @
		fb.PushNode(p.parseQualifiedName())
		p.expect(fb, token.RBRACKET)
		b.PushNode(fb.Finish())
	}
	p.expect(b, token.SEMI)
	return b.Finish()
}

// parseAlias parses `alias Name [<'short'>] for QualifiedName;`.
func (p *parser) parseAlias() *cst.GreenNode {
	b := cst.NewBuilder(cst.NK_ALIAS)
	p.bump(b) // alias
	if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
		p.parseNameToken(b)
		p.parseShortName(b)
	}
	if p.at(token.KW_FOR) {
		p.bump(b)
		b.PushNode(p.parseQualifiedName())
	}
	p.expect(b, token.SEMI)
	return b.Finish()
}

// parseCommentOrDoc parses `comment [Name] [about Target] /*...*/ [;]` or
// `doc [Name] /*...*/ [;]`. The block comment itself is never consumed
// explicitly — it is trivia that bump/fill attach to whichever token
// follows, so it ends up a leading child of the closing `;` (or of the
// next member, for an unterminated comment) exactly the way any other
// leading doc comment would (§4.9 "documentation = leading comment
// trivia attached to the declaration").
func (p *parser) parseCommentOrDoc() *cst.GreenNode {
	b := cst.NewBuilder(cst.NK_COMMENT)
	p.bump(b) // comment | doc
	if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
		p.parseNameToken(b)
	}
	if p.at(token.KW_ABOUT) {
		p.bump(b)
		b.PushNode(p.parseQualifiedName())
	}
	if p.at(token.SEMI) {
		p.bump(b)
	}
	return b.Finish()
}

// parseMetadataAnnotation parses a bare `@Name { ... }` or `@Name;`
// metadata annotation used as a standalone member (as opposed to a
// `#Name` prefix on a declaration) (§3.6).
func (p *parser) parseMetadataAnnotation() *cst.GreenNode {
	b := cst.NewBuilder(cst.NK_METADATA_ANNOTATION)
	p.bump(b) // @
	b.PushNode(p.parseQualifiedName())
	if p.at(token.LBRACE) {
		b.PushNode(p.parseBody())
	} else {
		p.expect(b, token.SEMI)
	}
	return b.Finish()
}

// parseDefinitionOrUsage parses one Definition or Usage per §3.4/§4.2:
// arbitrary-order prefix modifiers, the primary keyword (+ `def` for a
// definition), then either a keyword-specific tail (perform/exhibit/
// include/satisfy/accept/send/bind/connect/succession/transition, each in
// connector.go) or the generic tail: an optional declared name with short
// name, an optional multiplicity, a specialization list, optional
// from/to/via/by connector clauses, an optional value clause, and finally
// a body or terminating `;`.
func (p *parser) parseDefinitionOrUsage(cls classification, metadataPrefix *cst.GreenNode) *cst.GreenNode {
	kind := cst.NK_USAGE
	if cls.isDefinition {
		kind = cst.NK_DEFINITION
	}
	b := cst.NewBuilder(kind)
	b.PushNode(metadataPrefix)

	for modifierKeywords[p.curKind()] {
		p.bump(b)
	}
	p.bump(b) // primary keyword
	if cls.isDefinition && p.at(token.KW_DEF) {
		p.bump(b)
	}

	switch cls.primary {
	case token.KW_PERFORM, token.KW_EXHIBIT, token.KW_INCLUDE:
		p.parseChainRefTail(b)
		return b.Finish()
	case token.KW_SATISFY:
		p.parseSatisfyTail(b)
		return b.Finish()
	case token.KW_ACCEPT, token.KW_SEND:
		p.parseAcceptSendTail(b)
		return b.Finish()
	case token.KW_BIND:
		p.parseBindTail(b)
		return b.Finish()
	case token.KW_CONNECT:
		p.parseConnectTail(b)
		return b.Finish()
	case token.KW_SUCCESSION:
		if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
			p.parseNameToken(b)
			p.parseShortName(b)
		}
		p.parseSuccessionTail(b)
		return b.Finish()
	case token.KW_TRANSITION:
		if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
			p.parseNameToken(b)
			p.parseShortName(b)
		}
		p.parseTransitionTail(b)
		return b.Finish()
	}

	if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
		p.parseNameToken(b)
		p.parseShortName(b)
	}

	if p.at(token.LBRACKET) {
		p.parseMultiplicity(b)
	}

	b.PushNode(p.parseSpecializationList())
	p.parseConnectorClauses(b) // flow's `from ... to ...`, or a bare `via` payload

	if p.at(token.EQ) {
		vb := cst.NewBuilder(cst.NK_VALUE_CLAUSE)
		p.bump(vb)
		vb.PushNode(p.parseExpr())
		b.PushNode(vb.Finish())
	}

	if p.at(token.LBRACE) {
		b.PushNode(p.parseBody())
	} else {
		p.expect(b, token.SEMI)
	}

	return b.Finish()
}
