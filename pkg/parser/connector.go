package parser

import (
	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// connectorClauseKeywords introduce the trailing endpoint clauses a
// relationship-like usage may carry: `via` (accept/send payload port),
// `from`/`to` (flow endpoints), and `by` (satisfy target). Each opens an
// NK_CONNECTOR_ENDS node wrapping the clause keyword and the expression it
// introduces, which pkg/extractor reads back out (§4.4 point 6).
var connectorClauseKeywords = map[token.Kind]bool{
	token.KW_VIA: true, token.KW_FROM: true, token.KW_TO: true, token.KW_BY: true,
}

// parseConnectorClauses consumes every `via`/`from`/`to`/`by` clause at the
// current position, in source order, appending one NK_CONNECTOR_ENDS per
// clause.
func (p *parser) parseConnectorClauses(b *cst.Builder) {
	for connectorClauseKeywords[p.curKind()] {
		cb := cst.NewBuilder(cst.NK_CONNECTOR_ENDS)
		p.bump(cb) // via | from | to | by
		cb.PushNode(p.parseExpr())
		b.PushNode(cb.Finish())
	}
}

// parseChainRefTail parses the body of `perform`/`exhibit`/`include`: a
// feature-chain reference to the performed action, exhibited state, or
// included use case, with no declared name of its own (§3.4's Performs,
// Exhibits, Includes relationships).
func (p *parser) parseChainRefTail(b *cst.Builder) {
	if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
		b.PushNode(p.parseExpr())
	}
	b.PushNode(p.parseSpecializationList())
	if p.at(token.LBRACE) {
		b.PushNode(p.parseBody())
	} else {
		p.expect(b, token.SEMI)
	}
}

// parseSatisfyTail parses `satisfy <Requirement> [by <target>] (; | body)`.
// The requirement reference becomes a Satisfies relationship; the `by`
// clause (if present) becomes a By relationship (§3.4).
func (p *parser) parseSatisfyTail(b *cst.Builder) {
	if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
		b.PushNode(p.parseQualifiedName())
	}
	p.parseConnectorClauses(b)
	if p.at(token.LBRACE) {
		b.PushNode(p.parseBody())
	} else {
		p.expect(b, token.SEMI)
	}
}

// parseAcceptSendTail parses `accept|send <name> [: Type] [via <port>]
// (; | body)`.
func (p *parser) parseAcceptSendTail(b *cst.Builder) {
	if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
		p.parseNameToken(b)
		p.parseShortName(b)
	}
	b.PushNode(p.parseSpecializationList())
	p.parseConnectorClauses(b)
	if p.at(token.LBRACE) {
		b.PushNode(p.parseBody())
	} else {
		p.expect(b, token.SEMI)
	}
}

// parseBindTail parses `bind <chain> = <chain> (; | body)` (§3.4's generic
// feature-chain connector; both sides end up as expression type_refs via
// pkg/extractor's CollectTypeRefChains rather than a dedicated
// relationship kind, since neither endpoint is itself a declared symbol).
func (p *parser) parseBindTail(b *cst.Builder) {
	b.PushNode(p.parseExpr())
	p.expect(b, token.EQ)
	b.PushNode(p.parseExpr())
	if p.at(token.LBRACE) {
		b.PushNode(p.parseBody())
	} else {
		p.expect(b, token.SEMI)
	}
}

// parseConnectTail parses `connect <chain> to <chain> (; | body)`.
func (p *parser) parseConnectTail(b *cst.Builder) {
	b.PushNode(p.parseExpr())
	p.expect(b, token.KW_TO)
	b.PushNode(p.parseExpr())
	if p.at(token.LBRACE) {
		b.PushNode(p.parseBody())
	} else {
		p.expect(b, token.SEMI)
	}
}

// parseSuccessionTail parses `succession [name] first <chain> then <chain>
// (; | body)`. The optional name is consumed by the generic name-parsing
// step in parseDefinitionOrUsage before this tail runs.
func (p *parser) parseSuccessionTail(b *cst.Builder) {
	p.parseFirstThenClauses(b)
	if p.at(token.LBRACE) {
		b.PushNode(p.parseBody())
	} else {
		p.expect(b, token.SEMI)
	}
}

// parseTransitionTail parses `transition [name] first <chain> [accept
// <name> [: Type] [via <port>]] then <chain> (; | body)`. The accept
// clause between `first` and `then`, when present, is parsed as its own
// nested usage (with no terminator of its own) so its `via` payload still
// produces a Via relationship.
func (p *parser) parseTransitionTail(b *cst.Builder) {
	if p.at(token.KW_FIRST) {
		fb := cst.NewBuilder(cst.NK_CONNECTOR_ENDS)
		p.bump(fb) // first
		fb.PushNode(p.parseExpr())
		b.PushNode(fb.Finish())
	}
	if p.at(token.KW_ACCEPT) || p.at(token.KW_SEND) {
		ab := cst.NewBuilder(cst.NK_USAGE)
		p.bump(ab) // accept | send
		if p.at(token.IDENT) || p.at(token.QUOTED_NAME) {
			p.parseNameToken(ab)
			p.parseShortName(ab)
		}
		ab.PushNode(p.parseSpecializationList())
		p.parseConnectorClauses(ab)
		b.PushNode(ab.Finish())
	}
	if p.at(token.KW_THEN) {
		tb := cst.NewBuilder(cst.NK_CONNECTOR_ENDS)
		p.bump(tb) // then
		tb.PushNode(p.parseExpr())
		b.PushNode(tb.Finish())
	}
	if p.at(token.LBRACE) {
		b.PushNode(p.parseBody())
	} else {
		p.expect(b, token.SEMI)
	}
}

// parseFirstThenClauses consumes a `first <chain> then <chain>` pair for
// succession (§3.4's SuccessionFirst/SuccessionThen). parseTransitionTail
// parses its own first/then clauses inline, since an accept clause may sit
// between them.
func (p *parser) parseFirstThenClauses(b *cst.Builder) {
	if p.at(token.KW_FIRST) {
		fb := cst.NewBuilder(cst.NK_CONNECTOR_ENDS)
		p.bump(fb) // first
		fb.PushNode(p.parseExpr())
		b.PushNode(fb.Finish())
	}
	if p.at(token.KW_THEN) {
		tb := cst.NewBuilder(cst.NK_CONNECTOR_ENDS)
		p.bump(tb) // then
		tb.PushNode(p.parseExpr())
		b.PushNode(tb.Finish())
	}
}
