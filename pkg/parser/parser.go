// Package parser implements a hand-written recursive-descent builder that
// turns a SysML or KerML token stream into a lossless pkg/cst tree.
//
// Entry points: ParseSysML and ParseKerML. Both share the bulk of the
// grammar (package/definition/usage/import/expression forms); the kerml
// flag only affects the definition-vs-usage classification in classify.go,
// where the KerML keywords listed in kermlDefOnlyKeywords (currently just
// `metadata`) are treated as definitions even without a trailing `def`
// (§4.2).
//
// parse never panics and never returns early: malformed input always
// yields a *cst.Tree plus a (possibly non-empty) diagnostics list.
package parser

import (
	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/lexer"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// ParseSysML parses SysML v2 textual notation.
func ParseSysML(src string) *cst.Tree { return parse(src, false) }

// ParseKerML parses KerML textual notation.
func ParseKerML(src string) *cst.Tree { return parse(src, true) }

// resyncSet is the set of token kinds the parser resynchronizes at after
// an error, plus any declaration-start keyword (checked separately).
var resyncSet = map[token.Kind]bool{
	token.SEMI: true, token.RBRACE: true, token.RBRACKET: true, token.RPAREN: true,
	token.EOF: true,
}

type parser struct {
	toks  []token.Token
	pos   int
	kerml bool
	diags []cst.SyntaxError
}

func parse(src string, kerml bool) *cst.Tree {
	p := &parser{toks: lexer.Lex(src), kerml: kerml}
	root := cst.NewBuilder(cst.NK_ROOT)
	for p.curKind() != token.EOF {
		before := p.pos
		p.parseMember(root)
		if p.pos == before {
			// Safety valve: parseMember must always make progress.
			p.errorAndSkip(root, "unexpected token")
		}
	}
	p.fill(root)
	return &cst.Tree{Root: root.Finish(), Diagnostics: p.diags}
}

// --- token-stream helpers -------------------------------------------------

// nth returns the nth non-trivia token starting at p.pos (0 = current),
// without consuming anything. Bounded lookahead; callers needing the
// definition-vs-usage classification window cap n at ~20 (§4.2, §9).
func (p *parser) nth(n int) token.Token {
	i := p.pos
	seen := 0
	for i < len(p.toks) {
		if !p.toks[i].Kind.IsTrivia() {
			if seen == n {
				return p.toks[i]
			}
			seen++
		}
		i++
	}
	return token.Token{Kind: token.EOF}
}

func (p *parser) curKind() token.Kind { return p.nth(0).Kind }

// fill drains any trivia tokens at the front of the stream into b.
func (p *parser) fill(b *cst.Builder) {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind.IsTrivia() {
		b.PushToken(p.toks[p.pos])
		p.pos++
	}
}

// bump drains leading trivia into b, then consumes and appends the next
// logical token unconditionally.
func (p *parser) bump(b *cst.Builder) token.Token {
	p.fill(b)
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	t := p.toks[p.pos]
	b.PushToken(t)
	p.pos++
	return t
}

// at reports whether the current logical token has kind k.
func (p *parser) at(k token.Kind) bool { return p.curKind() == k }

// expect consumes the current logical token if it matches k; otherwise it
// records a syntax error at the current position and leaves the stream
// untouched so the caller can attempt resynchronization.
func (p *parser) expect(b *cst.Builder, k token.Kind) bool {
	if p.at(k) {
		p.bump(b)
		return true
	}
	cur := p.nth(0)
	p.diags = append(p.diags, cst.SyntaxError{
		Message: "expected " + k.String() + ", found " + cur.Kind.String(),
		Start:   cur.Offset, End: cur.End(),
	})
	return false
}

// errorAndSkip wraps the offending token in an NK_ERROR node and advances
// past it, resynchronizing at the nearest token in resyncSet or a
// declaration-start keyword (§4.2).
func (p *parser) errorAndSkip(b *cst.Builder, msg string) {
	cur := p.nth(0)
	p.diags = append(p.diags, cst.SyntaxError{Message: msg, Start: cur.Offset, End: cur.End()})

	errBuilder := cst.NewBuilder(cst.NK_ERROR)
	for {
		k := p.curKind()
		if k == token.EOF || resyncSet[k] || isDeclStartKeyword(k) {
			break
		}
		p.bump(errBuilder)
	}
	if p.at(token.SEMI) {
		p.bump(errBuilder)
	}
	b.PushNode(errBuilder.Finish())
}

func isDeclStartKeyword(k token.Kind) bool {
	switch k {
	case token.KW_PACKAGE, token.KW_LIBRARY, token.KW_IMPORT, token.KW_ALIAS,
		token.KW_PART, token.KW_PORT, token.KW_ACTION, token.KW_STATE,
		token.KW_ATTRIBUTE, token.KW_REQUIREMENT, token.KW_CONSTRAINT,
		token.KW_CONNECTION, token.KW_INTERFACE, token.KW_FLOW, token.KW_ITEM,
		token.KW_USE, token.KW_VIEW, token.KW_VIEWPOINT, token.KW_RENDERING,
		token.KW_METADATA, token.KW_ENUM, token.KW_OCCURRENCE, token.KW_CALC,
		token.KW_ANALYSIS, token.KW_VERIFICATION, token.KW_CONCERN,
		token.KW_ALLOCATION, token.KW_BIND, token.KW_CONNECT, token.KW_SUCCESSION,
		token.KW_TRANSITION, token.KW_PERFORM, token.KW_EXHIBIT, token.KW_INCLUDE,
		token.KW_SATISFY, token.KW_FRAME, token.KW_ASSERT, token.KW_ACCEPT, token.KW_SEND,
		token.KW_PUBLIC, token.KW_PRIVATE, token.KW_PROTECTED:
		return true
	}
	return false
}
