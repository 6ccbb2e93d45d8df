package parser

import (
	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// Expression grammar, precedence low to high:
//
//	logicalOr     := logicalAnd (('||') logicalAnd)*
//	logicalAnd    := equality (('&&') equality)*
//	equality      := relational (('=='|'!=') relational)*
//	relational    := additive (('<'|'<='|'>'|'>=') additive)*
//	additive      := multiplicative (('+'|'-') multiplicative)*
//	multiplicative:= classify (('*'|'/'|'%') classify)*
//	classify      := unary (('as'|'hastype'|'meta'|'@@') qualifiedName)*
//	unary         := ('-'|'!') unary | arrowChain
//	arrowChain    := postfix ('->' postfix)*
//	postfix       := primary ('.' name | '(' argList ')' | '[' expr ']' | '#(' expr ')')*
//	primary        := literal | name | '(' expr ')' | 'new' qname argList?
//	                | '{' expr* '}' | '@' qname | 'all' qname
//
// This covers every expression form §4.2 and §4.6 name (feature chains,
// invocation, indexing, new-instance, block expressions, arrow pipelines,
// metadata access, the `all` quantifier, and the classification operators)
// without a separate production per built-in function — calc bodies and
// constraint predicates all parse through the same entry point.
func (p *parser) parseExpr() *cst.GreenNode { return p.parseLogicalOr() }

func (p *parser) parseBinaryLevel(next func() *cst.GreenNode, ops ...token.Kind) *cst.GreenNode {
	n := next()
	for {
		matched := false
		for _, op := range ops {
			if p.at(op) {
				matched = true
				break
			}
		}
		if !matched {
			return n
		}
		b := cst.NewBuilder(cst.NK_EXPR_BINARY)
		b.PushNode(n)
		p.bump(b)
		b.PushNode(next())
		n = b.Finish()
	}
}

func (p *parser) parseLogicalOr() *cst.GreenNode {
	return p.parseBinaryLevel(p.parseLogicalAnd, token.PIPEPIPE)
}

func (p *parser) parseLogicalAnd() *cst.GreenNode {
	return p.parseBinaryLevel(p.parseEquality, token.AMPAMP)
}

func (p *parser) parseEquality() *cst.GreenNode {
	return p.parseBinaryLevel(p.parseRelational, token.EQEQ, token.NEQ)
}

func (p *parser) parseRelational() *cst.GreenNode {
	return p.parseBinaryLevel(p.parseAdditive, token.LT, token.LE, token.GT, token.GE)
}

func (p *parser) parseAdditive() *cst.GreenNode {
	return p.parseBinaryLevel(p.parseMultiplicative, token.PLUS, token.MINUS)
}

func (p *parser) parseMultiplicative() *cst.GreenNode {
	return p.parseBinaryLevel(p.parseClassify, token.STAR, token.SLASH, token.PERCENT)
}

// parseClassify handles `as`, `hastype`, `meta`, and `@@`, all of which
// take a type reference on the right rather than another expression.
func (p *parser) parseClassify() *cst.GreenNode {
	n := p.parseUnary()
	for p.at(token.KW_AS) || p.at(token.KW_HASTYPE) || p.at(token.KW_META) || p.at(token.ATAT) {
		b := cst.NewBuilder(cst.NK_EXPR_CLASSIFY)
		b.PushNode(n)
		p.bump(b)
		b.PushNode(p.parseQualifiedName())
		n = b.Finish()
	}
	return n
}

func (p *parser) parseUnary() *cst.GreenNode {
	if p.at(token.MINUS) || p.at(token.BANG) {
		b := cst.NewBuilder(cst.NK_EXPR_UNARY)
		p.bump(b)
		b.PushNode(p.parseUnary())
		return b.Finish()
	}
	return p.parseArrowChain()
}

// parseArrowChain handles `x->op(args)` pipelines (§4.2's arrow-expression
// bullet). The right-hand side is itself a postfix expression so that
// `x->reduce('+')` and `x->y->z` both fall out of the same rule.
func (p *parser) parseArrowChain() *cst.GreenNode {
	n := p.parsePostfix()
	for p.at(token.ARROW) {
		b := cst.NewBuilder(cst.NK_EXPR_ARROW)
		b.PushNode(n)
		p.bump(b)
		b.PushNode(p.parsePostfix())
		n = b.Finish()
	}
	return n
}

func (p *parser) parsePostfix() *cst.GreenNode {
	n := p.parsePrimary()
	for {
		switch {
		case p.at(token.DOT):
			b := cst.NewBuilder(cst.NK_EXPR_CHAIN)
			b.PushNode(n)
			p.bump(b)
			mb := cst.NewBuilder(cst.NK_EXPR_NAME)
			p.parseNameToken(mb)
			b.PushNode(mb.Finish())
			n = b.Finish()
		case p.at(token.LPAREN):
			b := cst.NewBuilder(cst.NK_EXPR_INVOCATION)
			b.PushNode(n)
			b.PushNode(p.parseArgList())
			n = b.Finish()
		case p.at(token.LBRACKET):
			b := cst.NewBuilder(cst.NK_EXPR_INDEX)
			b.PushNode(n)
			p.bump(b)
			b.PushNode(p.parseExpr())
			p.expect(b, token.RBRACKET)
			n = b.Finish()
		case p.at(token.HASH) && p.nth(1).Kind == token.LPAREN:
			b := cst.NewBuilder(cst.NK_EXPR_INDEX)
			b.PushNode(n)
			p.bump(b) // #
			p.bump(b) // (
			b.PushNode(p.parseExpr())
			p.expect(b, token.RPAREN)
			n = b.Finish()
		default:
			return n
		}
	}
}

func (p *parser) parsePrimary() *cst.GreenNode {
	switch p.curKind() {
	case token.INT_LITERAL, token.DEC_LITERAL, token.STRING_LITERAL,
		token.KW_TRUE, token.KW_FALSE, token.KW_NULL:
		b := cst.NewBuilder(cst.NK_EXPR_LITERAL)
		p.bump(b)
		return b.Finish()

	case token.IDENT, token.QUOTED_NAME:
		b := cst.NewBuilder(cst.NK_EXPR_NAME)
		p.bump(b)
		return b.Finish()

	case token.LPAREN:
		b := cst.NewBuilder(cst.NK_EXPR_PAREN)
		p.bump(b)
		b.PushNode(p.parseExpr())
		p.expect(b, token.RPAREN)
		return b.Finish()

	case token.KW_NEW:
		b := cst.NewBuilder(cst.NK_EXPR_NEW)
		p.bump(b)
		b.PushNode(p.parseQualifiedName())
		if p.at(token.LPAREN) {
			b.PushNode(p.parseArgList())
		}
		return b.Finish()

	case token.LBRACE:
		b := cst.NewBuilder(cst.NK_EXPR_BLOCK)
		p.bump(b)
		for !p.at(token.RBRACE) && p.curKind() != token.EOF {
			before := p.pos
			b.PushNode(p.parseExpr())
			if p.at(token.SEMI) {
				p.bump(b)
			}
			if p.pos == before {
				p.errorAndSkip(b, "unexpected token in block expression")
			}
		}
		p.expect(b, token.RBRACE)
		return b.Finish()

	case token.AT:
		b := cst.NewBuilder(cst.NK_EXPR_METADATA_ACCESS)
		p.bump(b)
		b.PushNode(p.parseQualifiedName())
		return b.Finish()

	case token.KW_ALL:
		b := cst.NewBuilder(cst.NK_EXPR_ALL)
		p.bump(b)
		b.PushNode(p.parseQualifiedName())
		return b.Finish()

	default:
		b := cst.NewBuilder(cst.NK_ERROR)
		cur := p.nth(0)
		p.diags = append(p.diags, cst.SyntaxError{
			Message: "expected an expression, found " + cur.Kind.String(),
			Start:   cur.Offset, End: cur.End(),
		})
		if cur.Kind != token.EOF {
			p.bump(b)
		}
		return b.Finish()
	}
}

// parseArgList parses `( (name '=')? expr (',' (name '=')? expr)* )`.
func (p *parser) parseArgList() *cst.GreenNode {
	b := cst.NewBuilder(cst.NK_ARG_LIST)
	p.bump(b) // (
	if !p.at(token.RPAREN) {
		b.PushNode(p.parseArg())
		for p.at(token.COMMA) {
			p.bump(b)
			b.PushNode(p.parseArg())
		}
	}
	p.expect(b, token.RPAREN)
	return b.Finish()
}

func (p *parser) parseArg() *cst.GreenNode {
	b := cst.NewBuilder(cst.NK_ARG)
	if (p.at(token.IDENT) || p.at(token.QUOTED_NAME)) && p.nth(1).Kind == token.EQ {
		p.bump(b) // name
		p.bump(b) // =
	}
	b.PushNode(p.parseExpr())
	return b.Finish()
}
