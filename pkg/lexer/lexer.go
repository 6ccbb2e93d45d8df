// Package lexer turns SysML/KerML source bytes into a flat token stream.
//
// The lexer never fails: unrecognized bytes become single-byte ERROR
// tokens and scanning continues. Every byte of the input is covered by
// exactly one token, including whitespace and comments, so pkg/cst can
// build a lossless tree directly from the stream.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// Lex scans src in full and returns every token, in order, terminated by
// a single EOF token whose Text is empty.
func Lex(src string) []token.Token {
	l := &lexer{src: src}
	var out []token.Token
	for {
		t := l.next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) byteAt(off int) byte {
	if off < 0 || off >= len(l.src) {
		return 0
	}
	return l.src[off]
}

func (l *lexer) peek() byte  { return l.byteAt(l.pos) }
func (l *lexer) peek2() byte { return l.byteAt(l.pos + 1) }
func (l *lexer) peek3() byte { return l.byteAt(l.pos + 2) }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

func (l *lexer) next() token.Token {
	start := l.pos
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Text: "", Offset: start}
	}

	b := l.peek()

	switch {
	case isSpace(b):
		return l.lexWhitespace()
	case b == '/' && l.peek2() == '/':
		return l.lexLineComment()
	case b == '/' && l.peek2() == '*':
		return l.lexBlockComment()
	case isIdentStart(b):
		return l.lexIdent()
	case b == '\'':
		return l.lexQuotedName()
	case b == '"':
		return l.lexString()
	case isDigit(b):
		return l.lexNumber()
	}

	return l.lexOperator()
}

func (l *lexer) lexWhitespace() token.Token {
	start := l.pos
	for l.pos < len(l.src) && isSpace(l.peek()) {
		l.pos++
	}
	return token.Token{Kind: token.WHITESPACE, Text: l.src[start:l.pos], Offset: start}
}

func (l *lexer) lexLineComment() token.Token {
	start := l.pos
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.pos++
	}
	return token.Token{Kind: token.LINE_COMMENT, Text: l.src[start:l.pos], Offset: start}
}

func (l *lexer) lexBlockComment() token.Token {
	start := l.pos
	l.pos += 2 // consume "/*"
	for l.pos < len(l.src) {
		if l.peek() == '*' && l.peek2() == '/' {
			l.pos += 2
			break
		}
		l.pos++
	}
	return token.Token{Kind: token.BLOCK_COMMENT, Text: l.src[start:l.pos], Offset: start}
}

func (l *lexer) lexIdent() token.Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.peek()) {
		l.pos++
	}
	text := l.src[start:l.pos]
	kind := token.IDENT
	if kw, ok := token.Keywords[text]; ok {
		kind = kw
	}
	return token.Token{Kind: kind, Text: text, Offset: start}
}

// lexQuotedName scans 'a quoted identifier', tolerating a \' escape.
// The token text includes the surrounding quotes.
func (l *lexer) lexQuotedName() token.Token {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		c := l.peek()
		if c == '\\' && l.peek2() == '\'' {
			l.pos += 2
			continue
		}
		if c == '\'' {
			l.pos++
			break
		}
		l.pos++
	}
	return token.Token{Kind: token.QUOTED_NAME, Text: l.src[start:l.pos], Offset: start}
}

func (l *lexer) lexString() token.Token {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		c := l.peek()
		if c == '\\' && l.peek2() == '"' {
			l.pos += 2
			continue
		}
		if c == '"' {
			l.pos++
			break
		}
		l.pos++
	}
	return token.Token{Kind: token.STRING_LITERAL, Text: l.src[start:l.pos], Offset: start}
}

func (l *lexer) lexNumber() token.Token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.pos++
	}
	kind := token.INT_LITERAL
	if l.peek() == '.' && isDigit(l.peek2()) {
		kind = token.DEC_LITERAL
		l.pos++ // consume '.'
		for l.pos < len(l.src) && isDigit(l.peek()) {
			l.pos++
		}
		if l.peek() == 'e' || l.peek() == 'E' {
			save := l.pos
			l.pos++
			if l.peek() == '+' || l.peek() == '-' {
				l.pos++
			}
			if isDigit(l.peek()) {
				for l.pos < len(l.src) && isDigit(l.peek()) {
					l.pos++
				}
			} else {
				l.pos = save
			}
		}
	}
	return token.Token{Kind: kind, Text: l.src[start:l.pos], Offset: start}
}

// operator table, longest spelling first within each starting byte so
// maximal-munch falls out of a simple linear scan.
var operators = []struct {
	text string
	kind token.Kind
}{
	{":>>", token.COLONGTGT},
	{"::>", token.COLONCOLONGT},
	{":>", token.COLONGT},
	{"::", token.COLONCOLON},
	{"..", token.DOTDOT},
	{"->", token.ARROW},
	{"=>", token.FATARROW},
	{"==", token.EQEQ},
	{"!=", token.NEQ},
	{"<=", token.LE},
	{">=", token.GE},
	{"**", token.STARSTAR},
	{"??", token.QUESTIONQUESTION},
	{"?:", token.QUESTIONCOLON},
	{"@@", token.ATAT},
	{"&&", token.AMPAMP},
	{"||", token.PIPEPIPE},
	{"{", token.LBRACE},
	{"}", token.RBRACE},
	{"[", token.LBRACKET},
	{"]", token.RBRACKET},
	{"(", token.LPAREN},
	{")", token.RPAREN},
	{";", token.SEMI},
	{",", token.COMMA},
	{".", token.DOT},
	{":", token.COLON},
	{"=", token.EQ},
	{"<", token.LT},
	{">", token.GT},
	{"+", token.PLUS},
	{"-", token.MINUS},
	{"*", token.STAR},
	{"/", token.SLASH},
	{"%", token.PERCENT},
	{"?", token.QUESTION},
	{"@", token.AT},
	{"#", token.HASH},
	{"&", token.AMP},
	{"|", token.PIPE},
	{"!", token.BANG},
}

func (l *lexer) lexOperator() token.Token {
	rest := l.src[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op.text) {
			start := l.pos
			l.pos += len(op.text)
			return token.Token{Kind: op.kind, Text: op.text, Offset: start}
		}
	}

	// Unrecognized byte: emit a single-rune ERROR token and keep going.
	start := l.pos
	_, size := utf8.DecodeRuneInString(rest)
	if size == 0 {
		size = 1
	}
	l.pos += size
	return token.Token{Kind: token.ERROR, Text: l.src[start:l.pos], Offset: start}
}
