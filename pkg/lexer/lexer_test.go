package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysml-tools/sysmlcore/pkg/token"
)

func reconstruct(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}

func TestLexLosslessRoundTrip(t *testing.T) {
	srcs := []string{
		"",
		"package P { part def Thing; }",
		"/* block */ // line\n\tpart def Foo :> Bar { doc /* d */ attribute x : Integer; }",
		"part def P { attribute x = 1.5e10; attribute y = 'quoted name'; }",
		"§weird€bytes",
	}
	for _, src := range srcs {
		toks := Lex(src)
		assert.Equal(t, src, reconstruct(toks), "lexing must be lossless for %q", src)
		require.NotEmpty(t, toks)
		assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
		assert.Empty(t, toks[len(toks)-1].Text)
	}
}

func TestLexKeywordVsIdent(t *testing.T) {
	toks := Lex("part partition")
	require.Len(t, toks, 4) // KW_PART, WHITESPACE, IDENT, EOF
	assert.Equal(t, token.KW_PART, toks[0].Kind)
	assert.Equal(t, token.IDENT, toks[2].Kind)
	assert.Equal(t, "partition", toks[2].Text)
}

func TestLexMaximalMunchOperators(t *testing.T) {
	cases := map[string][]token.Kind{
		":>>": {token.COLONGTGT},
		"::>": {token.COLONCOLONGT},
		":>":  {token.COLONGT},
		"::":  {token.COLONCOLON},
		":":   {token.COLON},
		"->":  {token.ARROW},
		"==":  {token.EQEQ},
		"=":   {token.EQ},
	}
	for src, want := range cases {
		toks := Lex(src)
		got := toks[:len(toks)-1] // drop EOF
		require.Len(t, got, len(want), "src=%q", src)
		for i, k := range want {
			assert.Equal(t, k, got[i].Kind, "src=%q", src)
		}
	}
}

func TestLexQuotedNameWithEscape(t *testing.T) {
	toks := Lex(`'it\'s quoted'`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.QUOTED_NAME, toks[0].Kind)
	assert.Equal(t, `'it\'s quoted'`, toks[0].Text)
}

func TestLexUnterminatedBlockCommentConsumesToEOF(t *testing.T) {
	toks := Lex("/* never closed")
	require.Len(t, toks, 2)
	assert.Equal(t, token.BLOCK_COMMENT, toks[0].Kind)
	assert.Equal(t, "/* never closed", toks[0].Text)
}

func TestLexNumberLiterals(t *testing.T) {
	toks := Lex("42 3.14 2.5e10 2.5e 7.")
	var kinds []token.Kind
	for _, tk := range toks {
		if tk.Kind != token.WHITESPACE && tk.Kind != token.EOF {
			kinds = append(kinds, tk.Kind)
		}
	}
	// "2.5e" backs off the exponent entirely since no digit follows 'e',
	// leaving a bare trailing "e" to be re-lexed as its own identifier;
	// "7." similarly never consumes the dot since nothing follows it.
	assert.Equal(t, []token.Kind{
		token.INT_LITERAL, token.DEC_LITERAL, token.DEC_LITERAL,
		token.DEC_LITERAL, token.IDENT, token.INT_LITERAL, token.DOT,
	}, kinds)
}

func TestLexUnrecognizedByteBecomesErrorAndContinues(t *testing.T) {
	toks := Lex("a$b")
	require.Len(t, toks, 4) // IDENT, ERROR, IDENT, EOF
	assert.Equal(t, token.IDENT, toks[0].Kind)
	assert.Equal(t, token.ERROR, toks[1].Kind)
	assert.Equal(t, "$", toks[1].Text)
	assert.Equal(t, token.IDENT, toks[2].Kind)
}

func TestLexEveryByteCovered(t *testing.T) {
	src := "part def Foo :> Bar {\n  attribute x: Integer = 3;\n}\n"
	toks := Lex(src)
	pos := 0
	for _, tk := range toks {
		if tk.Kind == token.EOF {
			continue
		}
		require.Equal(t, pos, tk.Offset, "token %v starts at unexpected offset", tk)
		pos = tk.End()
	}
	assert.Equal(t, len(src), pos)
}
