// Package token defines the closed set of lexical token kinds produced by
// pkg/lexer and consumed by pkg/parser.
package token

import "fmt"

// Kind identifies the lexical category of a token. The set is closed:
// identifiers, keywords, operators, literals, trivia, and a catch-all error
// kind for bytes the lexer cannot classify.
type Kind int

const (
	EOF Kind = iota
	ERROR

	IDENT       // plain identifier: [A-Za-z_][A-Za-z0-9_]*
	QUOTED_NAME // 'quoted identifier', quotes included in text
	SHORT_NAME  // <'alias'> is parsed as LT QUOTED_NAME GT, not a single token

	INT_LITERAL
	DEC_LITERAL
	STRING_LITERAL

	// Trivia — preserved so the tree stays lossless.
	WHITESPACE
	LINE_COMMENT
	BLOCK_COMMENT

	// Punctuation / operators. Multi-character operators are lexed
	// maximal-munch (see pkg/lexer).
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	LPAREN    // (
	RPAREN    // )
	SEMI      // ;
	COMMA     // ,
	DOT       // .
	DOTDOT    // ..
	COLON     // :
	COLONCOLON
	COLONGT    // :>
	COLONGTGT  // :>>
	COLONCOLONGT // ::>
	ARROW      // ->
	FATARROW   // =>
	EQ         // =
	EQEQ       // ==
	NEQ        // !=
	LT
	LE
	GT
	GE
	PLUS
	MINUS
	STAR
	STARSTAR // **
	SLASH
	PERCENT
	QUESTION
	QUESTIONQUESTION // ??
	QUESTIONCOLON    // ?:
	AT               // @
	ATAT             // @@
	HASH             // #
	AMP              // &
	AMPAMP           // &&
	PIPE             // |
	PIPEPIPE         // ||
	BANG             // !

	// Keywords. Table-driven: pkg/lexer looks up IDENT text in Keywords.
	KW_PACKAGE
	KW_LIBRARY
	KW_PRIVATE
	KW_PUBLIC
	KW_PROTECTED
	KW_IMPORT
	KW_ALIAS
	KW_AS
	KW_FOR
	KW_FILTER

	KW_DEF
	KW_ABSTRACT
	KW_VARIATION
	KW_INDIVIDUAL
	KW_READONLY
	KW_DERIVED
	KW_PARALLEL
	KW_ORDERED
	KW_NONUNIQUE
	KW_PORTION
	KW_DEFAULT
	KW_END
	KW_IN
	KW_OUT
	KW_INOUT
	KW_REF

	KW_PART
	KW_PORT
	KW_ACTION
	KW_STATE
	KW_ATTRIBUTE
	KW_REQUIREMENT
	KW_CONSTRAINT
	KW_CONNECTION
	KW_INTERFACE
	KW_FLOW
	KW_ITEM
	KW_USE
	KW_CASE
	KW_VIEW
	KW_VIEWPOINT
	KW_RENDERING
	KW_METADATA
	KW_ENUM
	KW_OCCURRENCE
	KW_CALC
	KW_ANALYSIS
	KW_VERIFICATION
	KW_CONCERN
	KW_ALLOCATION
	KW_SATISFY
	KW_FRAME
	KW_PERFORM
	KW_EXHIBIT
	KW_INCLUDE
	KW_ASSERT
	KW_BIND
	KW_CONNECT
	KW_SUCCESSION
	KW_TRANSITION
	KW_FLOW_KW // "flow" as connecting-usage keyword (same lexeme as KW_FLOW)
	KW_MESSAGE
	KW_ACCEPT
	KW_SEND
	KW_VIA
	KW_TO
	KW_FROM
	KW_THEN
	KW_FIRST
	KW_DO
	KW_ENTRY
	KW_EXIT
	KW_IF
	KW_ELSE

	KW_SPECIALIZES // "specializes" keyword alternative to :>
	KW_SUBSETS
	KW_REDEFINES
	KW_CONJUGATES
	KW_TYPED
	KW_BY
	KW_ALL
	KW_NEW
	KW_HASTYPE
	KW_META
	KW_ISTYPE

	KW_TRUE
	KW_FALSE
	KW_NULL

	KW_COMMENT
	KW_DOC
	KW_ABOUT
	KW_LANGUAGE
)

var names = map[Kind]string{
	EOF: "EOF", ERROR: "ERROR", IDENT: "IDENT", QUOTED_NAME: "QUOTED_NAME",
	SHORT_NAME: "SHORT_NAME", INT_LITERAL: "INT_LITERAL", DEC_LITERAL: "DEC_LITERAL",
	STRING_LITERAL: "STRING_LITERAL", WHITESPACE: "WHITESPACE", LINE_COMMENT: "LINE_COMMENT",
	BLOCK_COMMENT: "BLOCK_COMMENT", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	LPAREN: "(", RPAREN: ")", SEMI: ";", COMMA: ",", DOT: ".", DOTDOT: "..", COLON: ":",
	COLONCOLON: "::", COLONGT: ":>", COLONGTGT: ":>>", COLONCOLONGT: "::>", ARROW: "->",
	FATARROW: "=>", EQ: "=", EQEQ: "==", NEQ: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=",
	PLUS: "+", MINUS: "-", STAR: "*", STARSTAR: "**", SLASH: "/", PERCENT: "%",
	QUESTION: "?", QUESTIONQUESTION: "??", QUESTIONCOLON: "?:", AT: "@", ATAT: "@@",
	HASH: "#", AMP: "&", AMPAMP: "&&", PIPE: "|", PIPEPIPE: "||", BANG: "!",
}

// String renders a human-readable name for kind, falling back to the
// keyword spelling for KW_* kinds.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	for text, kw := range Keywords {
		if kw == k {
			return text
		}
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTrivia reports whether a token kind is preserved but semantically
// invisible (whitespace and comments).
func (k Kind) IsTrivia() bool {
	return k == WHITESPACE || k == LINE_COMMENT || k == BLOCK_COMMENT
}

// Keywords maps reserved-word spellings to their keyword kind. An IDENT
// token whose text matches a key here is re-classified by the lexer.
var Keywords = map[string]Kind{
	"package": KW_PACKAGE, "library": KW_LIBRARY, "private": KW_PRIVATE,
	"public": KW_PUBLIC, "protected": KW_PROTECTED, "import": KW_IMPORT,
	"alias": KW_ALIAS, "as": KW_AS, "for": KW_FOR, "filter": KW_FILTER,

	"def": KW_DEF, "abstract": KW_ABSTRACT, "variation": KW_VARIATION,
	"individual": KW_INDIVIDUAL, "readonly": KW_READONLY, "derived": KW_DERIVED,
	"parallel": KW_PARALLEL, "ordered": KW_ORDERED, "nonunique": KW_NONUNIQUE,
	"portion": KW_PORTION, "default": KW_DEFAULT, "end": KW_END,
	"in": KW_IN, "out": KW_OUT, "inout": KW_INOUT, "ref": KW_REF,

	"part": KW_PART, "port": KW_PORT, "action": KW_ACTION, "state": KW_STATE,
	"attribute": KW_ATTRIBUTE, "requirement": KW_REQUIREMENT, "constraint": KW_CONSTRAINT,
	"connection": KW_CONNECTION, "interface": KW_INTERFACE, "flow": KW_FLOW,
	"item": KW_ITEM, "use": KW_USE, "case": KW_CASE, "view": KW_VIEW,
	"viewpoint": KW_VIEWPOINT, "rendering": KW_RENDERING, "metadata": KW_METADATA,
	"enum": KW_ENUM, "occurrence": KW_OCCURRENCE, "calc": KW_CALC,
	"analysis": KW_ANALYSIS, "verification": KW_VERIFICATION, "concern": KW_CONCERN,
	"allocation": KW_ALLOCATION, "satisfy": KW_SATISFY, "frame": KW_FRAME,
	"perform": KW_PERFORM, "exhibit": KW_EXHIBIT, "include": KW_INCLUDE,
	"assert": KW_ASSERT, "bind": KW_BIND, "connect": KW_CONNECT,
	"succession": KW_SUCCESSION, "transition": KW_TRANSITION, "message": KW_MESSAGE,
	"accept": KW_ACCEPT, "send": KW_SEND, "via": KW_VIA, "to": KW_TO, "from": KW_FROM,
	"then": KW_THEN, "first": KW_FIRST, "do": KW_DO, "entry": KW_ENTRY, "exit": KW_EXIT,
	"if": KW_IF, "else": KW_ELSE,

	"specializes": KW_SPECIALIZES, "subsets": KW_SUBSETS, "redefines": KW_REDEFINES,
	"conjugates": KW_CONJUGATES, "typed": KW_TYPED, "by": KW_BY, "all": KW_ALL,
	"new": KW_NEW, "hastype": KW_HASTYPE, "meta": KW_META, "istype": KW_ISTYPE,

	"true": KW_TRUE, "false": KW_FALSE, "null": KW_NULL,

	"comment": KW_COMMENT, "doc": KW_DOC, "about": KW_ABOUT, "language": KW_LANGUAGE,
}

// Token is a single lexical unit: its kind, the exact source slice it
// covers (including quotes/escapes for literals), and its byte offset.
// Concatenating every token's Text in order reproduces the input exactly.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

func (t Token) End() int { return t.Offset + len(t.Text) }
