package parser

import "github.com/sysml-tools/sysmlcore/pkg/token"

// modifierKeywords are prefix modifiers that may appear in arbitrary order
// before the primary keyword of a definition or usage (§4.2).
var modifierKeywords = map[token.Kind]bool{
	token.KW_ABSTRACT: true, token.KW_VARIATION: true, token.KW_INDIVIDUAL: true,
	token.KW_READONLY: true, token.KW_DERIVED: true, token.KW_PARALLEL: true,
	token.KW_ORDERED: true, token.KW_NONUNIQUE: true, token.KW_PORTION: true,
	token.KW_DEFAULT: true, token.KW_END: true, token.KW_IN: true, token.KW_OUT: true,
	token.KW_INOUT: true, token.KW_REF: true,
	token.KW_PUBLIC: true, token.KW_PRIVATE: true, token.KW_PROTECTED: true,
	// KW_ASSERT/KW_FRAME/KW_USE never open a declaration on their own — they
	// always prefix another primary keyword (`assert constraint`, `frame
	// concern`, `use case`), so they classify the same way `public`/`private`
	// do.
	token.KW_ASSERT: true, token.KW_FRAME: true, token.KW_USE: true,
}

// primaryKeywords are the keyword-introduced element heads that open a
// Definition (with `def`) or Usage (without). Each maps to the kind the
// extractor will later assign to the resulting symbol.
var primaryKeywords = map[token.Kind]bool{
	token.KW_PART: true, token.KW_PORT: true, token.KW_ACTION: true, token.KW_STATE: true,
	token.KW_ATTRIBUTE: true, token.KW_REQUIREMENT: true, token.KW_CONSTRAINT: true,
	token.KW_CONNECTION: true, token.KW_INTERFACE: true, token.KW_FLOW: true,
	token.KW_ITEM: true, token.KW_VIEW: true, token.KW_VIEWPOINT: true,
	token.KW_RENDERING: true, token.KW_METADATA: true, token.KW_ENUM: true,
	token.KW_OCCURRENCE: true, token.KW_CALC: true, token.KW_ANALYSIS: true,
	token.KW_VERIFICATION: true, token.KW_CONCERN: true, token.KW_ALLOCATION: true,
	token.KW_CASE: true, // `use case` / `case` def

	// Statement-level relationship usages (§3.4): these never take `def`,
	// but classify needs to recognize them as the declaration head so
	// parseDefinitionOrUsage's dedicated clause parsers (connector.go) run
	// instead of falling through to error recovery.
	token.KW_PERFORM: true, token.KW_EXHIBIT: true, token.KW_INCLUDE: true,
	token.KW_SATISFY: true, token.KW_SUCCESSION: true, token.KW_TRANSITION: true,
	token.KW_BIND: true, token.KW_CONNECT: true,
	token.KW_ACCEPT: true, token.KW_SEND: true,
}

// kermlDefOnlyKeywords are keywords that, in a .kerml file, introduce a
// definition-like (scope-opening) element even with no trailing `def`
// (§4.2's "syntactically a usage but appears at positions the grammar
// reserves for a definition" edge case). KerML's classifier-family
// keywords aren't part of this lexer's keyword table, so today this set
// only affects `metadata`, which KerML allows bare.
var kermlDefOnlyKeywords = map[token.Kind]bool{
	token.KW_METADATA: true,
}

// classification is the result of scanning a declaration head.
type classification struct {
	isDefinition bool
	primary      token.Kind // the primary keyword, or EOF if none found
	primaryIdx   int        // lookahead index (nth) of the primary keyword
}

// classify scans up to 20 lookahead tokens from the current position,
// skipping modifier keywords in any order, to find the primary keyword
// and decide whether `def` follows it (Definition) or not (Usage).
func (p *parser) classify() classification {
	const window = 20
	i := 0
	for i < window {
		k := p.nth(i).Kind
		if modifierKeywords[k] {
			i++
			continue
		}
		if primaryKeywords[k] {
			next := p.nth(i + 1).Kind
			isDef := next == token.KW_DEF
			if !isDef && p.kerml && kermlDefOnlyKeywords[k] {
				isDef = true
			}
			return classification{isDefinition: isDef, primary: k, primaryIdx: i}
		}
		break
	}
	return classification{isDefinition: false, primary: token.EOF, primaryIdx: -1}
}
