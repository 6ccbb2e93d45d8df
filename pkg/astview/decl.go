package astview

import (
	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// modifierKinds mirrors pkg/parser's modifier set; kept independent since
// astview must not import pkg/parser (parser depends on cst, not vice
// versa — astview sits alongside parser as another cst consumer).
var modifierKinds = map[token.Kind]bool{
	token.KW_ABSTRACT: true, token.KW_VARIATION: true, token.KW_INDIVIDUAL: true,
	token.KW_READONLY: true, token.KW_DERIVED: true, token.KW_PARALLEL: true,
	token.KW_ORDERED: true, token.KW_NONUNIQUE: true, token.KW_PORTION: true,
	token.KW_DEFAULT: true, token.KW_END: true, token.KW_IN: true, token.KW_OUT: true,
	token.KW_INOUT: true, token.KW_REF: true,
	token.KW_PUBLIC: true, token.KW_PRIVATE: true, token.KW_PROTECTED: true,
}

// Decl wraps an NK_DEFINITION or NK_USAGE node — the two share every
// accessor, differing only in Kind()/IsDefinition().
type Decl struct{ Node }

// AsDecl casts a red node believed to hold a definition or usage.
func AsDecl(r *cst.RedNode) (Decl, bool) {
	if r == nil || (r.Kind() != cst.NK_DEFINITION && r.Kind() != cst.NK_USAGE) {
		return Decl{}, false
	}
	return Decl{Node{r}}, true
}

func (d Decl) IsDefinition() bool { return d.Red.Kind() == cst.NK_DEFINITION }

// PrimaryKeyword returns the first non-modifier, non-metadata keyword
// token of the declaration head — e.g. KW_PART for `abstract part def Car`.
func (d Decl) PrimaryKeyword() (token.Kind, bool) {
	for _, t := range d.Red.Tokens() {
		k := t.Kind()
		if modifierKinds[k] || k == token.KW_DEF {
			continue
		}
		if k.IsTrivia() {
			continue
		}
		return k, true
	}
	return token.EOF, false
}

// Modifiers returns every modifier-keyword token present on the head, in
// source order.
func (d Decl) Modifiers() []token.Kind {
	var out []token.Kind
	for _, t := range d.Red.Tokens() {
		if modifierKinds[t.Kind()] {
			out = append(out, t.Kind())
		}
	}
	return out
}

// Name returns the declared IDENT/QUOTED_NAME token immediately following
// the primary keyword (and optional `def`), if any.
func (d Decl) Name() (*cst.RedToken, bool) {
	toks := d.Red.Tokens()
	sawPrimary := false
	for _, t := range toks {
		k := t.Kind()
		if k.IsTrivia() {
			continue
		}
		if !sawPrimary {
			if modifierKinds[k] {
				continue
			}
			sawPrimary = true
			continue
		}
		if k == token.KW_DEF {
			continue
		}
		if k == token.IDENT || k == token.QUOTED_NAME {
			return t, true
		}
		return nil, false
	}
	return nil, false
}

// ShortName returns the quoted alias declared `<'alias'>` immediately
// after the name, if present.
func (d Decl) ShortName() (*cst.RedToken, bool) {
	toks := d.Red.Tokens()
	for i, t := range toks {
		if t.Kind() == token.LT && i+1 < len(toks) && toks[i+1].Kind() == token.QUOTED_NAME {
			return toks[i+1], true
		}
	}
	return nil, false
}

// MetadataPrefix returns the `#Name` prefix node, if present.
func (d Decl) MetadataPrefix() (*cst.RedNode, bool) {
	n := d.Red.FirstChildOfKind(cst.NK_METADATA_PREFIX)
	return n, n != nil
}

// Specializations returns the NK_SPECIALIZATION_LIST child, if the
// declaration's tail parser produces one (every form does except
// satisfy/bind/connect/succession/transition, which carry their targets
// through other node shapes entirely — see pkg/extractor's extractDecl).
// astview.Clauses accepts a nil node.
func (d Decl) Specializations() *cst.RedNode {
	return d.Red.FirstChildOfKind(cst.NK_SPECIALIZATION_LIST)
}

// Multiplicity returns the `[...]` node, if any.
func (d Decl) Multiplicity() (*cst.RedNode, bool) {
	n := d.Red.FirstChildOfKind(cst.NK_MULTIPLICITY)
	return n, n != nil
}

// ValueClause returns the `= expr` node, if any.
func (d Decl) ValueClause() (*cst.RedNode, bool) {
	n := d.Red.FirstChildOfKind(cst.NK_VALUE_CLAUSE)
	return n, n != nil
}

// Body returns the `{ ... }` node, if the declaration is a scope.
func (d Decl) Body() (*cst.RedNode, bool) {
	n := d.Red.FirstChildOfKind(cst.NK_BODY)
	return n, n != nil
}

// Members returns the direct NK_DEFINITION/NK_USAGE/NK_IMPORT/NK_ALIAS/
// NK_COMMENT/NK_METADATA_ANNOTATION/NK_PACKAGE children of Body(), in
// source order.
func Members(body *cst.RedNode) []*cst.RedNode {
	if body == nil {
		return nil
	}
	var out []*cst.RedNode
	for _, c := range body.ChildNodes() {
		switch c.Kind() {
		case cst.NK_DEFINITION, cst.NK_USAGE, cst.NK_IMPORT, cst.NK_ALIAS,
			cst.NK_COMMENT, cst.NK_METADATA_ANNOTATION, cst.NK_PACKAGE:
			out = append(out, c)
		}
	}
	return out
}
