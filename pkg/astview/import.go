package astview

import (
	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// Import wraps an NK_IMPORT node (§3.5, §4.3).
type Import struct{ Node }

func AsImport(r *cst.RedNode) (Import, bool) {
	if r == nil || r.Kind() != cst.NK_IMPORT {
		return Import{}, false
	}
	return Import{Node{r}}, true
}

func (i Import) IsPublic() bool {
	if t := i.Red.FirstTokenOfKind(token.KW_PUBLIC); t != nil {
		return true
	}
	return false
}

// PathSegments returns the IDENT/QUOTED_NAME tokens of the import path,
// excluding the trailing `*`/`**` wildcard marker if present.
func (i Import) PathSegments() []*cst.RedToken {
	var out []*cst.RedToken
	seenImport := false
	for _, t := range i.Red.Tokens() {
		k := t.Kind()
		if k.IsTrivia() {
			continue
		}
		if !seenImport {
			if k == token.KW_PUBLIC {
				continue
			}
			if k == token.KW_IMPORT {
				seenImport = true
			}
			continue
		}
		if k == token.IDENT || k == token.QUOTED_NAME {
			out = append(out, t)
		}
	}
	return out
}

func (i Import) IsWildcard() bool {
	return i.Red.FirstTokenOfKind(token.STAR) != nil && !i.IsRecursive()
}

func (i Import) IsRecursive() bool {
	return i.Red.FirstTokenOfKind(token.STARSTAR) != nil
}

// Filters returns each `[@Meta]` filter package node, in source order.
func (i Import) Filters() []*cst.RedNode {
	var out []*cst.RedNode
	for _, c := range i.Red.ChildNodes() {
		if c.Kind() == cst.NK_FILTER_PACKAGE {
			out = append(out, c)
		}
	}
	return out
}

// FilterTarget returns the qualified name an NK_FILTER_PACKAGE node
// restricts on.
func FilterTarget(filter *cst.RedNode) (QualifiedName, bool) {
	return AsQualifiedName(filter.FirstChildOfKind(cst.NK_QUALIFIED_NAME))
}

// Specialization wraps one NK_SPECIALIZATION clause.
type Specialization struct{ Node }

func AsSpecialization(r *cst.RedNode) (Specialization, bool) {
	if r == nil || r.Kind() != cst.NK_SPECIALIZATION {
		return Specialization{}, false
	}
	return Specialization{Node{r}}, true
}

// OperatorText returns the literal operator token text (":", ":>",
// "subsets", ...), or "" for a continuation clause that inherits its
// operator from the list's first clause.
func (s Specialization) OperatorText() string {
	for _, t := range s.Red.Tokens() {
		switch t.Kind() {
		case token.COLON, token.COLONGT, token.COLONGTGT, token.KW_SUBSETS, token.KW_REDEFINES,
			token.KW_CONJUGATES, token.KW_TYPED, token.KW_SPECIALIZES:
			return t.Text()
		}
	}
	return ""
}

func (s Specialization) Target() (QualifiedName, bool) {
	return AsQualifiedName(s.Red.FirstChildOfKind(cst.NK_QUALIFIED_NAME))
}

// Clauses returns every NK_SPECIALIZATION child of an
// NK_SPECIALIZATION_LIST, in source order.
func Clauses(list *cst.RedNode) []*cst.RedNode {
	if list == nil {
		return nil
	}
	var out []*cst.RedNode
	for _, c := range list.ChildNodes() {
		if c.Kind() == cst.NK_SPECIALIZATION {
			out = append(out, c)
		}
	}
	return out
}
