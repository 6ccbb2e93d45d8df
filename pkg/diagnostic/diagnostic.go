// Package diagnostic is C8: a pure function of a workspace snapshot that
// emits duplicate-definition, unresolved-reference, unresolved-import, and
// ambiguous-reference diagnostics alongside the syntax errors carried
// through from C2 (§4.8, §6.5, §7).
package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/index"
	"github.com/sysml-tools/sysmlcore/pkg/resolver"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

// Severity mirrors §6.5's four-value scale.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Related is one `related` entry on a Diagnostic (§6.5).
type Related struct {
	File  symbol.FileHandle
	Start cst.Position
	End   cst.Position
	Note  string
}

// Diagnostic is the wire shape described by §6.5.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	File     symbol.FileHandle
	Start    cst.Position
	End      cst.Position
	Related  []Related
}

// Producer computes C8 diagnostics over one (index, resolver) snapshot
// pair. It holds no mutable state of its own — every method is a pure
// function of its arguments plus the index/resolver it was built with.
type Producer struct {
	ix *index.Index
	rv *resolver.Resolver
}

// NewProducer builds a Producer over one immutable snapshot.
func NewProducer(ix *index.Index, rv *resolver.Resolver) *Producer {
	return &Producer{ix: ix, rv: rv}
}

// Diagnostics returns every diagnostic for file: syntax errors carried
// through from tree, plus duplicate/unresolved/ambiguous diagnostics
// computed over the index.
func (p *Producer) Diagnostics(file symbol.FileHandle, tree *cst.Tree) []Diagnostic {
	var out []Diagnostic
	idx := cst.NewLineIndex(tree.Text())

	for _, se := range tree.Diagnostics {
		out = append(out, Diagnostic{
			Severity: Error,
			Code:     "syntax-error",
			Message:  se.Message,
			File:     file,
			Start:    idx.Position(se.Start),
			End:      idx.Position(se.End),
		})
	}

	out = append(out, p.duplicates(file)...)
	out = append(out, p.references(file)...)
	out = append(out, p.imports(file)...)
	return out
}

// duplicates reports a diagnostic at every declaration after the first
// that shares a simple name within the same scope (§4.8). Anonymous
// names are excluded since each is synthesized unique.
func (p *Producer) duplicates(file symbol.FileHandle) []Diagnostic {
	scopes := map[string]bool{}
	for _, s := range p.ix.FileSymbols(file) {
		scopes[parentScope(s.QualifiedName)] = true
	}

	var out []Diagnostic
	for scope := range scopes {
		byName := map[string][]*symbol.Symbol{}
		for _, s := range p.ix.MembersOf(scope) {
			if s.Kind == symbol.Import || s.Kind == symbol.Comment || s.IsAnonymous() {
				continue
			}
			byName[s.Name] = append(byName[s.Name], s)
		}
		for _, group := range byName {
			if len(group) < 2 {
				continue
			}
			sort.Slice(group, func(i, j int) bool { return startsBefore(group[i], group[j]) })
			first := group[0]
			for _, dup := range group[1:] {
				if dup.File != file {
					continue
				}
				out = append(out, Diagnostic{
					Severity: Error,
					Code:     "duplicate-definition",
					Message:  fmt.Sprintf("%q is already declared in this scope", dup.Name),
					File:     dup.File,
					Start:    dup.Span.Start,
					End:      dup.Span.End,
					Related: []Related{{
						File: first.File, Start: first.Span.Start, End: first.Span.End,
						Note: "first declared here",
					}},
				})
			}
		}
	}
	return out
}

// references checks every Supertype TypeRef and TypeRefChain recorded on
// file's symbols, reporting unresolved-reference or ambiguous-reference
// diagnostics. Chain segments are checked left to right; only the first
// failing segment is reported (§4.8).
func (p *Producer) references(file symbol.FileHandle) []Diagnostic {
	var out []Diagnostic
	for _, s := range p.ix.FileSymbols(file) {
		scope := parentScope(s.QualifiedName)

		for _, st := range s.Supertypes {
			if d, ok := p.checkSteps(file, scope, []string{st.Name}, st.Span, false); ok {
				out = append(out, d)
			}
		}

		for _, chain := range s.TypeRefs {
			if len(chain.Segments) == 0 {
				continue
			}
			names := make([]string, len(chain.Segments))
			for i, seg := range chain.Segments {
				names[i] = seg.Name
			}
			isChain := len(chain.Segments) > 1
			if d, ok := p.checkSteps(file, scope, names, chain.Segments[0].Span, isChain); ok {
				out = append(out, d)
			}
		}
	}
	return out
}

// checkSteps resolves names as either a feature chain (dot-joined,
// member-of-type lookup per step) or a single name, returning a
// diagnostic for the first failing step, if any.
func (p *Producer) checkSteps(file symbol.FileHandle, scope string, names []string, firstSpan cst.Span, isChain bool) (Diagnostic, bool) {
	var steps []resolver.ChainStep
	if isChain {
		steps = p.rv.ResolveFeatureSteps(names, scope)
	} else {
		steps = p.rv.ResolveQualifiedSteps(names, scope)
	}

	for i, step := range steps {
		span := firstSpan
		switch step.Status {
		case resolver.Found:
			continue
		case resolver.NotFound:
			return Diagnostic{
				Severity: Error,
				Code:     "unresolved-reference",
				Message:  fmt.Sprintf("cannot resolve %q", strings.Join(names[:i+1], ".")),
				File:     file, Start: span.Start, End: span.End,
			}, true
		case resolver.Ambiguous:
			res := p.rv.Resolve(names[0], scope)
			var related []Related
			for _, c := range res.Candidates {
				related = append(related, Related{File: c.File, Start: c.Span.Start, End: c.Span.End, Note: c.QualifiedName})
			}
			return Diagnostic{
				Severity: Warning,
				Code:     "ambiguous-reference",
				Message:  fmt.Sprintf("%q is ambiguous", names[0]),
				File:     file, Start: span.Start, End: span.End,
				Related: related,
			}, true
		}
	}
	return Diagnostic{}, false
}

// imports reports a warning for every import symbol in file whose path
// cannot be resolved to a known scope or symbol (§4.8, §7).
func (p *Producer) imports(file symbol.FileHandle) []Diagnostic {
	var out []Diagnostic
	for _, s := range p.ix.FileSymbols(file) {
		if s.Kind != symbol.Import || s.Import == nil {
			continue
		}
		path := make([]string, len(s.Import.PathSegments))
		for i, seg := range s.Import.PathSegments {
			path[i] = seg.Name
		}
		target := strings.Join(path, "::")
		if target == "" {
			continue
		}
		if _, ok := p.ix.ByQualifiedName(target); ok {
			continue
		}
		if len(p.ix.MembersOf(target)) > 0 {
			continue
		}
		out = append(out, Diagnostic{
			Severity: Warning,
			Code:     "unresolved-import",
			Message:  fmt.Sprintf("cannot resolve import path %q", target),
			File:     s.File, Start: s.Span.Start, End: s.Span.End,
		})
	}
	return out
}

func startsBefore(a, b *symbol.Symbol) bool {
	if a.Span.Start.Line != b.Span.Start.Line {
		return a.Span.Start.Line < b.Span.Start.Line
	}
	return a.Span.Start.Column < b.Span.Start.Column
}

func parentScope(qname string) string {
	if i := strings.LastIndex(qname, "::"); i >= 0 {
		return qname[:i]
	}
	return ""
}
