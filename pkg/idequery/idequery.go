// Package idequery is C9: the read-only query layer over an immutable
// workspace snapshot (§4.9, §6.2). Every method is pure given the
// (index, resolver, diagnostic producer) triple it was built with; none
// mutate state.
package idequery

import (
	"sort"
	"strings"

	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/diagnostic"
	"github.com/sysml-tools/sysmlcore/pkg/index"
	"github.com/sysml-tools/sysmlcore/pkg/resolver"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

// TreeLookup returns the parsed tree for file, or nil if file isn't
// tracked. C10 supplies this so query methods needing raw CST access
// (selection ranges, semantic tokens) don't need their own file store.
type TreeLookup func(file symbol.FileHandle) *cst.Tree

// Queries is C9 bound to one snapshot.
type Queries struct {
	ix    *index.Index
	rv    *resolver.Resolver
	dp    *diagnostic.Producer
	trees TreeLookup
}

// New builds a Queries layer over one snapshot's index/resolver/producer.
func New(ix *index.Index, rv *resolver.Resolver, dp *diagnostic.Producer, trees TreeLookup) *Queries {
	return &Queries{ix: ix, rv: rv, dp: dp, trees: trees}
}

// HoverResult is hover's return shape (§4.9).
type HoverResult struct {
	QualifiedName string
	Kind          symbol.Kind
	ShortName     string
	Documentation string
}

// Hover finds the symbol or reference at pos and, for a reference,
// returns its resolved target's summary.
func (q *Queries) Hover(file symbol.FileHandle, pos cst.Position) (HoverResult, bool) {
	hit, ok := q.hitAt(file, pos)
	if !ok || hit.Target == nil {
		return HoverResult{}, false
	}
	t := hit.Target
	return HoverResult{QualifiedName: t.QualifiedName, Kind: t.Kind, ShortName: t.ShortName, Documentation: t.Documentation}, true
}

// GotoDefinition performs the same lookup as Hover but returns the
// target's declaration span instead of its summary.
func (q *Queries) GotoDefinition(file symbol.FileHandle, pos cst.Position) (symbol.FileHandle, cst.Span, bool) {
	hit, ok := q.hitAt(file, pos)
	if !ok || hit.Target == nil {
		return "", cst.Span{}, false
	}
	return hit.Target.File, hit.Target.Span, true
}

// FindReferences resolves the symbol/reference at pos to a target
// qualified name, then scans every indexed type_ref whose resolved
// target equals it (§4.9).
func (q *Queries) FindReferences(file symbol.FileHandle, pos cst.Position) []ReferenceLoc {
	hit, ok := q.hitAt(file, pos)
	if !ok || hit.Target == nil {
		return nil
	}
	target := hit.Target.QualifiedName

	var out []ReferenceLoc
	for _, s := range q.ix.AllSymbols() {
		scope := parentScope(s.QualifiedName)
		for _, st := range s.Supertypes {
			if res := q.rv.Resolve(st.Name, scope); res.Status == resolver.Found && res.Symbol.QualifiedName == target {
				out = append(out, ReferenceLoc{File: s.File, Span: st.Span})
			}
		}
		for _, chain := range s.TypeRefs {
			names := segmentNames(chain.Segments)
			steps := stepsFor(q.rv, names, scope, len(chain.Segments) > 1)
			for i, step := range steps {
				if step.Status == resolver.Found && step.Symbol.QualifiedName == target {
					out = append(out, ReferenceLoc{File: s.File, Span: chain.Segments[i].Span})
				}
			}
		}
	}
	return out
}

// ReferenceLoc is one reference site returned by FindReferences.
type ReferenceLoc struct {
	File symbol.FileHandle
	Span cst.Span
}

// DocumentSymbols returns every non-import, non-comment symbol in file,
// sorted by start position (§4.9).
func (q *Queries) DocumentSymbols(file symbol.FileHandle) []*symbol.Symbol {
	var out []*symbol.Symbol
	for _, s := range q.ix.FileSymbols(file) {
		if s.Kind == symbol.Import || s.Kind == symbol.Comment {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return startsBefore(out[i], out[j]) })
	return out
}

// WorkspaceSymbols returns every non-import symbol whose simple or
// qualified name contains query as a case-insensitive substring, sorted
// by simple name. An empty query matches everything (§4.9).
func (q *Queries) WorkspaceSymbols(query string) []*symbol.Symbol {
	needle := strings.ToLower(query)
	var out []*symbol.Symbol
	for _, s := range q.ix.AllSymbols() {
		if s.Kind == symbol.Import {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(s.Name), needle) && !strings.Contains(strings.ToLower(s.QualifiedName), needle) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Diagnostics delegates to C8 for file, given its parsed tree.
func (q *Queries) Diagnostics(file symbol.FileHandle) []diagnostic.Diagnostic {
	tree := q.trees(file)
	if tree == nil {
		return nil
	}
	return q.dp.Diagnostics(file, tree)
}

// SemanticToken is one classified span for editor syntax highlighting.
type SemanticToken struct {
	Span cst.Span
	Kind symbol.Kind
}

// SemanticTokens reports a token per declaration in file, classified by
// symbol kind, for editors that want semantic (not just lexical)
// highlighting.
func (q *Queries) SemanticTokens(file symbol.FileHandle) []SemanticToken {
	var out []SemanticToken
	for _, s := range q.ix.FileSymbols(file) {
		if s.Kind == symbol.Comment {
			continue
		}
		out = append(out, SemanticToken{Span: s.Span, Kind: s.Kind})
	}
	return out
}

// FoldingRange is one collapsible region (a declaration's body span).
type FoldingRange struct {
	Span cst.Span
}

// FoldingRanges reports one range per symbol in file whose body spans
// more than one line (declaration span used as a proxy for its body
// extent, since Symbol does not carry the body span separately).
func (q *Queries) FoldingRanges(file symbol.FileHandle) []FoldingRange {
	var out []FoldingRange
	for _, s := range q.ix.FileSymbols(file) {
		if s.Kind == symbol.Import || s.Kind == symbol.Comment {
			continue
		}
		if s.Span.End.Line > s.Span.Start.Line {
			out = append(out, FoldingRange{Span: s.Span})
		}
	}
	return out
}

// SelectionRanges returns, for each requested position, the chain of
// progressively wider CST node spans containing it (innermost first),
// for editors that expand selection outward on repeated keypresses.
func (q *Queries) SelectionRanges(file symbol.FileHandle, positions []cst.Position) [][]cst.Span {
	tree := q.trees(file)
	if tree == nil {
		return nil
	}
	idx := cst.NewLineIndex(tree.Text())
	out := make([][]cst.Span, len(positions))
	for i, pos := range positions {
		out[i] = selectionChain(tree, idx, pos)
	}
	return out
}

func selectionChain(tree *cst.Tree, idx *cst.LineIndex, pos cst.Position) []cst.Span {
	offset := idx.Offset(pos)
	node := tree.RedRoot().NodeAtOffset(offset)
	var spans []cst.Span
	for node != nil {
		spans = append(spans, cst.Span{Start: idx.Position(node.Start()), End: idx.Position(node.End())})
		node = node.Parent
	}
	return spans
}

// InlayHint annotates a position with a short label (multiplicity or
// inferred type) for editors that render inline hints.
type InlayHint struct {
	Pos   cst.Position
	Label string
}

// InlayHints reports a multiplicity hint at the end of each declaration
// in file that carries one, restricted to range.
func (q *Queries) InlayHints(file symbol.FileHandle, rng cst.Span) []InlayHint {
	var out []InlayHint
	for _, s := range q.ix.FileSymbols(file) {
		if s.Multiplicity == "" {
			continue
		}
		if !spanOverlaps(s.Span, rng) {
			continue
		}
		out = append(out, InlayHint{Pos: s.Span.End, Label: s.Multiplicity})
	}
	return out
}

// DocumentLink is one navigable import-path reference within a file.
type DocumentLink struct {
	Span   cst.Span
	Target string // resolved qualified name, empty if unresolved
}

// DocumentLinks reports one link per import in file, pointing at the
// qualified name its path resolves to (if any).
func (q *Queries) DocumentLinks(file symbol.FileHandle) []DocumentLink {
	var out []DocumentLink
	for _, s := range q.ix.FileSymbols(file) {
		if s.Kind != symbol.Import || s.Import == nil {
			continue
		}
		target := ""
		if len(s.Import.PathSegments) > 0 {
			names := segmentNames(s.Import.PathSegments)
			target = strings.Join(names, "::")
		}
		out = append(out, DocumentLink{Span: s.Span, Target: target})
	}
	return out
}

// CompletionItem is one candidate name visible at a position.
type CompletionItem struct {
	Label         string
	QualifiedName string
	Kind          symbol.Kind
}

// Completions returns every name visible at pos in file (declared,
// inherited, or imported into the enclosing scope chain), for editor
// autocomplete (§4.9). A simple name with more than one surviving
// qualified-name candidate contributes one item per candidate rather
// than picking a winner, since that choice belongs to the editor/user.
func (q *Queries) Completions(file symbol.FileHandle, pos cst.Position) []CompletionItem {
	scope := q.scopeAt(file, pos)
	visible := q.rv.VisibleNames(scope)

	var out []CompletionItem
	for name, qnames := range visible {
		for _, qn := range dedupeNames(qnames) {
			s, ok := q.ix.ByQualifiedName(qn)
			if !ok {
				continue
			}
			out = append(out, CompletionItem{Label: name, QualifiedName: qn, Kind: s.Kind})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].QualifiedName < out[j].QualifiedName
	})
	return out
}

// scopeAt returns the qualified name of the narrowest symbol whose span
// contains pos, or "" (the file root scope) if none does.
func (q *Queries) scopeAt(file symbol.FileHandle, pos cst.Position) string {
	var best *symbol.Symbol
	for _, s := range q.ix.FileSymbols(file) {
		if !s.Span.Contains(pos) {
			continue
		}
		if best == nil || s.Span.Narrower(best.Span) {
			best = s
		}
	}
	if best == nil {
		return ""
	}
	return best.QualifiedName
}

func dedupeNames(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// --- position resolution shared by Hover/GotoDefinition/FindReferences ---

type hit struct {
	Span   cst.Span
	Target *symbol.Symbol
}

// hitAt finds the narrowest span in file covering pos among declaration
// spans, supertype references, and type_ref chain segments, resolving
// references through the chain resolver (§4.9's innermost-match rule).
func (q *Queries) hitAt(file symbol.FileHandle, pos cst.Position) (hit, bool) {
	var best hit
	found := false

	consider := func(span cst.Span, target *symbol.Symbol) {
		if !span.Contains(pos) {
			return
		}
		if !found || span.Narrower(best.Span) {
			best = hit{Span: span, Target: target}
			found = true
		}
	}

	for _, s := range q.ix.FileSymbols(file) {
		consider(s.Span, s)

		scope := parentScope(s.QualifiedName)
		for _, st := range s.Supertypes {
			var target *symbol.Symbol
			if res := q.rv.Resolve(st.Name, scope); res.Status == resolver.Found {
				target = res.Symbol
			}
			consider(st.Span, target)
		}

		for _, chain := range s.TypeRefs {
			names := segmentNames(chain.Segments)
			steps := stepsFor(q.rv, names, scope, len(chain.Segments) > 1)
			for i, seg := range chain.Segments {
				var target *symbol.Symbol
				if i < len(steps) && steps[i].Status == resolver.Found {
					target = steps[i].Symbol
				}
				consider(seg.Span, target)
			}
		}
	}

	return best, found
}

func segmentNames(segs []symbol.TypeRef) []string {
	names := make([]string, len(segs))
	for i, seg := range segs {
		names[i] = seg.Name
	}
	return names
}

func stepsFor(rv *resolver.Resolver, names []string, scope string, isChain bool) []resolver.ChainStep {
	if isChain {
		return rv.ResolveFeatureSteps(names, scope)
	}
	return rv.ResolveQualifiedSteps(names, scope)
}

func spanOverlaps(a, b cst.Span) bool {
	return !(a.End.Line < b.Start.Line || (a.End.Line == b.Start.Line && a.End.Column < b.Start.Column)) &&
		!(a.Start.Line > b.End.Line || (a.Start.Line == b.End.Line && a.Start.Column > b.End.Column))
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
