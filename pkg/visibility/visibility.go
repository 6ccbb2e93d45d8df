// Package visibility computes, for each scope, the ScopeVisibility map
// described in §3.8/§4.6: a simple-name-to-qualified-name lookup table
// with a direct overlay (declared + inherited members) and an imported
// overlay (selective/wildcard/recursive/filtered imports, including
// public re-export).
package visibility

import (
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/sysml-tools/sysmlcore/pkg/filterexpr"
	"github.com/sysml-tools/sysmlcore/pkg/index"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

// ScopeVisibility is the per-scope visibility map (§3.8).
type ScopeVisibility struct {
	Direct   map[string][]string // simple name -> qualified names declared/inherited here
	Imported map[string][]string // simple name -> qualified names contributed by imports
}

// Lookup resolves name in this scope: direct overlay wins over imported.
// Multiple surviving qualified names for the same simple name means the
// caller must treat the result as Ambiguous (§3.8 precedence rule).
func (v ScopeVisibility) Lookup(name string) ([]string, bool) {
	if qs, ok := v.Direct[name]; ok {
		return qs, true
	}
	if qs, ok := v.Imported[name]; ok {
		return qs, true
	}
	return nil, false
}

// Builder computes and memoizes ScopeVisibility per scope over one
// index.Index snapshot. It is idempotent and re-run whenever the index
// changes (§4.6): callers construct a fresh Builder per snapshot rather
// than mutating one across edits.
type Builder struct {
	ix    *index.Index
	mu    sync.Mutex
	cache map[string]ScopeVisibility
}

// NewBuilder wraps ix for visibility computation. Results are memoized for
// the lifetime of this Builder (i.e. for one snapshot).
func NewBuilder(ix *index.Index) *Builder {
	return &Builder{ix: ix, cache: make(map[string]ScopeVisibility)}
}

// Visibility returns (computing and memoizing if necessary) the
// ScopeVisibility for scope.
func (b *Builder) Visibility(scope string) ScopeVisibility {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v, ok := b.cache[scope]; ok {
		return v
	}
	v := b.compute(scope, treeset.NewWithStringComparator())
	b.cache[scope] = v
	return v
}

// compute builds ScopeVisibility for scope. visited cycle-guards the
// specialization/subsetting closure walk in step 2 of §4.6's algorithm.
func (b *Builder) compute(scope string, visited *treeset.Set) ScopeVisibility {
	v := ScopeVisibility{Direct: map[string][]string{}, Imported: map[string][]string{}}

	// Step 1: direct members declared in scope.
	for _, s := range b.ix.MembersOf(scope) {
		if s.Kind == symbol.Import || s.Kind == symbol.Comment {
			continue
		}
		v.Direct[s.Name] = append(v.Direct[s.Name], s.QualifiedName)
	}

	// Step 2: inherited members via Specializes/Subsets, transitively,
	// cycle-guarded on qualified scope names.
	if !visited.Contains(scope) {
		visited.Add(scope)
		if s, ok := b.ix.ByQualifiedName(scope); ok {
			for _, rel := range s.Relationships {
				if rel.Kind != symbol.Specializes && rel.Kind != symbol.Subsets {
					continue
				}
				target := rel.ResolvedQName
				if target == "" {
					target = rel.TargetName
				}
				parent := b.compute(target, visited)
				for name, qs := range parent.Direct {
					v.Direct[name] = append(v.Direct[name], qs...)
				}
			}
		}
	}

	// Step 3: contributions from this scope's own import symbols.
	for _, s := range b.ix.MembersOf(scope) {
		if s.Kind != symbol.Import || s.Import == nil {
			continue
		}
		b.applyImport(scope, s, &v)
	}

	return v
}

func (b *Builder) applyImport(scope string, imp *symbol.Symbol, v *ScopeVisibility) {
	path := importPathText(imp.Import)
	if path == "" {
		return
	}

	var contributed map[string][]string
	switch {
	case imp.Import.IsRecursive:
		contributed = b.enumerateRecursive(path, imp.Import)
	case imp.Import.IsWildcard:
		contributed = b.enumerateDirect(path, imp.Import)
	default:
		if target, ok := b.ix.ByQualifiedName(path); ok {
			contributed = map[string][]string{target.Name: {target.QualifiedName}}
		}
	}

	for name, qs := range contributed {
		v.Imported[name] = append(v.Imported[name], qs...)
		if imp.Import.IsPublic {
			v.Direct[name] = append(v.Direct[name], qs...)
		}
	}
}

func importPathText(d *symbol.ImportDescriptor) string {
	parts := make([]string, len(d.PathSegments))
	for i, seg := range d.PathSegments {
		parts[i] = seg.Name
	}
	return strings.Join(parts, "::")
}

func (b *Builder) enumerateDirect(scope string, d *symbol.ImportDescriptor) map[string][]string {
	out := map[string][]string{}
	for _, s := range b.ix.MembersOf(scope) {
		if s.Kind == symbol.Import || s.Kind == symbol.Comment || !s.Modifiers.IsPublic {
			continue
		}
		if !matchesFilters(s, d.Filters) {
			continue
		}
		out[s.Name] = append(out[s.Name], s.QualifiedName)
	}
	return out
}

func (b *Builder) enumerateRecursive(scope string, d *symbol.ImportDescriptor) map[string][]string {
	out := b.enumerateDirect(scope, d)
	for _, s := range b.ix.MembersOf(scope) {
		if s.Kind == symbol.Import {
			continue
		}
		for name, qs := range b.enumerateRecursive(s.QualifiedName, d) {
			out[name] = append(out[name], qs...)
		}
	}
	return out
}

// matchesFilters reports whether every filter clause matches s, via
// pkg/filterexpr's metadata-name-or-CEL-expression evaluation (§4.6).
func matchesFilters(s *symbol.Symbol, filters []symbol.TypeRef) bool {
	for _, f := range filters {
		if !filterexpr.Matches(f.Name, s) {
			return false
		}
	}
	return true
}
