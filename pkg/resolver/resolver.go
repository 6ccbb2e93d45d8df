// Package resolver implements name resolution over a workspace snapshot
// (§4.7): qualified-name, simple-name, and feature-chain resolution, each
// returning Found/NotFound/Ambiguous.
package resolver

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sysml-tools/sysmlcore/pkg/index"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
	"github.com/sysml-tools/sysmlcore/pkg/visibility"
)

// Status is the tri-state outcome of a resolution attempt.
type Status int

const (
	Found Status = iota
	NotFound
	Ambiguous
)

// Result is the outcome of resolve(name, from_scope).
type Result struct {
	Status     Status
	Symbol     *symbol.Symbol   // set iff Status == Found
	Candidates []*symbol.Symbol // set iff Status == Ambiguous
}

// Resolver answers name-resolution queries against one immutable
// index.Index snapshot. Results are memoized per (name, scope) pair,
// grounded on the resolution-cache shape of the original Rust
// implementation (the same workspace snapshot never needs to resolve an
// unchanged query twice).
type Resolver struct {
	ix  *index.Index
	vis *visibility.Builder

	mu    sync.Mutex
	cache *lru.Cache[cacheKey, Result]
}

type cacheKey struct{ name, scope string }

// New builds a Resolver over ix, memoizing up to cacheSize (name, scope)
// results (0 defaults to 4096).
func New(ix *index.Index, cacheSize int) *Resolver {
	if cacheSize == 0 {
		cacheSize = 4096
	}
	c, err := lru.New[cacheKey, Result](cacheSize)
	if err != nil {
		panic(err)
	}
	return &Resolver{ix: ix, vis: visibility.NewBuilder(ix), cache: c}
}

// Resolve implements §4.7's three cases, dispatching on the shape of
// name: `::`-joined is a qualified name, `.`-joined (with no `::`) is a
// feature chain, anything else is a simple name.
func (r *Resolver) Resolve(name, fromScope string) Result {
	key := cacheKey{name, fromScope}
	r.mu.Lock()
	if cached, ok := r.cache.Get(key); ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	var res Result
	switch {
	case strings.Contains(name, "::"):
		res = r.resolveQualified(name, fromScope)
	case strings.Contains(name, "."):
		res = r.resolveChain(name, fromScope)
	default:
		res = r.resolveSimple(name, fromScope)
	}

	r.mu.Lock()
	r.cache.Add(key, res)
	r.mu.Unlock()
	return res
}

// ChainStep is the outcome of resolving one segment of a qualified name
// or feature chain. pkg/diagnostic uses the per-step breakdown to report
// only the first failing segment, per §4.8's "checked left-to-right;
// the first failure is reported, subsequent are suppressed".
type ChainStep struct {
	Status Status
	Symbol *symbol.Symbol
}

// ResolveQualifiedSteps resolves segs (a `::`-split qualified name) one
// segment at a time, starting from a simple-name lookup of segs[0] in
// fromScope.
func (r *Resolver) ResolveQualifiedSteps(segs []string, fromScope string) []ChainStep {
	if len(segs) == 0 {
		return nil
	}
	first := r.resolveSimple(segs[0], fromScope)
	steps := []ChainStep{{Status: first.Status, Symbol: first.Symbol}}
	if first.Status != Found {
		return steps
	}
	current := first.Symbol
	for _, seg := range segs[1:] {
		member, ok := r.ix.ByQualifiedName(current.QualifiedName + "::" + seg)
		if !ok {
			steps = append(steps, ChainStep{Status: NotFound})
			return steps
		}
		steps = append(steps, ChainStep{Status: Found, Symbol: member})
		current = member
	}
	return steps
}

// resolveQualified looks up each `::`-separated segment as a direct
// member of the previously resolved scope, starting from the first
// segment resolved as a simple name in fromScope.
func (r *Resolver) resolveQualified(name, fromScope string) Result {
	steps := r.ResolveQualifiedSteps(strings.Split(name, "::"), fromScope)
	return lastStep(steps)
}

// resolveSimple walks up from fromScope to the file root, preferring
// direct over imported names at each level, then tries a bare top-level
// lookup as a final fallback (§4.7).
func (r *Resolver) resolveSimple(name, fromScope string) Result {
	scope := fromScope
	for {
		v := r.vis.Visibility(scope)
		if qs, ok := v.Lookup(name); ok {
			return resultFor(r.ix, qs)
		}
		if scope == "" {
			break
		}
		scope = parentScope(scope)
	}
	if s, ok := r.ix.ByQualifiedName(name); ok {
		return Result{Status: Found, Symbol: s}
	}
	return Result{Status: NotFound}
}

// ResolveFeatureSteps resolves segs (a `.`-split feature chain) one
// segment at a time: segs[0] as a simple name in fromScope, each
// subsequent segment as a member of the type of the previous one.
func (r *Resolver) ResolveFeatureSteps(segs []string, fromScope string) []ChainStep {
	if len(segs) == 0 {
		return nil
	}
	first := r.resolveSimple(segs[0], fromScope)
	steps := []ChainStep{{Status: first.Status, Symbol: first.Symbol}}
	if first.Status != Found {
		return steps
	}
	current := first.Symbol
	for _, seg := range segs[1:] {
		member, status := r.memberOfType(current, seg, map[string]bool{})
		steps = append(steps, ChainStep{Status: status, Symbol: member})
		if status != Found {
			return steps
		}
		current = member
	}
	return steps
}

// resolveChain resolves `a.b.c`: `a` as a simple name, then each
// subsequent segment as a member of the type of the previous segment,
// following TypedBy/Specializes/Redefines transitively with a
// cycle-guard on visited type qualified names.
func (r *Resolver) resolveChain(name, fromScope string) Result {
	steps := r.ResolveFeatureSteps(strings.Split(name, "."), fromScope)
	return lastStep(steps)
}

func lastStep(steps []ChainStep) Result {
	if len(steps) == 0 {
		return Result{Status: NotFound}
	}
	last := steps[len(steps)-1]
	return Result{Status: last.Status, Symbol: last.Symbol}
}

// memberOfType finds seg as a direct member of sym's type, walking
// TypedBy/Specializes/Redefines transitively.
func (r *Resolver) memberOfType(sym *symbol.Symbol, seg string, visited map[string]bool) (*symbol.Symbol, Status) {
	for _, st := range sym.Supertypes {
		target := st.Name
		if visited[target] {
			continue
		}
		visited[target] = true
		if m, ok := r.ix.ByQualifiedName(target + "::" + seg); ok {
			return m, Found
		}
		if typeSym, ok := r.ix.ByQualifiedName(target); ok {
			if m, status := r.memberOfType(typeSym, seg, visited); status == Found {
				return m, Found
			}
		}
	}
	return nil, NotFound
}

// VisibleNames returns every simple name visible from fromScope, walking
// up to the file root and preferring the closest scope's binding for a
// name already seen at a nearer level. Used by pkg/idequery's Completions
// to enumerate candidates at a position (§4.9).
func (r *Resolver) VisibleNames(fromScope string) map[string][]string {
	out := map[string][]string{}
	scope := fromScope
	for {
		v := r.vis.Visibility(scope)
		for name, qs := range v.Direct {
			if _, ok := out[name]; !ok {
				out[name] = qs
			}
		}
		for name, qs := range v.Imported {
			if _, ok := out[name]; !ok {
				out[name] = qs
			}
		}
		if scope == "" {
			break
		}
		scope = parentScope(scope)
	}
	return out
}

func resultFor(ix *index.Index, qnames []string) Result {
	unique := dedupe(qnames)
	if len(unique) == 0 {
		return Result{Status: NotFound}
	}
	if len(unique) > 1 {
		var cands []*symbol.Symbol
		for _, q := range unique {
			if s, ok := ix.ByQualifiedName(q); ok {
				cands = append(cands, s)
			}
		}
		return Result{Status: Ambiguous, Candidates: cands}
	}
	s, ok := ix.ByQualifiedName(unique[0])
	if !ok {
		return Result{Status: NotFound}
	}
	return Result{Status: Found, Symbol: s}
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func parentScope(scope string) string {
	if i := strings.LastIndex(scope, "::"); i >= 0 {
		return scope[:i]
	}
	return ""
}
