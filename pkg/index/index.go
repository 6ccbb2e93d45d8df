// Package index maintains the workspace-wide symbol index (§4.5): the
// flat per-file symbol lists plus the derived by-qname/by-short-name/
// element-id/scope-filter maps every other component queries against.
// Grounded on pkg/indexer's hash-map-plus-LRU-plus-RWMutex shape, adapted
// from a source-symbol cache keyed by file path to the spec's
// replace_file/add_external_ids contract keyed by qualified name.
package index

import (
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sysml-tools/sysmlcore/pkg/extractor"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

// Stats mirrors the observability surface the teacher's indexer exposes.
type Stats struct {
	IndexedFiles int
	TotalSymbols int
	CachedFiles  int
}

// Index is the workspace symbol index. It is safe for concurrent reads;
// writes (ReplaceFile, RemoveFile, AddExternalIDs) are expected to be
// serialized by pkg/host per §5's single-threaded mutation model, but the
// mutex is kept so a misuse doesn't corrupt the maps.
type Index struct {
	mu sync.RWMutex

	files       map[symbol.FileHandle][]*symbol.Symbol
	byQName     map[string]*symbol.Symbol
	byShort     map[string][]*symbol.Symbol
	elementIDs  map[string]string // qualified_name -> element_id, persists across re-extraction
	scopeFilter map[string][]string

	fileCache *lru.Cache[symbol.FileHandle, []*symbol.Symbol]

	indexedFiles int
	logger       *slog.Logger
}

// New builds an empty index. maxCachedFiles bounds the LRU mirror of
// files' symbol lists (0 defaults to 1000, matching the teacher).
func New(maxCachedFiles int, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	if maxCachedFiles == 0 {
		maxCachedFiles = 1000
	}
	cache, err := lru.New[symbol.FileHandle, []*symbol.Symbol](maxCachedFiles)
	if err != nil {
		panic(err)
	}
	return &Index{
		files:       make(map[symbol.FileHandle][]*symbol.Symbol),
		byQName:     make(map[string]*symbol.Symbol),
		byShort:     make(map[string][]*symbol.Symbol),
		elementIDs:  make(map[string]string),
		scopeFilter: make(map[string][]string),
		fileCache:   cache,
		logger:      logger,
	}
}

// ReplaceFile installs res as the symbol set for its file, reusing prior
// element_ids for qualified names that survive the edit and minting fresh
// ones otherwise (§3.7, §4.5).
func (ix *Index) ReplaceFile(res *extractor.ExtractionResult) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	prior := map[string]string{}
	for _, s := range ix.files[res.File] {
		if s.ElementID != "" {
			prior[s.QualifiedName] = s.ElementID
		}
	}

	ix.removeFileUnlocked(res.File)

	for _, s := range res.Symbols {
		if id, ok := ix.elementIDs[s.QualifiedName]; ok {
			s.ElementID = id
		} else if id, ok := prior[s.QualifiedName]; ok {
			s.ElementID = id
		} else {
			s.ElementID = symbol.NewElementID()
		}
		ix.elementIDs[s.QualifiedName] = s.ElementID

		ix.byQName[s.QualifiedName] = s
		if s.ShortName != "" {
			ix.byShort[s.ShortName] = append(ix.byShort[s.ShortName], s)
		}
	}

	ix.files[res.File] = res.Symbols
	ix.fileCache.Add(res.File, res.Symbols)
	for scope, filters := range res.ScopeFilters {
		ix.scopeFilter[scope] = filters
	}

	ix.indexedFiles++
	ix.logger.Debug("indexed file", "file", string(res.File), "symbols", len(res.Symbols))
}

// RemoveFile drops a file and all of its symbols from the index.
func (ix *Index) RemoveFile(file symbol.FileHandle) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeFileUnlocked(file)
}

func (ix *Index) removeFileUnlocked(file symbol.FileHandle) {
	for _, s := range ix.files[file] {
		delete(ix.byQName, s.QualifiedName)
		if s.ShortName != "" {
			ix.byShort[s.ShortName] = removeSymbol(ix.byShort[s.ShortName], s)
		}
	}
	delete(ix.files, file)
	ix.fileCache.Remove(file)
}

func removeSymbol(list []*symbol.Symbol, target *symbol.Symbol) []*symbol.Symbol {
	out := list[:0]
	for _, s := range list {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

// AddExternalIDs merges externally-supplied element_ids (from interchange
// ingress or a metadata sidecar); they override minted ids on the next
// ReplaceFile for a matching qualified_name (§3.7, §6.3, §6.4).
func (ix *Index) AddExternalIDs(ids map[string]string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for qname, id := range ids {
		ix.elementIDs[qname] = id
		if s, ok := ix.byQName[qname]; ok {
			s.ElementID = id
		}
	}
}

// ByQualifiedName looks up a symbol by its unique qualified name.
func (ix *Index) ByQualifiedName(qname string) (*symbol.Symbol, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	s, ok := ix.byQName[qname]
	return s, ok
}

// ByShortName returns every symbol declared with the given short name.
func (ix *Index) ByShortName(short string) []*symbol.Symbol {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return append([]*symbol.Symbol(nil), ix.byShort[short]...)
}

// FileSymbols returns the symbol list owned by file, in extraction order.
func (ix *Index) FileSymbols(file symbol.FileHandle) []*symbol.Symbol {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.files[file]
}

// Files returns every file handle currently indexed.
func (ix *Index) Files() []symbol.FileHandle {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]symbol.FileHandle, 0, len(ix.files))
	for f := range ix.files {
		out = append(out, f)
	}
	return out
}

// AllSymbols returns every symbol in the workspace. Used by C6/C7/C9 to
// build derived views; callers must not mutate the result.
func (ix *Index) AllSymbols() []*symbol.Symbol {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]*symbol.Symbol, 0, len(ix.byQName))
	for _, files := range ix.files {
		out = append(out, files...)
	}
	return out
}

// ScopeFilters returns the filter target qualified names recorded for a
// scope's imports (§4.4, §4.6).
func (ix *Index) ScopeFilters(scope string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.scopeFilter[scope]
}

// MembersOf returns the direct children of scope: symbols whose
// qualified_name is exactly `scope::X` for some simple X (no deeper
// nesting). A scope's import symbols, named `scope::import:<path>`, count
// as direct children even though their path contains `::`.
func (ix *Index) MembersOf(scope string) []*symbol.Symbol {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	prefix := scope + "::"
	var out []*symbol.Symbol
	for qname, s := range ix.byQName {
		rest := qname
		if scope != "" {
			if len(qname) <= len(prefix) || qname[:len(prefix)] != prefix {
				continue
			}
			rest = qname[len(prefix):]
		}
		isImport := len(rest) >= len("import:") && rest[:len("import:")] == "import:"
		if containsSep(rest) && !isImport {
			continue
		}
		out = append(out, s)
	}
	return out
}

func containsSep(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == ':' && s[i+1] == ':' {
			return true
		}
	}
	return false
}

// Stats reports current index statistics.
func (ix *Index) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return Stats{IndexedFiles: ix.indexedFiles, TotalSymbols: len(ix.byQName), CachedFiles: ix.fileCache.Len()}
}
