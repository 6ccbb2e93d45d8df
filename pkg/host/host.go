// Package host is C10: the single-threaded owner of file texts that
// drives the whole pipeline (lex/parse -> extract -> index -> resolve ->
// diagnose) and hands out immutable query snapshots (§4.10, §5).
package host

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/sysml-tools/sysmlcore/pkg/cache"
	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/diagnostic"
	"github.com/sysml-tools/sysmlcore/pkg/extractor"
	"github.com/sysml-tools/sysmlcore/pkg/idequery"
	"github.com/sysml-tools/sysmlcore/pkg/index"
	"github.com/sysml-tools/sysmlcore/pkg/interchange"
	"github.com/sysml-tools/sysmlcore/pkg/parser"
	"github.com/sysml-tools/sysmlcore/pkg/resolver"
	"github.com/sysml-tools/sysmlcore/pkg/sidecar"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

// Snapshot is an immutable view over one completed mutation: a resolver
// and diagnostic producer built fresh over the index as it stood at
// Analysis() time, plus the query layer bound to all three (§4.10).
//
// The index itself is not copy-on-write — callers are expected to follow
// §5's single-threaded cooperative discipline (never call a mutating
// Host method while a Snapshot from before it is still in use for
// anything but read-only queries against state already known stale).
type Snapshot struct {
	Index       *index.Index
	Resolver    *resolver.Resolver
	Diagnostics *diagnostic.Producer
	Queries     *idequery.Queries
}

// Host owns every file's text and parsed tree and serializes all
// mutations through its mutex, matching §5's "state transitions are
// atomic from the caller's perspective" (grounded on pkg/indexer's
// RWMutex-guarded hash-map shape, adapted to a single owning mutex since
// every mutation here touches the whole index, not one row of it).
type Host struct {
	mu sync.Mutex

	ix         *index.Index
	extractor  *extractor.Extractor
	decompiler interchange.Decompiler
	logger     *slog.Logger
	cache      *cache.Cache // optional cross-session element-id cache

	trees map[symbol.FileHandle]*cst.Tree
	texts map[symbol.FileHandle]string
}

// New builds an empty Host. maxCachedFiles bounds the index's file-symbol
// LRU mirror (0 defaults per pkg/index).
func New(maxCachedFiles int, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		ix:         index.New(maxCachedFiles, logger),
		extractor:  extractor.NewExtractor(logger),
		decompiler: interchange.TextDecompiler{},
		logger:     logger,
		trees:      make(map[symbol.FileHandle]*cst.Tree),
		texts:      make(map[symbol.FileHandle]string),
	}
}

// WithElementCache attaches a persistent element-id cache: every
// SetFileContent first reinstates c's prior mappings for that file (so an
// unchanged declaration keeps its id across host restarts) and then
// records whatever the extractor minted back to c (§6.6).
func (h *Host) WithElementCache(c *cache.Cache) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache = c
	return h
}

// SetFileContent parses, extracts, and replaces path's entry in the
// index, returning the syntax and semantic diagnostics for that file
// alone (§4.10). The `.sysml`/`.kerml` extension selects the grammar
// variant (§6.1); anything else is treated as SysML.
func (h *Host) SetFileContent(path, text string) []diagnostic.Diagnostic {
	h.mu.Lock()
	defer h.mu.Unlock()

	file := symbol.FileHandle(path)
	tree := parseForPath(path, text)
	h.trees[file] = tree
	h.texts[file] = text

	if h.cache != nil {
		if ids, err := h.cache.LoadFile(path); err == nil {
			h.ix.AddExternalIDs(ids)
		} else {
			h.logger.Warn("failed to load cached element ids", "file", path, "error", err)
		}
	}

	res := h.extractor.ExtractFile(file, tree, text)
	h.ix.ReplaceFile(res)

	if h.cache != nil {
		h.persistElementIDs(path, text, res)
	}

	rv := resolver.New(h.ix, 0)
	dp := diagnostic.NewProducer(h.ix, rv)
	return dp.Diagnostics(file, tree)
}

// persistElementIDs records every symbol's minted element id back to the
// cache, tagged with the content hash of the text it was extracted from.
func (h *Host) persistElementIDs(path, text string, res *extractor.ExtractionResult) {
	hash, err := cache.ContentHash([]byte(text))
	if err != nil {
		h.logger.Warn("failed to hash file content for element id cache", "file", path, "error", err)
		return
	}
	for _, s := range res.Symbols {
		if s.ElementID == "" {
			continue
		}
		if err := h.cache.Put(s.QualifiedName, s.ElementID, path, hash); err != nil {
			h.logger.Warn("failed to persist cached element id", "file", path, "symbol", s.QualifiedName, "error", err)
		}
	}
}

// RemoveFile drops path from the index and from this host's file store.
func (h *Host) RemoveFile(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	file := symbol.FileHandle(path)
	h.ix.RemoveFile(file)
	delete(h.trees, file)
	delete(h.texts, file)

	if h.cache != nil {
		if err := h.cache.RemoveFile(path); err != nil {
			h.logger.Warn("failed to drop cached element ids", "file", path, "error", err)
		}
	}
}

// LoadMetadataSidecar merges a `{sourcePath}.metadata` sidecar's element
// ids into the index ahead of extraction, so a subsequent SetFileContent
// for sourcePath reuses them instead of minting fresh ones (§6.4).
func (h *Host) LoadMetadataSidecar(sourcePath string) error {
	f, err := sidecar.LoadFile(sidecar.PathForSource(sourcePath))
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ix.AddExternalIDs(f.ElementIDs())
	return nil
}

// AddModel decompiles an externally-ingested model to SysML text, parses
// and extracts it under syntheticPath, and merges the model's own
// element ids over whatever was minted (§6.3).
func (h *Host) AddModel(model *interchange.Model, syntheticPath string) ([]diagnostic.Diagnostic, error) {
	h.mu.Lock()
	text, err := h.decompiler.Decompile(model)
	h.mu.Unlock()
	if err != nil {
		return nil, err
	}

	diags := h.SetFileContent(syntheticPath, text)

	h.mu.Lock()
	h.ix.AddExternalIDs(interchange.ElementIDs(model))
	h.mu.Unlock()
	return diags, nil
}

// Analysis returns a fresh Snapshot over the index as it currently
// stands: a new resolver (and its memoization cache) and diagnostic
// producer, bound into a Queries layer (§4.10).
func (h *Host) Analysis() *Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	rv := resolver.New(h.ix, 0)
	dp := diagnostic.NewProducer(h.ix, rv)
	q := idequery.New(h.ix, rv, dp, h.lookupTree)
	return &Snapshot{Index: h.ix, Resolver: rv, Diagnostics: dp, Queries: q}
}

// lookupTree is the idequery.TreeLookup this host supplies for query
// methods that need raw CST access (selection ranges, semantic tokens).
func (h *Host) lookupTree(file symbol.FileHandle) *cst.Tree {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.trees[file]
}

// parseForPath dispatches to the KerML or SysML grammar entry point by
// file extension (§6.1).
func parseForPath(path, text string) *cst.Tree {
	if strings.HasSuffix(path, ".kerml") {
		return parser.ParseKerML(text)
	}
	return parser.ParseSysML(text)
}
