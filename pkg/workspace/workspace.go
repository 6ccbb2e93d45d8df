// Package workspace performs the bootstrap bulk scan a host needs when
// it opens a directory of SysML/KerML files for the first time: discover
// files by glob, read them with a memory-mapped cache, and feed each one
// through host.SetFileContent with bounded concurrency.
//
// Grounded on pkg/indexer/scanner.go's three-phase discover/process/index
// pipeline, but the teacher's hand-rolled worker-pool-plus-channels
// result collector is replaced with golang.org/x/sync/errgroup's bounded
// worker-group idiom, and file discovery uses doublestar glob matching
// directly rather than filepath.WalkDir plus manual pattern checks.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/sysml-tools/sysmlcore/pkg/diagnostic"
	"github.com/sysml-tools/sysmlcore/pkg/host"
	"github.com/sysml-tools/sysmlcore/pkg/util"
)

// ScanOptions configures a workspace bootstrap scan.
type ScanOptions struct {
	// Include is a set of doublestar glob patterns a discovered path's
	// slash-form relative path must match at least one of. Empty means
	// every `.sysml`/`.kerml` file matches.
	Include []string
	// Exclude is a set of doublestar glob patterns that drop a matched
	// file or, for a directory, the entire subtree.
	Exclude []string
	// Concurrency bounds how many files are parsed/extracted at once
	// (0 defaults to util.GetOptimalPoolSize()).
	Concurrency int
}

// DefaultScanOptions matches every `.sysml`/`.kerml` file, excluding
// nothing, with the optimal pool size for concurrency.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{Include: []string{"**/*.sysml", "**/*.kerml"}}
}

// ScanStats summarizes one bootstrap scan.
type ScanStats struct {
	FilesDiscovered int
	FilesIndexed    int
	FilesFailed     int
	Duration        time.Duration
	Errors          []FileError
}

// FileError records one file that failed to read during a scan.
type FileError struct {
	Path  string
	Error string
}

// ProgressFunc is called after each file is indexed, reporting a running
// count against the total discovered. Files that fail to read are not
// reported.
type ProgressFunc func(done, total int, path string)

// Scan discovers files under root per options, loads each through a
// memory-mapped file cache, and drives h.SetFileContent for each one
// concurrently (bounded by options.Concurrency), returning per-file
// diagnostics alongside aggregate stats.
func Scan(ctx context.Context, h *host.Host, root string, options ScanOptions, progress ProgressFunc, logger *slog.Logger) (*ScanStats, map[string][]diagnostic.Diagnostic, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	stats := &ScanStats{}

	files, err := discoverFiles(root, options)
	if err != nil {
		return nil, nil, fmt.Errorf("discover workspace files: %w", err)
	}
	stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		stats.Duration = time.Since(start)
		return stats, nil, nil
	}

	concurrency := options.Concurrency
	if concurrency <= 0 {
		concurrency = util.GetOptimalPoolSize()
	}

	cache := util.NewFileCache(util.DefaultFileCacheConfig())
	defer cache.Close()

	var mu sync.Mutex
	diagnostics := make(map[string][]diagnostic.Diagnostic, len(files))
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, path := range files {
		path := path
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			mf, err := cache.Get(path)
			if err != nil {
				mu.Lock()
				stats.FilesFailed++
				stats.Errors = append(stats.Errors, FileError{Path: path, Error: err.Error()})
				mu.Unlock()
				logger.Warn("failed to read workspace file", "path", path, "error", err)
				return nil
			}

			diags := h.SetFileContent(path, string(mf.Data))

			mu.Lock()
			diagnostics[path] = diags
			stats.FilesIndexed++
			done++
			if progress != nil {
				progress(done, len(files), path)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, diagnostics, err
	}

	stats.Duration = time.Since(start)
	logger.Info("workspace scan complete",
		"files_discovered", stats.FilesDiscovered,
		"files_indexed", stats.FilesIndexed,
		"files_failed", stats.FilesFailed,
		"duration", stats.Duration)
	return stats, diagnostics, nil
}

// discoverFiles walks root, matching relative paths against
// options.Include (defaulting to every `.sysml`/`.kerml` file) and
// dropping anything options.Exclude matches.
func discoverFiles(root string, options ScanOptions) ([]string, error) {
	include := options.Include
	if len(include) == 0 {
		include = DefaultScanOptions().Include
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		for _, pattern := range options.Exclude {
			if matched, _ := doublestar.PathMatch(pattern, rel); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}
		for _, pattern := range include {
			if matched, _ := doublestar.PathMatch(pattern, rel); matched {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	return files, err
}
