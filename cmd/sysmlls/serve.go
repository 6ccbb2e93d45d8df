package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sysml-tools/sysmlcore/pkg/cache"
	"github.com/sysml-tools/sysmlcore/pkg/config"
	"github.com/sysml-tools/sysmlcore/pkg/host"
	"github.com/sysml-tools/sysmlcore/pkg/mcplog"
	"github.com/sysml-tools/sysmlcore/pkg/mcpquery"
	"github.com/sysml-tools/sysmlcore/pkg/util"
	"github.com/sysml-tools/sysmlcore/pkg/workspace"
)

func newServeCmd() *cobra.Command {
	var (
		workspacePath string
		logFile       string
		cachePath     string
		watch         bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := util.NewLogger(util.LoggerConfig{Level: util.LevelInfo, Format: util.FormatText, Output: os.Stderr})
			h := host.New(0, logger)

			projectCfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load %s: %w", config.Path, err)
			}
			if projectCfg != nil {
				workspacePath = config.ResolveString(workspacePath, projectCfg.Workspace)
				cachePath = config.ResolveString(cachePath, projectCfg.CachePath)
			}

			if cachePath != "" {
				c, err := cache.Open(context.Background(), cachePath)
				if err != nil {
					return fmt.Errorf("open element id cache: %w", err)
				}
				defer c.Close()
				h = h.WithElementCache(c)
			}

			scanOptions := workspace.DefaultScanOptions()
			if projectCfg != nil {
				scanOptions.Include = config.ResolveStrings(nil, projectCfg.Include)
				scanOptions.Exclude = projectCfg.Exclude
			}

			if workspacePath != "" {
				stats, _, err := workspace.Scan(context.Background(), h, workspacePath, scanOptions, nil, logger)
				if err != nil {
					return fmt.Errorf("scan workspace: %w", err)
				}
				logger.Info("workspace scanned",
					"files_indexed", stats.FilesIndexed,
					"files_failed", stats.FilesFailed)

				if watch {
					w, err := workspace.NewWatcher(h, workspace.DefaultWatchOptions(), logger)
					if err != nil {
						return fmt.Errorf("start watcher: %w", err)
					}
					if err := w.Start(workspacePath); err != nil {
						return fmt.Errorf("watch %q: %w", workspacePath, err)
					}
					defer w.Stop()
				}
			}

			auditLog, err := mcplog.NewLogger(logFile)
			if err != nil {
				return fmt.Errorf("open audit log: %w", err)
			}

			srv := mcpquery.NewServer(h, auditLog)
			defer srv.Close()
			return srv.ServeStdio()
		},
	}

	cmd.Flags().StringVar(&workspacePath, "workspace", "", "directory to bulk-index before serving")
	cmd.Flags().StringVar(&logFile, "log-file", "", "JSONL audit log path for tool calls (disabled if empty)")
	cmd.Flags().StringVar(&cachePath, "cache", "", "SQLite element-id cache path (disabled if empty)")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep watching --workspace for changes after the initial scan")
	return cmd
}
