package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sysml-tools/sysmlcore/pkg/host"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
	"github.com/sysml-tools/sysmlcore/pkg/util"
	"github.com/sysml-tools/sysmlcore/pkg/workspace"
)

func newSymbolsCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "symbols <path>",
		Short: "List every symbol in a workspace, optionally filtered by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := util.NewLogger(util.LoggerConfig{Level: util.LevelWarn, Format: util.FormatText, Output: os.Stderr})
			h := host.New(0, logger)

			if _, _, err := workspace.Scan(context.Background(), h, args[0], workspace.DefaultScanOptions(), nil, logger); err != nil {
				return fmt.Errorf("scan %q: %w", args[0], err)
			}

			syms := h.Analysis().Queries.WorkspaceSymbols(query)
			for _, s := range syms {
				printSymbolLine(s)
			}
			fmt.Printf("%d symbol(s)\n", len(syms))
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "case-insensitive substring filter on symbol name")
	return cmd
}

func printSymbolLine(s *symbol.Symbol) {
	fmt.Printf("%s:%d:%d: %s %s (%s)\n", s.File, s.Span.Start.Line, s.Span.Start.Column, s.Kind, s.QualifiedName, s.ElementID)
}
