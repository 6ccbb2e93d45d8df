package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sysml-tools/sysmlcore/pkg/diagnostic"
	"github.com/sysml-tools/sysmlcore/pkg/host"
	"github.com/sysml-tools/sysmlcore/pkg/util"
	"github.com/sysml-tools/sysmlcore/pkg/workspace"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Scan a workspace and report diagnostics, exiting non-zero on any error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := util.NewLogger(util.LoggerConfig{Level: util.LevelWarn, Format: util.FormatText, Output: os.Stderr})
			h := host.New(0, logger)

			_, diags, err := workspace.Scan(context.Background(), h, args[0], workspace.DefaultScanOptions(), nil, logger)
			if err != nil {
				return fmt.Errorf("scan %q: %w", args[0], err)
			}

			return reportDiagnostics(diags)
		},
	}
	return cmd
}

// reportDiagnostics prints every file's diagnostics sorted by path and
// exits with an error if any has Error severity, the way a CI linter
// would.
func reportDiagnostics(diags map[string][]diagnostic.Diagnostic) error {
	var files []string
	for f := range diags {
		files = append(files, f)
	}
	sort.Strings(files)

	hasError := false
	total := 0
	for _, f := range files {
		for _, d := range diags[f] {
			total++
			fmt.Printf("%s:%d:%d: %s: [%s] %s\n", f, d.Start.Line, d.Start.Column, d.Severity, d.Code, d.Message)
			if d.Severity == diagnostic.Error {
				hasError = true
			}
		}
	}
	fmt.Printf("%d diagnostic(s) across %d file(s)\n", total, len(files))
	if hasError {
		return fmt.Errorf("check failed: errors found")
	}
	return nil
}
