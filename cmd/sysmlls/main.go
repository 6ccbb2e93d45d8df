// Command sysmlls is the incremental SysML v2/KerML language server and
// batch-analysis CLI: serve exposes C9's query layer as MCP tools over
// stdio, check runs a workspace scan and reports diagnostics with a
// CI-friendly exit code, symbols dumps document/workspace symbols, and
// parse round-trips a file through the lexer/parser for CST debugging.
// Grounded on termfx-morfx's demo/cmd cobra root-command wiring.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sysmlls",
		Short: "SysML v2/KerML language server and analysis CLI",
		Long:  "Incremental SysML v2/KerML language analysis: lex, parse, index, resolve, and query a workspace of .sysml/.kerml files.",
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newCheckCmd(),
		newSymbolsCmd(),
		newParseCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sysmlls version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sysmlls %s\n", version)
		},
	}
}
