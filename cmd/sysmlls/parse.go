package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/parser"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one .sysml/.kerml file and dump its CST, for round-trip debugging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %q: %w", path, err)
			}

			var tree *cst.Tree
			if strings.HasSuffix(path, ".kerml") {
				tree = parser.ParseKerML(string(data))
			} else {
				tree = parser.ParseSysML(string(data))
			}

			dumpNode(tree.RedRoot(), 0)

			if len(tree.Diagnostics) > 0 {
				fmt.Fprintf(os.Stderr, "\n%d syntax error(s):\n", len(tree.Diagnostics))
				for _, d := range tree.Diagnostics {
					fmt.Fprintf(os.Stderr, "  [%d:%d] %s\n", d.Start, d.End, d.Message)
				}
			}

			if roundTrip := tree.Text(); roundTrip != string(data) {
				fmt.Fprintln(os.Stderr, "\nwarning: reconstructed text does not match source byte-for-byte")
			}
			return nil
		},
	}
	return cmd
}

func dumpNode(n *cst.RedNode, depth int) {
	fmt.Printf("%s%s [%d..%d)\n", strings.Repeat("  ", depth), n.Kind(), n.Start(), n.End())
	for _, e := range n.Children() {
		switch {
		case e.Node != nil:
			dumpNode(e.Node, depth+1)
		case e.Token != nil:
			fmt.Printf("%s%s %q [%d..%d)\n", strings.Repeat("  ", depth+1), e.Token.Kind(), e.Token.Text(), e.Token.Start(), e.Token.End())
		}
	}
}
