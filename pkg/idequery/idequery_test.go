package idequery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/diagnostic"
	"github.com/sysml-tools/sysmlcore/pkg/extractor"
	"github.com/sysml-tools/sysmlcore/pkg/index"
	"github.com/sysml-tools/sysmlcore/pkg/parser"
	"github.com/sysml-tools/sysmlcore/pkg/resolver"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

const testFile = symbol.FileHandle("a.sysml")

func buildQueries(t *testing.T, src string) (*Queries, *cst.LineIndex) {
	t.Helper()
	tree := parser.ParseSysML(src)
	res := extractor.NewExtractor(nil).ExtractFile(testFile, tree, src)
	ix := index.New(0, nil)
	ix.ReplaceFile(res)
	rv := resolver.New(ix, 0)
	dp := diagnostic.NewProducer(ix, rv)
	trees := func(f symbol.FileHandle) *cst.Tree {
		if f == testFile {
			return tree
		}
		return nil
	}
	return New(ix, rv, dp, trees), cst.NewLineIndex(src)
}

func posOf(t *testing.T, li *cst.LineIndex, src, needle string) cst.Position {
	t.Helper()
	off := strings.Index(src, needle)
	require.GreaterOrEqual(t, off, 0, "needle %q not found", needle)
	return li.Position(off)
}

// posOfLast locates the last occurrence of needle, for sources where the
// same text appears once as a declaration and again as a reference to it.
func posOfLast(t *testing.T, li *cst.LineIndex, src, needle string) cst.Position {
	t.Helper()
	off := strings.LastIndex(src, needle)
	require.GreaterOrEqual(t, off, 0, "needle %q not found", needle)
	return li.Position(off)
}

func TestHoverOnDeclarationReturnsItself(t *testing.T) {
	src := `package P { part def Vehicle; }`
	q, li := buildQueries(t, src)

	res, ok := q.Hover(testFile, posOf(t, li, src, "Vehicle"))
	require.True(t, ok)
	assert.Equal(t, "P::Vehicle", res.QualifiedName)
}

func TestGotoDefinitionFollowsSupertypeReference(t *testing.T) {
	src := `package P { part def Thing; part def Vehicle :> Thing; }`
	q, li := buildQueries(t, src)

	declPos := posOf(t, li, src, "Thing;")
	refPos := posOfLast(t, li, src, "Thing;")
	require.NotEqual(t, declPos, refPos)

	file, span, ok := q.GotoDefinition(testFile, refPos)
	require.True(t, ok)
	assert.Equal(t, testFile, file)
	// the returned span is the Thing declaration's full span, which
	// contains the "Thing" text position computed from the decl site
	assert.True(t, span.Contains(declPos))
}

func TestFindReferencesLocatesEverySpecializingSite(t *testing.T) {
	src := `package P { part def Thing; part def Car :> Thing; part def Truck :> Thing; }`
	q, li := buildQueries(t, src)

	refs := q.FindReferences(testFile, posOf(t, li, src, "Thing;"))
	assert.Len(t, refs, 2)
}

func TestDocumentSymbolsExcludesImportsAndComments(t *testing.T) {
	src := `package P { import Other::*; part def Vehicle; }`
	q, _ := buildQueries(t, src)

	syms := q.DocumentSymbols(testFile)
	var kinds []symbol.Kind
	for _, s := range syms {
		kinds = append(kinds, s.Kind)
	}
	assert.NotContains(t, kinds, symbol.Import)
}

func TestWorkspaceSymbolsFiltersCaseInsensitively(t *testing.T) {
	src := `package P { part def Vehicle; part def Engine; }`
	q, _ := buildQueries(t, src)

	syms := q.WorkspaceSymbols("veh")
	require.Len(t, syms, 1)
	assert.Equal(t, "Vehicle", syms[0].Name)
}

func TestDiagnosticsDelegatesToProducer(t *testing.T) {
	src := `package P { part def Vehicle :> Nonexistent; }`
	q, _ := buildQueries(t, src)

	diags := q.Diagnostics(testFile)
	require.NotEmpty(t, diags)
	assert.Equal(t, "unresolved-reference", diags[0].Code)
}

func TestCompletionsIncludesEnclosingScopeMembers(t *testing.T) {
	src := `package P {
		part def Thing;
		part def Vehicle :> Thing {
			part def Engine;
		}
	}`
	q, li := buildQueries(t, src)

	pos := posOf(t, li, src, "Engine")
	items := q.Completions(testFile, pos)

	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Contains(t, labels, "Thing")
	assert.Contains(t, labels, "Vehicle")
}

func TestFoldingRangesOnlyMultiLineDecls(t *testing.T) {
	src := "package P {\n\tpart def Vehicle {\n\t\tpart def Engine;\n\t}\n\tpart def Single;\n}"
	q, _ := buildQueries(t, src)

	ranges := q.FoldingRanges(testFile)
	for _, r := range ranges {
		assert.Greater(t, r.Span.End.Line, r.Span.Start.Line)
	}
}

func TestDocumentLinksReportsImportTarget(t *testing.T) {
	src := `package P { import Other::Sub::*; }`
	q, _ := buildQueries(t, src)

	links := q.DocumentLinks(testFile)
	require.Len(t, links, 1)
	assert.Equal(t, "Other::Sub", links[0].Target)
}
