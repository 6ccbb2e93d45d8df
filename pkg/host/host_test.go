package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysml-tools/sysmlcore/pkg/interchange"
)

func TestSetFileContentIndexesSymbolsAndReturnsDiagnostics(t *testing.T) {
	h := New(0, nil)
	diags := h.SetFileContent("a.sysml", `package P { part def Vehicle :> Nonexistent; }`)

	require.Len(t, diags, 1)
	assert.Equal(t, "unresolved-reference", diags[0].Code)

	snap := h.Analysis()
	sym, ok := snap.Index.ByQualifiedName("P::Vehicle")
	require.True(t, ok)
	assert.Equal(t, "P::Vehicle", sym.QualifiedName)
}

func TestSetFileContentKerMLExtensionUsesKerMLGrammar(t *testing.T) {
	h := New(0, nil)
	diags := h.SetFileContent("a.kerml", `package P { part def Vehicle; }`)
	assert.Empty(t, diags)
}

func TestRemoveFileDropsFileFromIndex(t *testing.T) {
	h := New(0, nil)
	h.SetFileContent("a.sysml", `package P { part def Vehicle; }`)
	h.RemoveFile("a.sysml")

	snap := h.Analysis()
	_, ok := snap.Index.ByQualifiedName("P::Vehicle")
	assert.False(t, ok)
}

func TestSetFileContentReplacesPriorContentsForSamePath(t *testing.T) {
	h := New(0, nil)
	h.SetFileContent("a.sysml", `package P { part def Vehicle; }`)
	h.SetFileContent("a.sysml", `package P { part def Engine; }`)

	snap := h.Analysis()
	_, hasVehicle := snap.Index.ByQualifiedName("P::Vehicle")
	_, hasEngine := snap.Index.ByQualifiedName("P::Engine")
	assert.False(t, hasVehicle)
	assert.True(t, hasEngine)
}

func TestAnalysisReflectsIndexAsOfCallTime(t *testing.T) {
	h := New(0, nil)
	h.SetFileContent("a.sysml", `package P { part def Vehicle; }`)
	snap1 := h.Analysis()

	h.SetFileContent("b.sysml", `package Q { part def Engine; }`)
	snap2 := h.Analysis()

	_, onFirst := snap1.Index.ByQualifiedName("Q::Engine")
	_, onSecond := snap2.Index.ByQualifiedName("Q::Engine")
	assert.False(t, onFirst)
	assert.True(t, onSecond)
}

func TestAddModelDecompilesAndIndexesSyntheticFile(t *testing.T) {
	h := New(0, nil)
	model := &interchange.Model{Roots: []*interchange.Element{
		{ID: "id-1", Kind: "Part", Name: "Vehicle"},
	}}
	diags, err := h.AddModel(model, "generated.sysml")
	require.NoError(t, err)
	assert.Empty(t, diags)

	snap := h.Analysis()
	_, ok := snap.Index.ByQualifiedName("Vehicle")
	assert.True(t, ok)
}
