package visibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysml-tools/sysmlcore/pkg/extractor"
	"github.com/sysml-tools/sysmlcore/pkg/index"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

func buildIndex(t *testing.T, syms ...*symbol.Symbol) *index.Index {
	t.Helper()
	ix := index.New(0, nil)
	ix.ReplaceFile(&extractor.ExtractionResult{File: symbol.FileHandle("a.sysml"), Symbols: syms})
	return ix
}

func TestVisibilityDirectMembers(t *testing.T) {
	ix := buildIndex(t,
		&symbol.Symbol{Name: "Vehicle", QualifiedName: "P::Vehicle", Kind: symbol.PartDefinition},
		&symbol.Symbol{Name: "Engine", QualifiedName: "P::Engine", Kind: symbol.PartDefinition},
	)
	b := NewBuilder(ix)
	v := b.Visibility("P")

	qs, ok := v.Lookup("Vehicle")
	require.True(t, ok)
	assert.Equal(t, []string{"P::Vehicle"}, qs)
}

func TestVisibilityInheritsViaSpecializes(t *testing.T) {
	ix := buildIndex(t,
		&symbol.Symbol{Name: "Thing", QualifiedName: "P::Thing", Kind: symbol.PartDefinition},
		&symbol.Symbol{Name: "mass", QualifiedName: "P::Thing::mass", Kind: symbol.AttributeUsage},
		&symbol.Symbol{
			Name: "Vehicle", QualifiedName: "P::Vehicle", Kind: symbol.PartDefinition,
			Relationships: []symbol.Relationship{{Kind: symbol.Specializes, TargetName: "Thing", ResolvedQName: "P::Thing"}},
		},
	)
	b := NewBuilder(ix)
	v := b.Visibility("P::Vehicle")

	qs, ok := v.Lookup("mass")
	require.True(t, ok)
	assert.Contains(t, qs, "P::Thing::mass")
}

func TestVisibilitySpecializationCycleDoesNotHang(t *testing.T) {
	ix := buildIndex(t,
		&symbol.Symbol{
			Name: "A", QualifiedName: "P::A", Kind: symbol.PartDefinition,
			Relationships: []symbol.Relationship{{Kind: symbol.Specializes, TargetName: "B", ResolvedQName: "P::B"}},
		},
		&symbol.Symbol{
			Name: "B", QualifiedName: "P::B", Kind: symbol.PartDefinition,
			Relationships: []symbol.Relationship{{Kind: symbol.Specializes, TargetName: "A", ResolvedQName: "P::A"}},
		},
	)
	b := NewBuilder(ix)

	done := make(chan ScopeVisibility, 1)
	go func() { done <- b.Visibility("P::A") }()
	select {
	case v := <-done:
		assert.NotNil(t, v.Direct)
	case <-time.After(2 * time.Second):
		t.Fatal("visibility computation did not terminate on a specialization cycle")
	}
}

func TestVisibilityWildcardImportRequiresPublic(t *testing.T) {
	ix := buildIndex(t,
		&symbol.Symbol{Name: "Pub", QualifiedName: "Lib::Pub", Kind: symbol.PartDefinition, Modifiers: symbol.Modifiers{IsPublic: true}},
		&symbol.Symbol{Name: "Priv", QualifiedName: "Lib::Priv", Kind: symbol.PartDefinition},
		&symbol.Symbol{
			QualifiedName: "P::import:Lib::*", Kind: symbol.Import,
			Import: &symbol.ImportDescriptor{
				PathSegments: []symbol.TypeRef{{Name: "Lib"}},
				IsWildcard:   true,
			},
		},
	)
	b := NewBuilder(ix)
	v := b.Visibility("P")

	_, ok := v.Lookup("Pub")
	assert.True(t, ok)
	_, ok = v.Lookup("Priv")
	assert.False(t, ok)
}

func TestVisibilityPublicImportReexports(t *testing.T) {
	ix := buildIndex(t,
		&symbol.Symbol{Name: "Pub", QualifiedName: "Lib::Pub", Kind: symbol.PartDefinition, Modifiers: symbol.Modifiers{IsPublic: true}},
		&symbol.Symbol{
			QualifiedName: "P::import:Lib::*", Kind: symbol.Import,
			Import: &symbol.ImportDescriptor{
				PathSegments: []symbol.TypeRef{{Name: "Lib"}},
				IsWildcard:   true,
				IsPublic:     true,
			},
		},
	)
	b := NewBuilder(ix)
	v := b.Visibility("P")

	// a public import promotes its contribution into the Direct overlay too,
	// so re-exported names are themselves importable from P.
	qs, ok := v.Direct["Pub"]
	require.True(t, ok)
	assert.Contains(t, qs, "Lib::Pub")
}
