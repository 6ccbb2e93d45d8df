package interchange

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysml-tools/sysmlcore/pkg/parser"
)

func TestTextDecompilerProducesParseableOutput(t *testing.T) {
	m := &Model{Roots: []*Element{
		{ID: "id-1", Kind: "Part", Name: "Vehicle", OwnedElements: []*Element{
			{ID: "id-2", Kind: "Attribute", Name: "mass"},
		}},
	}}

	text, err := (TextDecompiler{}).Decompile(m)
	require.NoError(t, err)
	assert.Contains(t, text, "part def Vehicle")
	assert.Contains(t, text, "attribute def mass")

	tree := parser.ParseSysML(text)
	assert.Empty(t, tree.Diagnostics, "decompiled output must be syntactically valid sysml")
}

func TestTextDecompilerRendersRelationshipsAsSpecializations(t *testing.T) {
	m := &Model{Roots: []*Element{
		{Kind: "Part", Name: "Vehicle", Relationships: []Relationship{{Kind: "Specializes", Target: "Thing"}}},
	}}
	text, err := (TextDecompiler{}).Decompile(m)
	require.NoError(t, err)
	assert.True(t, strings.Contains(text, "Vehicle :> Thing"))
}

func TestTextDecompilerQuotesUnnamedAndNonIdentNames(t *testing.T) {
	m := &Model{Roots: []*Element{
		{Kind: "Part", Name: ""},
		{Kind: "Part", Name: "has space"},
	}}
	text, err := (TextDecompiler{}).Decompile(m)
	require.NoError(t, err)
	assert.Contains(t, text, "'unnamed'")
	assert.Contains(t, text, "'has space'")
}

func TestElementIDsBuildsQualifiedNamesFromOwnerChain(t *testing.T) {
	m := &Model{Roots: []*Element{
		{ID: "id-1", Name: "Vehicle", OwnedElements: []*Element{
			{ID: "id-2", Name: "engine"},
		}},
	}}
	ids := ElementIDs(m)
	assert.Equal(t, "id-1", ids["Vehicle"])
	assert.Equal(t, "id-2", ids["Vehicle::engine"])
}

func TestElementIDsSkipsElementsWithoutID(t *testing.T) {
	m := &Model{Roots: []*Element{
		{Name: "NoID"},
	}}
	ids := ElementIDs(m)
	assert.NotContains(t, ids, "NoID")
}
