package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sysml-tools/sysmlcore/pkg/cst"
)

func TestDirectionStringRendersLowercaseKeyword(t *testing.T) {
	assert.Equal(t, "in", DirIn.String())
	assert.Equal(t, "out", DirOut.String())
	assert.Equal(t, "inout", DirInout.String())
	assert.Equal(t, "", DirNone.String())
}

func TestIsAnonymousOnlyMatchesSynthesizedNames(t *testing.T) {
	named := &Symbol{Name: "Vehicle"}
	anon := &Symbol{Name: "<anon-1>"}
	empty := &Symbol{}

	assert.False(t, named.IsAnonymous())
	assert.True(t, anon.IsAnonymous())
	assert.False(t, empty.IsAnonymous())
}

func TestKindStringFallsBackToOtherForUnknownValue(t *testing.T) {
	assert.Equal(t, "Other", Kind(-1).String())
	assert.Equal(t, "PartDefinition", PartDefinition.String())
}

func TestKindForKeywordDistinguishesDefinitionFromUsage(t *testing.T) {
	assert.Equal(t, PartDefinition, KindForKeyword("part", true))
	assert.Equal(t, PartUsage, KindForKeyword("part", false))
	assert.Equal(t, AttributeDefinition, KindForKeyword("attribute", true))
	assert.Equal(t, AttributeUsage, KindForKeyword("attribute", false))
}

func TestKindForKeywordUnknownKeywordIsOther(t *testing.T) {
	assert.Equal(t, Other, KindForKeyword("nonsense", true))
}

func TestRelationshipKindForOperatorResolvesEachSpelling(t *testing.T) {
	assert.Equal(t, TypedBy, RelationshipKindForOperator(":"))
	assert.Equal(t, Specializes, RelationshipKindForOperator(":>"))
	assert.Equal(t, Redefines, RelationshipKindForOperator(":>>"))
	assert.Equal(t, Subsets, RelationshipKindForOperator("subsets"))
	assert.Equal(t, Redefines, RelationshipKindForOperator("redefines"))
	assert.Equal(t, Conjugates, RelationshipKindForOperator("conjugates"))
	assert.Equal(t, TypedBy, RelationshipKindForOperator("typed"))
}

func TestRelationshipKindForOperatorUnknownDefaultsToSpecializes(t *testing.T) {
	assert.Equal(t, Specializes, RelationshipKindForOperator("???"))
}

func TestNewFeatureChainTagsFirstSegmentDistinctly(t *testing.T) {
	spans := []cst.Span{
		{Start: cst.Position{Line: 0, Column: 0}, End: cst.Position{Line: 0, Column: 6}},
		{Start: cst.Position{Line: 0, Column: 7}, End: cst.Position{Line: 0, Column: 12}},
		{Start: cst.Position{Line: 0, Column: 13}, End: cst.Position{Line: 0, Column: 19}},
	}
	chain := NewFeatureChain([]string{"engine", "power", "rating"}, spans)

	require := assert.New(t)
	require.Len(chain.Segments, 3)
	require.Equal(RefChainFirst, chain.Segments[0].Kind)
	require.Equal(RefChainMember, chain.Segments[1].Kind)
	require.Equal(RefChainMember, chain.Segments[2].Kind)
	require.Equal("engine", chain.Segments[0].Name)
}
