package filterexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

func withMeta(names ...string) *symbol.Symbol {
	s := &symbol.Symbol{Name: "Candidate", Kind: symbol.PartUsage}
	for _, n := range names {
		s.Relationships = append(s.Relationships, symbol.Relationship{Kind: symbol.Meta, TargetName: n})
	}
	return s
}

func TestMatchesPlainMetadataName(t *testing.T) {
	s := withMeta("Safety")
	assert.True(t, Matches("Safety", s))
	assert.False(t, Matches("Performance", s))
}

func TestMatchesPlainMetadataNameBySuffix(t *testing.T) {
	s := withMeta("Lib::Tags::Safety")
	assert.True(t, Matches("Safety", s))
	assert.True(t, Matches("Tags::Safety", s))
	assert.False(t, Matches("Tags::Other", s))
}

func TestMatchesNoMetadataFails(t *testing.T) {
	s := &symbol.Symbol{Name: "Bare", Kind: symbol.PartUsage}
	assert.False(t, Matches("Safety", s))
}

func TestMatchesCELExpressionOverMetadataList(t *testing.T) {
	s := withMeta("Safety")
	assert.True(t, Matches(`"Safety" in metadata`, s))
	assert.False(t, Matches(`"Performance" in metadata`, s))
}

func TestMatchesCELExpressionOverKindAndName(t *testing.T) {
	s := withMeta()
	s.Name = "engine"
	assert.True(t, Matches(`kind == "PartUsage"`, s))
	assert.True(t, Matches(`name == "engine"`, s))
	assert.False(t, Matches(`name == "other"`, s))
}

func TestMatchesInvalidCELExpressionPassesThrough(t *testing.T) {
	s := withMeta("Safety")
	// Open Question (c): a filter clause that neither is a plain
	// metadata name nor compiles as CEL is treated as passing.
	assert.True(t, Matches("not ( valid cel [[", s))
}

func TestMatchesNonBooleanCELExpressionPassesThrough(t *testing.T) {
	s := withMeta("Safety")
	assert.True(t, Matches(`name + "!"`, s))
}
