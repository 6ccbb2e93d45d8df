package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenEndIsOffsetPlusLength(t *testing.T) {
	tok := Token{Kind: IDENT, Text: "Vehicle", Offset: 10}
	assert.Equal(t, 17, tok.End())
}

func TestKindStringUsesNamedPunctuationBeforeKeywordFallback(t *testing.T) {
	assert.Equal(t, ":>", COLONGT.String())
	assert.Equal(t, "IDENT", IDENT.String())
}

func TestKindStringFallsBackToKeywordSpelling(t *testing.T) {
	assert.Equal(t, "package", KW_PACKAGE.String())
	assert.Equal(t, "attribute", KW_ATTRIBUTE.String())
}

func TestKindStringUnknownKindRendersPlaceholder(t *testing.T) {
	unknown := Kind(99999)
	assert.Contains(t, unknown.String(), "Kind(99999)")
}

func TestIsTriviaOnlyMatchesWhitespaceAndComments(t *testing.T) {
	assert.True(t, WHITESPACE.IsTrivia())
	assert.True(t, LINE_COMMENT.IsTrivia())
	assert.True(t, BLOCK_COMMENT.IsTrivia())
	assert.False(t, IDENT.IsTrivia())
	assert.False(t, KW_PART.IsTrivia())
}

func TestKeywordsMapCoversEveryReservedSpelling(t *testing.T) {
	for _, word := range []string{"package", "part", "attribute", "import", "specializes", "true"} {
		kind, ok := Keywords[word]
		assert.True(t, ok, "missing keyword %q", word)
		assert.NotEqual(t, IDENT, kind)
	}
}

func TestKeywordsMapDoesNotClaimOrdinaryIdentifiers(t *testing.T) {
	_, ok := Keywords["vehicle"]
	assert.False(t, ok)
}
