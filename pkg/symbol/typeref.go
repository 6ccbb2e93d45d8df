package symbol

import "github.com/sysml-tools/sysmlcore/pkg/cst"

// RefKind classifies one segment of a TypeRef/TypeRefChain so downstream
// IDE features can tell a specialization target from a feature-chain hop
// without re-walking the CST (§3.4).
type RefKind int

const (
	RefTypedBy RefKind = iota
	RefSpecializes
	RefRedefines
	RefSubsets
	RefFeatureValue
	RefExpressionRef
	RefChainFirst
	RefChainMember
)

var refKindNames = map[RefKind]string{
	RefTypedBy: "TypedBy", RefSpecializes: "Specializes", RefRedefines: "Redefines",
	RefSubsets: "Subsets", RefFeatureValue: "FeatureValue",
	RefExpressionRef: "ExpressionRef", RefChainFirst: "ChainFirst",
	RefChainMember: "ChainMember",
}

func (k RefKind) String() string {
	if s, ok := refKindNames[k]; ok {
		return s
	}
	return "TypedBy"
}

// TypeRef is a single-segment reference: a simple name, its span, and the
// role it plays.
type TypeRef struct {
	Name string
	Span cst.Span
	Kind RefKind
}

// TypeRefChain is a dotted chain (`a.b.c`) where each segment carries its
// own span and ref kind — the first is RefChainFirst, the rest
// RefChainMember (§4.4 edge-case policy).
type TypeRefChain struct {
	Segments []TypeRef
}

// NewFeatureChain builds a TypeRefChain from an ordered list of (name,
// span) segments, tagging the first RefChainFirst and the rest
// RefChainMember.
func NewFeatureChain(names []string, spans []cst.Span) TypeRefChain {
	segs := make([]TypeRef, len(names))
	for i, n := range names {
		kind := RefChainMember
		if i == 0 {
			kind = RefChainFirst
		}
		segs[i] = TypeRef{Name: n, Span: spans[i], Kind: kind}
	}
	return TypeRefChain{Segments: segs}
}
