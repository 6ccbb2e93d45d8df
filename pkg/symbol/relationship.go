package symbol

import "github.com/sysml-tools/sysmlcore/pkg/cst"

// RelationshipKind enumerates the edges a Symbol may declare toward other
// (possibly unresolved) names (§3.4).
type RelationshipKind int

const (
	Specializes RelationshipKind = iota
	Redefines
	Subsets
	Conjugates
	TypedBy
	References // `ref` features
	Meta       // `#name` prefix metadata and `@name` annotations
	DependencySource
	DependencyTarget
	ImportsFrom
	Performs
	Exhibits
	Includes
	Satisfies
	FramesConcern
	By
	Via
	FlowFrom
	FlowTo
	SuccessionFirst
	SuccessionThen
	TransitionSource
	TransitionTarget
)

var relationshipNames = map[RelationshipKind]string{
	Specializes: "Specializes", Redefines: "Redefines", Subsets: "Subsets",
	Conjugates: "Conjugates", TypedBy: "TypedBy", References: "References",
	Meta: "Meta", DependencySource: "DependencySource", DependencyTarget: "DependencyTarget",
	ImportsFrom: "ImportsFrom", Performs: "Performs", Exhibits: "Exhibits",
	Includes: "Includes", Satisfies: "Satisfies", FramesConcern: "FramesConcern",
	By: "By", Via: "Via", FlowFrom: "FlowFrom", FlowTo: "FlowTo",
	SuccessionFirst: "SuccessionFirst", SuccessionThen: "SuccessionThen",
	TransitionSource: "TransitionSource", TransitionTarget: "TransitionTarget",
}

func (k RelationshipKind) String() string {
	if s, ok := relationshipNames[k]; ok {
		return s
	}
	return "Specializes"
}

// specOperatorKinds maps a specialization-clause operator keyword/token
// spelling to its relationship kind; used by pkg/extractor when reading an
// NK_SPECIALIZATION node out of the CST.
var specOperatorKinds = map[string]RelationshipKind{
	":": TypedBy, ":>": Specializes, ":>>": Redefines, "subsets": Subsets, "redefines": Redefines,
	"conjugates": Conjugates, "typed": TypedBy, "specializes": Specializes,
}

// RelationshipKindForOperator resolves the relationship kind for a
// specialization-clause operator's literal text.
func RelationshipKindForOperator(opText string) RelationshipKind {
	if k, ok := specOperatorKinds[opText]; ok {
		return k
	}
	return Specializes
}

// Relationship is one declared edge from a symbol toward another
// (possibly unresolved) name.
type Relationship struct {
	Kind          RelationshipKind
	TargetName    string
	TargetSpan    cst.Span
	ResolvedQName string // empty until resolved
}
