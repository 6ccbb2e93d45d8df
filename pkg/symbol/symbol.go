package symbol

import "github.com/sysml-tools/sysmlcore/pkg/cst"

// Direction is the `in`/`out`/`inout` modifier on a feature declaration.
type Direction int

const (
	DirNone Direction = iota
	DirIn
	DirOut
	DirInout
)

func (d Direction) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	case DirInout:
		return "inout"
	default:
		return ""
	}
}

// FileHandle identifies the owning file of a Symbol. The host assigns
// these; they are opaque outside pkg/host/pkg/index.
type FileHandle string

// ImportDescriptor is the payload a Symbol of Kind Import carries instead
// of a user-visible name (§4.4).
type ImportDescriptor struct {
	PathSegments []TypeRef
	IsPublic     bool
	IsWildcard   bool
	IsRecursive  bool
	Filters      []TypeRef // qualified names, each with its own span
}

// Modifiers bundles the boolean/valued prefix modifiers a declaration may
// carry (§3.4).
type Modifiers struct {
	IsPublic     bool
	IsAbstract   bool
	IsVariation  bool
	IsReadonly   bool
	IsDerived    bool
	IsParallel   bool
	IsIndividual bool
	IsEnd        bool
	IsDefault    bool
	IsOrdered    bool
	IsNonunique  bool
	IsPortion    bool
	Direction    Direction
}

// Symbol is an ownership-free record describing one named (or anonymous)
// declaration (§3.4). It owns no reference back into the CST beyond spans
// and text already copied out during extraction, so it is cheap to hold in
// index maps across re-extractions.
type Symbol struct {
	Name          string
	ShortName     string
	ShortNameSpan cst.Span
	QualifiedName string
	ElementID     string
	Kind          Kind
	File          FileHandle
	Span          cst.Span

	Supertypes    []TypeRef
	Relationships []Relationship
	TypeRefs      []TypeRefChain

	Modifiers    Modifiers
	Multiplicity string
	Value        string // initializer text, verbatim

	Import *ImportDescriptor // non-nil iff Kind == Import

	Documentation string // leading comment trivia, if any
}

// IsAnonymous reports whether name was synthesized by the extractor rather
// than declared by the user (§3.6: anonymous names always begin with `<`).
func (s *Symbol) IsAnonymous() bool {
	return len(s.Name) > 0 && s.Name[0] == '<'
}
