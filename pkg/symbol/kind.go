// Package symbol defines the ownership-free Symbol record (§3.4) and the
// enumerations it is built from: SymbolKind, RelationshipKind, and the
// TypeRef/TypeRefChain reference model used by the extractor, index,
// resolver, and IDE query layer.
package symbol

// Kind enumerates the 45 declaration kinds a Symbol may carry (§3.4).
type Kind int

const (
	Other Kind = iota
	Package
	PartDefinition
	PartUsage
	PortDefinition
	PortUsage
	ActionDefinition
	ActionUsage
	StateDefinition
	StateUsage
	AttributeDefinition
	AttributeUsage
	RequirementDefinition
	RequirementUsage
	ConstraintDefinition
	ConstraintUsage
	ConnectionDefinition
	ConnectionUsage
	InterfaceDefinition
	InterfaceUsage
	FlowDefinition
	FlowUsage
	ItemDefinition
	ItemUsage
	UseCase
	View
	Viewpoint
	Rendering
	MetadataDefinition
	MetadataUsage
	Alias
	Import
	Comment
	EnumDefinition
	EnumLiteral
	SatisfyUsage
	PerformUsage
	ExhibitUsage
	IncludeUsage
	BindUsage
	ConnectUsage
	SuccessionUsage
	TransitionUsage
	AcceptUsage
	SendUsage
)

var kindNames = map[Kind]string{
	Other: "Other", Package: "Package", PartDefinition: "PartDefinition",
	PartUsage: "PartUsage", PortDefinition: "PortDefinition", PortUsage: "PortUsage",
	ActionDefinition: "ActionDefinition", ActionUsage: "ActionUsage",
	StateDefinition: "StateDefinition", StateUsage: "StateUsage",
	AttributeDefinition: "AttributeDefinition", AttributeUsage: "AttributeUsage",
	RequirementDefinition: "RequirementDefinition", RequirementUsage: "RequirementUsage",
	ConstraintDefinition: "ConstraintDefinition", ConstraintUsage: "ConstraintUsage",
	ConnectionDefinition: "ConnectionDefinition", ConnectionUsage: "ConnectionUsage",
	InterfaceDefinition: "InterfaceDefinition", InterfaceUsage: "InterfaceUsage",
	FlowDefinition: "FlowDefinition", FlowUsage: "FlowUsage",
	ItemDefinition: "ItemDefinition", ItemUsage: "ItemUsage", UseCase: "UseCase",
	View: "View", Viewpoint: "Viewpoint", Rendering: "Rendering",
	MetadataDefinition: "MetadataDefinition", MetadataUsage: "MetadataUsage",
	Alias: "Alias", Import: "Import", Comment: "Comment",
	EnumDefinition: "EnumDefinition", EnumLiteral: "EnumLiteral",
	SatisfyUsage: "SatisfyUsage", PerformUsage: "PerformUsage",
	ExhibitUsage: "ExhibitUsage", IncludeUsage: "IncludeUsage",
	BindUsage: "BindUsage", ConnectUsage: "ConnectUsage",
	SuccessionUsage: "SuccessionUsage", TransitionUsage: "TransitionUsage",
	AcceptUsage: "AcceptUsage", SendUsage: "SendUsage",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Other"
}

// keywordDefinitionKinds maps a primary keyword to the Kind used when the
// declaration is a Definition (has `def`); keywordUsageKinds maps the same
// keyword to the Kind used when it is a Usage. Both are indexed by the
// keyword spelling rather than token.Kind to keep pkg/symbol independent of
// pkg/token.
var keywordDefinitionKinds = map[string]Kind{
	"part": PartDefinition, "port": PortDefinition, "action": ActionDefinition,
	"state": StateDefinition, "attribute": AttributeDefinition,
	"requirement": RequirementDefinition, "constraint": ConstraintDefinition,
	"connection": ConnectionDefinition, "interface": InterfaceDefinition,
	"flow": FlowDefinition, "item": ItemDefinition, "view": View,
	"viewpoint": Viewpoint, "rendering": Rendering, "metadata": MetadataDefinition,
	"enum": EnumDefinition, "occurrence": PartDefinition, "calc": ActionDefinition,
	"analysis": ActionDefinition, "verification": RequirementDefinition,
	"concern": RequirementDefinition, "allocation": ConnectionDefinition,
	"case": UseCase,
}

var keywordUsageKinds = map[string]Kind{
	"part": PartUsage, "port": PortUsage, "action": ActionUsage,
	"state": StateUsage, "attribute": AttributeUsage,
	"requirement": RequirementUsage, "constraint": ConstraintUsage,
	"connection": ConnectionUsage, "interface": InterfaceUsage,
	"flow": FlowUsage, "item": ItemUsage, "view": View, "viewpoint": Viewpoint,
	"rendering": Rendering, "metadata": MetadataUsage, "enum": EnumDefinition,
	"occurrence": PartUsage, "calc": ActionUsage, "analysis": ActionUsage,
	"verification": RequirementUsage, "concern": RequirementUsage,
	"allocation": ConnectionUsage, "case": UseCase,
	"satisfy": SatisfyUsage, "perform": PerformUsage, "exhibit": ExhibitUsage,
	"include": IncludeUsage, "bind": BindUsage, "connect": ConnectUsage,
	"succession": SuccessionUsage, "transition": TransitionUsage,
	"accept": AcceptUsage, "send": SendUsage,
}

// KindForKeyword resolves the Symbol kind for a primary declaration
// keyword, given whether the declaration is a Definition or a Usage.
func KindForKeyword(keyword string, isDefinition bool) Kind {
	table := keywordUsageKinds
	if isDefinition {
		table = keywordDefinitionKinds
	}
	if k, ok := table[keyword]; ok {
		return k
	}
	return Other
}
