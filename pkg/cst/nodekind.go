package cst

// NodeKind is drawn from a closed set mirroring grammar productions. Every
// inner CST node carries one; every leaf is a token instead (see Green).
type NodeKind int

const (
	NK_ERROR NodeKind = iota
	NK_ROOT

	NK_PACKAGE
	NK_LIBRARY

	NK_DEFINITION // generic *Definition (kind disambiguated by keyword token)
	NK_USAGE      // generic *Usage

	NK_IMPORT
	NK_ALIAS
	NK_COMMENT
	NK_FILTER_PACKAGE

	NK_MODIFIER_LIST
	NK_SPECIALIZATION_LIST
	NK_SPECIALIZATION // one `:>`/`subsets`/`redefines`/`conjugates`/`typed by` item

	NK_QUALIFIED_NAME
	NK_FEATURE_CHAIN

	NK_MULTIPLICITY
	NK_VALUE_CLAUSE // `= expr` initializer

	NK_METADATA_PREFIX     // `#Name` before a declaration
	NK_METADATA_ANNOTATION // `@Name { ... }`
	NK_METADATA_BODY

	NK_BODY // `{ ... }` block of members

	NK_EXPR_LITERAL
	NK_EXPR_NAME
	NK_EXPR_CHAIN
	NK_EXPR_INVOCATION
	NK_EXPR_INDEX
	NK_EXPR_NEW
	NK_EXPR_BLOCK
	NK_EXPR_UNARY
	NK_EXPR_BINARY
	NK_EXPR_ARROW // x->reduce '+'
	NK_EXPR_METADATA_ACCESS
	NK_EXPR_CLASSIFY // `as`, `hastype`, `meta`, `@@`
	NK_EXPR_ALL
	NK_ARG_LIST
	NK_ARG

	NK_CONNECTOR_ENDS // via/to/from/first/then endpoints on a connecting usage
	NK_EXPR_PAREN
)

var nodeKindNames = map[NodeKind]string{
	NK_ERROR: "ERROR", NK_ROOT: "ROOT", NK_PACKAGE: "PACKAGE", NK_LIBRARY: "LIBRARY",
	NK_DEFINITION: "DEFINITION", NK_USAGE: "USAGE", NK_IMPORT: "IMPORT", NK_ALIAS: "ALIAS",
	NK_COMMENT: "COMMENT", NK_FILTER_PACKAGE: "FILTER_PACKAGE",
	NK_MODIFIER_LIST: "MODIFIER_LIST", NK_SPECIALIZATION_LIST: "SPECIALIZATION_LIST",
	NK_SPECIALIZATION: "SPECIALIZATION", NK_QUALIFIED_NAME: "QUALIFIED_NAME",
	NK_FEATURE_CHAIN: "FEATURE_CHAIN", NK_MULTIPLICITY: "MULTIPLICITY",
	NK_VALUE_CLAUSE: "VALUE_CLAUSE", NK_METADATA_PREFIX: "METADATA_PREFIX",
	NK_METADATA_ANNOTATION: "METADATA_ANNOTATION", NK_METADATA_BODY: "METADATA_BODY",
	NK_BODY: "BODY", NK_EXPR_LITERAL: "EXPR_LITERAL", NK_EXPR_NAME: "EXPR_NAME",
	NK_EXPR_CHAIN: "EXPR_CHAIN", NK_EXPR_INVOCATION: "EXPR_INVOCATION",
	NK_EXPR_INDEX: "EXPR_INDEX", NK_EXPR_NEW: "EXPR_NEW", NK_EXPR_BLOCK: "EXPR_BLOCK",
	NK_EXPR_UNARY: "EXPR_UNARY", NK_EXPR_BINARY: "EXPR_BINARY", NK_EXPR_ARROW: "EXPR_ARROW",
	NK_EXPR_METADATA_ACCESS: "EXPR_METADATA_ACCESS", NK_EXPR_CLASSIFY: "EXPR_CLASSIFY",
	NK_EXPR_ALL: "EXPR_ALL", NK_ARG_LIST: "ARG_LIST", NK_ARG: "ARG",
	NK_CONNECTOR_ENDS: "CONNECTOR_ENDS",
}

func (k NodeKind) String() string {
	if s, ok := nodeKindNames[k]; ok {
		return s
	}
	return "UNKNOWN_NODE_KIND"
}
