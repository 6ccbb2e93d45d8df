// Package interchange defines the shape of externally-ingested models
// (§6.3): a generic element graph plus a Decompiler contract that renders
// it to SysML text for the normal parse/extract pipeline to consume. The
// interchange read/write surfaces themselves (STEP, JSON-LD, or whatever
// format a caller's reader produces) are out of scope; only the Model
// shape and the resulting qualified_name -> element_id map matter here.
package interchange

import "strings"

// Relationship is one typed edge from a Model element to another,
// addressed by target qualified name (owner chains resolve these once
// decompiled text is re-extracted, so only the raw edge is kept here).
type Relationship struct {
	Kind   string
	Target string
}

// Element is one node of an interchange Model graph (§6.3).
type Element struct {
	ID            string
	Kind          string
	Name          string
	Owner         string // qualified name of the owning element, "" at the root
	Properties    map[string]string
	OwnedElements []*Element
	Relationships []Relationship
}

// Model is the pre-parsed graph the host accepts from external format
// readers.
type Model struct {
	Roots []*Element
}

// Decompiler renders a Model to SysML source text. Treated as a
// black-box renderer contract (§6.3): the host only depends on this
// interface, never on a specific format's reader/writer.
type Decompiler interface {
	Decompile(m *Model) (string, error)
}

// TextDecompiler is the reference Decompiler: a minimal, deterministic
// textual rendering of a Model sufficient for the normal lex/parse/
// extract pipeline to recover qualified names and relationships. It is
// intentionally plain — real interchange formats should supply their own
// Decompiler grounded in the source format's semantics.
type TextDecompiler struct{}

// Decompile renders every root element (and its owned tree) as nested
// `part def`-shaped declarations, using each element's Kind as the
// declaring keyword when recognized, falling back to `part` otherwise.
func (TextDecompiler) Decompile(m *Model) (string, error) {
	var sb strings.Builder
	for _, root := range m.Roots {
		renderElement(&sb, root, 0)
	}
	return sb.String(), nil
}

func renderElement(sb *strings.Builder, e *Element, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "    "
	}
	keyword := keywordFor(e.Kind)
	sb.WriteString(indent)
	sb.WriteString(keyword)
	if keyword == "package" {
		sb.WriteString(" ")
	} else {
		sb.WriteString(" def ")
	}
	sb.WriteString(sanitizeName(e.Name))

	for _, rel := range e.Relationships {
		sb.WriteString(" :> ")
		sb.WriteString(rel.Target)
	}

	if len(e.OwnedElements) == 0 {
		sb.WriteString(";\n")
		return
	}
	sb.WriteString(" {\n")
	for _, child := range e.OwnedElements {
		renderElement(sb, child, depth+1)
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

// keywordFor maps an interchange Kind string to a SysML declaration
// keyword, defaulting to "part" for any Kind the decompiler does not
// recognize — an unknown kind still round-trips as a valid declaration.
func keywordFor(kind string) string {
	switch kind {
	case "PartDefinition", "Part":
		return "part"
	case "AttributeDefinition", "Attribute":
		return "attribute"
	case "PortDefinition", "Port":
		return "port"
	case "ActionDefinition", "Action":
		return "action"
	case "RequirementDefinition", "Requirement":
		return "requirement"
	case "ConnectionDefinition", "Connection":
		return "connection"
	case "InterfaceDefinition", "Interface":
		return "interface"
	case "Package":
		return "package"
	default:
		return "part"
	}
}

func sanitizeName(name string) string {
	if name == "" {
		return "'unnamed'"
	}
	for _, r := range name {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return "'" + name + "'"
		}
	}
	return name
}

// ElementIDs flattens m into a qualified_name -> element_id map, building
// each qualified name from the element's position in the OwnedElements
// tree (the Owner field is not read), matching the
// naming scheme pkg/extractor produces so add_external_ids lines up with
// freshly-extracted symbols (§6.3 step 3).
func ElementIDs(m *Model) map[string]string {
	out := map[string]string{}
	var walk func(e *Element, prefix string)
	walk = func(e *Element, prefix string) {
		qname := sanitizeName(e.Name)
		if prefix != "" {
			qname = prefix + "::" + qname
		}
		if e.ID != "" {
			out[qname] = e.ID
		}
		for _, c := range e.OwnedElements {
			walk(c, qname)
		}
	}
	for _, root := range m.Roots {
		walk(root, "")
	}
	return out
}
