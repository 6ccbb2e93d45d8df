// Package filterexpr evaluates import filter clauses against a candidate
// symbol's metadata (§4.6). A filter written as a plain qualified name is
// a metadata match: it passes when one of the candidate's metadata
// annotation names equals it or ends with `::` followed by it (so both
// `Safety` and `Tags::Safety` match `Lib::Tags::Safety`). A
// filter containing anything else is treated as a general boolean
// expression and evaluated with CEL; per Open Question (c) in §9, an
// expression that fails to compile or evaluate is treated as passing,
// since the spec currently leaves non-metadata filter semantics as a
// placeholder for future refinement rather than a rejection rule.
package filterexpr

import (
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

// isPlainName reports whether text is a bare identifier or `::`-qualified
// name with no operators, i.e. the common case the spec calls out
// explicitly (§4.6).
func isPlainName(text string) bool {
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == ':':
			continue
		default:
			return false
		}
	}
	return text != ""
}

// Matches reports whether filterText matches candidate. Plain names use
// the metadata-suffix rule directly; anything else compiles and
// evaluates as a CEL expression over the candidate's metadata names and
// kind, passing through on any compile/eval error (§4.6, §9 Open
// Question (c)).
func Matches(filterText string, candidate *symbol.Symbol) bool {
	if isPlainName(filterText) {
		return matchesMetadataName(filterText, candidate)
	}
	return evaluateExpression(filterText, candidate)
}

func matchesMetadataName(filter string, candidate *symbol.Symbol) bool {
	for _, rel := range candidate.Relationships {
		if rel.Kind != symbol.Meta {
			continue
		}
		if rel.TargetName == filter || strings.HasSuffix(rel.TargetName, "::"+filter) {
			return true
		}
	}
	return false
}

func evaluateExpression(expr string, candidate *symbol.Symbol) bool {
	env, err := cel.NewEnv(
		cel.Variable("metadata", cel.ListType(cel.StringType)),
		cel.Variable("kind", cel.StringType),
		cel.Variable("name", cel.StringType),
	)
	if err != nil {
		return true
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return true
	}
	prg, err := env.Program(ast)
	if err != nil {
		return true
	}

	var metadataNames []string
	for _, rel := range candidate.Relationships {
		if rel.Kind == symbol.Meta {
			metadataNames = append(metadataNames, rel.TargetName)
		}
	}

	out, _, err := prg.Eval(map[string]interface{}{
		"metadata": metadataNames,
		"kind":     candidate.Kind.String(),
		"name":     candidate.Name,
	})
	if err != nil {
		return true
	}

	result, ok := out.Value().(bool)
	if !ok {
		return true
	}
	return result
}
