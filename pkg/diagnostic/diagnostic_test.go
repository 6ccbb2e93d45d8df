package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysml-tools/sysmlcore/pkg/extractor"
	"github.com/sysml-tools/sysmlcore/pkg/index"
	"github.com/sysml-tools/sysmlcore/pkg/parser"
	"github.com/sysml-tools/sysmlcore/pkg/resolver"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

func analyze(t *testing.T, src string) (*Producer, symbol.FileHandle, *index.Index) {
	t.Helper()
	file := symbol.FileHandle("a.sysml")
	tree := parser.ParseSysML(src)
	res := extractor.NewExtractor(nil).ExtractFile(file, tree, src)
	ix := index.New(0, nil)
	ix.ReplaceFile(res)
	rv := resolver.New(ix, 0)
	return NewProducer(ix, rv), file, ix
}

func codesOf(diags []Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestDiagnosticDetectsDuplicateDefinition(t *testing.T) {
	src := `package P { part def Vehicle; part def Vehicle; }`
	p, file, _ := analyze(t, src)
	tree := parser.ParseSysML(src)

	diags := p.Diagnostics(file, tree)
	assert.Contains(t, codesOf(diags), "duplicate-definition")
}

func TestDiagnosticDetectsUnresolvedSupertype(t *testing.T) {
	src := `package P { part def Vehicle :> Nonexistent; }`
	p, file, _ := analyze(t, src)
	tree := parser.ParseSysML(src)

	diags := p.Diagnostics(file, tree)
	assert.Contains(t, codesOf(diags), "unresolved-reference")
}

func TestDiagnosticResolvedSupertypeProducesNoReferenceDiagnostic(t *testing.T) {
	src := `package P { part def Thing; part def Vehicle :> Thing; }`
	p, file, _ := analyze(t, src)
	tree := parser.ParseSysML(src)

	diags := p.Diagnostics(file, tree)
	assert.NotContains(t, codesOf(diags), "unresolved-reference")
}

func TestDiagnosticDetectsUnresolvedImport(t *testing.T) {
	src := `package P { import Nonexistent::*; }`
	p, file, _ := analyze(t, src)
	tree := parser.ParseSysML(src)

	diags := p.Diagnostics(file, tree)
	assert.Contains(t, codesOf(diags), "unresolved-import")
}

func TestDiagnosticCarriesSyntaxErrorsThrough(t *testing.T) {
	src := `part def {{{`
	p, file, _ := analyze(t, src)
	tree := parser.ParseSysML(src)
	require.NotEmpty(t, tree.Diagnostics)

	diags := p.Diagnostics(file, tree)
	assert.Contains(t, codesOf(diags), "syntax-error")
	for _, d := range diags {
		if d.Code == "syntax-error" {
			assert.Equal(t, Error, d.Severity)
		}
	}
}

func TestDiagnosticNoFalsePositivesOnCleanInput(t *testing.T) {
	src := `package P {
		part def Thing;
		attribute def Real;
		part def Vehicle :> Thing {
			attribute mass : Real;
		}
	}`
	p, file, _ := analyze(t, src)
	tree := parser.ParseSysML(src)

	diags := p.Diagnostics(file, tree)
	assert.Empty(t, diags, "clean, fully-resolved input should yield no diagnostics")
}
