package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysml-tools/sysmlcore/pkg/parser"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

func extract(t *testing.T, src string) *ExtractionResult {
	t.Helper()
	tree := parser.ParseSysML(src)
	e := NewExtractor(nil)
	return e.ExtractFile(symbol.FileHandle("test.sysml"), tree, src)
}

func TestExtractQualifiedNamesAreUnique(t *testing.T) {
	src := `package P {
		part def Vehicle {
			part engine : Engine;
		}
		part def Engine;
	}`
	res := extract(t, src)
	require.NotEmpty(t, res.Symbols)

	seen := map[string]bool{}
	for _, s := range res.Symbols {
		require.False(t, seen[s.QualifiedName], "duplicate qualified name %q", s.QualifiedName)
		seen[s.QualifiedName] = true
	}
}

func TestExtractNestedScopePrefixing(t *testing.T) {
	src := `package P { part def Vehicle { part def Engine; } }`
	res := extract(t, src)

	var names []string
	for _, s := range res.Symbols {
		names = append(names, s.QualifiedName)
	}
	assert.Contains(t, names, "P")
	assert.Contains(t, names, "P::Vehicle")
	assert.Contains(t, names, "P::Vehicle::Engine")
}

func TestExtractAnonymousScopesGetUniqueNames(t *testing.T) {
	src := `package P { part def Outer { part : Thing; part : Thing; } }`
	res := extract(t, src)

	seen := map[string]bool{}
	for _, s := range res.Symbols {
		require.False(t, seen[s.QualifiedName], "duplicate qualified name %q for anonymous member", s.QualifiedName)
		seen[s.QualifiedName] = true
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	src := `package P {
		import Other::*;
		part def Vehicle :> Thing {
			attribute mass : Real = 10;
			part engine : Engine;
		}
	}`
	r1 := extract(t, src)
	r2 := extract(t, src)

	require.Equal(t, len(r1.Symbols), len(r2.Symbols))
	for i := range r1.Symbols {
		assert.Equal(t, r1.Symbols[i].QualifiedName, r2.Symbols[i].QualifiedName)
		assert.Equal(t, r1.Symbols[i].Kind, r2.Symbols[i].Kind)
		assert.Equal(t, r1.Symbols[i].Span, r2.Symbols[i].Span)
	}
}

func TestExtractImportRecordsPathAndFlags(t *testing.T) {
	src := `package P { import Other::Sub::*; }`
	res := extract(t, src)

	var imp *symbol.Symbol
	for _, s := range res.Symbols {
		if s.Kind == symbol.Import {
			imp = s
		}
	}
	require.NotNil(t, imp)
	require.NotNil(t, imp.Import)
	assert.True(t, imp.Import.IsWildcard)
	assert.False(t, imp.Import.IsRecursive)
	require.Len(t, imp.Import.PathSegments, 2)
	assert.Equal(t, "Other", imp.Import.PathSegments[0].Name)
	assert.Equal(t, "Sub", imp.Import.PathSegments[1].Name)
}

func TestExtractSupertypeRelationship(t *testing.T) {
	src := `package P { part def Vehicle :> Thing; }`
	res := extract(t, src)

	var v *symbol.Symbol
	for _, s := range res.Symbols {
		if s.Name == "Vehicle" {
			v = s
		}
	}
	require.NotNil(t, v)
	require.Len(t, v.Supertypes, 1)
	assert.Equal(t, "Thing", v.Supertypes[0].Name)
	require.Len(t, v.Relationships, 1)
	assert.Equal(t, symbol.Specializes, v.Relationships[0].Kind)
}

func findKind(t *testing.T, res *ExtractionResult, kind symbol.Kind) *symbol.Symbol {
	t.Helper()
	for _, s := range res.Symbols {
		if s.Kind == kind {
			return s
		}
	}
	return nil
}

func TestExtractPerformProducesPerformsRelationship(t *testing.T) {
	src := `action def A { action transportPassenger; perform transportPassenger.a.unlockDoor_in; }`
	res := extract(t, src)

	s := findKind(t, res, symbol.PerformUsage)
	require.NotNil(t, s)
	require.Len(t, s.Relationships, 1)
	assert.Equal(t, symbol.Performs, s.Relationships[0].Kind)
	assert.Equal(t, "transportPassenger.a.unlockDoor_in", s.Relationships[0].TargetName)
}

func TestExtractSatisfyProducesSatisfiesAndByRelationships(t *testing.T) {
	src := `requirement def VehicleSpec; part def Vehicle { satisfy VehicleSpec by vehicle_b; }`
	res := extract(t, src)

	s := findKind(t, res, symbol.SatisfyUsage)
	require.NotNil(t, s)
	require.Len(t, s.Relationships, 2)
	assert.Equal(t, symbol.Satisfies, s.Relationships[0].Kind)
	assert.Equal(t, "VehicleSpec", s.Relationships[0].TargetName)
	assert.Equal(t, symbol.By, s.Relationships[1].Kind)
	assert.Equal(t, "vehicle_b", s.Relationships[1].TargetName)
}

func TestExtractAcceptProducesViaRelationship(t *testing.T) {
	src := `action def A { accept ignitionCmd : IgnitionCmd via ignitionPort; }`
	res := extract(t, src)

	s := findKind(t, res, symbol.AcceptUsage)
	require.NotNil(t, s)
	assert.Equal(t, "ignitionCmd", s.Name)
	require.Len(t, s.Supertypes, 1)
	assert.Equal(t, "IgnitionCmd", s.Supertypes[0].Name)

	var viaRel *symbol.Relationship
	for i := range s.Relationships {
		if s.Relationships[i].Kind == symbol.Via {
			viaRel = &s.Relationships[i]
		}
	}
	require.NotNil(t, viaRel)
	assert.Equal(t, "ignitionPort", viaRel.TargetName)
}

func TestExtractSuccessionProducesFirstThenRelationships(t *testing.T) {
	src := `action def A { action off; action starting; succession first off then starting; }`
	res := extract(t, src)

	s := findKind(t, res, symbol.SuccessionUsage)
	require.NotNil(t, s)
	require.Len(t, s.Relationships, 2)
	assert.Equal(t, symbol.SuccessionFirst, s.Relationships[0].Kind)
	assert.Equal(t, "off", s.Relationships[0].TargetName)
	assert.Equal(t, symbol.SuccessionThen, s.Relationships[1].Kind)
	assert.Equal(t, "starting", s.Relationships[1].TargetName)
}

func TestExtractTransitionProducesSourceTargetRelationships(t *testing.T) {
	src := `state def S { state off; state starting; transition off_To_starting first off then starting; }`
	res := extract(t, src)

	s := findKind(t, res, symbol.TransitionUsage)
	require.NotNil(t, s)
	assert.Equal(t, "off_To_starting", s.Name)
	require.Len(t, s.Relationships, 2)
	assert.Equal(t, symbol.TransitionSource, s.Relationships[0].Kind)
	assert.Equal(t, "off", s.Relationships[0].TargetName)
	assert.Equal(t, symbol.TransitionTarget, s.Relationships[1].Kind)
	assert.Equal(t, "starting", s.Relationships[1].TargetName)
}

func TestExtractMalformedInputStillYieldsWellFormedSymbols(t *testing.T) {
	src := `package P { part def Vehicle; part def {{{`
	res := extract(t, src)

	var names []string
	for _, s := range res.Symbols {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Vehicle")
}
