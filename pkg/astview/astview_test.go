package astview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/parser"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// firstDecl finds the first NK_DEFINITION/NK_USAGE node under the package
// body, depth-first.
func firstDecl(t *testing.T, root *cst.RedNode) *cst.RedNode {
	t.Helper()
	var found *cst.RedNode
	var walk func(n *cst.RedNode)
	walk = func(n *cst.RedNode) {
		if found != nil {
			return
		}
		if n.Kind() == cst.NK_DEFINITION || n.Kind() == cst.NK_USAGE {
			found = n
			return
		}
		for _, c := range n.ChildNodes() {
			walk(c)
		}
	}
	walk(root)
	require.NotNil(t, found, "no definition/usage node found")
	return found
}

func firstOfKind(root *cst.RedNode, kind cst.NodeKind) *cst.RedNode {
	var found *cst.RedNode
	var walk func(n *cst.RedNode)
	walk = func(n *cst.RedNode) {
		if found != nil {
			return
		}
		if n.Kind() == kind {
			found = n
			return
		}
		for _, c := range n.ChildNodes() {
			walk(c)
		}
	}
	walk(root)
	return found
}

func TestDeclPrimaryKeywordSkipsModifiersAndDef(t *testing.T) {
	tree := parser.ParseSysML(`package P { abstract part def Vehicle; }`)
	decl, ok := AsDecl(firstDecl(t, tree.RedRoot()))
	require.True(t, ok)

	kw, ok := decl.PrimaryKeyword()
	require.True(t, ok)
	assert.Equal(t, token.KW_PART, kw)
	assert.True(t, decl.IsDefinition())
}

func TestDeclModifiersCollectsEveryModifierKeyword(t *testing.T) {
	tree := parser.ParseSysML(`package P { abstract part def Vehicle; }`)
	decl, ok := AsDecl(firstDecl(t, tree.RedRoot()))
	require.True(t, ok)

	mods := decl.Modifiers()
	assert.Contains(t, mods, token.KW_ABSTRACT)
}

func TestDeclNameReturnsDeclaredIdentifier(t *testing.T) {
	tree := parser.ParseSysML(`package P { part def Vehicle; }`)
	decl, ok := AsDecl(firstDecl(t, tree.RedRoot()))
	require.True(t, ok)

	name, ok := decl.Name()
	require.True(t, ok)
	assert.Equal(t, "Vehicle", name.Text())
}

func TestDeclSpecializationsExposesOperatorAndTarget(t *testing.T) {
	tree := parser.ParseSysML(`package P { part def Thing; part def Vehicle :> Thing; }`)
	root := tree.RedRoot()

	var vehicle *cst.RedNode
	var walk func(n *cst.RedNode)
	walk = func(n *cst.RedNode) {
		if vehicle != nil {
			return
		}
		if n.Kind() == cst.NK_DEFINITION {
			if d, ok := AsDecl(n); ok {
				if name, ok := d.Name(); ok && name.Text() == "Vehicle" {
					vehicle = n
					return
				}
			}
		}
		for _, c := range n.ChildNodes() {
			walk(c)
		}
	}
	walk(root)
	require.NotNil(t, vehicle)

	decl, ok := AsDecl(vehicle)
	require.True(t, ok)
	list := decl.Specializations()
	require.NotNil(t, list)

	clauses := Clauses(list)
	require.Len(t, clauses, 1)

	spec, ok := AsSpecialization(clauses[0])
	require.True(t, ok)
	assert.Equal(t, ":>", spec.OperatorText())

	target, ok := spec.Target()
	require.True(t, ok)
	assert.Equal(t, "Thing", target.Text())
}

func TestDeclBodyAndMembers(t *testing.T) {
	tree := parser.ParseSysML(`package P { part def Vehicle { part def Engine; } }`)
	decl, ok := AsDecl(firstDecl(t, tree.RedRoot()))
	require.True(t, ok)

	body, ok := decl.Body()
	require.True(t, ok)

	members := Members(body)
	require.Len(t, members, 1)
	inner, ok := AsDecl(members[0])
	require.True(t, ok)
	name, ok := inner.Name()
	require.True(t, ok)
	assert.Equal(t, "Engine", name.Text())
}

func TestImportPathSegmentsExcludesWildcardMarker(t *testing.T) {
	tree := parser.ParseSysML(`package P { public import Other::Sub::*; }`)
	node := firstOfKind(tree.RedRoot(), cst.NK_IMPORT)
	require.NotNil(t, node)

	imp, ok := AsImport(node)
	require.True(t, ok)
	assert.True(t, imp.IsPublic())
	assert.True(t, imp.IsWildcard())
	assert.False(t, imp.IsRecursive())

	var names []string
	for _, seg := range imp.PathSegments() {
		names = append(names, seg.Text())
	}
	assert.Equal(t, []string{"Other", "Sub"}, names)
}

func TestImportRecursiveWildcardIsNotPlainWildcard(t *testing.T) {
	tree := parser.ParseSysML(`package P { import Other::**; }`)
	node := firstOfKind(tree.RedRoot(), cst.NK_IMPORT)
	require.NotNil(t, node)

	imp, ok := AsImport(node)
	require.True(t, ok)
	assert.True(t, imp.IsRecursive())
	assert.False(t, imp.IsWildcard())
}

func TestQualifiedNameTextJoinsSegmentsWithDoubleColon(t *testing.T) {
	tree := parser.ParseSysML(`package P { part def Vehicle :> Other::Thing; }`)
	node := firstOfKind(tree.RedRoot(), cst.NK_QUALIFIED_NAME)
	require.NotNil(t, node)

	// walk to find the one with more than one segment (the specialization
	// target), since the package name itself is also an NK_QUALIFIED_NAME.
	var target QualifiedName
	var walk func(n *cst.RedNode)
	walk = func(n *cst.RedNode) {
		if n.Kind() == cst.NK_QUALIFIED_NAME {
			if q, ok := AsQualifiedName(n); ok && len(q.Segments()) > 1 {
				target = q
				return
			}
		}
		for _, c := range n.ChildNodes() {
			walk(c)
		}
	}
	walk(tree.RedRoot())

	assert.Equal(t, "Other::Thing", target.Text())
}

func TestAsDeclRejectsNonDeclNode(t *testing.T) {
	tree := parser.ParseSysML(`package P { part def Vehicle; }`)
	_, ok := AsDecl(tree.RedRoot())
	assert.False(t, ok)
}
