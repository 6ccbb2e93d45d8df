// Package astview provides thin, cheap-to-construct typed wrappers over
// pkg/cst red nodes (§4.3). Every accessor either returns another typed
// wrapper or text/spans derived directly from child leaves; nothing here
// owns data beyond the *cst.RedNode it wraps.
package astview

import (
	"strings"

	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/token"
)

// Node is the common embedding for every typed wrapper.
type Node struct {
	Red *cst.RedNode
}

// ResolveSpan converts a red node's byte range to a line/column Span using
// the file's line index.
func ResolveSpan(r *cst.RedNode, idx *cst.LineIndex) cst.Span {
	return cst.Span{Start: idx.Position(r.Start()), End: idx.Position(r.End())}
}

// QualifiedName wraps an NK_QUALIFIED_NAME node.
type QualifiedName struct{ Node }

// Segments returns the dotted/`::`-joined name text of each segment, in
// order (quotes preserved for quoted segments, matching source text).
func (q QualifiedName) Segments() []string {
	var out []string
	for _, t := range q.Red.Tokens() {
		if t.Kind() == token.IDENT || t.Kind() == token.QUOTED_NAME {
			out = append(out, t.Text())
		}
	}
	return out
}

// SegmentsWithSpans returns each segment alongside its own span.
func (q QualifiedName) SegmentsWithSpans(idx *cst.LineIndex) []SegmentSpan {
	var out []SegmentSpan
	for _, t := range q.Red.Tokens() {
		if t.Kind() == token.IDENT || t.Kind() == token.QUOTED_NAME {
			out = append(out, SegmentSpan{
				Name: t.Text(),
				Span: cst.Span{Start: idx.Position(t.Start()), End: idx.Position(t.End())},
			})
		}
	}
	return out
}

// SegmentSpan is one named, spanned component of a QualifiedName.
type SegmentSpan struct {
	Name string
	Span cst.Span
}

// Text joins Segments with "::", the canonical qualified-name rendering.
func (q QualifiedName) Text() string { return strings.Join(q.Segments(), "::") }

// AsQualifiedName casts a red node believed to hold an NK_QUALIFIED_NAME.
func AsQualifiedName(r *cst.RedNode) (QualifiedName, bool) {
	if r == nil || r.Kind() != cst.NK_QUALIFIED_NAME {
		return QualifiedName{}, false
	}
	return QualifiedName{Node{r}}, true
}
