// Package extractor walks a parsed CST once per file and produces the flat
// Vec<Symbol> plus per-scope filter expressions the workspace index and
// visibility builder consume (§4.4). The walk is grounded on the
// ExtractionContext shape of the original Rust implementation's
// hir/symbols/context.rs: a scope-stack-backed qualified-name prefix, a
// per-file anonymous-scope counter, and a line index for span conversion.
package extractor

import (
	"fmt"
	"strings"

	"github.com/sysml-tools/sysmlcore/pkg/cst"
	"github.com/sysml-tools/sysmlcore/pkg/symbol"
)

// Context carries the scope/position state threaded through extraction.
type Context struct {
	File        symbol.FileHandle
	Prefix      string
	ScopeStack  []string
	AnonCounter int
	LineIndex   *cst.LineIndex
}

// NewContext builds an extraction context for one file's source text.
func NewContext(file symbol.FileHandle, src string) *Context {
	return &Context{File: file, LineIndex: cst.NewLineIndex(src)}
}

// QualifiedName prepends the current scope prefix to name.
func (c *Context) QualifiedName(name string) string {
	if c.Prefix == "" {
		return name
	}
	return c.Prefix + "::" + name
}

// PushScope enters a nested scope named name.
func (c *Context) PushScope(name string) {
	c.ScopeStack = append(c.ScopeStack, name)
	c.Prefix = strings.Join(c.ScopeStack, "::")
}

// PopScope leaves the innermost scope.
func (c *Context) PopScope() {
	if len(c.ScopeStack) == 0 {
		return
	}
	c.ScopeStack = c.ScopeStack[:len(c.ScopeStack)-1]
	c.Prefix = strings.Join(c.ScopeStack, "::")
}

// NextAnonScope synthesizes the name of a scope that introduces no user
// name, per §3.6, rendered as `<{relPrefix}{target}#{counter}@L{line}>`
// (e.g. `<part#3@L12>`). The synthesis
// is deterministic given the same input text, since AnonCounter only ever
// advances in CST traversal order.
func (c *Context) NextAnonScope(relPrefix, target string, line int) string {
	c.AnonCounter++
	return fmt.Sprintf("<%s%s#%d@L%d>", relPrefix, target, c.AnonCounter, line)
}

// Span converts a red node's byte range into a line/column Span.
func (c *Context) Span(r *cst.RedNode) cst.Span {
	return cst.Span{Start: c.LineIndex.Position(r.Start()), End: c.LineIndex.Position(r.End())}
}

// TokenSpan converts a red token's byte range into a line/column Span.
func (c *Context) TokenSpan(t *cst.RedToken) cst.Span {
	return cst.Span{Start: c.LineIndex.Position(t.Start()), End: c.LineIndex.Position(t.End())}
}
