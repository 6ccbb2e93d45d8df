package cst

// SyntaxError is a parse-time diagnostic anchored to a byte-offset range.
// pkg/parser emits these; pkg/diagnostic carries them through unchanged
// (§7's "Parse error" row).
type SyntaxError struct {
	Message string
	Start   int
	End     int
}

// Tree is the result of parsing one file: a lossless green tree plus the
// syntax errors recorded while building it. Tree is independent of file
// identity — only pkg/extractor's output carries a file handle (§4.2).
type Tree struct {
	Root        *GreenNode
	Diagnostics []SyntaxError
}

// Text reconstructs the original input exactly (§4.2 losslessness).
func (t *Tree) Text() string { return t.Root.Text() }

// RedRoot builds a parent-aware view over the tree for traversal.
func (t *Tree) RedRoot() *RedNode { return NewRoot(t.Root) }
