package cst

import "strings"

// Position is a 0-indexed (line, column) pair (§3.1).
type Position struct {
	Line   int
	Column int
}

// Span is a half-open range of positions within a single file (§3.1).
type Span struct {
	Start Position
	End   Position
}

// Contains reports whether pos falls within the span, inclusive of both
// endpoints on the boundary lines.
func (s Span) Contains(pos Position) bool {
	if pos.Line < s.Start.Line || pos.Line > s.End.Line {
		return false
	}
	if pos.Line == s.Start.Line && pos.Column < s.Start.Column {
		return false
	}
	if pos.Line == s.End.Line && pos.Column > s.End.Column {
		return false
	}
	return true
}

// width reports how many lines and columns a span covers; used to prefer
// the narrower of two containing spans in position lookups.
func (s Span) width() (lines, cols int) {
	return s.End.Line - s.Start.Line, s.End.Column - s.Start.Column
}

// Narrower reports whether s is strictly narrower than other.
func (s Span) Narrower(other Span) bool {
	sl, sc := s.width()
	ol, oc := other.width()
	if sl != ol {
		return sl < ol
	}
	return sc < oc
}

// LineIndex maps byte offsets to 0-indexed (line, column) positions. It is
// rebuilt from scratch on every reparse (§3.1).
type LineIndex struct {
	// lineStarts[i] is the byte offset of the first byte of line i.
	lineStarts []int
}

// NewLineIndex scans src once and records the offset of every line start.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{lineStarts: starts}
}

// Position converts a byte offset into a (line, column) pair. Column is a
// byte count from the start of the line (not a rune count), matching the
// byte-oriented spans the lexer/parser already work in.
func (li *LineIndex) Position(offset int) Position {
	// Binary search for the last lineStart <= offset.
	lo, hi := 0, len(li.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if li.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Position{Line: lo, Column: offset - li.lineStarts[lo]}
}

// Offset converts a (line, column) pair back into a byte offset.
func (li *LineIndex) Offset(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(li.lineStarts) {
		return li.lineStarts[len(li.lineStarts)-1]
	}
	return li.lineStarts[pos.Line] + pos.Column
}

// LineCount returns the number of lines tracked.
func (li *LineIndex) LineCount() int { return len(li.lineStarts) }

// splitLines is a small helper used by tests/tools that want line text.
func splitLines(src string) []string {
	return strings.Split(src, "\n")
}
