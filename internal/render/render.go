// Package render turns a bookmark tree into lines of text.
//
// Every renderer returns a lazy, single-pass sequence of lines without
// trailing newlines. Writing them out is left to the caller.
package render

import (
	"iter"
	"strings"

	"github.com/dastanaron/ffmarks/internal/tree"
)

// RootLabel replaces the empty root title in the outline and markdown modes.
const RootLabel = "root"

// EscapeBars prefixes every "|" with a backslash so markdown renderers
// do not read it as a table delimiter.
func EscapeBars(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Titles yields every title in pre-order, one per node, root included.
func Titles(t *tree.Tree) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range t.Walk() {
			if !yield(n.Record.Title) {
				return
			}
		}
	}
}

// Outline yields every title in pre-order prefixed by initial plus one unit
// per nesting level. An empty root title is printed as "root".
func Outline(t *tree.Tree, initial, unit string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for depth, n := range t.Walk() {
			line := initial + strings.Repeat(unit, depth) + n.Record.Title
			if depth == 0 && n.Record.Title == "" {
				line = RootLabel
			}
			if !yield(line) {
				return
			}
		}
	}
}

// label returns the display title of a node, substituting the root label.
func label(n, root *tree.Tree) string {
	if n == root && n.Record.Title == "" {
		return RootLabel
	}
	return n.Record.Title
}
