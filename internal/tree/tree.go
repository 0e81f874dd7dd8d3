// Package tree holds the in-memory bookmark hierarchy.
//
// A Tree owns one Record and an ordered list of child trees. Child order
// is the order of the source "children" array. Traversals use an explicit
// stack, so nesting depth is limited only by memory.
package tree

import (
	"iter"

	"github.com/dastanaron/ffmarks/internal/models"
)

// Tree is one node of the bookmark hierarchy
type Tree struct {
	Record   models.Record
	Children []*Tree
}

// HasChildren reports whether the node has at least one child
func (t *Tree) HasChildren() bool {
	return len(t.Children) > 0
}

type frame struct {
	node  *Tree
	depth int
}

// Walk yields every node in pre-order together with its depth (root = 0).
func (t *Tree) Walk() iter.Seq2[int, *Tree] {
	return func(yield func(int, *Tree) bool) {
		if t == nil {
			return
		}
		stack := []frame{{node: t}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(f.depth, f.node) {
				return
			}
			for i := len(f.node.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: f.node.Children[i], depth: f.depth + 1})
			}
		}
	}
}

// Records returns every node's record in pre-order, root included.
func (t *Tree) Records() []models.Record {
	var out []models.Record
	for _, n := range t.Walk() {
		out = append(out, n.Record)
	}
	return out
}

// Count returns the number of nodes in the tree
func (t *Tree) Count() int {
	n := 0
	for range t.Walk() {
		n++
	}
	return n
}

// Stats counts folders and links below the root
func (t *Tree) Stats() (folders, links int) {
	for depth, n := range t.Walk() {
		if depth == 0 {
			continue
		}
		if n.Record.IsFolder() {
			folders++
		} else {
			links++
		}
	}
	return folders, links
}
