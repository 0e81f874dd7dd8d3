package ui

import (
	"strings"

	"github.com/dastanaron/ffmarks/internal/render"
	"github.com/dastanaron/ffmarks/internal/service"
	"github.com/dastanaron/ffmarks/internal/tree"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Nodes mirrors a bookmark tree as tview tree nodes.
// Each tview node references its *tree.Tree.
type Nodes struct {
	Root   *tview.TreeNode
	order  []*tview.TreeNode // pre-order
	parent map[*tview.TreeNode]*tview.TreeNode
}

type pair struct {
	src   *tree.Tree
	dst   *tview.TreeNode
	depth int
}

// BuildNodes converts t into tview nodes. Only the root starts expanded.
func BuildNodes(t *tree.Tree) *Nodes {
	n := &Nodes{parent: make(map[*tview.TreeNode]*tview.TreeNode)}
	n.Root = newNode(t, t, 0)

	stack := []pair{{src: t, dst: n.Root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n.order = append(n.order, p.dst)
		if !p.src.HasChildren() {
			continue
		}

		children := make([]*tview.TreeNode, len(p.src.Children))
		for i, child := range p.src.Children {
			children[i] = newNode(child, t, p.depth+1)
			n.parent[children[i]] = p.dst
		}
		p.dst.SetChildren(children)

		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, pair{src: p.src.Children[i], dst: children[i], depth: p.depth + 1})
		}
	}
	return n
}

func newNode(src, root *tree.Tree, depth int) *tview.TreeNode {
	text := src.Record.Title
	if src == root && text == "" {
		text = render.RootLabel
	}
	node := tview.NewTreeNode(text).
		SetReference(src).
		SetSelectable(true).
		SetExpanded(depth == 0)
	if src.Record.IsFolder() || src == root {
		node.SetColor(tcell.ColorGreen)
	}
	return node
}

// Len returns the number of nodes
func (n *Nodes) Len() int {
	return len(n.order)
}

// Parent returns the parent node, nil for the root
func (n *Nodes) Parent(node *tview.TreeNode) *tview.TreeNode {
	return n.parent[node]
}

// Find returns the first node after the given one, in pre-order and
// wrapping around, whose title or URI contains query. after may be nil.
func (n *Nodes) Find(query string, after *tview.TreeNode) *tview.TreeNode {
	if query == "" || len(n.order) == 0 {
		return nil
	}
	queryLower := strings.ToLower(query)

	start := 0
	for i, node := range n.order {
		if node == after {
			start = i + 1
			break
		}
	}
	for i := 0; i < len(n.order); i++ {
		node := n.order[(start+i)%len(n.order)]
		if src, ok := node.GetReference().(*tree.Tree); ok && service.Matches(&src.Record, queryLower) {
			return node
		}
	}
	return nil
}

// Reveal expands every ancestor of node
func (n *Nodes) Reveal(node *tview.TreeNode) {
	for p := n.parent[node]; p != nil; p = n.parent[p] {
		p.SetExpanded(true)
	}
}
