package render

import (
	"iter"
	"strings"

	"github.com/dastanaron/ffmarks/internal/tree"
)

type section struct {
	node  *tree.Tree
	level int
}

// Markdown renders folders as headings and links as list items, starting
// at the given heading level. Inside each folder the direct links are
// listed first, then every subfolder follows one level deeper. The root is
// always rendered as a folder. Levels below 1 are raised to 1.
func Markdown(t *tree.Tree, level int) iter.Seq[string] {
	if level < 1 {
		level = 1
	}
	return func(yield func(string) bool) {
		if t == nil {
			return
		}
		stack := []section{{node: t, level: level}}
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !isContainer(s.node, t) {
				if !yield(linkItem(s.node)) {
					return
				}
				continue
			}

			heading := strings.Repeat("#", s.level) + " " + EscapeBars(label(s.node, t))
			for _, line := range []string{"", heading, ""} {
				if !yield(line) {
					return
				}
			}

			var folders []*tree.Tree
			for _, child := range s.node.Children {
				if child.Record.IsFolder() {
					folders = append(folders, child)
					continue
				}
				if !yield(linkItem(child)) {
					return
				}
			}
			for i := len(folders) - 1; i >= 0; i-- {
				stack = append(stack, section{node: folders[i], level: s.level + 1})
			}
		}
	}
}

func isContainer(n, root *tree.Tree) bool {
	return n == root || n.Record.IsFolder()
}

func linkItem(n *tree.Tree) string {
	return "- [" + EscapeBars(n.Record.Title) + "](" + n.Record.Link() + ")"
}
