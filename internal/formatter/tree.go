package formatter

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// defaultMaxArrayInline is the max number of scalar array elements shown
// inline before switching to one branch per element.
const defaultMaxArrayInline = 3

// TreeOptions controls tree output formatting.
type TreeOptions struct {
	// SortOrder controls table key ordering.
	SortOrder SortOrder
	// MaxDepth limits tree depth (0 = unlimited).
	MaxDepth int
	// MaxArrayInline is max scalar items to render inline (default 3).
	MaxArrayInline int
}

// FormatAsTree renders a node as an ASCII tree. Tables become branches
// with keys as labels, arrays show indexed children, scalars display
// inline at the leaves.
func FormatAsTree(node any, opts TreeOptions) string {
	if opts.MaxArrayInline == 0 {
		opts.MaxArrayInline = defaultMaxArrayInline
	}
	root := treeprint.New()
	root.SetValue(".")
	addTreeNode(root, node, opts, 1)
	return root.String()
}

func addTreeNode(branch treeprint.Tree, node any, opts TreeOptions, depth int) {
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		branch.AddNode("…")
		return
	}

	switch v := node.(type) {
	case map[string]any:
		if len(v) == 0 {
			branch.AddNode("{}")
			return
		}
		for _, k := range SortedKeys(v, opts.SortOrder) {
			child := v[k]
			switch child.(type) {
			case map[string]any, []any:
				sub := branch.AddBranch(k)
				addTreeNode(sub, child, opts, depth+1)
			default:
				branch.AddNode(k + ": " + Stringify(child))
			}
		}
	case []any:
		if len(v) == 0 {
			branch.AddNode("[]")
			return
		}
		if allScalars(v) && len(v) <= opts.MaxArrayInline {
			branch.AddNode(Stringify(v))
			return
		}
		for i, e := range v {
			label := fmt.Sprintf("[%d]", i)
			switch e.(type) {
			case map[string]any, []any:
				sub := branch.AddBranch(label)
				addTreeNode(sub, e, opts, depth+1)
			default:
				branch.AddNode(label + ": " + Stringify(e))
			}
		}
	default:
		branch.AddNode(Stringify(node))
	}
}
