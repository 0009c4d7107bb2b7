package nav

// DefaultMaxDepth bounds how deep the collector descends.
const DefaultMaxDepth = 256

// Collector walks a page and returns its navigable elements.
type Collector struct {
	// MaxDepth limits traversal depth below the root. Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

type collectEntry struct {
	node  Node
	depth int
}

// Collect returns every focusable, visible descendant of root in pre-order.
// The root itself is not a candidate. Nodes are visited at most once, so a
// cyclic tree terminates; subtrees deeper than MaxDepth are skipped.
func (c Collector) Collect(root Node) []Element {
	if root == nil {
		return nil
	}

	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var out []Element
	visited := make(map[any]struct{})
	if key, ok := nodeKey(root); ok {
		visited[key] = struct{}{}
	}

	stack := pushChildren(nil, root, 1)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if key, ok := nodeKey(top.node); ok {
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}
		}

		focusable, visible := top.node.Focusable(), top.node.Visible()
		if focusable && visible {
			out = append(out, Element{Node: top.node, Focusable: focusable, Visible: visible})
		}

		if top.depth < maxDepth {
			stack = pushChildren(stack, top.node, top.depth+1)
		}
	}
	return out
}

// pushChildren pushes n's children in reverse so they pop in document order.
func pushChildren(stack []collectEntry, n Node, depth int) []collectEntry {
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if children[i] == nil {
			continue
		}
		stack = append(stack, collectEntry{node: children[i], depth: depth})
	}
	return stack
}
