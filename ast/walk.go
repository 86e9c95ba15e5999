package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, child := range n.Body {
			Walk(v, child)
		}
	case *Loop:
		for _, child := range n.Body {
			Walk(v, child)
		}
	}
}

// Inspect traverses an AST in depth-first order, calling f for each node.
// If f returns false, the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			var children []Node
			switch node := n.(type) {
			case *Program:
				children = node.Body
			case *Loop:
				children = node.Body
			}
			for _, child := range children {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}

// MaxDepth returns the deepest loop nesting level in the tree. A program
// without loops has depth zero.
func MaxDepth(root Node) int {
	var depth func(Node) int
	depth = func(n Node) int {
		var children []Node
		base := 0
		switch node := n.(type) {
		case *Program:
			children = node.Body
		case *Loop:
			children = node.Body
			base = 1
		default:
			return 0
		}
		deepest := 0
		for _, child := range children {
			if d := depth(child); d > deepest {
				deepest = d
			}
		}
		return base + deepest
	}
	return depth(root)
}
