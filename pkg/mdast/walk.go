package mdast

import "iter"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the AST starting at root.
// The callback walkFunc is called for each node. If walkFunc returns a non-nil error,
// the walk stops immediately and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	// Visit the current node.
	if err := walkFunc(root); err != nil {
		return err
	}

	// Visit children.
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkContextFunc is the function signature for WalkWithContext callbacks.
// The enter callback is called before visiting children.
// The leave callback is called after visiting children.
// Return a non-nil error from either to stop the walk.
type WalkContextFunc func(n *Node) error

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkContextFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// All returns a lazy pre-order sequence over every node under root, root included.
// Children are yielded in their stored order. Breaking out of the range loop
// stops the traversal.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		//nolint:errcheck,revive // errStopWalk only signals that the consumer stopped
		Walk(root, func(n *Node) error {
			if !yield(n) {
				return errStopWalk
			}
			return nil
		})
	}
}

// OfKind returns a lazy pre-order sequence of the nodes of the given kind.
// The whole tree is still visited; only matching nodes are yielded.
func OfKind(root *Node, kind NodeKind) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := range All(root) {
			if n.Kind != kind {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// FindAll returns all nodes matching the predicate.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	for node := range All(root) {
		if predicate(node) {
			result = append(result, node)
		}
	}

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	for node := range All(root) {
		if predicate(node) {
			return node
		}
	}
	return nil
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
