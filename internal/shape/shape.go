// Package shape turns a remote objective graph into the view-model tree
// consumed by the TUI. It is the single reshaping point for the remote
// schema: everything downstream renders shape.Node and never touches the
// wire format directly.
package shape

import (
	"errors"

	"github.com/alexanderramin/okrtree/internal/domain"
)

// MaxDepth bounds tree traversal. Anything deeper is treated as malformed
// server data rather than a legitimate hierarchy.
const MaxDepth = 512

var (
	// ErrCycle reports a node reachable from itself (or the same node
	// appearing under two parents) in one snapshot.
	ErrCycle = errors.New("objective graph contains a cycle")

	// ErrTooDeep reports a hierarchy exceeding MaxDepth.
	ErrTooDeep = errors.New("objective graph exceeds maximum depth")
)

// Node is the ephemeral, renderable form of an objective. It is rebuilt
// from the authoritative objective graph on every fetch and never mutated
// in place.
type Node struct {
	Name               string
	ID                 string
	Title              string
	Description        string
	Level              domain.Level
	TreeLevel          int
	ProgressPercentage int
	ParentID           *string
	Children           []*Node
}

type frame struct {
	src    *domain.Objective
	parent *Node
	depth  int
}

// Build shapes an objective graph into a Node tree. A nil input yields a
// nil tree. Nil children are dropped rather than propagated as errors,
// so a partial server payload still shapes the healthy part of the tree.
// The traversal is iterative with an explicit stack; depth and revisit
// guards turn malformed graphs into hard errors instead of unbounded
// recursion.
func Build(root *domain.Objective) (*Node, error) {
	if root == nil {
		return nil, nil
	}

	// Sentinel parent collects the shaped root as its only child.
	sentinel := &Node{}
	stack := []frame{{src: root, parent: sentinel, depth: 0}}
	seen := make(map[string]bool)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth >= MaxDepth {
			return nil, ErrTooDeep
		}
		if seen[f.src.ID] {
			return nil, ErrCycle
		}
		seen[f.src.ID] = true

		n := &Node{
			Name:               f.src.Title,
			ID:                 f.src.ID,
			Title:              f.src.Title,
			Description:        f.src.Description,
			Level:              f.src.Level,
			TreeLevel:          f.src.TreeLevel,
			ProgressPercentage: f.src.ProgressPercentage,
			ParentID:           f.src.ParentID,
		}
		f.parent.Children = append(f.parent.Children, n)

		// Push children in reverse so they pop (and append) in input order.
		for i := len(f.src.Children) - 1; i >= 0; i-- {
			child := f.src.Children[i]
			if child == nil {
				continue
			}
			stack = append(stack, frame{src: child, parent: n, depth: f.depth + 1})
		}
	}

	return sentinel.Children[0], nil
}

// Find returns the node with the given id, or nil.
func Find(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.ID == id {
			return n
		}
		stack = append(stack, n.Children...)
	}
	return nil
}

// Count returns the number of nodes in the shaped tree.
func Count(root *Node) int {
	if root == nil {
		return 0
	}
	total := 0
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++
		stack = append(stack, n.Children...)
	}
	return total
}
