package resolve

import "github.com/matzehuels/gavtree/pkg/core/artifact"

// Status classifies a node in a resolved tree.
type Status string

const (
	// StatusResolved marks the accepted occurrence of an identity.
	StatusResolved Status = "RESOLVED"
	// StatusConflict marks an occurrence that lost mediation to another version.
	StatusConflict Status = "CONFLICT"
	// StatusOptional marks a direct test/provided dependency declared optional.
	StatusOptional Status = "OPTIONAL"
	// StatusMissing marks an artifact whose metadata could not be fetched.
	StatusMissing Status = "MISSING"
	// StatusLocal marks an unpublished sibling module.
	StatusLocal Status = "LOCAL"
	// StatusError marks a placeholder for malformed input.
	StatusError Status = "ERROR"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusResolved, StatusConflict, StatusOptional, StatusMissing, StatusLocal, StatusError}

// Node is one artifact in a resolved tree. A node belongs to exactly one tree.
type Node struct {
	artifact.Coordinate `yaml:",inline"`

	Scope    artifact.Scope `json:"scope" yaml:"scope"`
	Status   Status         `json:"status" yaml:"status"`
	Message  string         `json:"message,omitempty" yaml:"message,omitempty"`
	Floating bool           `json:"floating,omitempty" yaml:"floating,omitempty"`
	Children []*Node        `json:"children" yaml:"children"`
}

// Walk visits n and its descendants depth-first in child order.
// Returning false from fn skips the visited node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Size returns the number of nodes below n.
func (n *Node) Size() int {
	count := -1
	n.Walk(func(*Node, int) bool { count++; return true })
	return count
}

// Stats counts the nodes below n by status.
func (n *Node) Stats() map[Status]int {
	stats := make(map[Status]int, len(Statuses))
	n.Walk(func(c *Node, depth int) bool {
		if depth > 0 {
			stats[c.Status]++
		}
		return true
	})
	return stats
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	c := *n
	c.Children = make([]*Node, len(n.Children))
	for i, child := range n.Children {
		c.Children[i] = child.Clone()
	}
	return &c
}
