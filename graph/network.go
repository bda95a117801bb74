// Package graph builds and validates the content node network: an
// acyclic graph of parsed source files rooted at one entry file.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/contextweave/contextweave/model"
)

// Edge is a resolved directed connection between two nodes. Path is the
// reference path as written in the source file.
type Edge struct {
	From  string
	To    string
	Path  string
	Label string
}

// NodeNetwork is the validated, immutable graph of context nodes. The
// network is the sole owner of its nodes; edges are id pairs, never
// owning links, so freeing the network is always safe regardless of the
// edge shape.
type NodeNetwork struct {
	root  string
	nodes map[string]*model.ContextNode
	edges map[string][]Edge
}

// Root returns the id of the entry node.
func (n *NodeNetwork) Root() string { return n.root }

// Node returns the node with the given id, or nil.
func (n *NodeNetwork) Node(id string) *model.ContextNode { return n.nodes[id] }

// RootNode returns the entry node.
func (n *NodeNetwork) RootNode() *model.ContextNode { return n.nodes[n.root] }

// Len returns the number of nodes in the network.
func (n *NodeNetwork) Len() int { return len(n.nodes) }

// Size returns the aggregate raw byte size of all nodes.
func (n *NodeNetwork) Size() int {
	total := 0
	for _, node := range n.nodes {
		total += node.Size
	}
	return total
}

// NodeIDs returns all node ids in sorted order.
func (n *NodeNetwork) NodeIDs() []string {
	ids := make([]string, 0, len(n.nodes))
	for id := range n.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Edges returns the outgoing edges of a node in reference order.
func (n *NodeNetwork) Edges(id string) []Edge { return n.edges[id] }

// Target returns the id of the node a reference path points to from the
// given node, if that edge was resolved during build.
func (n *NodeNetwork) Target(from, refPath string) (string, bool) {
	for _, e := range n.edges[from] {
		if e.Path == refPath {
			return e.To, true
		}
	}
	return "", false
}

// Renderer renders a NodeNetwork into a specific output format.
type Renderer interface {
	Render(n *NodeNetwork) (string, error)
}

// MermaidRenderer outputs networks in Mermaid flowchart syntax.
type MermaidRenderer struct{}

// Render renders the network using Mermaid syntax. Node ids are long
// absolute paths, so nodes are numbered and labeled with their names.
func (r *MermaidRenderer) Render(n *NodeNetwork) (string, error) {
	if n == nil || n.Len() == 0 {
		return "", nil
	}
	ids := n.NodeIDs()
	short := make(map[string]string, len(ids))
	for i, id := range ids {
		short[id] = fmt.Sprintf("n%d", i)
	}
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for _, id := range ids {
		sb.WriteString(fmt.Sprintf("%s[%s]\n", short[id], n.Node(id).Name()))
	}
	for _, id := range ids {
		for _, e := range n.Edges(id) {
			if e.Label != "" {
				sb.WriteString(fmt.Sprintf("%s -->|%s| %s\n", short[e.From], e.Label, short[e.To]))
			} else {
				sb.WriteString(fmt.Sprintf("%s --> %s\n", short[e.From], short[e.To]))
			}
		}
	}
	return sb.String(), nil
}

// ExportMermaid is a helper to create a Mermaid diagram from a network.
func ExportMermaid(n *NodeNetwork) (string, error) {
	renderer := &MermaidRenderer{}
	return renderer.Render(n)
}
