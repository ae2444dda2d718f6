// Package graph holds the in-memory dependency graph and the cycle
// detector that runs over it.
package graph

import "sort"

// Graph is a directed dependency graph over module paths.
type Graph struct {
	// Adjacency list: node -> nodes it depends on
	Edges map[string][]string
	// Reverse adjacency: node -> nodes that depend on it
	ReverseEdges map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		Edges:        make(map[string][]string),
		ReverseEdges: make(map[string][]string),
	}
}

// AddNode registers a node with no edges. Adding an existing node is a
// no-op, so isolated modules can be added unconditionally.
func (g *Graph) AddNode(node string) {
	if _, ok := g.Edges[node]; !ok {
		g.Edges[node] = []string{}
	}
	if _, ok := g.ReverseEdges[node]; !ok {
		g.ReverseEdges[node] = []string{}
	}
}

// AddEdge adds a directed edge from -> to, registering both endpoints.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.Edges[from] = append(g.Edges[from], to)
	g.ReverseEdges[to] = append(g.ReverseEdges[to], from)
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Edges)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, targets := range g.Edges {
		count += len(targets)
	}
	return count
}

// Nodes returns all node IDs sorted, for deterministic traversal.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.Edges))
	for node := range g.Edges {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}

// OutDegree returns the number of outgoing edges from a node.
func (g *Graph) OutDegree(node string) int {
	return len(g.Edges[node])
}

// InDegree returns the number of incoming edges to a node.
func (g *Graph) InDegree(node string) int {
	return len(g.ReverseEdges[node])
}

// Successors returns nodes that this node depends on.
func (g *Graph) Successors(node string) []string {
	return g.Edges[node]
}

// Predecessors returns nodes that depend on this node.
func (g *Graph) Predecessors(node string) []string {
	return g.ReverseEdges[node]
}

// HasEdge reports whether a from -> to edge exists.
func (g *Graph) HasEdge(from, to string) bool {
	for _, target := range g.Edges[from] {
		if target == to {
			return true
		}
	}
	return false
}
