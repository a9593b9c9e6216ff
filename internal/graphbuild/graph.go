// Package graphbuild constructs an offline adjacency graph over a document
// collection and partitions it into communities, for analysis use cases
// distinct from the online traversal engine (SPEC_FULL.md §4.6).
package graphbuild

import (
	"sort"

	"github.com/brain2labs/graphtraverse/internal/edges"
	"github.com/brain2labs/graphtraverse/internal/graph"
	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

// Arc is a directed adjacency u -> v: u has an outgoing edge structurally
// equal to one of v's incoming edges.
type Arc struct {
	From string
	To   string
}

// Graph is the offline document graph: every content's id as a vertex, plus
// the arcs discovered by matching outgoing against incoming edge sets.
type Graph struct {
	Nodes []string
	Arcs  []Arc
}

// Build materializes the graph for contents under edgeFn. Self-loops (an
// id matching its own outgoing edge against its own incoming edge) are
// omitted.
func Build(contents []graph.Content, edgeFn edges.Function) (*Graph, error) {
	g := &Graph{Nodes: make([]string, 0, len(contents))}

	type extracted struct {
		id   string
		adj  graph.Edges
	}
	all := make([]extracted, 0, len(contents))

	// incomingIndex[e] lists every id whose incoming set contains e, in
	// input order, so arc discovery below is deterministic.
	incomingIndex := make(map[graph.Edge][]string)

	for _, c := range contents {
		if c.ID == "" {
			return nil, apperrors.NewMissingID("content with no id cannot become a graph vertex")
		}
		adj, err := edgeFn(c)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, c.ID)
		all = append(all, extracted{id: c.ID, adj: adj})
		for e := range adj.Incoming {
			incomingIndex[e] = append(incomingIndex[e], c.ID)
		}
	}

	seen := make(map[Arc]struct{})
	for _, e := range all {
		for edge := range e.adj.Outgoing {
			for _, target := range incomingIndex[edge] {
				if target == e.id {
					continue // self-loop
				}
				arc := Arc{From: e.id, To: target}
				if _, dup := seen[arc]; dup {
					continue
				}
				seen[arc] = struct{}{}
				g.Arcs = append(g.Arcs, arc)
			}
		}
	}

	return g, nil
}

// Community is a connected component of the graph's underlying undirected
// adjacency.
type Community struct {
	ID      int
	NodeIDs []string
}

// FindCommunities partitions g via connected-component analysis: treating
// every arc as undirected, two nodes are in the same community iff a path
// of arcs connects them. Grounded on the teacher's community-detection
// shape (group-then-sort-by-size), generalized from modularity optimization
// to plain union-find.
func FindCommunities(g *Graph) []Community {
	parent := make(map[string]string, len(g.Nodes))
	for _, id := range g.Nodes {
		parent[id] = id
	}

	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for _, arc := range g.Arcs {
		union(arc.From, arc.To)
	}

	groups := make(map[string][]string)
	for _, id := range g.Nodes {
		root := find(id)
		groups[root] = append(groups[root], id)
	}

	ids := make([]string, 0, len(groups))
	for root := range groups {
		ids = append(ids, root)
	}
	sort.Strings(ids) // deterministic before the size sort below

	communities := make([]Community, 0, len(groups))
	for i, root := range ids {
		communities = append(communities, Community{ID: i, NodeIDs: groups[root]})
	}

	sort.SliceStable(communities, func(i, j int) bool {
		return len(communities[i].NodeIDs) > len(communities[j].NodeIDs)
	})

	return communities
}
