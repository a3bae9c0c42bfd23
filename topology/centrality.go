package topology

// attackableSubgraph builds an undirected adjacency list restricted to
// attackable nodes, mirroring get_graph_with_attackable_nodes: arcs are
// treated as undirected links (the original builds its centrality graph
// with nx.Graph(), not nx.DiGraph()), and only arcs whose both endpoints
// are attackable are included.
func (t *Topology) attackableSubgraph() (order []string, adj map[string]map[string]bool) {
	nodes := t.Nodes()
	attackable := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.Attackable {
			attackable[n.ID] = true
			order = append(order, n.ID)
		}
	}

	adj = make(map[string]map[string]bool, len(order))
	for _, id := range order {
		adj[id] = make(map[string]bool)
	}
	for _, a := range t.Arcs() {
		if attackable[a.From] && attackable[a.To] {
			adj[a.From][a.To] = true
			adj[a.To][a.From] = true
		}
	}
	return order, adj
}

// DegreeCentrality returns, for each attackable node (in the order
// returned by Nodes(), restricted to attackable nodes), its normalized
// degree centrality within the attackable-node induced subgraph: raw
// degree divided by the maximum raw degree observed. Ports
// node_degree_centrality.
func (t *Topology) DegreeCentrality() []float64 {
	order, adj := t.attackableSubgraph()
	raw := make([]float64, len(order))
	max := 0.0
	for i, id := range order {
		raw[i] = float64(len(adj[id]))
		if raw[i] > max {
			max = raw[i]
		}
	}
	if max == 0 {
		return raw
	}
	out := make([]float64, len(order))
	for i, v := range raw {
		out[i] = v / max
	}
	return out
}

// ArcBetweennessCentrality returns, for each arc with both endpoints
// attackable (in Arcs() order, restricted accordingly), its normalized
// edge betweenness centrality computed over the attackable-node induced
// subgraph treated as undirected and unweighted. Ports
// arc_betweenness_centrality via Brandes' algorithm generalized to
// edges.
func (t *Topology) ArcBetweennessCentrality() []float64 {
	order, adj := t.attackableSubgraph()
	raw := edgeBetweenness(order, adj)

	max := 0.0
	for _, v := range raw {
		if v > max {
			max = v
		}
	}

	var out []float64
	for _, a := range t.Arcs() {
		key := arcKey(a.From, a.To)
		if v, ok := raw[key]; ok {
			if max == 0 {
				out = append(out, 0)
			} else {
				out = append(out, v/max)
			}
		}
	}
	return out
}

// edgeBetweenness runs Brandes' algorithm (BFS variant, unweighted)
// from every node in order and accumulates unnormalized edge
// betweenness into a map keyed by the undirected edge's canonical
// arcKey(min,max)... here keyed by the directed arcKey(from,to) in both
// directions so callers can look up either orientation.
func edgeBetweenness(order []string, adj map[string]map[string]bool) map[string]float64 {
	betweenness := make(map[string]float64)
	addUndirected := func(u, v string, delta float64) {
		betweenness[arcKey(u, v)] += delta
		betweenness[arcKey(v, u)] += delta
	}

	for _, s := range order {
		// BFS from s.
		dist := map[string]int{s: 0}
		sigma := map[string]float64{s: 1}
		predecessors := map[string][]string{}
		queue := []string{s}
		var stack []string

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for w := range adj[v] {
				if _, seen := dist[w]; !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		delta := map[string]float64{}
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				c := (sigma[v] / sigma[w]) * (1 + delta[w])
				addUndirected(v, w, c/2) // /2: each undirected edge counted from both endpoints' BFS
				delta[v] += c
			}
		}
	}

	return betweenness
}
