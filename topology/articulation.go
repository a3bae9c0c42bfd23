package topology

// ArticulationPoints returns the articulation points (cut vertices) of
// the attackable subgraph, in Nodes() order restricted to attackable
// nodes. Used by CriticalAssetReport (spec.md 4.2: critical_asset_
// analysis "lists articulation points of the attackable subgraph").
//
// Standard DFS-based articulation-point algorithm (Tarjan/Hopcroft),
// generalized here to the possibly-disconnected attackable subgraph: each
// unvisited node starts its own DFS tree and the root-child-count rule is
// applied per tree.
func (t *Topology) ArticulationPoints() []string {
	order, adj := t.attackableSubgraph()
	if len(order) <= 1 {
		return nil
	}

	disc := make(map[string]int, len(order))
	low := make(map[string]int, len(order))
	isCut := make(map[string]bool, len(order))
	timer := 0

	var dfs func(u, parent string)
	dfs = func(u, parent string) {
		timer++
		disc[u] = timer
		low[u] = timer
		children := 0

		for v := range adj[u] {
			if v == parent {
				continue
			}
			if _, seen := disc[v]; seen {
				if disc[v] < low[u] {
					low[u] = disc[v]
				}
				continue
			}
			children++
			dfs(v, u)
			if low[v] < low[u] {
				low[u] = low[v]
			}
			if parent != "" && low[v] >= disc[u] {
				isCut[u] = true
			}
		}
		if parent == "" && children > 1 {
			isCut[u] = true
		}
	}

	for _, id := range order {
		if _, seen := disc[id]; !seen {
			dfs(id, "")
		}
	}

	var out []string
	for _, id := range order {
		if isCut[id] {
			out = append(out, id)
		}
	}
	return out
}
