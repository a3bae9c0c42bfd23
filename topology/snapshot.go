package topology

// Clone returns a deep, independent copy of the topology: a fresh
// Topology with its own nodes/arcs maps, safe for an interdiction
// solver to mutate (e.g. via SetArcXbar) without affecting the
// caller's original. Grounded on core/methods_clone.go's Clone
// pattern in the teacher, generalized from Graph to Topology.
func (t *Topology) Clone() *Topology {
	clone := New()
	clone.calcCap = t.calcCap

	for _, n := range t.Nodes() {
		_ = clone.AddNode(n.ID, n.Threat, n.Vulnerability, n.Consequence, n.Attackable, n.SupplyDemand)
	}
	for _, a := range t.Arcs() {
		_ = clone.AddArc(a.From, a.To, a.Threat, a.Vulnerability, a.Consequence, a.Attackable, a.Capacity, a.Cost)
		if a.Xbar {
			_ = clone.SetArcXbar(a.From, a.To, true)
		}
	}
	return clone
}
