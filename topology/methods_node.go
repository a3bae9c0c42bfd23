package topology

import (
	"fmt"

	"github.com/stigmar/snram/internal/snerr"
	"github.com/stigmar/snram/risk"
)

// AddNode inserts a new node. It returns snerr.ErrDuplicateNode if id is
// already present. Risk is computed from the supplied scores
// immediately, so there is never a window where a node's Risk field is
// stale relative to its Threat/Vulnerability/Consequence.
func (t *Topology) AddNode(id string, threat, vulnerability, consequence int, attackable bool, supplyDemand float64) error {
	t.muNode.Lock()
	defer t.muNode.Unlock()

	if _, exists := t.nodes[id]; exists {
		return fmt.Errorf("%w: %s", snerr.ErrDuplicateNode, id)
	}

	n := &Node{
		ID:            id,
		Threat:        threat,
		Vulnerability: vulnerability,
		Consequence:   consequence,
		Risk:          risk.Risk(threat, vulnerability, consequence),
		Attackable:    attackable,
		SupplyDemand:  supplyDemand,
	}
	t.nodes[id] = n
	t.nodeOrder = append(t.nodeOrder, id)
	return nil
}

// Node returns a copy of the node with the given id.
func (t *Topology) Node(id string) (Node, error) {
	t.muNode.RLock()
	defer t.muNode.RUnlock()

	n, ok := t.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("%w: %s", snerr.ErrNodeNotFound, id)
	}
	return *n, nil
}

// Nodes returns a copy of every node, in table (insertion) order.
func (t *Topology) Nodes() []Node {
	t.muNode.RLock()
	defer t.muNode.RUnlock()

	out := make([]Node, 0, len(t.nodeOrder))
	for _, id := range t.nodeOrder {
		out = append(out, *t.nodes[id])
	}
	return out
}

// NodeCount returns the number of nodes in the topology.
func (t *Topology) NodeCount() int {
	t.muNode.RLock()
	defer t.muNode.RUnlock()
	return len(t.nodeOrder)
}

// setNode applies fn to a copy of the node, recomputes Risk, and stores
// the result. fn mutates Threat/Vulnerability/Consequence on the copy it
// is given; it must not touch ID or Risk.
func (t *Topology) setNode(id string, fn func(*Node)) error {
	t.muNode.Lock()
	defer t.muNode.Unlock()

	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", snerr.ErrNodeNotFound, id)
	}
	updated := *n
	fn(&updated)
	updated.Risk = risk.Risk(updated.Threat, updated.Vulnerability, updated.Consequence)
	t.nodes[id] = &updated
	return nil
}

// SetNodeThreat sets Threat on the node (clamped to [ThreatMin,
// ThreatMax]) and recomputes Risk.
func (t *Topology) SetNodeThreat(id string, threat int) error {
	return t.setNode(id, func(n *Node) {
		n.Threat = risk.Clamp(threat, risk.ThreatMin, risk.ThreatMax)
	})
}

// SetNodeVulnerability sets Vulnerability on the node (clamped) and
// recomputes Risk.
func (t *Topology) SetNodeVulnerability(id string, vulnerability int) error {
	return t.setNode(id, func(n *Node) {
		n.Vulnerability = risk.Clamp(vulnerability, risk.VulnMin, risk.VulnMax)
	})
}

// SetNodeConsequence sets Consequence on the node (clamped) and
// recomputes Risk.
func (t *Topology) SetNodeConsequence(id string, consequence int) error {
	return t.setNode(id, func(n *Node) {
		n.Consequence = risk.Clamp(consequence, risk.ConsMin, risk.ConsMax)
	})
}
