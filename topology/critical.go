package topology

import "github.com/stigmar/snram/internal/snerr"

// Attribute selects which scalar field FindCriticalNode/FindCriticalArc
// ranks by.
type Attribute int

const (
	AttrThreat Attribute = iota
	AttrVulnerability
	AttrConsequence
	AttrRisk
)

func attrValueNode(n Node, attr Attribute) int {
	switch attr {
	case AttrThreat:
		return n.Threat
	case AttrVulnerability:
		return n.Vulnerability
	case AttrConsequence:
		return n.Consequence
	default:
		return n.Risk
	}
}

func attrValueArc(a Arc, attr Attribute) int {
	switch attr {
	case AttrThreat:
		return a.Threat
	case AttrVulnerability:
		return a.Vulnerability
	case AttrConsequence:
		return a.Consequence
	default:
		return a.Risk
	}
}

// FindCriticalNode ports NetworkTopology.find_critical_asset for nodes.
//
// Candidates are restricted to Attackable==true rows only (spec.md 4.1:
// find_critical_asset "selects among rows with attackable == 1").
//
// For AttrThreat the asset with the lowest threat and, among those, the
// largest vulnerability and then largest risk is "most critical" (an
// asset that is easy to threaten further and already risky is the best
// attack target). For every other attribute, the asset with the largest
// value, tie-broken by largest risk, is most critical. Remaining ties
// are broken by table (insertion) order.
func (t *Topology) FindCriticalNode(attr Attribute) (id string, value int, err error) {
	nodes := t.Nodes()
	candidates := filterAttackable(nodes)
	if len(candidates) == 0 {
		return "", 0, snerr.ErrNoAttackableAssets
	}

	if attr == AttrThreat {
		candidates = keepMinBy(candidates, func(n Node) int { return n.Threat })
		candidates = keepMaxBy(candidates, func(n Node) int { return n.Vulnerability })
		candidates = keepMaxBy(candidates, func(n Node) int { return n.Risk })
	} else {
		candidates = keepMaxBy(candidates, func(n Node) int { return attrValueNode(n, attr) })
		candidates = keepMaxBy(candidates, func(n Node) int { return n.Risk })
	}

	best := candidates[0]
	return best.ID, attrValueNode(best, attr), nil
}

// FindCriticalArc is the arc analogue of FindCriticalNode.
func (t *Topology) FindCriticalArc(attr Attribute) (from, to string, value int, err error) {
	arcs := t.Arcs()
	candidates := filterAttackableArc(arcs)
	if len(candidates) == 0 {
		return "", "", 0, snerr.ErrNoAttackableAssets
	}

	if attr == AttrThreat {
		candidates = keepMinByArc(candidates, func(a Arc) int { return a.Threat })
		candidates = keepMaxByArc(candidates, func(a Arc) int { return a.Vulnerability })
		candidates = keepMaxByArc(candidates, func(a Arc) int { return a.Risk })
	} else {
		candidates = keepMaxByArc(candidates, func(a Arc) int { return attrValueArc(a, attr) })
		candidates = keepMaxByArc(candidates, func(a Arc) int { return a.Risk })
	}

	best := candidates[0]
	return best.From, best.To, attrValueArc(best, attr), nil
}

func filterAttackable(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Attackable {
			out = append(out, n)
		}
	}
	return out
}

func filterAttackableArc(arcs []Arc) []Arc {
	var out []Arc
	for _, a := range arcs {
		if a.Attackable {
			out = append(out, a)
		}
	}
	return out
}

func keepMaxBy(nodes []Node, key func(Node) int) []Node {
	max := key(nodes[0])
	for _, n := range nodes[1:] {
		if v := key(n); v > max {
			max = v
		}
	}
	var out []Node
	for _, n := range nodes {
		if key(n) == max {
			out = append(out, n)
		}
	}
	return out
}

func keepMinBy(nodes []Node, key func(Node) int) []Node {
	min := key(nodes[0])
	for _, n := range nodes[1:] {
		if v := key(n); v < min {
			min = v
		}
	}
	var out []Node
	for _, n := range nodes {
		if key(n) == min {
			out = append(out, n)
		}
	}
	return out
}

func keepMaxByArc(arcs []Arc, key func(Arc) int) []Arc {
	max := key(arcs[0])
	for _, a := range arcs[1:] {
		if v := key(a); v > max {
			max = v
		}
	}
	var out []Arc
	for _, a := range arcs {
		if key(a) == max {
			out = append(out, a)
		}
	}
	return out
}

func keepMinByArc(arcs []Arc, key func(Arc) int) []Arc {
	min := key(arcs[0])
	for _, a := range arcs[1:] {
		if v := key(a); v < min {
			min = v
		}
	}
	var out []Arc
	for _, a := range arcs {
		if key(a) == min {
			out = append(out, a)
		}
	}
	return out
}
