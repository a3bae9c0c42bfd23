package topology

import (
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 70

func rule() string { return strings.Repeat("-", ruleWidth) }

// String renders the topology's node and arc tables, matching
// NetworkTopology.print()'s two fixed-width tables and legend.
func (t *Topology) String() string {
	var b strings.Builder
	t.Print(&b)
	return b.String()
}

// Print writes the node and arc tables to w.
func (t *Topology) Print(w io.Writer) {
	fmt.Fprintln(w, "Network Topology:")
	fmt.Fprintln(w, rule())
	fmt.Fprintln(w, "Node\t\tT\tV\tC\tR")
	fmt.Fprintln(w, rule())
	for _, n := range t.Nodes() {
		fmt.Fprintf(w, "%-12s\t%d\t%d\t%d\t%d\n", n.ID, n.Threat, n.Vulnerability, n.Consequence, n.Risk)
	}
	fmt.Fprintln(w, rule())

	fmt.Fprintln(w, rule())
	fmt.Fprintln(w, "Arc\t\tT\tV\tC\tR\tQ")
	fmt.Fprintln(w, rule())
	for _, a := range t.Arcs() {
		sij := fmt.Sprintf("(%s, %s)", a.From, a.To)
		fmt.Fprintf(w, "%-12s\t%d\t%d\t%d\t%d\t%.0f\n", sij, a.Threat, a.Vulnerability, a.Consequence, a.Risk, a.Capacity)
	}
	fmt.Fprintln(w, rule())
	fmt.Fprintln(w, "T = Threat (1-5)")
	fmt.Fprintln(w, "V = Vulnerability (1-5)")
	fmt.Fprintln(w, "C = Consequence (1-5)")
	fmt.Fprintln(w, "R = Risk (T x V x C)")
	fmt.Fprintln(w, "Q = Capacity")
}

// CriticalAssetReport renders the eight-line critical-asset summary,
// matching NetworkTopology.critical_asset_analysis().
func (t *Topology) CriticalAssetReport() string {
	var b strings.Builder
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Critical Assets:")
	fmt.Fprintln(&b, rule())
	fmt.Fprintln(&b, "                                 Index\t\tValue")
	fmt.Fprintln(&b, rule())

	if id, v, err := t.FindCriticalNode(AttrThreat); err == nil {
		fmt.Fprintf(&b, "Node with largest threat:        %s\t\t%d\n", id, v)
	}
	if id, v, err := t.FindCriticalNode(AttrVulnerability); err == nil {
		fmt.Fprintf(&b, "Node with largest vulnerability: %s\t\t%d\n", id, v)
	}
	if id, v, err := t.FindCriticalNode(AttrConsequence); err == nil {
		fmt.Fprintf(&b, "Node with largest consequence:   %s\t\t%d\n", id, v)
	}
	if id, v, err := t.FindCriticalNode(AttrRisk); err == nil {
		fmt.Fprintf(&b, "Node with largest risk:          %s\t\t%d\n", id, v)
	}
	fmt.Fprintln(&b)

	if from, to, v, err := t.FindCriticalArc(AttrThreat); err == nil {
		fmt.Fprintf(&b, "Arc with largest threat:         %-12s\t%d\n", fmt.Sprintf("(%s, %s)", from, to), v)
	}
	if from, to, v, err := t.FindCriticalArc(AttrVulnerability); err == nil {
		fmt.Fprintf(&b, "Arc with largest vulnerability:  %-12s\t%d\n", fmt.Sprintf("(%s, %s)", from, to), v)
	}
	if from, to, v, err := t.FindCriticalArc(AttrConsequence); err == nil {
		fmt.Fprintf(&b, "Arc with largest consequence:    %-12s\t%d\n", fmt.Sprintf("(%s, %s)", from, to), v)
	}
	if from, to, v, err := t.FindCriticalArc(AttrRisk); err == nil {
		fmt.Fprintf(&b, "Arc with largest risk:           %-12s\t%d\n", fmt.Sprintf("(%s, %s)", from, to), v)
	}
	fmt.Fprintf(&b, "%s\n\n", rule())

	fmt.Fprintln(&b, "Articulation points (attackable subgraph):")
	if points := t.ArticulationPoints(); len(points) > 0 {
		fmt.Fprintln(&b, strings.Join(points, ", "))
	} else {
		fmt.Fprintln(&b, "(none)")
	}
	fmt.Fprintln(&b)

	return b.String()
}

// TotalRisk returns the sum of Risk across every arc, the "R_sum"
// figure reported when a greedy component operates on ClassArcs.
func (t *Topology) TotalRisk() int {
	sum := 0
	for _, a := range t.Arcs() {
		sum += a.Risk
	}
	return sum
}

// TotalNodeRisk returns the sum of Risk across every node, the "R_sum"
// figure reported when a greedy component operates on ClassNodes.
func (t *Topology) TotalNodeRisk() int {
	sum := 0
	for _, n := range t.Nodes() {
		sum += n.Risk
	}
	return sum
}

// TotalRiskFor returns TotalNodeRisk or TotalRisk depending on class.
func (t *Topology) TotalRiskFor(class AssetClass) int {
	if class == ClassNodes {
		return t.TotalNodeRisk()
	}
	return t.TotalRisk()
}
