// Package riskmodel implements spec.md 4.2's RiskModel: a thin layer
// over topology.Topology that lazily fills any node or arc missing an
// explicit Threat score (derived from centrality) and exposes the
// set_threat/set_vulnerability/set_consequence setter family for either
// asset class, always reading back a freshly-consistent Risk column.
//
// Kept as its own package, rather than folded into risk or topology,
// because it needs both: topology.Topology (to read/write the tables)
// and risk (for the centrality-to-score scaling and score bounds), and
// topology already depends on risk - folding this in would cycle.
package riskmodel

import (
	"fmt"

	"github.com/stigmar/snram/risk"
	"github.com/stigmar/snram/topology"
)

func errMismatch(want, got int) error {
	return fmt.Errorf("riskmodel: column length %d does not match table length %d", got, want)
}

// Model wraps a Topology and derives any missing Threat scores from
// centrality the first time FillMissingThreat runs.
type Model struct {
	Topology *topology.Topology
}

// New wraps t in a Model.
func New(t *topology.Topology) *Model {
	return &Model{Topology: t}
}

// FillMissingThreat sets Threat on the ids in missingNodes/missingArcs
// (ids the loader saw with no "threat" column value) that the centrality
// covers - attackable nodes, and arcs whose both endpoints are
// attackable - from normalized centrality, scaled to [1,5] by rounding:
// node threat = round(degree_centrality*5), arc threat =
// round(edge_betweenness*5). Every other id, listed or not, keeps its
// current Threat. Risk is recomputed as a side effect of the
// topology setters this calls.
func (m *Model) FillMissingThreat(missingNodes map[string]bool, missingArcs map[[2]string]bool) error {
	if len(missingNodes) > 0 {
		nodes := m.attackableNodeOrder()
		scores := risk.ThreatFromCentrality(m.Topology.DegreeCentrality())
		for i, id := range nodes {
			if !missingNodes[id] {
				continue
			}
			if err := m.Topology.SetNodeThreat(id, scores[i]); err != nil {
				return err
			}
		}
	}
	if len(missingArcs) > 0 {
		arcs := m.attackableArcOrder()
		scores := risk.ThreatFromCentrality(m.Topology.ArcBetweennessCentrality())
		for i, key := range arcs {
			if !missingArcs[key] {
				continue
			}
			if err := m.Topology.SetArcThreat(key[0], key[1], scores[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Model) attackableNodeOrder() []string {
	var out []string
	for _, n := range m.Topology.Nodes() {
		if n.Attackable {
			out = append(out, n.ID)
		}
	}
	return out
}

// attackableArcOrder lists, in table order, the arcs whose both
// endpoints are attackable: the arcs ArcBetweennessCentrality scores.
func (m *Model) attackableArcOrder() [][2]string {
	attackable := make(map[string]bool)
	for _, n := range m.Topology.Nodes() {
		if n.Attackable {
			attackable[n.ID] = true
		}
	}
	var out [][2]string
	for _, a := range m.Topology.Arcs() {
		if attackable[a.From] && attackable[a.To] {
			out = append(out, [2]string{a.From, a.To})
		}
	}
	return out
}

// SetThreat, SetVulnerability, SetConsequence validate that values has
// one entry per row of the given class (in table order) and overwrite
// that column, recomputing Risk - spec.md 4.2's setter family. class
// must be topology.ClassNodes or topology.ClassArcs.
func (m *Model) SetThreat(class topology.AssetClass, values []int) error {
	return m.setColumn(class, values, m.Topology.SetNodeThreat, m.Topology.SetArcThreat)
}

func (m *Model) SetVulnerability(class topology.AssetClass, values []int) error {
	return m.setColumn(class, values, m.Topology.SetNodeVulnerability, m.Topology.SetArcVulnerability)
}

func (m *Model) SetConsequence(class topology.AssetClass, values []int) error {
	return m.setColumn(class, values, m.Topology.SetNodeConsequence, m.Topology.SetArcConsequence)
}

func (m *Model) setColumn(class topology.AssetClass, values []int,
	setNode func(string, int) error, setArc func(string, string, int) error) error {

	if class == topology.ClassNodes {
		nodes := m.Topology.Nodes()
		if len(values) != len(nodes) {
			return errMismatch(len(nodes), len(values))
		}
		for i, n := range nodes {
			if err := setNode(n.ID, values[i]); err != nil {
				return err
			}
		}
		return nil
	}

	arcs := m.Topology.Arcs()
	if len(values) != len(arcs) {
		return errMismatch(len(arcs), len(values))
	}
	for i, a := range arcs {
		if err := setArc(a.From, a.To, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetRisk returns the current Risk column for class, freshly recomputed
// (Topology never stores a stale Risk value, so this is just a read).
func (m *Model) GetRisk(class topology.AssetClass) []int {
	if class == topology.ClassNodes {
		nodes := m.Topology.Nodes()
		out := make([]int, len(nodes))
		for i, n := range nodes {
			out[i] = n.Risk
		}
		return out
	}
	arcs := m.Topology.Arcs()
	out := make([]int, len(arcs))
	for i, a := range arcs {
		out[i] = a.Risk
	}
	return out
}
