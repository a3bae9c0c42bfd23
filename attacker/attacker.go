// Package attacker implements the greedy attacker model: an adversary
// that spends a fixed budget of rounds increasing the threat score of
// whichever attackable asset (a node or an arc, per Class) yields the
// largest relative risk gain.
//
// Ported from original_source/snram/attacker.py, with one deliberate
// deviation documented in DESIGN.md: the original's per-round selection
// reuses find_critical_asset("threat") (lowest current threat, which
// favors assets with room to grow); this package instead implements the
// "maximize relative risk gain" rule SPEC_FULL.md specifies (spec.md
// 4.3), evaluating every attackable asset's relative risk gain directly
// rather than approximating it via the threat minimum.
package attacker

import (
	"fmt"
	"strings"

	"github.com/stigmar/snram/risk"
	"github.com/stigmar/snram/topology"
)

// GreedyAttacker maximizes total risk on Class (nodes or arcs) by
// repeatedly exploiting the most rewarding attackable asset's threat
// score, within Budget rounds.
type GreedyAttacker struct {
	Topology *topology.Topology
	Budget   int
	Class    topology.AssetClass
}

// Round records one round of the attack: the asset chosen (rendered by
// Label), its threat before/after, and the resulting total risk across
// the asset class being exploited.
type Round struct {
	Label        string
	ThreatBefore int
	ThreatAfter  int
	RiskSum      int
}

// Report is the outcome of a full MaximizeThreat run.
type Report struct {
	Class  topology.AssetClass
	Rounds []Round
}

// MaximizeThreat runs Budget rounds of threat exploitation. Each round
// picks the attackable asset whose threat, if incremented by
// risk.ThreatInc and capped at risk.ThreatMax, produces the largest
// *relative* increase in that asset's own risk score - (r_new-r_old)/
// r_old, spec.md 4.3 - ties broken by the asset's current risk
// descending, then table order (the same tie-break FindCritical* would
// apply), then applies the increment.
//
// An asset whose threat is already at risk.ThreatMax contributes zero
// gain and will only be chosen if every other attackable asset is
// equally saturated; this still consumes a round, matching the Python
// original's unconditional loop over range(budget).
func (g *GreedyAttacker) MaximizeThreat() (Report, error) {
	report := Report{Class: g.Class}
	for i := 0; i < g.Budget; i++ {
		var moved bool
		var err error
		if g.Class == topology.ClassNodes {
			moved, err = g.stepNode(&report)
		} else {
			moved, err = g.stepArc(&report)
		}
		if err != nil {
			return report, err
		}
		if !moved {
			break // no attackable assets at all
		}
	}
	return report, nil
}

func (g *GreedyAttacker) stepArc(report *Report) (bool, error) {
	arcs := g.Topology.Arcs()
	bestFrom, bestTo := "", ""
	bestGain := -1.0
	bestRisk := -1
	found := false

	for _, a := range arcs {
		if !a.Attackable {
			continue
		}
		newThreat := risk.Clamp(a.Threat+risk.ThreatInc, risk.ThreatMin, risk.ThreatMax)
		newRisk := risk.Risk(newThreat, a.Vulnerability, a.Consequence)
		gain := float64(newRisk-a.Risk) / float64(a.Risk)
		if !found || gain > bestGain || (gain == bestGain && a.Risk > bestRisk) {
			found = true
			bestGain = gain
			bestRisk = a.Risk
			bestFrom, bestTo = a.From, a.To
		}
	}
	if !found {
		return false, nil
	}

	before, err := g.Topology.Arc(bestFrom, bestTo)
	if err != nil {
		return false, err
	}
	newThreat := risk.Clamp(before.Threat+risk.ThreatInc, risk.ThreatMin, risk.ThreatMax)
	if err := g.Topology.SetArcThreat(bestFrom, bestTo, newThreat); err != nil {
		return false, err
	}

	report.Rounds = append(report.Rounds, Round{
		Label:        fmt.Sprintf("(%s, %s)", bestFrom, bestTo),
		ThreatBefore: before.Threat,
		ThreatAfter:  newThreat,
		RiskSum:      g.Topology.TotalRisk(),
	})
	return true, nil
}

func (g *GreedyAttacker) stepNode(report *Report) (bool, error) {
	nodes := g.Topology.Nodes()
	bestID := ""
	bestGain := -1.0
	bestRisk := -1
	found := false

	for _, n := range nodes {
		if !n.Attackable {
			continue
		}
		newThreat := risk.Clamp(n.Threat+risk.ThreatInc, risk.ThreatMin, risk.ThreatMax)
		newRisk := risk.Risk(newThreat, n.Vulnerability, n.Consequence)
		gain := float64(newRisk-n.Risk) / float64(n.Risk)
		if !found || gain > bestGain || (gain == bestGain && n.Risk > bestRisk) {
			found = true
			bestGain = gain
			bestRisk = n.Risk
			bestID = n.ID
		}
	}
	if !found {
		return false, nil
	}

	before, err := g.Topology.Node(bestID)
	if err != nil {
		return false, err
	}
	newThreat := risk.Clamp(before.Threat+risk.ThreatInc, risk.ThreatMin, risk.ThreatMax)
	if err := g.Topology.SetNodeThreat(bestID, newThreat); err != nil {
		return false, err
	}

	report.Rounds = append(report.Rounds, Round{
		Label:        bestID,
		ThreatBefore: before.Threat,
		ThreatAfter:  newThreat,
		RiskSum:      g.Topology.TotalNodeRisk(),
	})
	return true, nil
}

// String renders the "Attacker: Threat Mode" banner and round table,
// matching Attacker.threat()'s output.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, strings.Repeat("=", 70))
	fmt.Fprintln(&b, "                                                                      ")
	fmt.Fprintln(&b, "                        Attacker: Threat Mode                         ")
	fmt.Fprintln(&b, "                                                                      ")
	fmt.Fprintln(&b, strings.Repeat("=", 70))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Maximise Threat by Exploiting %s Vulnerabilities:\n", classTitle(r.Class))
	fmt.Fprintln(&b, strings.Repeat("-", 70))
	fmt.Fprintln(&b, "#\tAsset\t\tT(before)\tT(after)\tR_sum")
	fmt.Fprintln(&b, strings.Repeat("-", 70))
	for i, round := range r.Rounds {
		fmt.Fprintf(&b, "%d\t%-12s\t%d\t\t%d\t\t%d\n", i, round.Label, round.ThreatBefore, round.ThreatAfter, round.RiskSum)
	}
	fmt.Fprintln(&b, strings.Repeat("-", 70))
	return b.String()
}

func classTitle(c topology.AssetClass) string {
	if c == topology.ClassNodes {
		return "Node"
	}
	return "Link"
}
