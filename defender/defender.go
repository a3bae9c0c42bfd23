// Package defender implements the greedy defender model: an operator
// that spends a fixed budget of rounds reducing either the
// vulnerability ("preparedness") or the consequence ("mitigation") of
// whichever attackable asset is currently most critical.
//
// Ported from original_source/snram/defender.py. Per spec.md 4.4, a
// standalone prepare/mitigate run processes nodes first, then arcs, each
// for Budget rounds (see MinimizeVulnerability/MinimizeConsequence);
// spec.md 4.5's Stackelberg loop instead runs one asset class at a time
// (see MinimizeVulnerabilityClass/MinimizeConsequenceClass).
package defender

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stigmar/snram/internal/snerr"
	"github.com/stigmar/snram/risk"
	"github.com/stigmar/snram/topology"
)

// GreedyDefender reduces total risk by repeatedly hardening the most
// critical attackable asset, within Budget rounds per asset class.
type GreedyDefender struct {
	Topology *topology.Topology
	Budget   int
}

// Round records one round of defense: the asset chosen (rendered by
// Label), its value before/after, and the resulting total risk across
// the asset class being hardened.
type Round struct {
	Label   string
	Before  int
	After   int
	RiskSum int
}

// Report is the outcome of one asset-class Minimize*Class run.
type Report struct {
	Class  topology.AssetClass
	Rounds []Round
}

// CombinedReport is the outcome of a standalone Minimize* run: the
// node-phase Report followed by the arc-phase Report, per spec.md 4.4's
// "nodes first, then arcs" ordering.
type CombinedReport struct {
	Nodes Report
	Arcs  Report
}

// MinimizeVulnerabilityClass runs Budget rounds of vulnerability
// reduction restricted to one asset class. Used by the Stackelberg game,
// which alternates phases within a single class (spec.md 4.5).
func (d *GreedyDefender) MinimizeVulnerabilityClass(class topology.AssetClass) (Report, error) {
	return d.run(class, topology.AttrVulnerability, risk.VulnInc, risk.VulnMin)
}

// MinimizeConsequenceClass runs Budget rounds of consequence reduction
// restricted to one asset class.
func (d *GreedyDefender) MinimizeConsequenceClass(class topology.AssetClass) (Report, error) {
	return d.run(class, topology.AttrConsequence, risk.ConsInc, risk.ConsMin)
}

// MinimizeVulnerability runs Budget rounds of vulnerability reduction
// over nodes, then Budget rounds over arcs (spec.md 4.4 "prepare" mode).
func (d *GreedyDefender) MinimizeVulnerability() (CombinedReport, error) {
	return d.runCombined(topology.AttrVulnerability, risk.VulnInc, risk.VulnMin)
}

// MinimizeConsequence runs Budget rounds of consequence reduction over
// nodes, then Budget rounds over arcs (spec.md 4.4 "mitigate" mode).
func (d *GreedyDefender) MinimizeConsequence() (CombinedReport, error) {
	return d.runCombined(topology.AttrConsequence, risk.ConsInc, risk.ConsMin)
}

func (d *GreedyDefender) runCombined(attr topology.Attribute, dec, floor int) (CombinedReport, error) {
	var combined CombinedReport

	nodeReport, err := d.run(topology.ClassNodes, attr, dec, floor)
	if err != nil {
		return combined, err
	}
	combined.Nodes = nodeReport

	arcReport, err := d.run(topology.ClassArcs, attr, dec, floor)
	if err != nil {
		return combined, err
	}
	combined.Arcs = arcReport

	return combined, nil
}

func (d *GreedyDefender) run(class topology.AssetClass, attr topology.Attribute, dec, floor int) (Report, error) {
	report := Report{Class: class}

	for i := 0; i < d.Budget; i++ {
		if class == topology.ClassNodes {
			moved, err := d.stepNode(&report, attr, dec, floor)
			if err != nil {
				return report, err
			}
			if !moved {
				break
			}
		} else {
			moved, err := d.stepArc(&report, attr, dec, floor)
			if err != nil {
				return report, err
			}
			if !moved {
				break
			}
		}
	}

	return report, nil
}

func (d *GreedyDefender) stepNode(report *Report, attr topology.Attribute, dec, floor int) (bool, error) {
	id, before, err := d.Topology.FindCriticalNode(attr)
	if errors.Is(err, snerr.ErrNoAttackableAssets) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	after := dec1(before, dec, floor)
	if err := applyNode(d.Topology, attr, id, after); err != nil {
		return false, err
	}
	report.Rounds = append(report.Rounds, Round{
		Label:   id,
		Before:  before,
		After:   after,
		RiskSum: d.Topology.TotalNodeRisk(),
	})
	return true, nil
}

func (d *GreedyDefender) stepArc(report *Report, attr topology.Attribute, dec, floor int) (bool, error) {
	from, to, before, err := d.Topology.FindCriticalArc(attr)
	if errors.Is(err, snerr.ErrNoAttackableAssets) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	after := dec1(before, dec, floor)
	if err := applyArc(d.Topology, attr, from, to, after); err != nil {
		return false, err
	}
	report.Rounds = append(report.Rounds, Round{
		Label:   fmt.Sprintf("(%s, %s)", from, to),
		Before:  before,
		After:   after,
		RiskSum: d.Topology.TotalRisk(),
	})
	return true, nil
}

func applyNode(t *topology.Topology, attr topology.Attribute, id string, v int) error {
	if attr == topology.AttrVulnerability {
		return t.SetNodeVulnerability(id, v)
	}
	return t.SetNodeConsequence(id, v)
}

func applyArc(t *topology.Topology, attr topology.Attribute, from, to string, v int) error {
	if attr == topology.AttrVulnerability {
		return t.SetArcVulnerability(from, to, v)
	}
	return t.SetArcConsequence(from, to, v)
}

func dec1(before, dec, floor int) int {
	after := before - dec
	if after < floor {
		after = floor
	}
	return after
}

func banner(title string) string {
	var b strings.Builder
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, strings.Repeat("=", 70))
	fmt.Fprintln(&b, "                                                                      ")
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintln(&b, "                                                                      ")
	fmt.Fprintln(&b, strings.Repeat("=", 70))
	fmt.Fprintln(&b)
	return b.String()
}

// PrepareReport renders MinimizeVulnerability's rounds under the
// "Defender: Preparedness Mode" banner, matching Defender.prepare().
func PrepareReport(r CombinedReport) string {
	return renderCombined(r, banner("                     Defender: Preparedness Mode                      "),
		"Vulnerability Reduction:", "V(before)", "V(after)")
}

// MitigateReport renders MinimizeConsequence's rounds under the
// "Defender: Mitigation Mode" banner, matching Defender.mitigate().
func MitigateReport(r CombinedReport) string {
	return renderCombined(r, banner("                       Defender: Mitigation Mode                       "),
		"Consequence Mitigation:", "C(before)", "C(after)")
}

func renderCombined(r CombinedReport, header, caption, beforeLabel, afterLabel string) string {
	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "Nodes - %s\n", caption)
	renderRounds(&b, r.Nodes.Rounds, beforeLabel, afterLabel)

	fmt.Fprintf(&b, "\nArcs - %s\n", caption)
	renderRounds(&b, r.Arcs.Rounds, beforeLabel, afterLabel)
	return b.String()
}

func renderRounds(b *strings.Builder, rounds []Round, beforeLabel, afterLabel string) {
	fmt.Fprintln(b, strings.Repeat("-", 70))
	fmt.Fprintf(b, "#\tAsset\t\t%s\t%s\tR_sum\n", beforeLabel, afterLabel)
	fmt.Fprintln(b, strings.Repeat("-", 70))
	for i, round := range rounds {
		fmt.Fprintf(b, "%d\t%-12s\t%d\t\t%d\t\t%d\n", i, round.Label, round.Before, round.After, round.RiskSum)
	}
	fmt.Fprintln(b, strings.Repeat("-", 70))
}
