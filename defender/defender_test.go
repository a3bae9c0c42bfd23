package defender_test

import (
	"testing"

	"github.com/stigmar/snram/defender"
	"github.com/stigmar/snram/topology"
)

func TestMinimizeVulnerabilityNodesThenArcs(t *testing.T) {
	top := topology.New()
	top.AddNode("N1", 1, 3, 1, true, 0)
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	top.AddArc("A", "B", 1, 3, 1, true, -1, 0)

	def := &defender.GreedyDefender{Topology: top, Budget: 2}
	report, err := def.MinimizeVulnerability()
	if err != nil {
		t.Fatalf("MinimizeVulnerability: %v", err)
	}

	if len(report.Nodes.Rounds) != 2 {
		t.Fatalf("len(Nodes.Rounds) = %d, want 2", len(report.Nodes.Rounds))
	}
	if report.Nodes.Rounds[0].Before != 3 || report.Nodes.Rounds[0].After != 2 {
		t.Errorf("Nodes round 0 = %+v, want Before=3 After=2", report.Nodes.Rounds[0])
	}
	if report.Nodes.Rounds[1].Before != 2 || report.Nodes.Rounds[1].After != 1 {
		t.Errorf("Nodes round 1 = %+v, want Before=2 After=1", report.Nodes.Rounds[1])
	}

	if len(report.Arcs.Rounds) != 2 {
		t.Fatalf("len(Arcs.Rounds) = %d, want 2", len(report.Arcs.Rounds))
	}
	if report.Arcs.Rounds[0].Before != 3 || report.Arcs.Rounds[0].After != 2 {
		t.Errorf("Arcs round 0 = %+v, want Before=3 After=2", report.Arcs.Rounds[0])
	}

	n1, _ := top.Node("N1")
	if n1.Vulnerability != 1 {
		t.Errorf("N1.Vulnerability = %d, want floored at 1", n1.Vulnerability)
	}
}

func TestMinimizeVulnerabilityNoAttackableNodesLeavesNodesEmpty(t *testing.T) {
	top := topology.New()
	top.AddNode("N1", 1, 3, 1, false, 0)
	top.AddNode("A", 1, 1, 1, false, 0)
	top.AddNode("B", 1, 1, 1, false, 0)
	top.AddArc("A", "B", 1, 3, 1, true, -1, 0)

	def := &defender.GreedyDefender{Topology: top, Budget: 3}
	report, err := def.MinimizeVulnerability()
	if err != nil {
		t.Fatalf("MinimizeVulnerability: %v", err)
	}
	if len(report.Nodes.Rounds) != 0 {
		t.Errorf("Nodes.Rounds = %+v, want none (N1 not attackable)", report.Nodes.Rounds)
	}
	if len(report.Arcs.Rounds) != 3 {
		t.Errorf("len(Arcs.Rounds) = %d, want 3", len(report.Arcs.Rounds))
	}
}

func TestMinimizeConsequenceClassSingleClass(t *testing.T) {
	top := topology.New()
	top.AddNode("N1", 1, 1, 4, true, 0)
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	top.AddArc("A", "B", 1, 1, 4, true, -1, 0)

	def := &defender.GreedyDefender{Topology: top, Budget: 1}
	report, err := def.MinimizeConsequenceClass(topology.ClassNodes)
	if err != nil {
		t.Fatalf("MinimizeConsequenceClass: %v", err)
	}
	if len(report.Rounds) != 1 || report.Rounds[0].After != 3 {
		t.Errorf("Rounds = %+v, want single round After=3", report.Rounds)
	}

	arcReport, err := def.MinimizeConsequenceClass(topology.ClassArcs)
	if err != nil {
		t.Fatalf("MinimizeConsequenceClass(arcs): %v", err)
	}
	if len(arcReport.Rounds) != 1 || arcReport.Rounds[0].After != 3 {
		t.Errorf("arc Rounds = %+v, want single round After=3", arcReport.Rounds)
	}
}
