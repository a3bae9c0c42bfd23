package attacker_test

import (
	"testing"

	"github.com/stigmar/snram/attacker"
	"github.com/stigmar/snram/topology"
)

func TestMaximizeThreatPicksLargestRelativeGain(t *testing.T) {
	top := topology.New()
	top.AddNode("N1", 1, 5, 5, true, 0) // risk 25, gain to T=2 is (50-25)/25=1.0
	top.AddNode("N2", 4, 1, 1, true, 0) // risk 4, gain to T=5 is (5-4)/4=0.25

	att := &attacker.GreedyAttacker{Topology: top, Budget: 2, Class: topology.ClassNodes}
	report, err := att.MaximizeThreat()
	if err != nil {
		t.Fatalf("MaximizeThreat: %v", err)
	}
	if len(report.Rounds) != 2 {
		t.Fatalf("len(Rounds) = %d, want 2", len(report.Rounds))
	}
	for i, round := range report.Rounds {
		if round.Label != "N1" {
			t.Errorf("round %d Label = %s, want N1 (higher relative gain every round)", i, round.Label)
		}
	}
	if report.Rounds[0].ThreatAfter != 2 || report.Rounds[0].RiskSum != 54 {
		t.Errorf("round 0 = %+v, want ThreatAfter=2 RiskSum=54", report.Rounds[0])
	}
	if report.Rounds[1].ThreatAfter != 3 || report.Rounds[1].RiskSum != 79 {
		t.Errorf("round 1 = %+v, want ThreatAfter=3 RiskSum=79", report.Rounds[1])
	}
}

func TestMaximizeThreatTieBreaksOnCurrentRisk(t *testing.T) {
	top := topology.New()
	top.AddNode("Low", 2, 1, 1, true, 0)  // risk 2, same relative gain as High
	top.AddNode("High", 2, 5, 5, true, 0) // risk 50, same relative gain, higher risk wins tie

	att := &attacker.GreedyAttacker{Topology: top, Budget: 1, Class: topology.ClassNodes}
	report, err := att.MaximizeThreat()
	if err != nil {
		t.Fatalf("MaximizeThreat: %v", err)
	}
	if len(report.Rounds) != 1 || report.Rounds[0].Label != "High" {
		t.Errorf("Rounds = %+v, want single round on High (risk tie-break)", report.Rounds)
	}
}

func TestMaximizeThreatNoAttackableAssetsStopsEarly(t *testing.T) {
	top := topology.New()
	top.AddNode("N1", 1, 1, 1, false, 0)

	att := &attacker.GreedyAttacker{Topology: top, Budget: 5, Class: topology.ClassNodes}
	report, err := att.MaximizeThreat()
	if err != nil {
		t.Fatalf("MaximizeThreat: %v", err)
	}
	if len(report.Rounds) != 0 {
		t.Errorf("Rounds = %+v, want none (no attackable node)", report.Rounds)
	}
}

func TestMaximizeThreatCapsAtThreatMax(t *testing.T) {
	top := topology.New()
	top.AddNode("N1", 5, 5, 5, true, 0) // already saturated, no headroom
	top.AddNode("N2", 1, 1, 1, true, 0) // plenty of relative gain available

	att := &attacker.GreedyAttacker{Topology: top, Budget: 3, Class: topology.ClassNodes}
	report, err := att.MaximizeThreat()
	if err != nil {
		t.Fatalf("MaximizeThreat: %v", err)
	}
	if len(report.Rounds) != 3 {
		t.Fatalf("len(Rounds) = %d, want 3 (one recorded action per budget step)", len(report.Rounds))
	}
	n1, err := top.Node("N1")
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	if n1.Threat != 5 {
		t.Errorf("N1.Threat = %d, want 5 (capped, never overflows)", n1.Threat)
	}
}

func TestMaximizeThreatArcs(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	top.AddArc("A", "B", 1, 3, 3, true, -1, 0) // risk 9

	att := &attacker.GreedyAttacker{Topology: top, Budget: 1, Class: topology.ClassArcs}
	report, err := att.MaximizeThreat()
	if err != nil {
		t.Fatalf("MaximizeThreat: %v", err)
	}
	if len(report.Rounds) != 1 {
		t.Fatalf("Rounds = %+v, want 1", report.Rounds)
	}
	if report.Rounds[0].Label != "(A, B)" || report.Rounds[0].ThreatAfter != 2 {
		t.Errorf("round 0 = %+v, want Label=(A, B) ThreatAfter=2", report.Rounds[0])
	}
}
