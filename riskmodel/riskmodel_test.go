package riskmodel_test

import (
	"testing"

	"github.com/stigmar/snram/riskmodel"
	"github.com/stigmar/snram/topology"
)

func TestFillMissingThreatFromDegreeCentrality(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	top.AddNode("C", 1, 1, 1, true, 0)
	top.AddArc("A", "B", 1, 1, 1, false, -1, 0)
	top.AddArc("B", "C", 1, 1, 1, false, -1, 0)

	m := riskmodel.New(top)
	missing := map[string]bool{"A": true, "B": true, "C": true}
	if err := m.FillMissingThreat(missing, nil); err != nil {
		t.Fatalf("FillMissingThreat: %v", err)
	}

	want := map[string]int{"A": 3, "B": 5, "C": 3}
	for _, n := range top.Nodes() {
		if n.Threat != want[n.ID] {
			t.Errorf("node %s Threat = %d, want %d", n.ID, n.Threat, want[n.ID])
		}
	}
}

func TestFillMissingThreatSkipsUnlisted(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	top.AddArc("A", "B", 1, 1, 1, false, -1, 0)

	m := riskmodel.New(top)
	// Only A is reported missing; B's explicit threat must survive untouched.
	if err := m.FillMissingThreat(map[string]bool{"A": true}, nil); err != nil {
		t.Fatalf("FillMissingThreat: %v", err)
	}
	b, _ := top.Node("B")
	if b.Threat != 1 {
		t.Errorf("B.Threat = %d, want unchanged 1", b.Threat)
	}
}

func TestSetThreatLengthMismatch(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)

	m := riskmodel.New(top)
	err := m.SetThreat(topology.ClassNodes, []int{3})
	if err == nil {
		t.Fatal("SetThreat: want error on length mismatch, got nil")
	}
}

func TestSetVulnerabilityAndGetRisk(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 2, 1, 3, true, 0)
	top.AddNode("B", 2, 1, 3, true, 0)

	m := riskmodel.New(top)
	if err := m.SetVulnerability(topology.ClassNodes, []int{5, 4}); err != nil {
		t.Fatalf("SetVulnerability: %v", err)
	}
	got := m.GetRisk(topology.ClassNodes)
	want := []int{2 * 5 * 3, 2 * 4 * 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetRisk[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
