package topology_test

import (
	"errors"
	"testing"

	"github.com/stigmar/snram/internal/snerr"
	"github.com/stigmar/snram/topology"
)

func TestAddNodeComputesRisk(t *testing.T) {
	top := topology.New()
	if err := top.AddNode("N1", 5, 4, 3, true, 0); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	n, err := top.Node("N1")
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	if n.Risk != 60 {
		t.Errorf("Risk = %d, want 60", n.Risk)
	}
}

func TestAddNodeDuplicate(t *testing.T) {
	top := topology.New()
	if err := top.AddNode("N1", 1, 1, 1, true, 0); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	err := top.AddNode("N1", 1, 1, 1, true, 0)
	if !errors.Is(err, snerr.ErrDuplicateNode) {
		t.Errorf("err = %v, want ErrDuplicateNode", err)
	}
}

func TestSetNodeThreatClampsAndRecomputesRisk(t *testing.T) {
	top := topology.New()
	top.AddNode("N1", 1, 2, 3, true, 0)
	if err := top.SetNodeThreat("N1", 9); err != nil {
		t.Fatalf("SetNodeThreat: %v", err)
	}
	n, _ := top.Node("N1")
	if n.Threat != 5 {
		t.Errorf("Threat = %d, want clamped to 5", n.Threat)
	}
	if n.Risk != 5*2*3 {
		t.Errorf("Risk = %d, want %d", n.Risk, 5*2*3)
	}
}

func TestAddArcUncapacitatedByDefault(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	if err := top.AddArc("A", "B", 2, 2, 2, true, -1, 0); err != nil {
		t.Fatalf("AddArc: %v", err)
	}
	a, _ := top.Arc("A", "B")
	if a.Capacity != -1 {
		t.Errorf("Capacity = %v, want -1 (uncapacitated, no WithCapacityFromRisk)", a.Capacity)
	}
	if a.Risk != 8 {
		t.Errorf("Risk = %d, want 8", a.Risk)
	}
}

func TestAddArcCapacityFromRisk(t *testing.T) {
	top := topology.New(topology.WithCapacityFromRisk())
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	top.AddArc("A", "B", 2, 2, 2, true, -1, 0) // Risk = 8
	a, _ := top.Arc("A", "B")
	want := float64(125 - 8) // RiskMax=125
	if a.Capacity != want {
		t.Errorf("Capacity = %v, want %v", a.Capacity, want)
	}
}

func TestFindCriticalNodeThreatTieBreak(t *testing.T) {
	top := topology.New()
	top.AddNode("N1", 2, 3, 1, true, 0)  // risk 6
	top.AddNode("N2", 2, 5, 1, true, 0)  // risk 10, same threat, higher vuln
	top.AddNode("N3", 4, 5, 5, true, 0)  // risk 100, higher threat
	top.AddNode("N4", 1, 1, 1, false, 0) // not attackable

	id, value, err := top.FindCriticalNode(topology.AttrThreat)
	if err != nil {
		t.Fatalf("FindCriticalNode: %v", err)
	}
	if id != "N2" || value != 2 {
		t.Errorf("FindCriticalNode(AttrThreat) = (%s, %d), want (N2, 2)", id, value)
	}

	id, value, err = top.FindCriticalNode(topology.AttrRisk)
	if err != nil {
		t.Fatalf("FindCriticalNode: %v", err)
	}
	if id != "N3" || value != 100 {
		t.Errorf("FindCriticalNode(AttrRisk) = (%s, %d), want (N3, 100)", id, value)
	}
}

func TestFindCriticalNodeNoAttackableAssets(t *testing.T) {
	top := topology.New()
	top.AddNode("N1", 1, 1, 1, false, 0)
	_, _, err := top.FindCriticalNode(topology.AttrRisk)
	if !errors.Is(err, snerr.ErrNoAttackableAssets) {
		t.Errorf("err = %v, want ErrNoAttackableAssets", err)
	}
}

func TestArticulationPointsPathGraph(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	top.AddNode("C", 1, 1, 1, true, 0)
	top.AddArc("A", "B", 1, 1, 1, false, -1, 0)
	top.AddArc("B", "C", 1, 1, 1, false, -1, 0)

	points := top.ArticulationPoints()
	if len(points) != 1 || points[0] != "B" {
		t.Errorf("ArticulationPoints() = %v, want [B]", points)
	}
}

func TestArticulationPointsDisconnected(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	// no arcs: two isolated components, no cut vertices.
	points := top.ArticulationPoints()
	if len(points) != 0 {
		t.Errorf("ArticulationPoints() = %v, want none", points)
	}
}

func TestDegreeCentralityPathGraph(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	top.AddNode("C", 1, 1, 1, true, 0)
	top.AddArc("A", "B", 1, 1, 1, false, -1, 0)
	top.AddArc("B", "C", 1, 1, 1, false, -1, 0)

	got := top.DegreeCentrality()
	want := []float64{0.5, 1.0, 0.5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DegreeCentrality[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestArcBetweennessCentralitySymmetricPath(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 1, 1, 1, true, 0)
	top.AddNode("B", 1, 1, 1, true, 0)
	top.AddNode("C", 1, 1, 1, true, 0)
	top.AddArc("A", "B", 1, 1, 1, false, -1, 0)
	top.AddArc("B", "C", 1, 1, 1, false, -1, 0)

	got := top.ArcBetweennessCentrality()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for i, v := range got {
		if v != 1.0 {
			t.Errorf("ArcBetweennessCentrality[%d] = %v, want 1.0 (both edges symmetric)", i, v)
		}
	}
}

func TestTotalRiskHelpers(t *testing.T) {
	top := topology.New()
	top.AddNode("A", 2, 2, 2, true, 0) // risk 8
	top.AddNode("B", 1, 1, 1, true, 0) // risk 1
	top.AddArc("A", "B", 3, 1, 1, true, -1, 0) // risk 3

	if got := top.TotalNodeRisk(); got != 9 {
		t.Errorf("TotalNodeRisk() = %d, want 9", got)
	}
	if got := top.TotalRisk(); got != 3 {
		t.Errorf("TotalRisk() = %d, want 3", got)
	}
	if got := top.TotalRiskFor(topology.ClassNodes); got != 9 {
		t.Errorf("TotalRiskFor(ClassNodes) = %d, want 9", got)
	}
	if got := top.TotalRiskFor(topology.ClassArcs); got != 3 {
		t.Errorf("TotalRiskFor(ClassArcs) = %d, want 3", got)
	}
}
