package stackelberg_test

import (
	"testing"

	"github.com/stigmar/snram/stackelberg"
	"github.com/stigmar/snram/topology"
)

// TestRunConvergesOnSingleAttackableNode hand-traces a single attackable
// node through two outer iterations: vulnerability and consequence both
// start at 3, threat at 3. Each outer iteration decrements vulnerability
// then consequence by 1 (floor 1) and increments threat by 1 (cap 5).
//
// Iteration 0: V:3->2 (risk 3*2*3=18), C:3->2 (risk 3*2*2=12),
// T:3->4 (risk 4*2*2=16). |16-12|=4 > RiskInc(1), continues.
// Iteration 1: V:2->1 (risk 4*1*2=8), C:2->1 (risk 4*1*1=4),
// T:4->5 (risk 5*1*1=5). |5-4|=1 <= RiskInc(1), breaks.
func TestRunConvergesOnSingleAttackableNode(t *testing.T) {
	top := topology.New()
	top.AddNode("N1", 3, 3, 3, true, 0)

	game := &stackelberg.Game{Topology: top, Budget: 1, MaxIter: 10}
	result, err := game.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Nodes.Iterations) != 2 {
		t.Fatalf("len(Nodes.Iterations) = %d, want 2", len(result.Nodes.Iterations))
	}
	it0 := result.Nodes.Iterations[0]
	if it0.VulnerabilityRiskSum != 18 || it0.ConsequenceRiskSum != 12 || it0.ThreatRiskSum != 16 {
		t.Errorf("iteration 0 = %+v, want {18,12,16}", it0)
	}
	it1 := result.Nodes.Iterations[1]
	if it1.VulnerabilityRiskSum != 8 || it1.ConsequenceRiskSum != 4 || it1.ThreatRiskSum != 5 {
		t.Errorf("iteration 1 = %+v, want {8,4,5}", it1)
	}

	// No arcs at all: the arc-restricted alternation finds nothing to do
	// on its very first iteration and converges (0 == 0) immediately.
	if len(result.Arcs.Iterations) != 1 {
		t.Fatalf("len(Arcs.Iterations) = %d, want 1", len(result.Arcs.Iterations))
	}
	itArc := result.Arcs.Iterations[0]
	if itArc != (stackelberg.Iteration{}) {
		t.Errorf("arc iteration = %+v, want all zero", itArc)
	}
}

func TestRunRespectsMaxIter(t *testing.T) {
	// A node that never lets vulnerability/consequence converge with
	// threat within one iteration (MaxIter=1 caps the loop regardless).
	top := topology.New()
	top.AddNode("N1", 1, 5, 5, true, 0)

	game := &stackelberg.Game{Topology: top, Budget: 1, MaxIter: 1}
	result, err := game.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Nodes.Iterations) != 1 {
		t.Errorf("len(Nodes.Iterations) = %d, want 1 (MaxIter cap)", len(result.Nodes.Iterations))
	}
}
