// Package stackelberg implements the alternating defender/attacker game
// that drives a network topology toward equilibrium risk: each outer
// iteration runs the defender's vulnerability reduction, then its
// consequence reduction, then the attacker's threat maximization, all
// against the same shared topology, stopping once the attacker's and
// defender's resulting total risk converge.
//
// Per spec.md 4.5, the whole alternation runs once restricted to nodes,
// then independently restricted to links - Run returns both traces.
//
// Ported from original_source/snram/stackelberg.py.
package stackelberg

import (
	"fmt"
	"strings"

	"github.com/stigmar/snram/attacker"
	"github.com/stigmar/snram/defender"
	"github.com/stigmar/snram/risk"
	"github.com/stigmar/snram/topology"
)

// Game runs the alternating defender/attacker loop against Topology.
type Game struct {
	Topology *topology.Topology
	Budget   int
	MaxIter  int
}

// Iteration records the total risk after each phase of one outer loop.
type Iteration struct {
	VulnerabilityRiskSum int
	ConsequenceRiskSum   int
	ThreatRiskSum        int
}

// Trace is the outcome of the alternation restricted to a single asset
// class.
type Trace struct {
	Class      topology.AssetClass
	Iterations []Iteration
}

// Result is the outcome of a full Run: the node-restricted trace
// followed by the independently-run arc-restricted trace.
type Result struct {
	Nodes Trace
	Arcs  Trace
}

// Run executes the node-restricted alternation, then independently the
// arc-restricted alternation. Each runs up to MaxIter outer iterations,
// stopping early once |ThreatRiskSum - ConsequenceRiskSum| <=
// risk.RiskInc for the most recent iteration, matching stackelberg()'s
// break condition exactly.
func (g *Game) Run() (Result, error) {
	nodes, err := g.runClass(topology.ClassNodes)
	if err != nil {
		return Result{}, err
	}
	arcs, err := g.runClass(topology.ClassArcs)
	if err != nil {
		return Result{Nodes: nodes}, err
	}
	return Result{Nodes: nodes, Arcs: arcs}, nil
}

func (g *Game) runClass(class topology.AssetClass) (Trace, error) {
	trace := Trace{Class: class}
	def := &defender.GreedyDefender{Topology: g.Topology, Budget: g.Budget}
	att := &attacker.GreedyAttacker{Topology: g.Topology, Budget: g.Budget, Class: class}

	for i := 0; i < g.MaxIter; i++ {
		vReport, err := def.MinimizeVulnerabilityClass(class)
		if err != nil {
			return trace, err
		}
		cReport, err := def.MinimizeConsequenceClass(class)
		if err != nil {
			return trace, err
		}
		tReport, err := att.MaximizeThreat()
		if err != nil {
			return trace, err
		}

		iter := Iteration{
			VulnerabilityRiskSum: lastRiskSumDefender(vReport),
			ConsequenceRiskSum:   lastRiskSumDefender(cReport),
			ThreatRiskSum:        lastRiskSumAttacker(tReport),
		}
		trace.Iterations = append(trace.Iterations, iter)

		if abs(iter.ThreatRiskSum-iter.ConsequenceRiskSum) <= risk.RiskInc {
			break
		}
	}

	return trace, nil
}

func lastRiskSumDefender(r defender.Report) int {
	if len(r.Rounds) == 0 {
		return 0
	}
	return r.Rounds[len(r.Rounds)-1].RiskSum
}

func lastRiskSumAttacker(r attacker.Report) int {
	if len(r.Rounds) == 0 {
		return 0
	}
	return r.Rounds[len(r.Rounds)-1].RiskSum
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// String renders the "Stackelberg Game: Risk Reduction" banner and the
// per-iteration R_sum table for both traces, matching stackelberg()'s
// printed output for the "nodes" and "links" dialects.
func (r Result) String() string {
	var b strings.Builder
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, strings.Repeat("=", 70))
	fmt.Fprintln(&b, "                                                                      ")
	fmt.Fprintln(&b, "                   Stackelberg Game: Risk Reduction                   ")
	fmt.Fprintln(&b, "                                                                      ")
	fmt.Fprintln(&b, strings.Repeat("=", 70))

	writeTrace(&b, r.Nodes)
	writeTrace(&b, r.Arcs)
	return b.String()
}

func writeTrace(b *strings.Builder, t Trace) {
	fmt.Fprintln(b)
	fmt.Fprintf(b, "Minimise Risk - Maximise Threat (%s):\n", t.Class)
	fmt.Fprintln(b, strings.Repeat("-", 70))
	fmt.Fprintln(b, "#\tR_sum(V)\tR_sum(C)\tR_sum(T)")
	fmt.Fprintln(b, strings.Repeat("-", 70))
	for i, it := range t.Iterations {
		fmt.Fprintf(b, "%d\t%d\t\t%d\t\t%d\n", i, it.VulnerabilityRiskSum, it.ConsequenceRiskSum, it.ThreatRiskSum)
	}
	fmt.Fprintf(b, "%s\n", strings.Repeat("-", 70))
}
