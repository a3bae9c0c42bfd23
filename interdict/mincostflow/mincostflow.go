// Package mincostflow implements MinCostFlowInterdict: the leader
// chooses up to Attacks attackable arcs to interdict (inflating their
// cost by bigM rather than removing them, since capacity is not the
// limiting resource in this model) so as to maximize the minimum total
// cost the follower incurs routing supply to demand afterward.
//
// The dual MIP is ported line-by-line from
// original_source/snram/min_cost_flow_interdict.py: node potentials
// rho_n (free), capacity duals pi_ij <= 0 on every capacitated arc, and
// binary interdiction indicators x_ij on every attackable arc. The
// objective maximizes sum(capacity_ij*pi_ij) + sum(supply_demand_n*
// rho_n); every arc contributes a constraint
// rho_j - rho_i + pi_ij <= risk_ij + bigM*x_ij, and every supply node
// contributes -rho_n <= nCmax while every demand node contributes
// rho_n <= nCmax (the Python model's UnsatSupply/UnsatDemand dual
// rows), all tied together by the leader's budget sum(x) <= Attacks.
//
// Once the dual MIP is solved and its Xbar stamped onto the topology,
// the follower re-solve reduces the stamped network to one ordinary
// min-cost flow from a super source SS to a super sink TT: SS->n
// (supply node n, capacity supply_n, cost -nCmax) and n->TT (demand
// node n, capacity demand_n, cost -nCmax), alongside the real arcs at
// cost (risk + bigM*xbar). The constant term
// nCmax*(totalSupply+totalDemand) is added back once after solving to
// recover the LP's actual objective value.
package mincostflow

import (
	"math"

	"github.com/stigmar/snram/interdict"
	"github.com/stigmar/snram/interdict/simplex"
	"github.com/stigmar/snram/risk"
	"github.com/stigmar/snram/topology"
)

const superSource = "\x00SS"
const superSink = "\x00TT"

// MinCostFlowInterdict computes min-cost-flow interdictions against
// Topology.
type MinCostFlowInterdict struct {
	Topology *topology.Topology
	Attacks  int
}

// Solve builds the dual MIP of the min-cost-flow follower LP, solves it
// for the leader's best interdiction, stamps the result onto Topology
// via SetArcXbar, and re-solves the primal successive-shortest-path
// follower against the now-interdicted topology to report the
// resulting total cost.
func (m *MinCostFlowInterdict) Solve() (interdict.Result, error) {
	if err := interdict.CheckBudget(m.Attacks); err != nil {
		return interdict.Result{Status: interdict.StatusInfeasible}, err
	}

	nodes := m.Topology.Nodes()
	arcs := m.Topology.Arcs()

	nodeIdx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		nodeIdx[n.ID] = i
	}
	numVars := len(nodes)

	piIdx := make(map[[2]string]int, len(arcs))
	for _, a := range arcs {
		if a.Capacity >= 0 {
			piIdx[[2]string{a.From, a.To}] = numVars
			numVars++
		}
	}

	xIdx := make(map[[2]string]int, len(arcs))
	for _, a := range arcs {
		if a.Attackable {
			xIdx[[2]string{a.From, a.To}] = numVars
			numVars++
		}
	}

	lower := make([]float64, numVars)
	upper := make([]float64, numVars)
	for i := range nodes {
		lower[i] = math.Inf(-1)
		upper[i] = math.Inf(1)
	}
	for _, vi := range piIdx {
		lower[vi] = math.Inf(-1)
		upper[vi] = 0
	}
	binaryVars := make([]int, 0, len(xIdx))
	for _, vi := range xIdx {
		lower[vi] = 0
		upper[vi] = 1
		binaryVars = append(binaryVars, vi)
	}

	objective := make([]float64, numVars)
	for _, a := range arcs {
		if vi, ok := piIdx[[2]string{a.From, a.To}]; ok {
			objective[vi] = a.Capacity
		}
	}
	for _, n := range nodes {
		objective[nodeIdx[n.ID]] += n.SupplyDemand
	}

	nCmax := risk.NCmax(m.Topology.NodeCount(), m.Topology.MaxArcRisk())
	bigM := risk.BigM(nCmax)

	var constraints []simplex.Constraint
	for _, a := range arcs {
		key := [2]string{a.From, a.To}
		coeffs := map[int]float64{nodeIdx[a.To]: 1, nodeIdx[a.From]: -1}
		if vi, ok := piIdx[key]; ok {
			coeffs[vi] = 1
		}
		if vi, ok := xIdx[key]; ok {
			coeffs[vi] = -bigM
		}
		constraints = append(constraints, simplex.Constraint{Coeffs: coeffs, Sense: simplex.LE, RHS: float64(a.Risk)})
	}
	for _, n := range nodes {
		switch {
		case n.SupplyDemand < 0:
			constraints = append(constraints, simplex.Constraint{
				Coeffs: map[int]float64{nodeIdx[n.ID]: -1}, Sense: simplex.LE, RHS: nCmax,
			})
		case n.SupplyDemand > 0:
			constraints = append(constraints, simplex.Constraint{
				Coeffs: map[int]float64{nodeIdx[n.ID]: 1}, Sense: simplex.LE, RHS: nCmax,
			})
		}
	}
	budget := make(map[int]float64, len(xIdx))
	for _, vi := range xIdx {
		budget[vi] = 1
	}
	constraints = append(constraints, simplex.Constraint{Coeffs: budget, Sense: simplex.LE, RHS: float64(m.Attacks)})

	dual := interdict.DualMIP{
		Problem: simplex.MIPProblem{
			Problem: simplex.Problem{
				NumVars:     numVars,
				Minimize:    false,
				Objective:   objective,
				Constraints: constraints,
				Lower:       lower,
				Upper:       upper,
			},
			BinaryVars: binaryVars,
		},
		ArcVar: xIdx,
	}

	xbar, _, status := dual.SolveDual()
	if status != interdict.StatusOptimal {
		return interdict.Result{Status: interdict.StatusInfeasible}, nil
	}

	stampXbar(m.Topology, attackableArcs(m.Topology), xbar)

	value := solveFollower(m.Topology, nCmax, bigM)

	return interdict.Result{Xbar: xbar, Objective: value, Status: interdict.StatusOptimal}, nil
}

func attackableArcs(t *topology.Topology) [][2]string {
	var out [][2]string
	for _, a := range t.Arcs() {
		if a.Attackable {
			out = append(out, [2]string{a.From, a.To})
		}
	}
	return out
}

// stampXbar marks every attackable arc's Xbar flag to match xbar.
func stampXbar(t *topology.Topology, attackable, xbar [][2]string) {
	chosen := make(map[[2]string]bool, len(xbar))
	for _, a := range xbar {
		chosen[a] = true
	}
	for _, a := range attackable {
		_ = t.SetArcXbar(a[0], a[1], chosen[a])
	}
}

// solveFollower builds the SS/TT-augmented graph from the
// already-stamped topology and runs successive shortest augmenting
// paths (Bellman-Ford, to tolerate the initial negative-cost SS/TT
// arcs) until no further negative-cost path exists.
func solveFollower(t *topology.Topology, nCmax, bigM float64) float64 {
	g := newCostGraph()

	var totalSupply, totalDemand float64
	for _, n := range t.Nodes() {
		g.addNode(n.ID)
		if n.SupplyDemand < 0 {
			s := -n.SupplyDemand
			totalSupply += s
			g.addArc(superSource, n.ID, s, -nCmax)
		} else if n.SupplyDemand > 0 {
			d := n.SupplyDemand
			totalDemand += d
			g.addArc(n.ID, superSink, d, -nCmax)
		}
	}
	g.addNode(superSource)
	g.addNode(superSink)

	for _, a := range t.Arcs() {
		cap := a.Capacity
		if cap < 0 {
			cap = largeCapacity
		}
		cost := float64(a.Risk)
		if a.Xbar {
			cost += bigM
		}
		g.addArc(a.From, a.To, cap, cost)
	}

	flowCost := g.minCostFlow(superSource, superSink)

	// Recover the LP's actual objective: flowCost already equals
	// sum(real arc cost*flow) - nCmax*(used_supply+used_demand); add
	// back the constant nCmax*(totalSupply+totalDemand) to match
	// obj_rule's UnsatSupply/UnsatDemand formulation exactly.
	return flowCost + nCmax*(totalSupply+totalDemand)
}

const largeCapacity = 1e15

// costEdge is a directed residual-graph edge with capacity and cost;
// paired forward/backward edges are linked by index.
type costEdge struct {
	to   string
	cap  float64
	cost float64
	back int
}

type costGraph struct {
	adj map[string][]costEdge
}

func newCostGraph() *costGraph { return &costGraph{adj: make(map[string][]costEdge)} }

func (g *costGraph) addNode(id string) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = nil
	}
}

func (g *costGraph) addArc(from, to string, cap, cost float64) {
	g.addNode(from)
	g.addNode(to)
	fwd := costEdge{to: to, cap: cap, cost: cost, back: len(g.adj[to])}
	bwd := costEdge{to: from, cap: 0, cost: -cost, back: len(g.adj[from])}
	g.adj[from] = append(g.adj[from], fwd)
	g.adj[to] = append(g.adj[to], bwd)
}

// minCostFlow pushes flow from source to sink one shortest augmenting
// path at a time (Bellman-Ford, tolerant of the negative SS/TT arc
// costs) as long as the shortest path's cost is negative (i.e. further
// flow still reduces total cost), returning the accumulated cost.
func (g *costGraph) minCostFlow(source, sink string) float64 {
	totalCost := 0.0
	for {
		dist, prevNode, prevEdge, ok := g.bellmanFord(source)
		if !ok {
			break // shouldn't happen without negative cycles
		}
		d, reached := dist[sink]
		if !reached || d >= 0 {
			break
		}

		// Find bottleneck capacity along the path.
		bottleneck := math.Inf(1)
		for v := sink; v != source; v = prevNode[v] {
			e := g.adj[prevNode[v]][prevEdge[v]]
			if e.cap < bottleneck {
				bottleneck = e.cap
			}
		}
		if bottleneck <= 0 || math.IsInf(bottleneck, 1) {
			break
		}

		for v := sink; v != source; v = prevNode[v] {
			u := prevNode[v]
			idx := prevEdge[v]
			g.adj[u][idx].cap -= bottleneck
			back := g.adj[u][idx].back
			g.adj[v][back].cap += bottleneck
		}
		totalCost += bottleneck * d
	}
	return totalCost
}

// bellmanFord computes shortest distances from source over the current
// residual graph, tolerating negative edge costs (but not negative
// cycles, which this construction never introduces: every negative-cost
// arc is a single-use SS->supply or demand->TT arc, and further
// augmentation only ever removes or reverses capacity, never creates a
// cheaper cycle back to SS).
func (g *costGraph) bellmanFord(source string) (dist map[string]float64, prevNode map[string]string, prevEdge map[string]int, ok bool) {
	dist = make(map[string]float64, len(g.adj))
	prevNode = make(map[string]string, len(g.adj))
	prevEdge = make(map[string]int, len(g.adj))
	for v := range g.adj {
		dist[v] = math.Inf(1)
	}
	dist[source] = 0

	n := len(g.adj)
	for i := 0; i < n; i++ {
		changed := false
		for u, edges := range g.adj {
			if math.IsInf(dist[u], 1) {
				continue
			}
			for ei, e := range edges {
				if e.cap <= 0 {
					continue
				}
				nd := dist[u] + e.cost
				if nd < dist[e.to] {
					dist[e.to] = nd
					prevNode[e.to] = u
					prevEdge[e.to] = ei
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return dist, prevNode, prevEdge, true
}
