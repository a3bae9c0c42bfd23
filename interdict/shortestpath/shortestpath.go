// Package shortestpath implements ShortestPathInterdict: the leader
// chooses up to Attacks attackable arcs to interdict so as to maximize
// the shortest-path length the follower is forced to take from source
// to sink afterward.
//
// The dual MIP follows the formulation given directly (no capacity
// term, unlike MinCostFlowInterdict's dual): node potentials rho_n
// (free, no pi - unit flow has no capacity dual), and binary
// interdiction indicators x_ij on every attackable arc, tied together
// by a big-M penalty (risk.NCmax/risk.BigM). Every arc contributes a
// constraint rho_j - rho_i <= cost_ij + bigM*x_ij, the objective
// maximizes rho_sink - rho_source, and the leader's budget is
// sum(x) <= Attacks.
//
// Once the dual MIP is solved and its Xbar stamped onto the topology,
// the follower re-solve is Dijkstra, ported from lvlath's
// dijkstra/dijkstra.go functional-options/runner/heap structure.
package shortestpath

import (
	"container/heap"
	"math"

	"github.com/stigmar/snram/interdict"
	"github.com/stigmar/snram/interdict/simplex"
	"github.com/stigmar/snram/risk"
	"github.com/stigmar/snram/topology"
)

// ShortestPathInterdict computes shortest-path interdictions against
// Topology.
type ShortestPathInterdict struct {
	Topology *topology.Topology
	Attacks  int
}

// Solve builds the dual MIP of the shortest-path follower LP, solves
// it for the leader's best interdiction, stamps the result onto
// Topology via SetArcXbar, and re-solves the primal Dijkstra follower
// against the now-interdicted topology to report the resulting
// shortest-path length.
func (s *ShortestPathInterdict) Solve(source, sink string) (interdict.Result, error) {
	if err := interdict.CheckBudget(s.Attacks); err != nil {
		return interdict.Result{Status: interdict.StatusInfeasible}, err
	}

	nodes := s.Topology.Nodes()
	arcs := s.Topology.Arcs()

	nodeIdx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		nodeIdx[n.ID] = i
	}
	numVars := len(nodes)

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
	binaryVars := make([]int, 0, len(xIdx))
	for _, vi := range xIdx {
		lower[vi] = 0
		upper[vi] = 1
		binaryVars = append(binaryVars, vi)
	}

	objective := make([]float64, numVars)
	objective[nodeIdx[sink]] = 1
	objective[nodeIdx[source]] = -1

	nCmax := risk.NCmax(s.Topology.NodeCount(), s.Topology.MaxArcRisk())
	bigM := risk.BigM(nCmax)

	var constraints []simplex.Constraint
	for _, a := range arcs {
		key := [2]string{a.From, a.To}
		coeffs := map[int]float64{nodeIdx[a.To]: 1, nodeIdx[a.From]: -1}
		if vi, ok := xIdx[key]; ok {
			coeffs[vi] = -bigM
		}
		constraints = append(constraints, simplex.Constraint{Coeffs: coeffs, Sense: simplex.LE, RHS: a.Cost})
	}
	budget := make(map[int]float64, len(xIdx))
	for _, vi := range xIdx {
		budget[vi] = 1
	}
	constraints = append(constraints, simplex.Constraint{Coeffs: budget, Sense: simplex.LE, RHS: float64(s.Attacks)})

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

	stampXbar(s.Topology, attackableArcs(s.Topology), xbar)

	r := newRunner(s.Topology, bigM)
	value := r.shortestPath(source, sink)

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

type costArc struct {
	to   string
	cost float64
}

// runner holds the per-query Dijkstra state, mirroring lvlath's
// dijkstra.runner: an adjacency snapshot plus a reusable binary heap.
type runner struct {
	adj map[string][]costArc
}

func newRunner(t *topology.Topology, bigM float64) *runner {
	r := &runner{adj: make(map[string][]costArc)}
	for _, n := range t.Nodes() {
		if _, ok := r.adj[n.ID]; !ok {
			r.adj[n.ID] = nil
		}
	}
	for _, a := range t.Arcs() {
		cost := a.Cost
		if a.Xbar {
			cost += bigM
		}
		r.adj[a.From] = append(r.adj[a.From], costArc{to: a.To, cost: cost})
	}
	return r
}

func (r *runner) shortestPath(source, sink string) float64 {
	if _, ok := r.adj[source]; !ok {
		return 0
	}

	dist := map[string]float64{source: 0}
	pq := &priorityQueue{{node: source, dist: 0}}
	heap.Init(pq)
	visited := map[string]bool{}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if visited[item.node] {
			continue
		}
		visited[item.node] = true
		if item.node == sink {
			return item.dist
		}
		for _, e := range r.adj[item.node] {
			nd := item.dist + e.cost
			if d, ok := dist[e.to]; !ok || nd < d {
				dist[e.to] = nd
				heap.Push(pq, pqItem{node: e.to, dist: nd})
			}
		}
	}
	if d, ok := dist[sink]; ok {
		return d
	}
	return 0
}

type pqItem struct {
	node string
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
