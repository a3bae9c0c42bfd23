// Package interdict provides the shared leader/follower framing used by
// the three interdiction solvers (maxflow, mincostflow, shortestpath):
// each solver builds the single-level mixed-integer program that is the
// LP dual of its follower problem (node potentials rho, capacity duals
// pi <= 0 where applicable, binary interdiction indicators x_ij, a
// big-M penalty on every attackable arc's dual constraint, and the
// leader's cardinality constraint sum(x) <= Attacks), this package
// solves that MIP via interdict/simplex's branch-and-bound, and the
// caller then stamps the resulting Xbar onto the topology and re-solves
// its own primal follower algorithm (Dinic, successive shortest path,
// or Dijkstra) to report the final Objective.
//
// No MIP/LP solver library exists anywhere in the example pack this
// module was built from - the original ported GLPK/CPLEX through
// Pyomo - so interdict/simplex is a from-scratch stand-in, exactly the
// "self-written simplex/branch-and-bound" spec.md's solver-capability
// assumption allows (see DESIGN.md).
package interdict

import (
	"sort"

	"github.com/stigmar/snram/internal/snerr"
	"github.com/stigmar/snram/interdict/simplex"
)

// Status reports whether a dual MIP solve found a feasible interdiction.
type Status int

const (
	// StatusOptimal indicates a best feasible interdiction (possibly
	// the empty one) was found.
	StatusOptimal Status = iota
	// StatusInfeasible indicates no feasible interdiction exists
	// (a negative budget, or a dual MIP with no feasible integral
	// point).
	StatusInfeasible
)

// Result is the outcome of a leader/follower interdiction solve.
type Result struct {
	// Xbar lists the (from,to) arc pairs chosen for interdiction.
	Xbar [][2]string
	// Objective is the follower's primal objective, re-solved against
	// the topology with Xbar stamped on.
	Objective float64
	// Status reports feasibility.
	Status Status
}

// DualMIP bundles a leader/follower interdiction's single-level MIP -
// the LP dual of the follower problem, plus the binary interdiction
// indicators - with the mapping from each attackable arc to its x_ij
// variable index, so every solver package can share one "solve the
// dual, extract Xbar" step.
type DualMIP struct {
	Problem simplex.MIPProblem
	ArcVar  map[[2]string]int
}

// SolveDual runs branch-and-bound over m.Problem and reports which arcs
// the optimal integral solution interdicts (x_ij == 1). The dual
// objective value is also returned for solver-status logging parity
// with the ported Python's "Total cost: ... (primal), ... (dual)" line;
// it is not itself the interdiction Result.Objective, which a caller
// obtains only by re-solving its primal follower against the stamped
// Xbar.
func (m DualMIP) SolveDual() (xbar [][2]string, dualObjective float64, status Status) {
	sol := simplex.SolveMIP(m.Problem)
	if sol.Status != simplex.StatusOptimalLP {
		return nil, 0, StatusInfeasible
	}

	for arc, idx := range m.ArcVar {
		if sol.X[idx] > 0.5 {
			xbar = append(xbar, arc)
		}
	}
	sort.Slice(xbar, func(i, j int) bool {
		if xbar[i][0] != xbar[j][0] {
			return xbar[i][0] < xbar[j][0]
		}
		return xbar[i][1] < xbar[j][1]
	})

	return xbar, sol.Value, StatusOptimal
}

// CheckBudget returns ErrInfeasibleBudget for a negative interdiction
// budget, the one leader-side misconfiguration that is infeasible
// before any MIP is even built.
func CheckBudget(budget int) error {
	if budget < 0 {
		return snerr.ErrInfeasibleBudget
	}
	return nil
}
