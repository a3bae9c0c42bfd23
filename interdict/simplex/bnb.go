package simplex

// MIPProblem is a Problem together with a set of variables that must
// take integral (here always binary, domain {0,1}) values at the
// optimum - the leader's interdiction indicators x_ij in every
// solver's dual.
type MIPProblem struct {
	Problem
	BinaryVars []int
}

// SolveMIP solves p by branch-and-bound over BinaryVars: at each node
// it solves the LP relaxation with the node's tightened bounds, prunes
// if the relaxation is no better than the best integral solution found
// so far, and otherwise branches on a fractional binary variable by
// fixing it to 0 in one child and 1 in the other. This is the
// "self-written branch-and-bound" counterpart to Solve's simplex,
// standing in for the external MIP backend the ported Pyomo models
// called out to.
func SolveMIP(p MIPProblem) Solution {
	var best Solution
	haveBest := false

	better := func(v float64) bool {
		if !haveBest {
			return true
		}
		if p.Minimize {
			return v < best.Value-eps
		}
		return v > best.Value+eps
	}

	var explore func(lb, ub []float64)
	explore = func(lb, ub []float64) {
		relax := p.Problem
		relax.Lower = lb
		relax.Upper = ub
		sol := Solve(relax)
		if sol.Status != StatusOptimalLP {
			return
		}
		if haveBest && !better(sol.Value) {
			return
		}

		branchVar := -1
		for _, vi := range p.BinaryVars {
			v := sol.X[vi]
			if v > eps && v < 1-eps {
				branchVar = vi
				break
			}
		}

		if branchVar == -1 {
			for _, vi := range p.BinaryVars {
				if sol.X[vi] > 0.5 {
					sol.X[vi] = 1
				} else {
					sol.X[vi] = 0
				}
			}
			if better(sol.Value) {
				best = sol
				haveBest = true
			}
			return
		}

		lb0, ub0 := cloneBounds(lb), cloneBounds(ub)
		ub0[branchVar] = 0
		explore(lb0, ub0)

		lb1, ub1 := cloneBounds(lb), cloneBounds(ub)
		lb1[branchVar] = 1
		explore(lb1, ub1)
	}

	explore(cloneBounds(p.Lower), cloneBounds(p.Upper))
	if !haveBest {
		return Solution{Status: StatusInfeasibleLP}
	}
	return best
}

func cloneBounds(b []float64) []float64 {
	out := make([]float64, len(b))
	copy(out, b)
	return out
}
