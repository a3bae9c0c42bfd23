// Package simplex provides the from-scratch LP/MIP engine shared by the
// three interdiction solvers (maxflow, mincostflow, shortestpath): a
// bounded-variable, two-phase primal simplex for the continuous
// relaxation (Solve), and a branch-and-bound layer over designated
// binary variables on top of it (SolveMIP, in bnb.go).
//
// No MIP/LP solver library exists anywhere in the example pack this
// module was built from (the original ported GLPK/CPLEX via Pyomo, and
// nothing in the retrieved Go repos touches linear programming - see
// DESIGN.md); spec.md 9 explicitly allows "a self-written simplex/
// branch-and-bound" in place of an external solver process, so this
// package is that solver, written the way the teacher writes its own
// from-scratch graph algorithms: plain slices and maps, no generics,
// no external numerics dependency.
package simplex

import "math"

const eps = 1e-7

// Sense is the relational operator of a linear constraint.
type Sense int

const (
	LE Sense = iota
	GE
	EQ
)

// Constraint is a single linear constraint over a Problem's variables,
// indexed by variable position.
type Constraint struct {
	Coeffs map[int]float64
	Sense  Sense
	RHS    float64
}

// Problem is a linear program: minimize or maximize a linear objective
// over NumVars variables, each independently bounded (Lower/Upper may
// be +/-Inf for unbounded directions), subject to Constraints.
type Problem struct {
	NumVars     int
	Minimize    bool
	Objective   []float64
	Constraints []Constraint
	Lower       []float64
	Upper       []float64
}

// Status reports the outcome of an LP solve.
type Status int

const (
	StatusOptimalLP Status = iota
	StatusInfeasibleLP
	StatusUnboundedLP
)

// Solution is the outcome of solving a Problem (or one relaxation node
// of a MIPProblem).
type Solution struct {
	Status Status
	Value  float64
	X      []float64
}

// substTerm expresses one original variable in terms of a
// non-negative standard-form variable y: x = coeff*y + const (free
// variables use two terms, y+ and y-).
type substTerm struct {
	y     int
	coeff float64
}

// Solve solves p by substituting every variable's bounds away into
// non-negative standard form, then running two-phase primal simplex
// (Bland's rule throughout, to guard against cycling on the degenerate
// tableaus these small structured network LPs tend to produce).
func Solve(p Problem) Solution {
	subst, constTerm, rows, objY, yCount := standardize(p)
	tb := buildTableau(yCount, rows)

	// Phase 1: minimize the sum of artificial variables.
	phase1Cost := make([]float64, tb.n)
	for j, art := range tb.artificial {
		if art {
			phase1Cost[j] = 1
		}
	}
	if tb.simplexMinimize(phase1Cost, nil) {
		// Phase 1 is always bounded below by zero; an "unbounded"
		// report here means the construction is wrong, not that the
		// original problem is.
		return Solution{Status: StatusInfeasibleLP}
	}
	phase1Obj := 0.0
	for i := 0; i < tb.m; i++ {
		phase1Obj += phase1Cost[tb.basic[i]] * tb.b[i]
	}
	if phase1Obj > 1e-6 {
		return Solution{Status: StatusInfeasibleLP}
	}
	tb.expelArtificials()

	// Phase 2: optimize the real (translated, always-minimize) cost.
	cost2 := make([]float64, tb.n)
	copy(cost2, objY)
	if !p.Minimize {
		for j := range cost2 {
			cost2[j] = -cost2[j]
		}
	}
	if tb.simplexMinimize(cost2, tb.artificial) {
		return Solution{Status: StatusUnboundedLP}
	}

	y := make([]float64, yCount)
	for i := 0; i < tb.m; i++ {
		if tb.basic[i] < yCount {
			y[tb.basic[i]] = tb.b[i]
		}
	}

	x := make([]float64, p.NumVars)
	for i := 0; i < p.NumVars; i++ {
		v := constTerm[i]
		for _, t := range subst[i] {
			v += t.coeff * y[t.y]
		}
		x[i] = v
	}

	value := 0.0
	for i, c := range p.Objective {
		value += c * x[i]
	}

	return Solution{Status: StatusOptimalLP, Value: value, X: x}
}

// standardize eliminates every variable's bounds by substitution,
// returning the per-variable substitution terms, their constant
// offsets, the translated constraint rows (still in inequality/
// equality form, not yet tableau columns), the translated objective,
// and the number of non-negative standard-form variables produced.
func standardize(p Problem) (subst [][]substTerm, constTerm []float64, rows []rowBuild, objY []float64, yCount int) {
	subst = make([][]substTerm, p.NumVars)
	constTerm = make([]float64, p.NumVars)

	for i := 0; i < p.NumVars; i++ {
		lo, hi := p.Lower[i], p.Upper[i]
		switch {
		case !math.IsInf(lo, -1):
			// x = lo + y, y >= 0.
			yi := yCount
			yCount++
			subst[i] = []substTerm{{yi, 1}}
			constTerm[i] = lo
			if !math.IsInf(hi, 1) {
				rows = append(rows, rowBuild{
					coeffs: map[int]float64{yi: 1},
					sense:  LE,
					rhs:    hi - lo,
				})
			}
		case !math.IsInf(hi, 1):
			// lo == -Inf, hi finite: x = hi - y, y >= 0.
			yi := yCount
			yCount++
			subst[i] = []substTerm{{yi, -1}}
			constTerm[i] = hi
		default:
			// Free variable: x = y+ - y-, y+,y- >= 0.
			yp := yCount
			yCount++
			yn := yCount
			yCount++
			subst[i] = []substTerm{{yp, 1}, {yn, -1}}
		}
	}

	objY = make([]float64, yCount)
	for i, c := range p.Objective {
		if c == 0 {
			continue
		}
		for _, t := range subst[i] {
			objY[t.y] += c * t.coeff
		}
	}

	for _, cons := range p.Constraints {
		coeffsY := map[int]float64{}
		rhs := cons.RHS
		for i, a := range cons.Coeffs {
			if a == 0 {
				continue
			}
			for _, t := range subst[i] {
				coeffsY[t.y] += a * t.coeff
			}
			rhs -= a * constTerm[i]
		}
		rows = append(rows, rowBuild{coeffs: coeffsY, sense: cons.Sense, rhs: rhs})
	}

	return subst, constTerm, rows, objY, yCount
}

type rowBuild struct {
	coeffs map[int]float64
	sense  Sense
	rhs    float64
}
