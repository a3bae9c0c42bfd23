package interdict_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stigmar/snram/internal/snerr"
	"github.com/stigmar/snram/interdict"
	"github.com/stigmar/snram/interdict/simplex"
)

// twoArcBudget builds a minimal dual MIP over two independent
// attackable arcs, each worth a different amount to interdict, with a
// leader cardinality budget. It exercises DualMIP.SolveDual directly,
// independent of any particular follower's LP structure.
func twoArcBudget(budget int) interdict.DualMIP {
	// maximize 3*x0 + 5*x1 s.t. x0+x1 <= budget, x0,x1 binary.
	p := simplex.MIPProblem{
		Problem: simplex.Problem{
			NumVars:   2,
			Minimize:  false,
			Objective: []float64{3, 5},
			Constraints: []simplex.Constraint{
				{Coeffs: map[int]float64{0: 1, 1: 1}, Sense: simplex.LE, RHS: float64(budget)},
			},
			Lower: []float64{0, 0},
			Upper: []float64{1, 1},
		},
		BinaryVars: []int{0, 1},
	}
	return interdict.DualMIP{
		Problem: p,
		ArcVar:  map[[2]string]int{{"A", "B"}: 0, {"C", "D"}: 1},
	}
}

func TestSolveDualPicksBudgetedArcs(t *testing.T) {
	xbar, obj, status := twoArcBudget(1).SolveDual()
	require.Equal(t, interdict.StatusOptimal, status)
	require.Equal(t, [][2]string{{"C", "D"}}, xbar, "higher-value arc wins under a budget of 1")
	require.InDelta(t, 5.0, obj, 1e-6)
}

func TestSolveDualBudgetLargerThanArcsUsesAll(t *testing.T) {
	xbar, obj, status := twoArcBudget(5).SolveDual()
	require.Equal(t, interdict.StatusOptimal, status)
	require.ElementsMatch(t, [][2]string{{"A", "B"}, {"C", "D"}}, xbar)
	require.InDelta(t, 8.0, obj, 1e-6)
}

func TestSolveDualZeroBudgetInterdictsNothing(t *testing.T) {
	xbar, obj, status := twoArcBudget(0).SolveDual()
	require.Equal(t, interdict.StatusOptimal, status)
	require.Empty(t, xbar)
	require.InDelta(t, 0.0, obj, 1e-6)
}

func TestSolveDualInfeasibleMIPReportsInfeasible(t *testing.T) {
	// x >= 1 but bounded to [0,0]: no feasible integral point.
	p := simplex.MIPProblem{
		Problem: simplex.Problem{
			NumVars:   1,
			Minimize:  true,
			Objective: []float64{0},
			Constraints: []simplex.Constraint{
				{Coeffs: map[int]float64{0: 1}, Sense: simplex.GE, RHS: 1},
			},
			Lower: []float64{0},
			Upper: []float64{0},
		},
		BinaryVars: []int{0},
	}
	m := interdict.DualMIP{Problem: p, ArcVar: map[[2]string]int{{"A", "B"}: 0}}
	_, _, status := m.SolveDual()
	require.Equal(t, interdict.StatusInfeasible, status)
}

func TestCheckBudgetNegativeIsInfeasible(t *testing.T) {
	require.ErrorIs(t, interdict.CheckBudget(-1), snerr.ErrInfeasibleBudget)
}

func TestCheckBudgetNonNegativeOK(t *testing.T) {
	require.NoError(t, interdict.CheckBudget(0))
	require.NoError(t, interdict.CheckBudget(math.MaxInt32))
}
