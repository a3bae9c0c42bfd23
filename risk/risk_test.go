package risk_test

import (
	"testing"

	"github.com/stigmar/snram/risk"
)

func TestRisk(t *testing.T) {
	if got := risk.Risk(5, 4, 3); got != 60 {
		t.Fatalf("Risk(5,4,3) = %d, want 60", got)
	}
	if got := risk.Risk(1, 1, 1); got != risk.RiskMin {
		t.Fatalf("Risk(1,1,1) = %d, want RiskMin=%d", got, risk.RiskMin)
	}
	if got := risk.Risk(5, 5, 5); got != risk.RiskMax {
		t.Fatalf("Risk(5,5,5) = %d, want RiskMax=%d", got, risk.RiskMax)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want int
	}{
		{0, 1, 5, 1},
		{6, 1, 5, 5},
		{3, 1, 5, 3},
		{1, 1, 5, 1},
		{5, 1, 5, 5},
	}
	for _, c := range cases {
		if got := risk.Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%d,%d,%d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestThreatFromCentrality(t *testing.T) {
	got := risk.ThreatFromCentrality([]float64{0, 0.25, 0.5, 1.0})
	want := []int{risk.ThreatMin, 1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ThreatFromCentrality[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestThreatFromCentralityAllZero(t *testing.T) {
	got := risk.ThreatFromCentrality([]float64{0, 0, 0})
	for i, v := range got {
		if v != risk.ThreatMin {
			t.Errorf("ThreatFromCentrality[%d] = %d, want ThreatMin", i, v)
		}
	}
}

func TestNCmaxAndBigM(t *testing.T) {
	nCmax := risk.NCmax(4, 60)
	if nCmax != 240 {
		t.Fatalf("NCmax(4,60) = %v, want 240", nCmax)
	}
	if got := risk.BigM(nCmax); got != 481 {
		t.Fatalf("BigM(240) = %v, want 481", got)
	}
}
