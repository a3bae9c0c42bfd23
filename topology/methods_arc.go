package topology

import (
	"fmt"

	"github.com/stigmar/snram/internal/snerr"
	"github.com/stigmar/snram/risk"
)

// defaultCapacity mirrors _compute_arc_capacity: RiskMax - Risk.
func defaultCapacity(arcRisk int) float64 {
	return float64(risk.RiskMax - arcRisk)
}

// AddArc inserts a new directed arc from->to. Capacity may be passed as
// -1 to mean uncapacitated; if the topology was built with
// WithCapacityFromRisk and capacity < 0, it is computed from Risk
// instead of left uncapacitated.
func (t *Topology) AddArc(from, to string, threat, vulnerability, consequence int, attackable bool, capacity, cost float64) error {
	t.muArc.Lock()
	defer t.muArc.Unlock()

	key := arcKey(from, to)
	if _, exists := t.arcs[key]; exists {
		return fmt.Errorf("%w: (%s, %s)", snerr.ErrDuplicateArc, from, to)
	}

	a := &Arc{
		From:          from,
		To:            to,
		Threat:        threat,
		Vulnerability: vulnerability,
		Consequence:   consequence,
		Risk:          risk.Risk(threat, vulnerability, consequence),
		Attackable:    attackable,
		Capacity:      capacity,
		Cost:          cost,
	}
	if t.calcCap && capacity < 0 {
		a.Capacity = defaultCapacity(a.Risk)
	}
	t.arcs[key] = a
	t.arcOrder = append(t.arcOrder, key)
	return nil
}

// Arc returns a copy of the arc from->to.
func (t *Topology) Arc(from, to string) (Arc, error) {
	t.muArc.RLock()
	defer t.muArc.RUnlock()

	a, ok := t.arcs[arcKey(from, to)]
	if !ok {
		return Arc{}, fmt.Errorf("%w: (%s, %s)", snerr.ErrArcNotFound, from, to)
	}
	return *a, nil
}

// Arcs returns a copy of every arc, in table (insertion) order.
func (t *Topology) Arcs() []Arc {
	t.muArc.RLock()
	defer t.muArc.RUnlock()

	out := make([]Arc, 0, len(t.arcOrder))
	for _, key := range t.arcOrder {
		out = append(out, *t.arcs[key])
	}
	return out
}

// MaxArcRisk returns the largest Risk across all arcs, or 0 for an arc-
// free topology. Used to compute risk.NCmax.
func (t *Topology) MaxArcRisk() int {
	t.muArc.RLock()
	defer t.muArc.RUnlock()

	max := 0
	for _, key := range t.arcOrder {
		if r := t.arcs[key].Risk; r > max {
			max = r
		}
	}
	return max
}

// setArc applies fn to a copy of the arc, recomputes Risk (and Capacity
// when calcCap is enabled), and stores the result.
func (t *Topology) setArc(from, to string, fn func(*Arc)) error {
	t.muArc.Lock()
	defer t.muArc.Unlock()

	key := arcKey(from, to)
	a, ok := t.arcs[key]
	if !ok {
		return fmt.Errorf("%w: (%s, %s)", snerr.ErrArcNotFound, from, to)
	}
	updated := *a
	fn(&updated)
	updated.Risk = risk.Risk(updated.Threat, updated.Vulnerability, updated.Consequence)
	if t.calcCap {
		updated.Capacity = defaultCapacity(updated.Risk)
	}
	t.arcs[key] = &updated
	return nil
}

// SetArcThreat sets Threat on the arc (clamped) and recomputes Risk
// (and Capacity, if WithCapacityFromRisk was used).
func (t *Topology) SetArcThreat(from, to string, threat int) error {
	return t.setArc(from, to, func(a *Arc) {
		a.Threat = risk.Clamp(threat, risk.ThreatMin, risk.ThreatMax)
	})
}

// SetArcVulnerability sets Vulnerability on the arc (clamped) and
// recomputes Risk (and Capacity).
func (t *Topology) SetArcVulnerability(from, to string, vulnerability int) error {
	return t.setArc(from, to, func(a *Arc) {
		a.Vulnerability = risk.Clamp(vulnerability, risk.VulnMin, risk.VulnMax)
	})
}

// SetArcConsequence sets Consequence on the arc (clamped) and
// recomputes Risk (and Capacity).
func (t *Topology) SetArcConsequence(from, to string, consequence int) error {
	return t.setArc(from, to, func(a *Arc) {
		a.Consequence = risk.Clamp(consequence, risk.ConsMin, risk.ConsMax)
	})
}

// SetArcXbar marks or clears the interdiction flag on an arc, leaving
// every other field (Capacity included) as it is. Used by the
// interdiction packages to stamp the solved subset onto the topology
// they were given before re-solving the follower.
func (t *Topology) SetArcXbar(from, to string, xbar bool) error {
	t.muArc.Lock()
	defer t.muArc.Unlock()

	key := arcKey(from, to)
	a, ok := t.arcs[key]
	if !ok {
		return fmt.Errorf("%w: (%s, %s)", snerr.ErrArcNotFound, from, to)
	}
	updated := *a
	updated.Xbar = xbar
	t.arcs[key] = &updated
	return nil
}

// Successors returns the arcs leaving node id, in table order.
func (t *Topology) Successors(id string) []Arc {
	t.muArc.RLock()
	defer t.muArc.RUnlock()

	var out []Arc
	for _, key := range t.arcOrder {
		a := t.arcs[key]
		if a.From == id {
			out = append(out, *a)
		}
	}
	return out
}

// Predecessors returns the arcs entering node id, in table order.
func (t *Topology) Predecessors(id string) []Arc {
	t.muArc.RLock()
	defer t.muArc.RUnlock()

	var out []Arc
	for _, key := range t.arcOrder {
		a := t.arcs[key]
		if a.To == id {
			out = append(out, *a)
		}
	}
	return out
}
