// Package topology defines the Node/Arc data model for a network risk
// assessment: a directed graph whose nodes and arcs each carry a
// Threat/Vulnerability/Consequence/Risk quadruple, plus the flow-related
// attributes (capacity, cost, supply/demand, attackable, xbar) consumed
// by the attacker, defender, Stackelberg, and interdiction packages.
//
// Topology guards its node and arc tables with two separate
// sync.RWMutex locks (muNode for the node table, muArc for the arc
// table and its from/to index), the same split lvlath's core.Graph uses
// for its vertex and edge tables. Lock ordering, when both are needed,
// is always muNode then muArc.
//
// Every getter returns a copy, never a live alias into internal storage:
// the Python original this package replaces aliases shared pandas
// columns between callers, so a "before" snapshot taken by one caller
// could be silently mutated by an unrelated setter call elsewhere. Value
// semantics here make that bug structurally impossible.
package topology

import "sync"

// Node is a single asset in the network topology.
type Node struct {
	// ID uniquely identifies this node.
	ID string

	// Threat, Vulnerability, Consequence are ordinal scores in [1,5].
	Threat, Vulnerability, Consequence int

	// Risk is Threat*Vulnerability*Consequence, recomputed by Topology
	// on every setter call; never set it directly.
	Risk int

	// Attackable marks this node as eligible for attacker/defender/
	// interdiction operations.
	Attackable bool

	// SupplyDemand is negative for a supply node, positive for a
	// demand node, and zero for a pure transshipment node. Read by the
	// min-cost-flow interdiction follower, and by cmd/snram to infer the
	// max-flow/shortest-path source (negative) and sink (positive).
	SupplyDemand float64
}

// Arc is a directed connection between two nodes.
type Arc struct {
	// From and To are node IDs; From != To (no self-loops in this
	// domain - arcs represent directed physical or logical links).
	From, To string

	// Threat, Vulnerability, Consequence, Risk as in Node.
	Threat, Vulnerability, Consequence int
	Risk                               int

	// Attackable marks this arc as eligible for attacker/defender/
	// interdiction operations.
	Attackable bool

	// Capacity bounds flow along this arc. A negative value means
	// uncapacitated. Defaults to RiskMax-Risk when not supplied and
	// the topology was constructed with WithCapacityFromRisk.
	Capacity float64

	// Cost is the per-unit cost used by the shortest-path interdiction
	// follower (the min-cost-flow follower prices arcs by Risk).
	// Defaults to 0.
	Cost float64

	// Xbar is true iff this arc is interdicted by the leader's chosen
	// subset. The interdiction solvers stamp it onto the topology they
	// solve and leave it set afterwards, so it reflects the most recent
	// solve.
	Xbar bool
}

// AssetClass selects which table a greedy component operates on: the
// source's two dialects ("nodes" and "links") unified behind one
// Topology type (see DESIGN.md "Duplicated dialects in the source").
type AssetClass int

const (
	ClassNodes AssetClass = iota
	ClassArcs
)

// String renders the asset class the way the report headers name it.
func (c AssetClass) String() string {
	if c == ClassNodes {
		return "nodes"
	}
	return "links"
}

// Option configures a Topology at construction time.
type Option func(*Topology)

// WithCapacityFromRisk makes the Topology compute a missing arc
// Capacity as RiskMax-Risk (the original's _compute_arc_capacity) and
// recompute it whenever Threat/Vulnerability/Consequence is set on an
// arc; the recomputed value replaces any Capacity given to AddArc. The
// min-cost-flow interdiction driver disables this (arcs
// there carry an explicit Capacity/Cost from the input table instead).
func WithCapacityFromRisk() Option {
	return func(t *Topology) { t.calcCap = true }
}

// Topology holds the full node/arc table for a network risk assessment.
//
// muNode guards nodeOrder/nodes; muArc guards arcOrder/arcs.
// Lock order when both are required: muNode, then muArc.
type Topology struct {
	muNode sync.RWMutex
	muArc  sync.RWMutex

	calcCap bool

	nodeOrder []string
	nodes     map[string]*Node

	arcOrder []string // "From\x00To" keys, insertion order
	arcs     map[string]*Arc
}

// New creates an empty Topology.
func New(opts ...Option) *Topology {
	t := &Topology{
		nodes: make(map[string]*Node),
		arcs:  make(map[string]*Arc),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func arcKey(from, to string) string { return from + "\x00" + to }
