// Package snerr declares the sentinel errors shared across snram's
// packages, following the teacher's convention of one lower-case,
// package-prefixed sentinel per failure mode (see lvlath's core.Err*
// family) rather than ad hoc fmt.Errorf strings scattered through the
// codebase.
package snerr

import "errors"

var (
	// ErrNodeNotFound indicates a lookup referenced a node ID absent
	// from the topology.
	ErrNodeNotFound = errors.New("topology: node not found")

	// ErrArcNotFound indicates a lookup referenced an arc absent from
	// the topology.
	ErrArcNotFound = errors.New("topology: arc not found")

	// ErrDuplicateNode indicates an attempt to add a node ID already
	// present in the topology.
	ErrDuplicateNode = errors.New("topology: duplicate node id")

	// ErrDuplicateArc indicates an attempt to add an arc between
	// endpoints that already have an arc.
	ErrDuplicateArc = errors.New("topology: duplicate arc")

	// ErrScoreOutOfRange indicates a Threat/Vulnerability/Consequence
	// value outside [1,5] was supplied directly to a setter.
	ErrScoreOutOfRange = errors.New("topology: score out of range")

	// ErrEmptyTopology indicates an operation that requires at least
	// one node or arc was run against an empty topology.
	ErrEmptyTopology = errors.New("topology: empty topology")

	// ErrNoAttackableAssets indicates find_critical_asset was run
	// against a table with no attackable==1 rows.
	ErrNoAttackableAssets = errors.New("topology: no attackable assets")

	// ErrMalformedTable indicates the tabular input could not be
	// parsed into a topology (missing section or required column,
	// non-numeric value, empty id, arc endpoint absent from the nodes
	// table). Duplicate ids surface as ErrDuplicateNode/ErrDuplicateArc.
	ErrMalformedTable = errors.New("ioxlsx: malformed input table")

	// ErrInfeasibleBudget indicates a negative interdiction budget was
	// supplied to a solver.
	ErrInfeasibleBudget = errors.New("interdict: infeasible budget")

	// ErrNoPath indicates no path exists between the requested source
	// and sink in a shortest-path or max-flow follower solve.
	ErrNoPath = errors.New("interdict: no path between source and sink")

	// ErrUnsupported indicates a CLI option with no working
	// implementation in this port (e.g. --png) was requested.
	ErrUnsupported = errors.New("snram: unsupported option")

	// ErrAmbiguousSourceSink indicates a max-flow/shortest-path run
	// could not infer a unique source/sink pair from SupplyDemand sign
	// (spec.md 9: "source/sink nodes ... are not explicit in the input
	// schema; the original infers them from supply/demand sign").
	ErrAmbiguousSourceSink = errors.New("snram: need exactly one negative (source) and one positive (sink) supply_demand node")
)
