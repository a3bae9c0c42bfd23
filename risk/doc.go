// Package risk defines the ordinal risk-scoring model shared by every
// other package in this module: Threat, Vulnerability, and Consequence
// scores on a 1-5 scale, and the derived Risk = Threat * Vulnerability *
// Consequence.
//
// It also provides the centrality-to-threat scaling used when a topology
// is loaded without explicit threat scores, and the nCmax/bigM constants
// used by the interdiction solvers to encode the leader's binary
// interdiction decisions as cost/capacity penalties.
package risk
