// Command and libraries under snram implement the Suite of Network Risk
// Assessment Methods: score a graph-structured infrastructure network's
// nodes and arcs by threat/vulnerability/consequence, run greedy
// attacker/defender/Stackelberg trajectories against it, and solve
// bilevel network-interdiction models (max-flow, min-cost-flow,
// shortest-path) over it.
//
// topology/       — the Node/Arc data model, critical-asset analysis,
//                    articulation points and centrality
// risk/           — risk-score arithmetic and the bigM interdiction constant
// riskmodel/      — threat derivation and the setter family over a topology
// attacker/       — greedy threat-maximizing attacker
// defender/       — greedy vulnerability/consequence-minimizing defender
// stackelberg/    — the alternating attacker/defender equilibrium game
// interdict/      — shared leader/follower framing, plus maxflow/
//                    mincostflow/shortestpath follower solvers
// internal/ioxlsx — tabular topology load/save
// internal/obslog — structured logging setup
// cmd/snram       — the CLI entry point
package snram
