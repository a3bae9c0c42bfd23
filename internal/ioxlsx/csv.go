// Package ioxlsx is the tabular load/save collaborator for a
// topology.Topology: spec.md 1's Non-goals place the Excel/plotting I/O
// layer itself out of scope, but the Loader/Saver interfaces it depends
// on are part of the contract (spec.md 6). CSVCodec implements both
// against a single file holding two "# nodes" / "# arcs" sections,
// since no spreadsheet library (excelize, tealeg/xlsx) appears anywhere
// in the example pack this module was built from (see DESIGN.md) - a
// real spreadsheet Loader/Saver can be swapped in later without
// touching any domain package.
package ioxlsx

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/stigmar/snram/internal/snerr"
	"github.com/stigmar/snram/riskmodel"
	"github.com/stigmar/snram/topology"
)

// Loader reads a Topology from a tabular source.
type Loader interface {
	Load(path string) (*topology.Topology, error)
}

// Saver writes a Topology back out to the same tabular schema.
type Saver interface {
	Save(path string, t *topology.Topology) error
}

const (
	nodeHeaderLine = "# nodes"
	arcHeaderLine  = "# arcs"
)

var nodeColumns = []string{"node", "attackable", "vulnerability", "consequence", "threat", "risk", "supply_demand"}
var arcColumns = []string{"start_node", "end_node", "attackable", "vulnerability", "consequence", "threat", "risk", "capacity", "cost", "xbar"}

// CSVCodec is the default Loader/Saver: a single file with a "# nodes"
// CSV section followed by a "# arcs" CSV section, each with its own
// header row.
type CSVCodec struct {
	// CapacityFromRisk, when true, constructs the Topology with
	// topology.WithCapacityFromRisk so a missing/omitted arc Capacity
	// is derived from Risk instead of treated as uncapacitated.
	CapacityFromRisk bool
}

// Load parses path into a Topology, filling any row missing a "threat"
// value from centrality via riskmodel.Model.FillMissingThreat.
func (c CSVCodec) Load(path string) (*topology.Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioxlsx: %w", err)
	}
	defer f.Close()

	nodeRows, arcRows, err := splitSections(f)
	if err != nil {
		return nil, err
	}

	var opts []topology.Option
	if c.CapacityFromRisk {
		opts = append(opts, topology.WithCapacityFromRisk())
	}
	t := topology.New(opts...)

	missingNodeThreat := map[string]bool{}
	if err := loadNodes(t, nodeRows, missingNodeThreat); err != nil {
		return nil, err
	}

	missingArcThreat := map[[2]string]bool{}
	if err := loadArcs(t, arcRows, missingArcThreat); err != nil {
		return nil, err
	}

	if len(missingNodeThreat) > 0 || len(missingArcThreat) > 0 {
		if err := riskmodel.New(t).FillMissingThreat(missingNodeThreat, missingArcThreat); err != nil {
			return nil, fmt.Errorf("ioxlsx: deriving threat from centrality: %w", err)
		}
	}

	return t, nil
}

// splitSections scans r for the "# nodes" and "# arcs" markers and
// returns the raw CSV lines (header included) belonging to each.
func splitSections(r io.Reader) (nodeLines, arcLines []string, err error) {
	scanner := bufio.NewScanner(r)
	var current *[]string
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch strings.ToLower(trimmed) {
		case nodeHeaderLine:
			current = &nodeLines
			continue
		case arcHeaderLine:
			current = &arcLines
			continue
		}
		if trimmed == "" || current == nil {
			continue
		}
		*current = append(*current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("ioxlsx: %w", err)
	}
	if nodeLines == nil || arcLines == nil {
		return nil, nil, fmt.Errorf("%w: missing '# nodes' or '# arcs' section", snerr.ErrMalformedTable)
	}
	return nodeLines, arcLines, nil
}

func parseCSVLines(lines []string) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", snerr.ErrMalformedTable, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

func colIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseBool01(s string) bool {
	return s == "1" || strings.EqualFold(s, "true")
}

func parseIntDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", snerr.ErrMalformedTable, s)
	}
	return v, nil
}

func parseFloatDefault(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", snerr.ErrMalformedTable, s)
	}
	return v, nil
}

func loadNodes(t *topology.Topology, lines []string, missingThreat map[string]bool) error {
	header, rows, err := parseCSVLines(lines)
	if err != nil {
		return err
	}
	idNode := colIndex(header, "node")
	idAttackable := colIndex(header, "attackable")
	idVuln := colIndex(header, "vulnerability")
	idCons := colIndex(header, "consequence")
	idThreat := colIndex(header, "threat")
	idSupplyDemand := colIndex(header, "supply_demand")
	if idNode < 0 || idVuln < 0 || idCons < 0 {
		return fmt.Errorf("%w: nodes section missing required column", snerr.ErrMalformedTable)
	}

	for _, row := range rows {
		id := field(row, idNode)
		if id == "" {
			return fmt.Errorf("%w: empty node id", snerr.ErrMalformedTable)
		}
		vuln, err := parseIntDefault(field(row, idVuln), 0)
		if err != nil {
			return err
		}
		cons, err := parseIntDefault(field(row, idCons), 0)
		if err != nil {
			return err
		}
		threatStr := field(row, idThreat)
		threat, err := parseIntDefault(threatStr, 1)
		if err != nil {
			return err
		}
		supplyDemand, err := parseFloatDefault(field(row, idSupplyDemand), 0)
		if err != nil {
			return err
		}
		attackable := parseBool01(field(row, idAttackable))

		if err := t.AddNode(id, threat, vuln, cons, attackable, supplyDemand); err != nil {
			return fmt.Errorf("ioxlsx: %w", err)
		}
		if threatStr == "" {
			missingThreat[id] = true
		}
	}
	return nil
}

func loadArcs(t *topology.Topology, lines []string, missingThreat map[[2]string]bool) error {
	header, rows, err := parseCSVLines(lines)
	if err != nil {
		return err
	}
	idStart := colIndex(header, "start_node")
	idEnd := colIndex(header, "end_node")
	idAttackable := colIndex(header, "attackable")
	idVuln := colIndex(header, "vulnerability")
	idCons := colIndex(header, "consequence")
	idThreat := colIndex(header, "threat")
	idCapacity := colIndex(header, "capacity")
	idCost := colIndex(header, "cost")
	if idStart < 0 || idEnd < 0 || idVuln < 0 || idCons < 0 {
		return fmt.Errorf("%w: arcs section missing required column", snerr.ErrMalformedTable)
	}

	for _, row := range rows {
		from, to := field(row, idStart), field(row, idEnd)
		if from == "" || to == "" {
			return fmt.Errorf("%w: empty arc endpoint", snerr.ErrMalformedTable)
		}
		if _, err := t.Node(from); err != nil {
			return fmt.Errorf("%w: arc references unknown node %q", snerr.ErrMalformedTable, from)
		}
		if _, err := t.Node(to); err != nil {
			return fmt.Errorf("%w: arc references unknown node %q", snerr.ErrMalformedTable, to)
		}

		vuln, err := parseIntDefault(field(row, idVuln), 0)
		if err != nil {
			return err
		}
		cons, err := parseIntDefault(field(row, idCons), 0)
		if err != nil {
			return err
		}
		threatStr := field(row, idThreat)
		threat, err := parseIntDefault(threatStr, 1)
		if err != nil {
			return err
		}
		capacity, err := parseFloatDefault(field(row, idCapacity), -1)
		if err != nil {
			return err
		}
		cost, err := parseFloatDefault(field(row, idCost), 0)
		if err != nil {
			return err
		}
		attackable := parseBool01(field(row, idAttackable))

		if err := t.AddArc(from, to, threat, vuln, cons, attackable, capacity, cost); err != nil {
			return fmt.Errorf("ioxlsx: %w", err)
		}
		if threatStr == "" {
			missingThreat[[2]string{from, to}] = true
		}
	}
	return nil
}

// Save writes t back to path in the same "# nodes" / "# arcs" CSV
// schema Load reads, including the derived threat/risk/capacity/xbar
// columns (spec.md 6's output schema).
func (c CSVCodec) Save(path string, t *topology.Topology) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioxlsx: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintln(w, nodeHeaderLine)
	nw := csv.NewWriter(w)
	if err := nw.Write(nodeColumns); err != nil {
		return fmt.Errorf("ioxlsx: %w", err)
	}
	for _, n := range t.Nodes() {
		row := []string{
			n.ID,
			boolToCol(n.Attackable),
			strconv.Itoa(n.Vulnerability),
			strconv.Itoa(n.Consequence),
			strconv.Itoa(n.Threat),
			strconv.Itoa(n.Risk),
			strconv.FormatFloat(n.SupplyDemand, 'g', -1, 64),
		}
		if err := nw.Write(row); err != nil {
			return fmt.Errorf("ioxlsx: %w", err)
		}
	}
	nw.Flush()
	if err := nw.Error(); err != nil {
		return fmt.Errorf("ioxlsx: %w", err)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, arcHeaderLine)
	aw := csv.NewWriter(w)
	if err := aw.Write(arcColumns); err != nil {
		return fmt.Errorf("ioxlsx: %w", err)
	}
	for _, a := range t.Arcs() {
		row := []string{
			a.From,
			a.To,
			boolToCol(a.Attackable),
			strconv.Itoa(a.Vulnerability),
			strconv.Itoa(a.Consequence),
			strconv.Itoa(a.Threat),
			strconv.Itoa(a.Risk),
			strconv.FormatFloat(a.Capacity, 'g', -1, 64),
			strconv.FormatFloat(a.Cost, 'g', -1, 64),
			boolToCol(a.Xbar),
		}
		if err := aw.Write(row); err != nil {
			return fmt.Errorf("ioxlsx: %w", err)
		}
	}
	aw.Flush()
	if err := aw.Error(); err != nil {
		return fmt.Errorf("ioxlsx: %w", err)
	}

	return nil
}

func boolToCol(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
