package assembler

import (
	"fmt"
	"strings"

	"rams-generator-be/internal/constant"
	"rams-generator-be/pkg/document"
)

// SectionType identifies one of the three fixed RAMS content categories.
type SectionType string

const (
	SectionRiskAssessment  SectionType = "risk_assessment"
	SectionSequence        SectionType = "sequence_of_activities"
	SectionMethodStatement SectionType = "method_statement"
)

// Section pairs a content category with its raw generated payload.
type Section struct {
	Type    SectionType
	Content string
}

// Marker returns the template marker this section targets.
func (s SectionType) Marker() string {
	switch s {
	case SectionRiskAssessment:
		return constant.MarkerRiskTable
	case SectionSequence:
		return constant.MarkerSequence
	case SectionMethodStatement:
		return constant.MarkerMethodStatement
	}
	return ""
}

// ErrMalformedSection reports raw section content that cannot be converted
// into structural elements.
type ErrMalformedSection struct {
	Line   int
	Reason string
}

func (e *ErrMalformedSection) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed section content at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed section content: %s", e.Reason)
}

// HazardRow is one parsed line of the risk assessment table.
type HazardRow struct {
	Hazard          string
	PersonsAtRisk   string
	Event           string
	ControlMeasures string
	ActionedBy      string
}

// ParseHazardRows parses raw risk assessment content: one hazard per
// non-empty line, five tab-separated fields, input order preserved.
func ParseHazardRows(raw string) ([]HazardRow, error) {
	var rows []HazardRow
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != constant.RiskTableFieldCount {
			return nil, &ErrMalformedSection{
				Line:   i + 1,
				Reason: fmt.Sprintf("expected %d tab-separated fields, got %d", constant.RiskTableFieldCount, len(fields)),
			}
		}
		rows = append(rows, HazardRow{
			Hazard:          strings.TrimSpace(fields[0]),
			PersonsAtRisk:   strings.TrimSpace(fields[1]),
			Event:           strings.TrimSpace(fields[2]),
			ControlMeasures: strings.TrimSpace(fields[3]),
			ActionedBy:      strings.TrimSpace(fields[4]),
		})
	}
	return rows, nil
}

// BuildRiskTable converts hazard rows into the risk assessment table element:
// fixed header plus one row per hazard, in input order.
func BuildRiskTable(rows []HazardRow) *document.Table {
	table := &document.Table{
		Style:  "TableGrid",
		Header: append([]string(nil), constant.RiskTableColumns...),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Hazard, r.PersonsAtRisk, r.Event, r.ControlMeasures, r.ActionedBy,
		})
	}
	return table
}

// SplitNarrative converts free narrative text into paragraph elements.
// Paragraphs split on blank-line boundaries; content without blank lines
// falls back to single-newline splitting. Empty parts are dropped. No length
// policy is enforced here.
func SplitNarrative(raw string) []document.Block {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	var parts []string
	if strings.Contains(text, "\n\n") {
		parts = strings.Split(text, "\n\n")
	} else {
		parts = strings.Split(text, "\n")
	}

	blocks := make([]document.Block, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		blocks = append(blocks, &document.Paragraph{Style: "Normal", Text: part})
	}
	return blocks
}

// Build converts one section's raw content into the structural elements to
// insert at its marker.
func Build(section Section) ([]document.Block, error) {
	switch section.Type {
	case SectionRiskAssessment:
		rows, err := ParseHazardRows(section.Content)
		if err != nil {
			return nil, err
		}
		return []document.Block{BuildRiskTable(rows)}, nil
	case SectionSequence, SectionMethodStatement:
		return SplitNarrative(section.Content), nil
	default:
		return nil, &ErrMalformedSection{Reason: fmt.Sprintf("unknown section type %q", section.Type)}
	}
}
