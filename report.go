package schemacov

import (
	"fmt"
	"strings"

	"github.com/roach88/schemacov/internal/canonical"
)

// SeverityError is the severity carried by every gap record.
const SeverityError = "error"

// StatusNeverReached marks a node no validation run ever visited.
const StatusNeverReached = "never reached"

// Rule outcome labels indexed by accumulated outcome mask. Mask 3 (both
// outcomes observed) has no label: the rule is fully covered.
var outcomeLabels = map[uint8]string{
	0:         "never used",
	maskError: "always error",
	maskPass:  "always pass",
}

// MissingItem is one coverage gap. Exactly one of three shapes:
//
//   - never-reached node: Status is StatusNeverReached, Paths holds every
//     route to the node
//   - unobserved literals: Rule is "valids" or "invalids", Status is the
//     []any of declared values never observed
//   - rule outcome gap: Rule is the rule name, Status is the outcome label,
//     Paths is present when the node is not the root
type MissingItem struct {
	Rule   string `json:"rule,omitempty"`
	Status any    `json:"status"`
	Paths  []Path `json:"paths,omitempty"`
}

// GapRecord aggregates the coverage gaps for one registered schema root.
type GapRecord struct {
	Filename   string        `json:"filename"`
	Line       int           `json:"line"`
	TraceToken string        `json:"trace_token,omitempty"`
	Missing    []MissingItem `json:"missing"`
	Severity   string        `json:"severity"`
	Message    string        `json:"message"`
}

// Report reduces the accumulated coverage state into gap records, one per
// registered root that has gaps, in registration order. A non-empty filename
// restricts the report to roots registered from that source file.
//
// A nil result signals full coverage for every considered root, a state
// deliberately distinct from a non-empty gap list. Calling Report twice with
// no intervening validation runs returns structurally identical results.
func (r *Registry) Report(filename string) []GapRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	var coverage []GapRecord
	for _, root := range r.order {
		e := r.entries[root]
		if filename != "" && e.location.Filename != filename {
			continue
		}
		missing := e.store.missing()
		if len(missing) == 0 {
			continue
		}
		coverage = append(coverage, GapRecord{
			Filename:   e.location.Filename,
			Line:       e.location.Line,
			TraceToken: e.token,
			Missing:    missing,
			Severity:   SeverityError,
			Message:    gapMessage(missing),
		})
	}
	return coverage
}

// missing computes the minimal gap list for one store. Logs are visited in
// discovery order; once a node is reported as never reached, every log whose
// path extends one of its paths is suppressed, since the ancestor's gap
// already implies it.
func (s *Store) missing() []MissingItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []MissingItem
	var skipped []Path
	for _, node := range s.order {
		rec := s.records[node]
		if underSkipped(rec.paths, skipped) {
			continue
		}
		if !rec.entry {
			missing = append(missing, MissingItem{
				Status: StatusNeverReached,
				Paths:  clonePaths(rec.paths),
			})
			skipped = append(skipped, rec.paths...)
			continue
		}
		missing = append(missing, missingValues(node, rec)...)
		missing = append(missing, missingRules(node, rec)...)
	}
	return missing
}

func underSkipped(paths []Path, skipped []Path) bool {
	for _, p := range paths {
		for _, skip := range skipped {
			if p.extends(skip) {
				return true
			}
		}
	}
	return false
}

// missingValues emits one gap per literal category whose declared set has
// values never observed. The result preserves declaration order regardless
// of observation order or duplicate observations.
func missingValues(node Node, rec *record) []MissingItem {
	categories := []struct {
		source   ValueSource
		declared []any
		observed map[string]struct{}
	}{
		{Valids, node.Valids(), rec.valid},
		{Invalids, node.Invalids(), rec.invalid},
	}

	var items []MissingItem
	for _, c := range categories {
		if len(c.declared) == 0 {
			continue
		}
		var values []any
		for _, v := range c.declared {
			if _, ok := c.observed[canonical.Key(v)]; !ok {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			items = append(items, MissingItem{Rule: string(c.source), Status: values})
		}
	}
	return items
}

// missingRules emits one gap per declared rule (plus the flag-backed
// pseudo-rules) whose accumulated mask is not fully covered.
func missingRules(node Node, rec *record) []MissingItem {
	names := append([]string(nil), node.Rules()...)
	if node.HasDefault() {
		names = append(names, "default")
	}
	if node.HasFailover() {
		names = append(names, "failover")
	}

	var items []MissingItem
	for _, name := range names {
		label, ok := outcomeLabels[rec.rule[name]]
		if !ok {
			continue
		}
		item := MissingItem{Rule: name, Status: label}
		if len(rec.paths) > 0 {
			item.Paths = clonePaths(rec.paths)
		}
		items = append(items, item)
	}
	return items
}

// gapMessage renders the human summary for a gap record.
func gapMessage(missing []MissingItem) string {
	parts := make([]string, len(missing))
	for i, item := range missing {
		parts[i] = item.Describe()
	}
	return "schema missing tests for " + strings.Join(parts, ", ")
}

// Describe renders one gap as "path:rule (status)", dropping the path or the
// rule when absent. A rootless, ruleless gap (the root itself never reached)
// renders as "schema".
func (m MissingItem) Describe() string {
	prefix := ""
	if len(m.Paths) > 0 {
		prefix = m.Paths[0].String()
	}
	if m.Rule != "" {
		if prefix != "" {
			prefix += ":" + m.Rule
		} else {
			prefix = m.Rule
		}
	}
	if prefix == "" {
		prefix = "schema"
	}
	return fmt.Sprintf("%s (%s)", prefix, m.statusText())
}

// statusText renders label strings verbatim and literal lists canonically.
func (m MissingItem) statusText() string {
	if label, ok := m.Status.(string); ok {
		return label
	}
	data, err := canonical.Marshal(m.Status)
	if err != nil {
		return fmt.Sprintf("%v", m.Status)
	}
	return string(data)
}
