package schemacov

import (
	"fmt"
	"sync"

	"github.com/roach88/schemacov/internal/canonical"
)

// Outcome is one of the two rule outcome kinds a validation engine reports.
type Outcome int

const (
	// OutcomeError records that a rule rejected the input.
	OutcomeError Outcome = iota
	// OutcomePass records that a rule accepted the input.
	OutcomePass
)

// Per-rule outcome masks. A rule is fully covered once both bits are set;
// the mask only ever accumulates.
const (
	maskError uint8 = 1 << 0
	maskPass  uint8 = 1 << 1
)

func (o Outcome) mask() uint8 {
	if o == OutcomePass {
		return maskPass
	}
	return maskError
}

// ValueSource selects which declared literal set an observation belongs to.
type ValueSource string

const (
	// Valids marks a value that matched the node's declared allow-list.
	Valids ValueSource = "valids"
	// Invalids marks a value that matched the node's declared deny-list.
	Invalids ValueSource = "invalids"
)

// record is the per-node coverage log: every reaching path, whether any run
// visited the node, the accumulated outcome mask per rule, and the identity
// keys of observed allow/deny literals.
type record struct {
	paths   []Path
	entry   bool
	rule    map[string]uint8
	valid   map[string]struct{}
	invalid map[string]struct{}
}

func newRecord() *record {
	return &record{
		rule:    make(map[string]uint8),
		valid:   make(map[string]struct{}),
		invalid: make(map[string]struct{}),
	}
}

// addPath records p unless an equal path is already present.
func (r *record) addPath(p Path) {
	for _, existing := range r.paths {
		if existing.Equal(p) {
			return
		}
	}
	r.paths = append(r.paths, p)
}

// Store owns the coverage logs for one schema root. It is built once by a
// full static scan at registration time; afterwards its topology never
// changes and only the instrumentation methods mutate accumulated state.
//
// Instrumentation is guarded by a mutex so concurrent validation runs may
// share a store.
type Store struct {
	mu      sync.Mutex
	records map[Node]*record
	order   []Node
}

// newStore scans root and builds its coverage logs.
func newStore(root Node) *Store {
	s := &Store{records: make(map[Node]*record)}
	s.scan(root, nil)
	return s
}

// scan visits node and everything reachable from it. A node seen before
// keeps its single log and gains the new path, but recursion still descends
// so every route to its descendants is discovered. Termination assumes the
// enumeration graph is a DAG.
func (s *Store) scan(node Node, path Path) {
	rec := s.records[node]
	if rec == nil {
		rec = newRecord()
		s.records[node] = rec
		s.order = append(s.order, node)
	}
	if len(path) > 0 {
		rec.addPath(path)
	}

	children := node.Children()
	seen := make(map[Segment]Node, len(children))
	for _, ref := range children {
		seg := resolveSegment(ref)
		if prev, ok := seen[seg]; ok && prev != ref.Node {
			panic(fmt.Sprintf("schemacov: identifier collision: two distinct nodes resolve to %q under %q", seg, path))
		}
		seen[seg] = ref.Node
		s.scan(ref.Node, path.child(seg))
	}
}

// Entry marks node as visited by a validation run.
func (s *Store) Entry(node Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookup(node).entry = true
}

// LogRuleOutcome accumulates one outcome for the named rule on node. The
// flag-backed pseudo-rules "default" and "failover" are logged under those
// names.
func (s *Store) LogRuleOutcome(name string, result Outcome, node Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.lookup(node)
	rec.rule[name] |= result.mask()
}

// RecordValue notes that value matched node's declared allow-list or
// deny-list, selected by source.
func (s *Store) RecordValue(source ValueSource, value any, node Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.lookup(node)
	key := canonical.Key(value)
	if source == Invalids {
		rec.invalid[key] = struct{}{}
		return
	}
	rec.valid[key] = struct{}{}
}

// lookup panics for nodes the static scan never discovered. A silent miss
// would corrupt coverage data, so the caller contract violation fails loudly.
func (s *Store) lookup(node Node) *record {
	rec := s.records[node]
	if rec == nil {
		panic(fmt.Sprintf("schemacov: node %v was not discovered by the scan of this root", node))
	}
	return rec
}

// Snapshot is a read-only view of one coverage log's static shape.
type Snapshot struct {
	Node  Node
	Paths []Path
}

// Snapshots returns a view of every coverage log in discovery order, the
// root first. The root's path list is empty.
func (s *Store) Snapshots() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Snapshot, len(s.order))
	for i, node := range s.order {
		out[i] = Snapshot{Node: node, Paths: clonePaths(s.records[node].paths)}
	}
	return out
}

func clonePaths(paths []Path) []Path {
	if len(paths) == 0 {
		return nil
	}
	return append([]Path(nil), paths...)
}
