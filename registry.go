package schemacov

import (
	"sync"

	"github.com/google/uuid"
)

// Location is a registration call site. The package-level Register captures
// it from the caller frame; explicit registries take it as an argument so
// the capture depth stays a concern of the glue layer.
type Location struct {
	Filename string
	Line     int
}

// TokenGenerator produces trace tokens for registry entries.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 trace tokens, useful for
// correlating coverage reports with suite runs.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedTokenGenerator returns predetermined tokens in order, enabling
// deterministic tests and golden report comparison.
type FixedTokenGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokenGenerator creates a generator that returns tokens in order.
func NewFixedTokenGenerator(tokens ...string) *FixedTokenGenerator {
	return &FixedTokenGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
//
// Panics once all tokens are consumed. This fail-fast catches test
// misconfiguration (more roots registered than tokens provided).
func (g *FixedTokenGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.tokens) {
		panic("FixedTokenGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}

// traceEntry is one registered schema root.
type traceEntry struct {
	location Location
	token    string
	store    *Store
}

// Registry maps each registered schema root to its coverage store and the
// source location where the root was first registered. Stores are created
// lazily on first registration per root and live until Reset.
type Registry struct {
	mu      sync.Mutex
	entries map[Node]*traceEntry
	order   []Node
	tokens  TokenGenerator
}

// Option configures a Registry.
type Option func(*Registry)

// WithTokenGenerator overrides the trace token generator. Tests use
// FixedTokenGenerator for deterministic report output.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(r *Registry) { r.tokens = g }
}

// NewRegistry creates an empty registry. Create one per coverage scope, e.g.
// at suite start, and Reset it between independent runs.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[Node]*traceEntry),
		tokens:  UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register returns the coverage store for root, scanning the schema graph on
// first registration. Idempotent per root: later calls return the existing
// store and keep the original location and token.
func (r *Registry) Register(root Node, loc Location) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[root]; ok {
		return e.store
	}
	e := &traceEntry{
		location: loc,
		token:    r.tokens.Generate(),
		store:    newStore(root),
	}
	r.entries[root] = e
	r.order = append(r.order, root)
	return e.store
}

// Reset clears every registered root. Accumulated coverage is discarded;
// previously returned stores stay usable but are no longer reported.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[Node]*traceEntry)
	r.order = nil
}
