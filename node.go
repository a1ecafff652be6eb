package schemacov

// Source identifies the structural collection through which a child node is
// reached from its parent.
type Source string

const (
	// SourceKeys marks children declared as named object properties.
	SourceKeys Source = "keys"

	// SourceItems marks element schemas of ordered collections.
	SourceItems Source = "items"

	// SourceTerms marks ordered alternatives (union branches). Children of a
	// term list keep their ordinal position so that same-named alternatives
	// remain distinct.
	SourceTerms Source = "terms"
)

// ChildRef is the uniform record a node's enumeration capability yields for
// each of its immediate sub-schemas, regardless of the concrete node kind.
type ChildRef struct {
	Node   Node
	Source Source
	Name   string
	Index  int // ordinal within the collection; meaningful for SourceTerms
}

// Node is the capability a schema node must expose to be traced. It is
// implemented by the external schema layer; this package holds non-owning
// references only and never mutates a node.
//
// Implementations must be comparable (in practice, pointers): node identity
// is what deduplicates coverage logs for shared sub-schemas. The enumeration
// graph must be acyclic; termination of the scan is assumed, not enforced.
type Node interface {
	// Children enumerates the immediate sub-schemas with their structural
	// context.
	Children() []ChildRef

	// Rules returns the declared rule names in declaration order.
	Rules() []string

	// HasDefault reports whether the node declares a default value, which is
	// tracked as the pseudo-rule "default".
	HasDefault() bool

	// HasFailover reports whether the node declares a failover value, which
	// is tracked as the pseudo-rule "failover".
	HasFailover() bool

	// Valids returns the declared allow-list literals, nil when absent.
	Valids() []any

	// Invalids returns the declared deny-list literals, nil when absent.
	Invalids() []any

	// ID returns the node's explicit identifier flag, "" when unset.
	ID() string

	// Key returns the node's structural key flag (the property name for
	// object keys), "" when unset.
	Key() string
}
