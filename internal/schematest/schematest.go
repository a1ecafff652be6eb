// Package schematest provides a hand-built schema node implementation for
// exercising the coverage engine in tests. It plays the role of the external
// schema builder at the smallest possible surface.
package schematest

import "github.com/roach88/schemacov"

// Node is a mutable test double implementing schemacov.Node. Builder methods
// return the receiver for chaining; identity is pointer identity, so the
// same *Node attached under two parents models a shared sub-schema.
type Node struct {
	id       string
	key      string
	rules    []string
	def      bool
	failover bool
	valids   []any
	invalids []any
	children []schemacov.ChildRef
}

// New creates an empty node.
func New() *Node {
	return &Node{}
}

// WithID sets the explicit identifier flag.
func (n *Node) WithID(id string) *Node {
	n.id = id
	return n
}

// WithKey sets the structural key flag directly. AddKey sets it implicitly
// for object property children.
func (n *Node) WithKey(key string) *Node {
	n.key = key
	return n
}

// WithRules declares rule names in order.
func (n *Node) WithRules(names ...string) *Node {
	n.rules = append(n.rules, names...)
	return n
}

// WithDefault declares a default value flag.
func (n *Node) WithDefault() *Node {
	n.def = true
	return n
}

// WithFailover declares a failover value flag.
func (n *Node) WithFailover() *Node {
	n.failover = true
	return n
}

// WithValids declares allow-list literals in order.
func (n *Node) WithValids(values ...any) *Node {
	n.valids = append(n.valids, values...)
	return n
}

// WithInvalids declares deny-list literals in order.
func (n *Node) WithInvalids(values ...any) *Node {
	n.invalids = append(n.invalids, values...)
	return n
}

// AddKey attaches child as a named object property and sets its key flag to
// name.
func (n *Node) AddKey(name string, child *Node) *Node {
	child.key = name
	n.children = append(n.children, schemacov.ChildRef{
		Node:   child,
		Source: schemacov.SourceKeys,
		Name:   name,
	})
	return n
}

// AddItem attaches child as the next element schema of an ordered
// collection.
func (n *Node) AddItem(name string, child *Node) *Node {
	n.children = append(n.children, schemacov.ChildRef{
		Node:   child,
		Source: schemacov.SourceItems,
		Name:   name,
		Index:  n.countSource(schemacov.SourceItems),
	})
	return n
}

// AddTerm attaches child as the next ordered alternative.
func (n *Node) AddTerm(name string, child *Node) *Node {
	n.children = append(n.children, schemacov.ChildRef{
		Node:   child,
		Source: schemacov.SourceTerms,
		Name:   name,
		Index:  n.countSource(schemacov.SourceTerms),
	})
	return n
}

// AddRef attaches a pre-built child reference. Useful for wiring the same
// node under several parents without touching its key flag.
func (n *Node) AddRef(ref schemacov.ChildRef) *Node {
	n.children = append(n.children, ref)
	return n
}

func (n *Node) countSource(source schemacov.Source) int {
	count := 0
	for _, ref := range n.children {
		if ref.Source == source {
			count++
		}
	}
	return count
}

// Children implements schemacov.Node.
func (n *Node) Children() []schemacov.ChildRef { return n.children }

// Rules implements schemacov.Node.
func (n *Node) Rules() []string { return n.rules }

// HasDefault implements schemacov.Node.
func (n *Node) HasDefault() bool { return n.def }

// HasFailover implements schemacov.Node.
func (n *Node) HasFailover() bool { return n.failover }

// Valids implements schemacov.Node.
func (n *Node) Valids() []any { return n.valids }

// Invalids implements schemacov.Node.
func (n *Node) Invalids() []any { return n.invalids }

// ID implements schemacov.Node.
func (n *Node) ID() string { return n.id }

// Key implements schemacov.Node.
func (n *Node) Key() string { return n.key }
