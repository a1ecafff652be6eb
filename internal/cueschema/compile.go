// Package cueschema compiles CUE schema documents into coverage-traceable
// schema nodes.
//
// A document declares validation schemas as structs under a top-level
// "schema" field:
//
//	schema: user: {
//		kind: "object"
//		keys: {
//			name: {kind: "string", rules: ["min", "max"]}
//			role: {kind: "string", valids: ["admin", "user"]}
//		}
//	}
//
// Node fields: kind (informational), id (explicit identifier flag), rules
// (rule names), default/failover (flags), valids/invalids (literal lists;
// string, int, float, bool, and null are allowed), keys (named object
// properties), items (ordered element schemas), terms (ordered
// alternatives).
package cueschema

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/schemacov"
)

// Schema is a compiled schema node. It implements schemacov.Node; identity
// is pointer identity.
type Schema struct {
	kind     string
	id       string
	key      string
	rules    []string
	def      bool
	failover bool
	valids   []any
	invalids []any
	children []schemacov.ChildRef
}

// Kind returns the node's declared kind string, "" when undeclared.
func (s *Schema) Kind() string { return s.kind }

// Children implements schemacov.Node.
func (s *Schema) Children() []schemacov.ChildRef { return s.children }

// Rules implements schemacov.Node.
func (s *Schema) Rules() []string { return s.rules }

// HasDefault implements schemacov.Node.
func (s *Schema) HasDefault() bool { return s.def }

// HasFailover implements schemacov.Node.
func (s *Schema) HasFailover() bool { return s.failover }

// Valids implements schemacov.Node.
func (s *Schema) Valids() []any { return s.valids }

// Invalids implements schemacov.Node.
func (s *Schema) Invalids() []any { return s.invalids }

// ID implements schemacov.Node.
func (s *Schema) ID() string { return s.id }

// Key implements schemacov.Node.
func (s *Schema) Key() string { return s.key }

// Named pairs a schema's document label with its compiled root and the CUE
// position it was declared at.
type Named struct {
	Name string
	Root *Schema
	Pos  Position
}

// Position is a plain source position, decoupled from CUE's token type so
// callers outside the loader don't import cue/token.
type Position struct {
	Filename string
	Line     int
}

// CompileDocument compiles every entry under the top-level "schema" field,
// in document order.
func CompileDocument(v cue.Value) ([]Named, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	schemaVal := v.LookupPath(cue.ParsePath("schema"))
	if !schemaVal.Exists() {
		return nil, &CompileError{
			Field:   "schema",
			Message: "no top-level schema field",
			Pos:     v.Pos(),
		}
	}

	iter, err := schemaVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var out []Named
	for iter.Next() {
		root, err := Compile(iter.Value())
		if err != nil {
			return nil, err
		}
		pos := iter.Value().Pos()
		out = append(out, Named{
			Name: iter.Label(),
			Root: root,
			Pos:  Position{Filename: pos.Filename(), Line: pos.Line()},
		})
	}
	return out, nil
}

// Compile builds a schema node tree from a single CUE schema value.
func Compile(v cue.Value) (*Schema, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return compileNode(v, "")
}

func compileNode(v cue.Value, key string) (*Schema, error) {
	node := &Schema{key: key}

	var err error
	if node.kind, err = optionalString(v, "kind"); err != nil {
		return nil, err
	}
	if node.id, err = optionalString(v, "id"); err != nil {
		return nil, err
	}
	if node.def, err = optionalBool(v, "default"); err != nil {
		return nil, err
	}
	if node.failover, err = optionalBool(v, "failover"); err != nil {
		return nil, err
	}
	if node.rules, err = stringList(v, "rules"); err != nil {
		return nil, err
	}
	if node.valids, err = literalList(v, "valids"); err != nil {
		return nil, err
	}
	if node.invalids, err = literalList(v, "invalids"); err != nil {
		return nil, err
	}

	if err := compileKeys(v, node); err != nil {
		return nil, err
	}
	if err := compileList(v, node, "items", schemacov.SourceItems); err != nil {
		return nil, err
	}
	if err := compileList(v, node, "terms", schemacov.SourceTerms); err != nil {
		return nil, err
	}

	return node, nil
}

// compileKeys attaches the named object property children; each child's key
// flag is its field label.
func compileKeys(v cue.Value, node *Schema) error {
	keysVal := v.LookupPath(cue.ParsePath("keys"))
	if !keysVal.Exists() {
		return nil
	}

	iter, err := keysVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		child, err := compileNode(iter.Value(), iter.Label())
		if err != nil {
			return err
		}
		node.children = append(node.children, schemacov.ChildRef{
			Node:   child,
			Source: schemacov.SourceKeys,
			Name:   iter.Label(),
		})
	}
	return nil
}

// compileList attaches ordered children (items or terms) with their ordinal
// position.
func compileList(v cue.Value, node *Schema, field string, source schemacov.Source) error {
	listVal := v.LookupPath(cue.ParsePath(field))
	if !listVal.Exists() {
		return nil
	}

	iter, err := listVal.List()
	if err != nil {
		return formatCUEError(err)
	}
	idx := 0
	for iter.Next() {
		child, err := compileNode(iter.Value(), "")
		if err != nil {
			return err
		}
		node.children = append(node.children, schemacov.ChildRef{
			Node:   child,
			Source: source,
			Name:   field,
			Index:  idx,
		})
		idx++
	}
	return nil
}

func optionalString(v cue.Value, field string) (string, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return "", nil
	}
	s, err := fieldVal.String()
	if err != nil {
		return "", &CompileError{
			Field:   field,
			Message: "must be a string",
			Pos:     fieldVal.Pos(),
		}
	}
	return s, nil
}

func optionalBool(v cue.Value, field string) (bool, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return false, nil
	}
	b, err := fieldVal.Bool()
	if err != nil {
		return false, &CompileError{
			Field:   field,
			Message: "must be a bool",
			Pos:     fieldVal.Pos(),
		}
	}
	return b, nil
}

func stringList(v cue.Value, field string) ([]string, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return nil, nil
	}

	iter, err := fieldVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

func literalList(v cue.Value, field string) ([]any, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return nil, nil
	}

	iter, err := fieldVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []any
	for iter.Next() {
		value, err := literalValue(iter.Value(), field)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}

// literalValue decodes a scalar literal. Null decodes to nil.
func literalValue(v cue.Value, field string) (any, error) {
	switch v.Kind() {
	case cue.NullKind:
		return nil, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return b, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return s, nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return n, nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return f, nil
	default:
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("unsupported literal kind: %v", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}
