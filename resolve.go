package schemacov

// resolveSegment derives the stable identifier segment for a child reference.
//
// Priority order:
//  1. the child's explicit identifier flag, verbatim
//  2. the child's structural key flag (object property name)
//  3. a synthesized "@" + name
//
// Children reached through an ordered term list keep their ordinal so that
// same-named alternatives at different positions resolve to distinct
// segments.
func resolveSegment(ref ChildRef) Segment {
	if id := ref.Node.ID(); id != "" {
		return Segment{Name: id}
	}
	if key := ref.Node.Key(); key != "" {
		return Segment{Name: key}
	}
	name := "@" + ref.Name
	if ref.Source == SourceTerms {
		return Segment{Name: name, Index: ref.Index, Positional: true}
	}
	return Segment{Name: name}
}
