package schemacov

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Segment is one step in a coverage path. Plain segments carry only a name.
// Positional segments additionally carry the ordinal of an alternative inside
// an ordered term list; they render as "name[index]" and marshal as a
// [name, index] pair.
type Segment struct {
	Name       string
	Index      int
	Positional bool
}

func (s Segment) String() string {
	if s.Positional {
		return fmt.Sprintf("%s[%d]", s.Name, s.Index)
	}
	return s.Name
}

// MarshalJSON emits plain segments as a bare string and positional segments
// as a two-element [name, index] array.
func (s Segment) MarshalJSON() ([]byte, error) {
	if s.Positional {
		return json.Marshal([2]any{s.Name, s.Index})
	}
	return json.Marshal(s.Name)
}

// Path is the ordered sequence of segments from a schema root to a node. The
// root itself has the empty path.
type Path []Segment

// String renders the path dot-style, e.g. "contact.@email" or "@union[1].id".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// Equal reports segment-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// extends reports whether p is a strict structural extension of prefix.
func (p Path) extends(prefix Path) bool {
	if len(p) <= len(prefix) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// child returns a new path with seg appended. The receiver is never aliased:
// paths recorded in coverage logs must stay immutable while the scan keeps
// extending its working path.
func (p Path) child(seg Segment) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, seg)
}
