package schemacov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNode is a minimal Node for exercising the resolver without pulling in
// the schematest builder (which would create an import cycle here).
type fakeNode struct {
	id  string
	key string
}

func (n *fakeNode) Children() []ChildRef { return nil }
func (n *fakeNode) Rules() []string      { return nil }
func (n *fakeNode) HasDefault() bool     { return false }
func (n *fakeNode) HasFailover() bool    { return false }
func (n *fakeNode) Valids() []any        { return nil }
func (n *fakeNode) Invalids() []any      { return nil }
func (n *fakeNode) ID() string           { return n.id }
func (n *fakeNode) Key() string          { return n.key }

func TestResolveSegmentPriority(t *testing.T) {
	tests := []struct {
		name string
		ref  ChildRef
		want Segment
	}{
		{
			name: "explicit_id_wins",
			ref: ChildRef{
				Node:   &fakeNode{id: "custom", key: "prop"},
				Source: SourceKeys,
				Name:   "prop",
			},
			want: Segment{Name: "custom"},
		},
		{
			name: "key_flag_when_no_id",
			ref: ChildRef{
				Node:   &fakeNode{key: "prop"},
				Source: SourceKeys,
				Name:   "prop",
			},
			want: Segment{Name: "prop"},
		},
		{
			name: "synthesized_name",
			ref: ChildRef{
				Node:   &fakeNode{},
				Source: SourceItems,
				Name:   "items",
			},
			want: Segment{Name: "@items"},
		},
		{
			name: "terms_keep_ordinal",
			ref: ChildRef{
				Node:   &fakeNode{},
				Source: SourceTerms,
				Name:   "terms",
				Index:  2,
			},
			want: Segment{Name: "@terms", Index: 2, Positional: true},
		},
		{
			name: "id_wins_even_for_terms",
			ref: ChildRef{
				Node:   &fakeNode{id: "branch"},
				Source: SourceTerms,
				Name:   "terms",
				Index:  1,
			},
			want: Segment{Name: "branch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveSegment(tt.ref))
		})
	}
}

func TestPathExtends(t *testing.T) {
	a := Segment{Name: "a"}
	b := Segment{Name: "b"}
	term0 := Segment{Name: "@terms", Index: 0, Positional: true}
	term1 := Segment{Name: "@terms", Index: 1, Positional: true}

	tests := []struct {
		name   string
		path   Path
		prefix Path
		want   bool
	}{
		{"strict_extension", Path{a, b}, Path{a}, true},
		{"equal_is_not_extension", Path{a}, Path{a}, false},
		{"diverging_head", Path{b, a}, Path{a}, false},
		{"shorter_than_prefix", Path{a}, Path{a, b}, false},
		{"empty_prefix", Path{a}, Path{}, true},
		{"positional_match", Path{term0, a}, Path{term0}, true},
		{"positional_mismatch", Path{term1, a}, Path{term0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.extends(tt.prefix))
		})
	}
}

func TestPathChildDoesNotAliasParent(t *testing.T) {
	base := Path{Segment{Name: "a"}}
	left := base.child(Segment{Name: "left"})
	right := base.child(Segment{Name: "right"})

	require.Equal(t, "a.left", left.String())
	require.Equal(t, "a.right", right.String())
	require.Equal(t, "a", base.String())
}
