package schematest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schemacov"
	"github.com/roach88/schemacov/internal/schematest"
)

func TestBuilderSetsDeclarations(t *testing.T) {
	node := schematest.New().
		WithID("custom").
		WithRules("min", "max").
		WithDefault().
		WithFailover().
		WithValids("a", 1).
		WithInvalids(nil)

	assert.Equal(t, "custom", node.ID())
	assert.Equal(t, []string{"min", "max"}, node.Rules())
	assert.True(t, node.HasDefault())
	assert.True(t, node.HasFailover())
	assert.Equal(t, []any{"a", 1}, node.Valids())
	assert.Equal(t, []any{nil}, node.Invalids())
}

func TestAddKeySetsChildKeyFlag(t *testing.T) {
	child := schematest.New()
	parent := schematest.New().AddKey("name", child)

	refs := parent.Children()
	require.Len(t, refs, 1)
	assert.Equal(t, schemacov.SourceKeys, refs[0].Source)
	assert.Equal(t, "name", refs[0].Name)
	assert.Equal(t, "name", child.Key())
}

func TestOrderedChildrenGetOrdinals(t *testing.T) {
	parent := schematest.New().
		AddItem("items", schematest.New()).
		AddTerm("terms", schematest.New()).
		AddTerm("terms", schematest.New())

	refs := parent.Children()
	require.Len(t, refs, 3)
	assert.Equal(t, schemacov.SourceItems, refs[0].Source)
	assert.Equal(t, 0, refs[0].Index)
	assert.Equal(t, schemacov.SourceTerms, refs[1].Source)
	assert.Equal(t, 0, refs[1].Index)
	assert.Equal(t, 1, refs[2].Index)
}

func TestAddRefAppendsVerbatim(t *testing.T) {
	shared := schematest.New()
	ref := schemacov.ChildRef{Node: shared, Source: schemacov.SourceKeys, Name: "dup"}
	parent := schematest.New().AddRef(ref).AddRef(ref)

	refs := parent.Children()
	require.Len(t, refs, 2)
	assert.Equal(t, refs[0], refs[1])
}
