package schemacov_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schemacov"
	"github.com/roach88/schemacov/internal/schematest"
)

func register(t *testing.T, root schemacov.Node) (*schemacov.Registry, *schemacov.Store) {
	t.Helper()
	registry := schemacov.NewRegistry()
	store := registry.Register(root, schemacov.Location{Filename: "store_test.cue", Line: 1})
	return registry, store
}

func TestScanDiscoversAllNodesInOrder(t *testing.T) {
	leaf := schematest.New()
	nested := schematest.New().AddKey("leaf", leaf)
	root := schematest.New().
		AddKey("first", schematest.New()).
		AddKey("second", nested)

	_, store := register(t, root)

	snapshots := store.Snapshots()
	require.Len(t, snapshots, 4)

	// Depth-first discovery order, root first with the empty path.
	assert.Same(t, root, snapshots[0].Node)
	assert.Empty(t, snapshots[0].Paths)

	var paths []string
	for _, snapshot := range snapshots[1:] {
		require.Len(t, snapshot.Paths, 1)
		paths = append(paths, snapshot.Paths[0].String())
	}
	assert.Equal(t, []string{"first", "second", "second.leaf"}, paths)
}

func TestSharedNodeProducesSingleLogWithMergedPaths(t *testing.T) {
	shared := schematest.New().WithRules("len")
	left := schematest.New().AddKey("common", shared)
	right := schematest.New().AddKey("common", shared)
	root := schematest.New().
		AddKey("left", left).
		AddKey("right", right)

	_, store := register(t, root)

	snapshots := store.Snapshots()
	require.Len(t, snapshots, 4) // root, left, shared, right: one log for shared

	var sharedPaths []string
	seen := 0
	for _, snapshot := range snapshots {
		if snapshot.Node == schemacov.Node(shared) {
			seen++
			for _, p := range snapshot.Paths {
				sharedPaths = append(sharedPaths, p.String())
			}
		}
	}
	require.Equal(t, 1, seen, "shared node must have exactly one coverage log")
	assert.Equal(t, []string{"left.common", "right.common"}, sharedPaths)
}

func TestScanMergesDuplicateRoutes(t *testing.T) {
	// The same node attached twice under the same parent with the same name
	// is one structural route, recorded once.
	child := schematest.New()
	root := schematest.New().AddKey("dup", child)
	root.AddRef(schemacov.ChildRef{Node: child, Source: schemacov.SourceKeys, Name: "dup"})

	_, store := register(t, root)

	snapshots := store.Snapshots()
	require.Len(t, snapshots, 2)
	require.Len(t, snapshots[1].Paths, 1)
	assert.Equal(t, "dup", snapshots[1].Paths[0].String())
}

func TestInstrumentationWithUnknownNodePanics(t *testing.T) {
	root := schematest.New().AddKey("a", schematest.New())
	_, store := register(t, root)

	stranger := schematest.New()

	assert.Panics(t, func() { store.Entry(stranger) })
	assert.Panics(t, func() { store.LogRuleOutcome("min", schemacov.OutcomeError, stranger) })
	assert.Panics(t, func() { store.RecordValue(schemacov.Valids, "x", stranger) })
}

func TestScanPanicsOnIdentifierCollision(t *testing.T) {
	root := schematest.New().
		AddKey("dup", schematest.New()).
		AddKey("dup", schematest.New())

	registry := schemacov.NewRegistry()
	assert.Panics(t, func() {
		registry.Register(root, schemacov.Location{Filename: "collision.cue"})
	})
}

func TestTermsOrdinalsKeepAlternativesDistinct(t *testing.T) {
	root := schematest.New().
		AddTerm("terms", schematest.New()).
		AddTerm("terms", schematest.New())

	_, store := register(t, root)

	snapshots := store.Snapshots()
	require.Len(t, snapshots, 3)
	assert.Equal(t, "@terms[0]", snapshots[1].Paths[0].String())
	assert.Equal(t, "@terms[1]", snapshots[2].Paths[0].String())
}
