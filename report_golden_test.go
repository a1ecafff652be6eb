package schemacov_test

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schemacov"
	"github.com/roach88/schemacov/internal/schematest"
)

// TestReportGolden pins the full report shape: field naming, gap ordering,
// path encoding, and the human summary. Regenerate with:
//
//	go test . -update
func TestReportGolden(t *testing.T) {
	registry := schemacov.NewRegistry(
		schemacov.WithTokenGenerator(schemacov.NewFixedTokenGenerator("trace-0001")),
	)

	grand := schematest.New()
	extra := schematest.New().AddKey("child", grand)
	role := schematest.New().WithValids("admin", "user").WithInvalids(nil)
	name := schematest.New().WithRules("min")
	root := schematest.New().
		AddKey("name", name).
		AddKey("role", role).
		AddKey("extra", extra)

	store := registry.Register(root, schemacov.Location{Filename: "schemas/user.cue", Line: 42})
	store.Entry(root)
	store.Entry(name)
	store.LogRuleOutcome("min", schemacov.OutcomeError, name)
	store.Entry(role)
	store.RecordValue(schemacov.Valids, "admin", role)

	report := registry.Report("")
	require.NotNil(t, report)

	data, err := json.MarshalIndent(report, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report", data)
}
