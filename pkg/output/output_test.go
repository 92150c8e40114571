package output_test

import (
	"bytes"
	"testing"

	"github.com/cadence-sf/sfstage/pkg/authors"
	"github.com/cadence-sf/sfstage/pkg/changeset"
	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/output"
	"github.com/cadence-sf/sfstage/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRun(t *testing.T) {
	result := &changeset.Result{
		RunID: "run-1",
		Mode:  changeset.ModeRevisionRange,
		Units: []changeset.UnitResult{
			{Name: "Branding", Representation: types.RepDirectoryBacked},
			{Name: "Ghost", Representation: types.RepDirectoryBacked,
				Err: errors.New(errors.ErrMissingSource, "no descriptor")},
		},
		Promoted: []string{"Branding.resource", "Branding.resource-meta.xml"},
	}

	var buf bytes.Buffer
	require.NoError(t, output.NewRenderer(&buf, true).RenderRun(result))

	out := buf.String()
	assert.Contains(t, out, "Run run-1 (revision-range)")
	assert.Contains(t, out, "Branding staged")
	assert.Contains(t, out, "Ghost failed")
	assert.Contains(t, out, "no descriptor")
	assert.Contains(t, out, "2 file(s) promoted")
}

func TestRenderRunNothingPromoted(t *testing.T) {
	result := &changeset.Result{RunID: "run-2", Mode: changeset.ModeFullSnapshot}

	var buf bytes.Buffer
	require.NoError(t, output.NewRenderer(&buf, true).RenderRun(result))
	assert.NotContains(t, buf.String(), "promoted")
}

func TestRenderAuthors(t *testing.T) {
	report := []authors.Activity{
		{Branch: "master", Date: "2026-03-01"},
		{Branch: "feature-x", Date: "2026-07-15", Latest: true},
		{Branch: "feature-y", Date: authors.NoActivity},
	}

	var buf bytes.Buffer
	require.NoError(t, output.NewRenderer(&buf, true).RenderAuthors(report))

	out := buf.String()
	assert.Contains(t, out, "  master 2026-03-01")
	assert.Contains(t, out, "★ feature-x 2026-07-15 <-- LATEST")
	assert.Contains(t, out, "  feature-y NA")
}

func TestRenderScanSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewRenderer(&buf, true).RenderScanSummary("report.csv", 7))
	assert.Contains(t, buf.String(), "Found 7 entries in report.csv")
}
