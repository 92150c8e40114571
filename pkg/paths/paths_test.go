package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/cadence-sf/sfstage/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLayout(t *testing.T) {
	l := paths.DefaultLayout("/repo")

	assert.Equal(t, filepath.Join("/repo", "src", "staticresources"), l.MetadataRoot)
	assert.Equal(t, filepath.Join("/repo", "changeSetStaging"), l.StagingBase)
	assert.Equal(t, filepath.Join("/repo", "changeSetDeploy", "src", "staticresources"), l.DeployDir)
}

func TestLayoutPaths(t *testing.T) {
	l := paths.DefaultLayout("/repo")

	assert.Equal(t, filepath.Join("/repo", "changeSetStaging", "UAT"), l.StagingDir("UAT"))
	assert.Equal(t, filepath.Join("/repo", "src", "staticresources", "Branding"), l.UnitDir("Branding"))
	assert.Equal(t, filepath.Join("/repo", "src", "staticresources", "Branding.resource"), l.UnitFile("Branding"))
	assert.Equal(t, filepath.Join("/repo", "src", "staticresources", "Branding.resource-meta.xml"), l.DescriptorFile("Branding"))
}
