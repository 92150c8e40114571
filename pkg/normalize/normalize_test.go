package normalize_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sharedLabelsXML = `<?xml version="1.0" encoding="UTF-8"?>
<CustomLabels xmlns="http://soap.sforce.com/2006/04/metadata">
    <labels>
        <fullName>Greeting</fullName>
        <value>Hello</value>
    </labels>
    <labels>
        <fullName>Farewell</fullName>
        <value>Bye</value>
    </labels>
</CustomLabels>`

func writeTree(t *testing.T, base string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(base, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestLoadRulesDefaults(t *testing.T) {
	rules, err := normalize.LoadRules(filesystem.NewOS(), "")
	require.NoError(t, err)
	assert.Equal(t, "CustomSettingData", rules.RenameMap["customSettings"])
	assert.True(t, rules.LabelMerge.Enabled)
	assert.Equal(t, "commonLabel", rules.LabelMerge.SourceFolder)
}

func TestLoadRulesFromFile(t *testing.T) {
	tempDir := t.TempDir()
	rulePath := filepath.Join(tempDir, "rules.yaml")
	content := `rename_map:
  labels: customLabel
label_merge:
  enabled: false
`
	require.NoError(t, os.WriteFile(rulePath, []byte(content), 0644))

	rules, err := normalize.LoadRules(filesystem.NewOS(), rulePath)
	require.NoError(t, err)
	assert.Equal(t, "customLabel", rules.RenameMap["labels"])
	assert.False(t, rules.LabelMerge.Enabled)
}

func TestLoadRulesInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	rulePath := filepath.Join(tempDir, "rules.yaml")
	require.NoError(t, os.WriteFile(rulePath, []byte("rename_map: ["), 0644))

	_, err := normalize.LoadRules(filesystem.NewOS(), rulePath)
	assert.Error(t, err)
}

func TestApplyRenameMapRecursive(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"customSettings/A.object":         "a",
		"env/sbx/customSettings/B.object": "b",
		"env/sbx/objects/Account.object":  "o",
	})

	rules := normalize.DefaultRules()
	require.NoError(t, normalize.ApplyRenameMap(filesystem.NewOS(), base, rules.RenameMap))

	assert.FileExists(t, filepath.Join(base, "CustomSettingData", "A.object"))
	assert.FileExists(t, filepath.Join(base, "env", "sbx", "CustomSettingData", "B.object"))
	assert.NoDirExists(t, filepath.Join(base, "customSettings"))
	assert.NoDirExists(t, filepath.Join(base, "env", "sbx", "customSettings"))
	assert.FileExists(t, filepath.Join(base, "env", "sbx", "objects", "Account.object"))
}

func TestApplyRenameMapMergesIntoExistingTarget(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"customSettings/New.object":     "new",
		"CustomSettingData/Kept.object": "kept",
	})

	require.NoError(t, normalize.ApplyRenameMap(filesystem.NewOS(), base,
		map[string]string{"customSettings": "CustomSettingData"}))

	assert.FileExists(t, filepath.Join(base, "CustomSettingData", "Kept.object"))
	assert.FileExists(t, filepath.Join(base, "CustomSettingData", "New.object"))
	assert.NoDirExists(t, filepath.Join(base, "customSettings"))
}

func TestMergeCustomLabelsIntoFreshTarget(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"commonLabel/CustomLabels.labels": sharedLabelsXML,
	})

	require.NoError(t, normalize.MergeCustomLabels(filesystem.NewOS(), base,
		normalize.DefaultRules().LabelMerge))

	data, err := os.ReadFile(filepath.Join(base, "labels", "CustomLabels.labels"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "<fullName>Greeting</fullName>")
	assert.Contains(t, text, "<fullName>Farewell</fullName>")
	assert.Contains(t, text, "http://soap.sforce.com/2006/04/metadata")
	assert.NoDirExists(t, filepath.Join(base, "commonLabel"))
}

func TestMergeCustomLabelsDedupes(t *testing.T) {
	base := t.TempDir()
	existing := `<?xml version="1.0" encoding="UTF-8"?>
<CustomLabels xmlns="http://soap.sforce.com/2006/04/metadata">
    <labels>
        <fullName>Greeting</fullName>
        <value>Hello</value>
    </labels>
</CustomLabels>`
	writeTree(t, base, map[string]string{
		"commonLabel/CustomLabels.labels": sharedLabelsXML,
		"labels/CustomLabels.labels":      existing,
	})

	require.NoError(t, normalize.MergeCustomLabels(filesystem.NewOS(), base,
		normalize.DefaultRules().LabelMerge))

	data, err := os.ReadFile(filepath.Join(base, "labels", "CustomLabels.labels"))
	require.NoError(t, err)
	text := string(data)
	assert.Equal(t, 1, strings.Count(text, "<fullName>Greeting</fullName>"))
	assert.Equal(t, 1, strings.Count(text, "<fullName>Farewell</fullName>"))
}

func TestMergeCustomLabelsMissingSource(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, normalize.MergeCustomLabels(filesystem.NewOS(), base,
		normalize.DefaultRules().LabelMerge))
	assert.NoFileExists(t, filepath.Join(base, "labels", "CustomLabels.labels"))
}

func TestMergeCustomLabelsDisabled(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"commonLabel/CustomLabels.labels": sharedLabelsXML,
	})

	rule := normalize.DefaultRules().LabelMerge
	rule.Enabled = false
	require.NoError(t, normalize.MergeCustomLabels(filesystem.NewOS(), base, rule))
	assert.DirExists(t, filepath.Join(base, "commonLabel"))
}

func TestApplyRunsBothStages(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"customSettings/A.object":         "a",
		"commonLabel/CustomLabels.labels": sharedLabelsXML,
	})

	require.NoError(t, normalize.Apply(filesystem.NewOS(), base, normalize.DefaultRules()))
	assert.DirExists(t, filepath.Join(base, "CustomSettingData"))
	assert.FileExists(t, filepath.Join(base, "labels", "CustomLabels.labels"))
	assert.NoDirExists(t, filepath.Join(base, "commonLabel"))
}
