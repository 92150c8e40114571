// Package normalize reshapes metadata trees between the branch layout and
// the org-dump layout. Folder names and label files differ between the
// two; a rule file describes the mapping.
package normalize

import (
	"gopkg.in/yaml.v3"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/types"
)

// Rules drives one normalization pass.
type Rules struct {
	// RenameMap renames directories recursively, e.g.
	// customSettings -> CustomSettingData.
	RenameMap map[string]string `yaml:"rename_map"`

	LabelMerge LabelMergeRule `yaml:"label_merge"`
}

// LabelMergeRule folds the shared-label file into the standard
// CustomLabels location.
type LabelMergeRule struct {
	Enabled      bool   `yaml:"enabled"`
	SourceFolder string `yaml:"source_folder"`
	SourceFile   string `yaml:"source_file"`
	TargetFolder string `yaml:"target_folder"`
	TargetFile   string `yaml:"target_file"`

	// DedupeByText drops label blocks whose serialized form already
	// exists in the target.
	DedupeByText bool `yaml:"dedupe_by_text"`

	// DeleteSourceFolder removes the source folder once merged.
	DeleteSourceFolder bool `yaml:"delete_source_folder"`
}

// DefaultRules matches the layout differences seen across the orgs this
// tooling serves.
func DefaultRules() Rules {
	return Rules{
		RenameMap: map[string]string{
			"customSettings": "CustomSettingData",
		},
		LabelMerge: LabelMergeRule{
			Enabled:            true,
			SourceFolder:       "commonLabel",
			SourceFile:         "CustomLabels.labels",
			TargetFolder:       "labels",
			TargetFile:         "CustomLabels.labels",
			DedupeByText:       true,
			DeleteSourceFolder: true,
		},
	}
}

// Apply runs one full normalization pass over basePath: the recursive
// directory renames first, then the label merge, matching the order the
// dump build applies them in.
func Apply(fsys types.FS, basePath string, rules Rules) error {
	if err := ApplyRenameMap(fsys, basePath, rules.RenameMap); err != nil {
		return err
	}
	return MergeCustomLabels(fsys, basePath, rules.LabelMerge)
}

// LoadRules reads a YAML rule file. An empty path returns the defaults.
func LoadRules(fsys types.FS, path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return Rules{}, errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to read rule file %s", path)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, errors.Wrapf(err, errors.ErrConfigParse,
			"invalid rule file %s", path)
	}
	return rules, nil
}
