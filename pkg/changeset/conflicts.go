package changeset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/paths"
	"github.com/cadence-sf/sfstage/pkg/types"
)

// Validate checks the full unit set before any artifact is written:
//
//  1. a unit must not exist as both a directory and a single-file
//     resource in the live source tree,
//  2. a unit must not have both an archived and a single-file artifact
//     in the staging area,
//  3. a unit still unresolved after classification is a descriptor with
//     no backing content.
//
// All offenders are reported in one error, sorted by unit name, so an
// operator can fix the whole set at once.
func Validate(fsys types.FS, layout paths.Layout, stagingDir string, units map[string]*types.ResourceUnit) error {
	var offenders []string

	names := make([]string, 0, len(units))
	for name := range units {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		unit := units[name]

		if filesystem.DirExists(fsys, layout.UnitDir(name)) &&
			filesystem.FileExists(fsys, layout.UnitFile(name)) {
			offenders = append(offenders,
				fmt.Sprintf("%s: both a directory and a single-file resource exist in the source tree", name))
		}

		if filesystem.FileExists(fsys, stagedArchive(stagingDir, name)) &&
			filesystem.FileExists(fsys, stagedSingleFile(stagingDir, name)) {
			offenders = append(offenders,
				fmt.Sprintf("%s: both an archive and a single-file artifact exist in staging", name))
		}

		if unit.Representation == types.RepUnresolved {
			offenders = append(offenders,
				fmt.Sprintf("%s: descriptor present but no backing content found", name))
		}
	}

	if len(offenders) == 0 {
		return nil
	}

	return errors.Newf(errors.ErrConflict,
		"conflicting resource units: %s", strings.Join(offenders, "; ")).
		WithDetail("offenders", offenders).
		WithDetail("phase", "validate")
}
