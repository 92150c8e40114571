package changeset

import (
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/paths"
	"github.com/cadence-sf/sfstage/pkg/types"
)

// Classify groups changed paths into logical resource units and merges
// their representation hints. A directory hint always wins; a
// single-file hint only fills an unresolved slot; a descriptor hint
// only materializes the unit, leaving its representation for
// ResolveDescriptors to settle against the source tree.
func Classify(changes []types.ChangedPath) map[string]*types.ResourceUnit {
	units := make(map[string]*types.ResourceUnit)

	for _, cp := range changes {
		unit, ok := units[cp.UnitName]
		if !ok {
			unit = types.NewResourceUnit(cp.UnitName)
			units[cp.UnitName] = unit
		}

		switch cp.Kind {
		case types.KindDirectory:
			unit.Representation = types.RepDirectoryBacked
		case types.KindSingleFile:
			if unit.Representation == types.RepUnresolved {
				unit.Representation = types.RepSingleFileBacked
			}
		}
	}

	return units
}

// ResolveDescriptors settles units that were only seen via a descriptor
// change by probing the live source tree: a same-named directory wins,
// then a same-named single-file resource. Units with neither stay
// unresolved and fail validation.
func ResolveDescriptors(fsys types.FS, layout paths.Layout, units map[string]*types.ResourceUnit) {
	for _, unit := range units {
		if unit.Representation != types.RepUnresolved {
			continue
		}
		if filesystem.DirExists(fsys, layout.UnitDir(unit.Name)) {
			unit.Representation = types.RepDirectoryBacked
			continue
		}
		if filesystem.FileExists(fsys, layout.UnitFile(unit.Name)) {
			unit.Representation = types.RepSingleFileBacked
		}
	}
}
