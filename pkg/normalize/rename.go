package normalize

import (
	"path/filepath"
	"sort"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/types"
)

// ApplyRenameMap renames matching directories anywhere under basePath.
// Children are processed before their parents so a rename never breaks
// the traversal. When the target name already exists next to the source,
// the source's content is moved into it and the source is dropped.
func ApplyRenameMap(fsys types.FS, basePath string, renameMap map[string]string) error {
	if len(renameMap) == 0 {
		return nil
	}

	// Deterministic rule order
	olds := make([]string, 0, len(renameMap))
	for old := range renameMap {
		olds = append(olds, old)
	}
	sort.Strings(olds)

	for _, old := range olds {
		if err := renameUnder(fsys, basePath, old, renameMap[old]); err != nil {
			return err
		}
	}
	return nil
}

func renameUnder(fsys types.FS, dir, old, replacement string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := renameUnder(fsys, path, old, replacement); err != nil {
			return err
		}
		if entry.Name() != old {
			continue
		}

		target := filepath.Join(dir, replacement)
		if filesystem.Exists(fsys, target) {
			if err := mergeInto(fsys, path, target); err != nil {
				return err
			}
			continue
		}
		if err := fsys.Rename(path, target); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess,
				"failed to rename %s to %s", path, target)
		}
	}
	return nil
}

func mergeInto(fsys types.FS, srcDir, destDir string) error {
	entries, err := fsys.ReadDir(srcDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", srcDir)
	}
	for _, entry := range entries {
		from := filepath.Join(srcDir, entry.Name())
		to := filepath.Join(destDir, entry.Name())
		if err := fsys.Rename(from, to); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess,
				"failed to move %s into %s", from, destDir)
		}
	}
	if err := fsys.RemoveAll(srcDir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to remove merged folder %s", srcDir)
	}
	return nil
}
