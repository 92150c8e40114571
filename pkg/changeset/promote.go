package changeset

import (
	"path/filepath"
	"strings"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/paths"
	"github.com/cadence-sf/sfstage/pkg/types"
)

// Promote copies every staged artifact into the deployable directory,
// renaming the generic archive extension to the resource extension.
// The copy is additive: unrelated units already deployed stay untouched.
// Each file is fully written inside the staging area first and renamed
// across from there; staging and deploy share the repository filesystem,
// so the deployable directory never holds a partially copied artifact,
// even when a copy or rename is interrupted.
func Promote(fsys types.FS, stagingDir, deployDir string) ([]string, error) {
	if err := fsys.MkdirAll(deployDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create deployable directory %s", deployDir)
	}

	entries, err := fsys.ReadDir(stagingDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound,
			"staging area %s not readable", stagingDir)
	}

	var promoted []string
	for _, entry := range entries {
		if entry.IsDir() {
			// Transient work directories are removed during assembly; one
			// surviving here means an aborted earlier run, skip it.
			continue
		}

		name := entry.Name()
		destName := name
		if strings.HasSuffix(name, paths.ArchiveSuffix) {
			destName = strings.TrimSuffix(name, paths.ArchiveSuffix) + paths.ResourceSuffix
		}

		src := filepath.Join(stagingDir, name)
		tmp := filepath.Join(stagingDir, destName+".partial")
		dest := filepath.Join(deployDir, destName)

		if err := filesystem.CopyFile(fsys, src, tmp); err != nil {
			return promoted, errors.Wrapf(err, errors.ErrExternalTool,
				"failed to promote %s", name)
		}
		if err := fsys.Rename(tmp, dest); err != nil {
			// The temp never left staging; drop it so a later pass over the
			// staging area sees only real artifacts
			_ = fsys.Remove(tmp)
			return promoted, errors.Wrapf(err, errors.ErrExternalTool,
				"failed to finalize %s", destName)
		}
		promoted = append(promoted, destName)
	}

	return promoted, nil
}
