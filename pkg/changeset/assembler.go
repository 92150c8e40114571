package changeset

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/cadence-sf/sfstage/pkg/archive"
	"github.com/cadence-sf/sfstage/pkg/descriptor"
	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/paths"
	"github.com/cadence-sf/sfstage/pkg/types"
)

func stagedArchive(stagingDir, name string) string {
	return filepath.Join(stagingDir, name+paths.ArchiveSuffix)
}

func stagedSingleFile(stagingDir, name string) string {
	return filepath.Join(stagingDir, name+paths.ResourceSuffix)
}

func stagedDescriptor(stagingDir, name string) string {
	return filepath.Join(stagingDir, name+paths.DescriptorSuffix)
}

// Assembler writes exactly one artifact per unit into the staging area.
type Assembler struct {
	FS         types.FS
	Layout     paths.Layout
	StagingDir string
	Logger     zerolog.Logger
}

// Assemble stages one resolved unit. Calling it twice for the same unit
// in the same run is a no-op; an artifact already present in staging
// (from an earlier classification pass this run) is also skipped.
func (a *Assembler) Assemble(unit *types.ResourceUnit) error {
	if unit.IsStaged() {
		return nil
	}

	archivePath := stagedArchive(a.StagingDir, unit.Name)
	filePath := stagedSingleFile(a.StagingDir, unit.Name)
	for _, artifact := range []string{archivePath, filePath} {
		if filesystem.FileExists(a.FS, artifact) {
			a.Logger.Debug().Str("unit", unit.Name).Str("artifact", artifact).
				Msg("Artifact already staged, skipping")
			unit.MarkStaged(artifact)
			return nil
		}
	}

	srcDescriptor := a.Layout.DescriptorFile(unit.Name)
	if !filesystem.FileExists(a.FS, srcDescriptor) {
		return errors.Newf(errors.ErrMissingSource,
			"unit %s has no descriptor at %s", unit.Name, srcDescriptor).
			WithDetail("unit", unit.Name).
			WithDetail("phase", "assemble")
	}

	// Well-formedness problems in the descriptor do not block staging;
	// the deployment target gives the authoritative verdict.
	if _, err := descriptor.Parse(a.FS, srcDescriptor); err != nil {
		a.Logger.Warn().Err(err).Str("unit", unit.Name).Msg("Descriptor failed validation")
	}

	switch unit.Representation {
	case types.RepDirectoryBacked:
		return a.assembleDirectory(unit)
	case types.RepSingleFileBacked:
		return a.assembleSingleFile(unit)
	default:
		return errors.Newf(errors.ErrInternal,
			"unit %s reached assembly unresolved", unit.Name)
	}
}

func (a *Assembler) assembleDirectory(unit *types.ResourceUnit) error {
	srcDir := a.Layout.UnitDir(unit.Name)
	if !filesystem.DirExists(a.FS, srcDir) {
		return errors.Newf(errors.ErrMissingSource,
			"unit %s: directory %s vanished before assembly", unit.Name, srcDir).
			WithDetail("unit", unit.Name).
			WithDetail("phase", "assemble")
	}

	workDir := filepath.Join(a.StagingDir, unit.Name)
	if err := filesystem.CopyDir(a.FS, srcDir, workDir); err != nil {
		return errors.Wrapf(err, errors.ErrMissingSource,
			"unit %s: failed to copy directory content", unit.Name).
			WithDetail("unit", unit.Name).
			WithDetail("phase", "assemble")
	}

	descPath := stagedDescriptor(a.StagingDir, unit.Name)
	if err := filesystem.CopyFile(a.FS, a.Layout.DescriptorFile(unit.Name), descPath); err != nil {
		return errors.Wrapf(err, errors.ErrMissingSource,
			"unit %s: failed to copy descriptor", unit.Name).
			WithDetail("unit", unit.Name).
			WithDetail("phase", "assemble")
	}

	archivePath := stagedArchive(a.StagingDir, unit.Name)
	if err := archive.CreateZip(workDir, archivePath); err != nil {
		return errors.Wrapf(err, errors.ErrExternalTool,
			"unit %s: archiving failed", unit.Name).
			WithDetail("unit", unit.Name).
			WithDetail("phase", "assemble")
	}

	// The raw directory was only needed to build the archive
	if err := a.FS.RemoveAll(workDir); err != nil {
		return errors.Wrapf(err, errors.ErrExternalTool,
			"unit %s: failed to drop staging work directory", unit.Name)
	}

	unit.MarkStaged(archivePath)
	unit.MarkStaged(descPath)
	a.Logger.Info().Str("unit", unit.Name).Str("artifact", archivePath).Msg("Unit archived")
	return nil
}

func (a *Assembler) assembleSingleFile(unit *types.ResourceUnit) error {
	srcFile := a.Layout.UnitFile(unit.Name)
	if !filesystem.FileExists(a.FS, srcFile) {
		return errors.Newf(errors.ErrMissingSource,
			"unit %s: file %s vanished before assembly", unit.Name, srcFile).
			WithDetail("unit", unit.Name).
			WithDetail("phase", "assemble")
	}

	filePath := stagedSingleFile(a.StagingDir, unit.Name)
	if err := filesystem.CopyFile(a.FS, srcFile, filePath); err != nil {
		return errors.Wrapf(err, errors.ErrMissingSource,
			"unit %s: failed to copy resource file", unit.Name).
			WithDetail("unit", unit.Name).
			WithDetail("phase", "assemble")
	}

	descPath := stagedDescriptor(a.StagingDir, unit.Name)
	if err := filesystem.CopyFile(a.FS, a.Layout.DescriptorFile(unit.Name), descPath); err != nil {
		return errors.Wrapf(err, errors.ErrMissingSource,
			"unit %s: failed to copy descriptor", unit.Name).
			WithDetail("unit", unit.Name).
			WithDetail("phase", "assemble")
	}

	unit.MarkStaged(filePath)
	unit.MarkStaged(descPath)
	a.Logger.Info().Str("unit", unit.Name).Str("artifact", filePath).Msg("Unit staged")
	return nil
}
