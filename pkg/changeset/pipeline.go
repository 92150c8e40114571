package changeset

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/git"
	"github.com/cadence-sf/sfstage/pkg/logging"
	"github.com/cadence-sf/sfstage/pkg/paths"
	"github.com/cadence-sf/sfstage/pkg/types"
)

// Options identifies one pipeline run.
type Options struct {
	// RevisionA is the older revision, or paths.FullSnapshotRevision to
	// select full-snapshot mode.
	RevisionA string
	// RevisionB is the newer revision; ignored in full-snapshot mode.
	RevisionB string
	// Target is the environment label owning the staging area.
	Target string
}

// UnitResult describes one unit's outcome for the run summary.
type UnitResult struct {
	Name           string
	Representation types.Representation
	Err            error
}

// Result summarizes a completed (or failed) run.
type Result struct {
	RunID    string
	Mode     Mode
	Units    []UnitResult
	Promoted []string
}

// Pipeline wires the stages together for one repository.
type Pipeline struct {
	FS       types.FS
	Git      git.Client
	Layout   paths.Layout
	RepoRoot string

	logger zerolog.Logger
}

// New creates a pipeline for the given repository.
func New(fsys types.FS, gitClient git.Client, repoRoot string, layout paths.Layout) *Pipeline {
	return &Pipeline{
		FS:       fsys,
		Git:      gitClient,
		Layout:   layout,
		RepoRoot: repoRoot,
		logger:   logging.GetLogger("pipeline"),
	}
}

// Run executes one full pipeline pass. On any error the deployable
// directory is left exactly as the last successful promotion left it;
// only the staging area may hold partial work, and it is recreated
// empty at the start of the next run.
func (p *Pipeline) Run(opts Options) (*Result, error) {
	if opts.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput, "target label must not be empty")
	}
	defer logging.LogDuration(time.Now(), "pipeline.run")

	mode := ModeRevisionRange
	if opts.RevisionA == paths.FullSnapshotRevision {
		mode = ModeFullSnapshot
	}

	result := &Result{
		RunID: uuid.NewString(),
		Mode:  mode,
	}

	logger := p.logger.With().
		Str("run_id", result.RunID).
		Str("target", opts.Target).
		Str("mode", mode.String()).
		Logger()
	logger.Info().
		Str("revisionA", opts.RevisionA).
		Str("revisionB", opts.RevisionB).
		Msg("Pipeline run started")

	stagingDir := p.Layout.StagingDir(opts.Target)
	if err := p.resetStaging(stagingDir); err != nil {
		return result, err
	}

	relRoot, err := filepath.Rel(p.RepoRoot, p.Layout.MetadataRoot)
	if err != nil {
		return result, errors.Wrap(err, errors.ErrInvalidInput, "metadata root outside repository")
	}

	source := &DiffSource{
		Git:         p.Git,
		FS:          p.FS,
		MetadataDir: p.Layout.MetadataRoot,
		RelRoot:     filepath.ToSlash(relRoot),
	}

	changes, err := source.ListChanges(mode, opts.RevisionA, opts.RevisionB)
	if err != nil {
		return result, err
	}
	logger.Info().Int("changedPaths", len(changes)).Msg("Changed paths listed")

	units := Classify(changes)
	ResolveDescriptors(p.FS, p.Layout, units)

	// Validation must fully precede any artifact write, so a
	// later-discovered conflict never forces a rollback.
	if err := Validate(p.FS, p.Layout, stagingDir, units); err != nil {
		logger.Error().Err(err).Msg("Conflict validation failed")
		return result, err
	}

	assembler := &Assembler{
		FS:         p.FS,
		Layout:     p.Layout,
		StagingDir: stagingDir,
		Logger:     logger,
	}

	names := make([]string, 0, len(units))
	for name := range units {
		names = append(names, name)
	}
	sort.Strings(names)

	var firstErr error
	for _, name := range names {
		unit := units[name]
		err := assembler.Assemble(unit)
		result.Units = append(result.Units, UnitResult{
			Name:           name,
			Representation: unit.Representation,
			Err:            err,
		})
		if err != nil {
			// Siblings already staged stay staged; the run still fails
			// before promotion.
			logger.Error().Err(err).Str("unit", name).Msg("Assembly failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return result, firstErr
	}

	promoted, err := Promote(p.FS, stagingDir, p.Layout.DeployDir)
	result.Promoted = promoted
	if err != nil {
		logger.Error().Err(err).Msg("Promotion failed")
		return result, err
	}

	// Staging is drained at run end; next run recreates it anyway
	if err := p.FS.RemoveAll(stagingDir); err != nil {
		logger.Warn().Err(err).Msg("Failed to drain staging area")
	}

	logger.Info().
		Int("units", len(result.Units)).
		Int("promoted", len(promoted)).
		Msg("Pipeline run completed")
	return result, nil
}

func (p *Pipeline) resetStaging(stagingDir string) error {
	if err := p.FS.RemoveAll(stagingDir); err != nil {
		return errors.Wrapf(err, errors.ErrExternalTool,
			"failed to reset staging area %s", stagingDir)
	}
	if err := p.FS.MkdirAll(stagingDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create staging area %s", stagingDir)
	}
	return nil
}
