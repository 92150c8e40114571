package changeset

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/git"
	"github.com/cadence-sf/sfstage/pkg/paths"
	"github.com/cadence-sf/sfstage/pkg/types"
)

// Mode selects how the set of changed paths is produced.
type Mode int

const (
	// ModeRevisionRange diffs two revisions.
	ModeRevisionRange Mode = iota
	// ModeFullSnapshot treats every unit under the static-resource root as
	// changed; used when no meaningful prior revision exists.
	ModeFullSnapshot
)

func (m Mode) String() string {
	if m == ModeFullSnapshot {
		return "full-snapshot"
	}
	return "revision-range"
}

// DiffSource produces the changed-path listing for one run.
type DiffSource struct {
	Git git.Client
	FS  types.FS

	// MetadataDir is the absolute static-resource root, enumerated in
	// full-snapshot mode.
	MetadataDir string

	// RelRoot is the same root relative to the repository, used as the git
	// pathspec and stripped from reported paths.
	RelRoot string
}

// ListChanges returns every unit-relevant changed path exactly once,
// sorted by raw path for reproducible logs.
func (s *DiffSource) ListChanges(mode Mode, revA, revB string) ([]types.ChangedPath, error) {
	if mode == ModeFullSnapshot {
		return s.snapshot()
	}
	return s.revisionRange(revA, revB)
}

func (s *DiffSource) snapshot() ([]types.ChangedPath, error) {
	entries, err := s.FS.ReadDir(s.MetadataDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound,
			"static-resource root %s not readable", s.MetadataDir)
	}

	var changes []types.ChangedPath
	for _, entry := range entries {
		name := entry.Name()
		raw := filepath.ToSlash(filepath.Join(s.RelRoot, name))

		switch {
		case entry.IsDir():
			changes = append(changes, types.ChangedPath{RawPath: raw, UnitName: name, Kind: types.KindDirectory})
		case strings.HasSuffix(name, paths.DescriptorSuffix):
			unit := strings.TrimSuffix(name, paths.DescriptorSuffix)
			changes = append(changes, types.ChangedPath{RawPath: raw, UnitName: unit, Kind: types.KindMetaDescriptor})
		case strings.HasSuffix(name, paths.ResourceSuffix):
			unit := strings.TrimSuffix(name, paths.ResourceSuffix)
			changes = append(changes, types.ChangedPath{RawPath: raw, UnitName: unit, Kind: types.KindSingleFile})
		}
	}
	return changes, nil
}

func (s *DiffSource) revisionRange(revA, revB string) ([]types.ChangedPath, error) {
	rawPaths, err := s.Git.ChangedPaths(revA, revB, s.RelRoot)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var changes []types.ChangedPath
	for _, raw := range rawPaths {
		cp, ok := ClassifyPath(raw, s.RelRoot)
		if !ok {
			continue
		}
		// A directory unit may appear once per touched file; keep one entry
		// per (unit, kind).
		key := cp.UnitName + "\x00" + cp.Kind.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		changes = append(changes, cp)
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].RawPath < changes[j].RawPath })
	return changes, nil
}

// ClassifyPath turns one repo-relative changed path into a tagged
// ChangedPath. The descriptor suffix is checked before the resource
// suffix. Paths outside relRoot, or the root itself, report ok=false.
func ClassifyPath(rawPath, relRoot string) (types.ChangedPath, bool) {
	prefix := filepath.ToSlash(relRoot)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	rel := strings.TrimPrefix(filepath.ToSlash(rawPath), prefix)
	if rel == rawPath && prefix != "" {
		return types.ChangedPath{}, false
	}
	if rel == "" {
		return types.ChangedPath{}, false
	}

	// First path segment under the root names the unit
	first := rel
	if idx := strings.IndexByte(rel, '/'); idx >= 0 {
		first = rel[:idx]
	}

	cp := types.ChangedPath{RawPath: filepath.ToSlash(rawPath)}
	switch {
	case strings.HasSuffix(first, paths.DescriptorSuffix):
		cp.UnitName = strings.TrimSuffix(first, paths.DescriptorSuffix)
		cp.Kind = types.KindMetaDescriptor
	case strings.HasSuffix(first, paths.ResourceSuffix):
		cp.UnitName = strings.TrimSuffix(first, paths.ResourceSuffix)
		cp.Kind = types.KindSingleFile
	default:
		// Bare folder name: the directory itself is the unit
		cp.UnitName = first
		cp.Kind = types.KindDirectory
	}

	if cp.UnitName == "" {
		return types.ChangedPath{}, false
	}
	return cp, true
}
