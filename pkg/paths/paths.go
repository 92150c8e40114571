// Package paths centralizes the directory layout contract shared with the
// downstream deployment process. The source tree, staging area and
// deployable directory names must match what that process expects, so
// everything layout-related lives here rather than scattered at call sites.
package paths

import (
	"path/filepath"
)

const (
	// StaticResourceRoot is the metadata root holding static resources.
	StaticResourceRoot = "src/staticresources"

	// DeployRoot is the deployable directory consumed by the deployment job.
	DeployRoot = "changeSetDeploy/src/staticresources"

	// StagingRoot is the parent of per-target staging areas.
	StagingRoot = "changeSetStaging"

	// ResourceSuffix is the single-file resource suffix, and also the
	// extension directory archives are renamed to on promotion.
	ResourceSuffix = ".resource"

	// DescriptorSuffix is the metadata descriptor suffix.
	DescriptorSuffix = ".resource-meta.xml"

	// ArchiveSuffix is the generic container extension used inside staging.
	ArchiveSuffix = ".zip"

	// FullSnapshotRevision is the sentinel revision selecting full-snapshot
	// mode (a fresh or full-deploy baseline with no prior revision).
	FullSnapshotRevision = "FD"

	// SrcClassesDir and ChangesetClassesDir are the Apex class trees
	// scanned for hardcoded literals.
	SrcClassesDir       = "src/classes"
	ChangesetClassesDir = "changeSetDeploy/src/classes"
)

// Layout binds the contract to a concrete repository root. Roots are
// relative to the repository unless a config overrides them.
type Layout struct {
	MetadataRoot string
	StagingBase  string
	DeployDir    string
}

// DefaultLayout returns the layout rooted at the given repository path.
func DefaultLayout(repoRoot string) Layout {
	return Layout{
		MetadataRoot: filepath.Join(repoRoot, StaticResourceRoot),
		StagingBase:  filepath.Join(repoRoot, StagingRoot),
		DeployDir:    filepath.Join(repoRoot, DeployRoot),
	}
}

// StagingDir returns the staging area for one target label. Each target
// owns exactly one staging area; concurrent runs against the same target
// are serialized by the invoking scheduler.
func (l Layout) StagingDir(target string) string {
	return filepath.Join(l.StagingBase, target)
}

// UnitDir returns the source directory of a directory-backed unit.
func (l Layout) UnitDir(name string) string {
	return filepath.Join(l.MetadataRoot, name)
}

// UnitFile returns the source path of a single-file unit.
func (l Layout) UnitFile(name string) string {
	return filepath.Join(l.MetadataRoot, name+ResourceSuffix)
}

// DescriptorFile returns the source path of a unit's descriptor.
func (l Layout) DescriptorFile(name string) string {
	return filepath.Join(l.MetadataRoot, name+DescriptorSuffix)
}
