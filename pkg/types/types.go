package types

// PathKind is the representation hint inferred from a changed path's suffix.
type PathKind int

const (
	KindUnknown PathKind = iota
	KindDirectory
	KindSingleFile
	KindMetaDescriptor
)

// String returns the kind name for logging.
func (k PathKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindSingleFile:
		return "single-file"
	case KindMetaDescriptor:
		return "meta-descriptor"
	default:
		return "unknown"
	}
}

// ChangedPath is a single path reported as added or modified between two
// revisions, tagged with the unit it belongs to and its representation hint.
// Produced fresh per pipeline run, never persisted.
type ChangedPath struct {
	RawPath  string
	UnitName string
	Kind     PathKind
}

// Representation is the resolved physical form of a resource unit.
type Representation int

const (
	RepUnresolved Representation = iota
	RepDirectoryBacked
	RepSingleFileBacked
)

func (r Representation) String() string {
	switch r {
	case RepDirectoryBacked:
		return "directory-backed"
	case RepSingleFileBacked:
		return "single-file-backed"
	default:
		return "unresolved"
	}
}

// ResourceUnit is the logical static-resource entity being packaged.
// A unit has at most one representation at any time; the conflict pass
// enforces that invariant against the live tree and the staging area.
type ResourceUnit struct {
	Name           string
	Representation Representation

	// StagedPaths records staging-area paths already materialized for this
	// unit during the current run, so a second assembly pass is a no-op.
	StagedPaths map[string]struct{}
}

// NewResourceUnit creates an unresolved unit with the given name.
func NewResourceUnit(name string) *ResourceUnit {
	return &ResourceUnit{
		Name:        name,
		StagedPaths: make(map[string]struct{}),
	}
}

// MarkStaged records a staging path written for this unit.
func (u *ResourceUnit) MarkStaged(path string) {
	if u.StagedPaths == nil {
		u.StagedPaths = make(map[string]struct{})
	}
	u.StagedPaths[path] = struct{}{}
}

// IsStaged reports whether the unit already wrote its artifact this run.
func (u *ResourceUnit) IsStaged() bool {
	return len(u.StagedPaths) > 0
}
