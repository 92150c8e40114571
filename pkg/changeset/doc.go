// Package changeset implements the static-resource change-set pipeline:
// listing changed paths between two revisions (or a full snapshot),
// grouping them into logical resource units, validating that no unit has
// two physical representations, assembling each unit into a deployable
// artifact inside a per-target staging area, and promoting finished
// artifacts into the deployable directory.
//
// Stages run strictly in that order; only promotion writes to the
// deployable directory, so a failed run never leaves it partially
// updated.
package changeset
