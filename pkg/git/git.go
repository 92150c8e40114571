// Package git wraps the version-control collaborator. The pipeline only
// needs changed-path listings; the authors report adds branch and log
// queries. The Client interface keeps tests off real repositories.
package git

import (
	"os/exec"
	"sort"
	"strings"

	"github.com/cadence-sf/sfstage/pkg/errors"
)

// Client defines the git operations sfstage depends on.
type Client interface {
	// ChangedPaths returns the deduplicated, sorted set of paths that were
	// added or modified between revA and revB, restricted to pathPrefix.
	ChangedPaths(revA, revB, pathPrefix string) ([]string, error)

	// Branches returns branch display names mapped to the refs to query,
	// locals first-seen winning over origin duplicates.
	Branches() ([]Branch, error)

	// LastCommitDate returns the date (YYYY-MM-DD) of the last commit by
	// author on ref, or "" when the author never touched the ref.
	LastCommitDate(ref, author string) (string, error)
}

// Branch pairs a display name with the ref used for log queries.
type Branch struct {
	Name string
	Ref  string
}

// CLI implements Client by shelling out to git.
type CLI struct {
	// WorkDir is the repository the commands run in.
	WorkDir string
}

// NewCLI creates a git client rooted at the given repository.
func NewCLI(workDir string) *CLI {
	return &CLI{WorkDir: workDir}
}

// ChangedPaths runs `git diff --name-only` filtered to added/changed files.
func (g *CLI) ChangedPaths(revA, revB, pathPrefix string) ([]string, error) {
	args := []string{"diff", "--name-only", "--diff-filter=ACMR", revA, revB}
	if pathPrefix != "" {
		args = append(args, "--", pathPrefix)
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = g.WorkDir

	output, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGit,
			"git diff %s..%s failed", revA, revB)
	}

	return dedupeLines(string(output)), nil
}

// Branches parses `git branch -a`.
func (g *CLI) Branches() ([]Branch, error) {
	cmd := exec.Command("git", "branch", "-a")
	cmd.Dir = g.WorkDir

	output, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrGit, "unable to list branches")
	}

	branches := ParseBranches(string(output))
	if len(branches) == 0 {
		return nil, errors.New(errors.ErrGit, "no branches found")
	}
	return branches, nil
}

// LastCommitDate runs `git log -1` for the author on the ref.
func (g *CLI) LastCommitDate(ref, author string) (string, error) {
	cmd := exec.Command("git", "log", ref,
		"--author="+author, "--date=short", "--format=%cd", "-n", "1")
	cmd.Dir = g.WorkDir

	output, err := cmd.Output()
	if err != nil {
		// A ref with no history for the author is not an error to surface
		return "", nil
	}
	return strings.TrimSpace(string(output)), nil
}

// ParseBranches turns `git branch -a` output into branch/ref pairs.
// Locals are kept as-is; remotes/origin/X becomes X -> origin/X; other
// remotes keep their remote prefix. HEAD pointers are skipped, and the
// first occurrence of a display name wins.
func ParseBranches(output string) []Branch {
	var branches []Branch
	seen := make(map[string]struct{})

	add := func(name, ref string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		branches = append(branches, Branch{Name: name, Ref: ref})
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimSpace(line)
		if strings.Contains(line, "->") {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "remotes/"); ok {
			remote, name, ok := strings.Cut(rest, "/")
			if !ok {
				continue
			}
			if remote == "origin" {
				add(name, "origin/"+name)
			} else {
				add(remote+"/"+name, remote+"/"+name)
			}
			continue
		}

		add(line, line)
	}

	return branches
}

// dedupeLines splits command output into unique, sorted, non-empty lines.
// Sorting keeps downstream logs reproducible across runs.
func dedupeLines(output string) []string {
	seen := make(map[string]struct{})
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}

var _ Client = (*CLI)(nil)
