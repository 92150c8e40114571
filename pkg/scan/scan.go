// Package scan reports hard-coded string literals in Apex class files.
// The resulting CSV feeds a manual review step before each deployment,
// so the column layout is fixed by the downstream consumer.
package scan

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/logging"
	"github.com/cadence-sf/sfstage/pkg/types"
)

// ClassSuffix marks Apex class files, matched case-insensitively.
const ClassSuffix = ".cls"

// literalRE matches double- or single-quoted string literals, tolerating
// escaped quotes inside the body.
var literalRE = regexp.MustCompile(`"([^"\\]*(?:\\.[^"\\]*)*)"|'([^'\\]*(?:\\.[^'\\]*)*)'`)

// Hit is one literal occurrence. Literal keeps its surrounding quotes so
// reviewers can tell the two quoting styles apart.
type Hit struct {
	File    string
	Line    int
	Literal string
}

// ScanSource extracts literals from one class body. Text after a `//`
// marker on a line is ignored, as are empty literals.
func ScanSource(fileName, source string) []Hit {
	var hits []Hit
	for i, line := range strings.Split(source, "\n") {
		code := line
		if idx := strings.Index(line, "//"); idx >= 0 {
			code = line[:idx]
		}
		for _, literal := range literalRE.FindAllString(code, -1) {
			if literal == `""` || literal == `''` {
				continue
			}
			hits = append(hits, Hit{File: fileName, Line: i + 1, Literal: literal})
		}
	}
	return hits
}

// ScanDir walks dir recursively and scans every class file. A missing
// directory yields an empty report rather than an error; the scheduler
// runs this against trees that may not have an Apex side at all.
func ScanDir(fsys types.FS, dir string) ([]Hit, error) {
	logger := logging.GetLogger("scan")
	if !filesystem.DirExists(fsys, dir) {
		logger.Warn().Str("dir", dir).Msg("Class directory not found, skipping")
		return nil, nil
	}

	var hits []Hit
	var walk func(string) error
	walk = func(current string) error {
		entries, err := fsys.ReadDir(current)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", current)
		}
		for _, entry := range entries {
			path := filepath.Join(current, entry.Name())
			if entry.IsDir() {
				if err := walk(path); err != nil {
					return err
				}
				continue
			}
			if !strings.HasSuffix(strings.ToLower(entry.Name()), ClassSuffix) {
				continue
			}
			data, err := fsys.ReadFile(path)
			if err != nil {
				logger.Warn().Err(err).Str("file", path).Msg("Could not read class file")
				continue
			}
			hits = append(hits, ScanSource(entry.Name(), string(data))...)
		}
		return nil
	}
	if err := walk(dir); err != nil {
		return nil, err
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].File != hits[j].File {
			return hits[i].File < hits[j].File
		}
		return hits[i].Line < hits[j].Line
	})
	return hits, nil
}

// WriteCSV writes the report. The header text, including its historical
// spelling, is part of the file contract and must not be corrected.
func WriteCSV(fsys types.FS, path string, hits []Hit) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"File Name", "Line Number", "Hard Coaded Value"}); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write report header")
	}
	for _, hit := range hits {
		if err := w.Write([]string{hit.File, strconv.Itoa(hit.Line), hit.Literal}); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write report row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to flush report")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create report directory %s", dir)
		}
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write report %s", path)
	}
	return nil
}
