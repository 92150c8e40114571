package normalize

import (
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/cadence-sf/sfstage/pkg/types"
)

// MergeCustomLabels folds every <labels> block of the shared-label file
// into the standard CustomLabels file under basePath, then removes the
// shared-label folder. A missing source file is not an error; most trees
// have no shared labels.
func MergeCustomLabels(fsys types.FS, basePath string, rule LabelMergeRule) error {
	if !rule.Enabled {
		return nil
	}

	srcFolder := filepath.Join(basePath, rule.SourceFolder)
	srcFile := filepath.Join(srcFolder, rule.SourceFile)
	if !filesystem.FileExists(fsys, srcFile) {
		return nil
	}

	srcData, err := fsys.ReadFile(srcFile)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", srcFile)
	}

	srcDoc := etree.NewDocument()
	if err := srcDoc.ReadFromBytes(srcData); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "malformed label file %s", srcFile)
	}
	srcRoot := srcDoc.Root()
	if srcRoot == nil {
		return errors.Newf(errors.ErrInvalidInput, "label file %s has no root element", srcFile)
	}

	blocks := srcRoot.FindElements("//labels")
	if len(blocks) == 0 {
		return nil
	}

	tgtFolder := filepath.Join(basePath, rule.TargetFolder)
	tgtFile := filepath.Join(tgtFolder, rule.TargetFile)
	if err := fsys.MkdirAll(tgtFolder, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", tgtFolder)
	}

	tgtDoc, tgtRoot, err := loadOrCreateTarget(fsys, tgtFile, srcRoot)
	if err != nil {
		return err
	}

	existing := make(map[string]struct{})
	if rule.DedupeByText {
		for _, node := range tgtRoot.FindElements("//labels") {
			existing[serializeElement(node)] = struct{}{}
		}
	}

	for _, block := range blocks {
		text := serializeElement(block)
		if rule.DedupeByText {
			if _, dup := existing[text]; dup {
				continue
			}
			existing[text] = struct{}{}
		}
		tgtRoot.AddChild(block.Copy())
	}

	tgtDoc.Indent(4)
	out, err := tgtDoc.WriteToBytes()
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to serialize %s", tgtFile)
	}
	if err := fsys.WriteFile(tgtFile, out, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", tgtFile)
	}

	if rule.DeleteSourceFolder {
		if err := fsys.RemoveAll(srcFolder); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess,
				"failed to remove merged folder %s", srcFolder)
		}
	}
	return nil
}

// loadOrCreateTarget opens the target label file, or starts a fresh
// document whose root carries the source's namespace declaration.
func loadOrCreateTarget(fsys types.FS, path string, srcRoot *etree.Element) (*etree.Document, *etree.Element, error) {
	if filesystem.FileExists(fsys, path) {
		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrInvalidInput, "malformed label file %s", path)
		}
		root := doc.Root()
		if root == nil {
			return nil, nil, errors.Newf(errors.ErrInvalidInput, "label file %s has no root element", path)
		}
		return doc, root, nil
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("CustomLabels")
	if ns := srcRoot.SelectAttr("xmlns"); ns != nil {
		root.CreateAttr("xmlns", ns.Value)
	}
	return doc, root, nil
}

// serializeElement renders one block with indentation stripped, so the
// same label compares equal whether it came from a pretty-printed file
// or a compact one.
func serializeElement(el *etree.Element) string {
	clean := el.Copy()
	stripWhitespace(clean)
	doc := etree.NewDocument()
	doc.SetRoot(clean)
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func stripWhitespace(el *etree.Element) {
	var drop []etree.Token
	for _, child := range el.Child {
		switch c := child.(type) {
		case *etree.CharData:
			if strings.TrimSpace(c.Data) == "" {
				drop = append(drop, child)
			}
		case *etree.Element:
			stripWhitespace(c)
		}
	}
	for _, token := range drop {
		el.RemoveChild(token)
	}
}
