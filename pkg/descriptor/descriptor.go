// Package descriptor inspects Salesforce resource-meta.xml files.
package descriptor

import (
	"github.com/beevik/etree"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/types"
)

// Meta is the parsed content of a .resource-meta.xml descriptor.
type Meta struct {
	ContentType  string
	CacheControl string
}

// Parse reads and validates a descriptor file. A descriptor must be
// well-formed XML with a StaticResource root and a non-empty contentType.
func Parse(fsys types.FS, path string) (Meta, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return Meta{}, errors.Wrapf(err, errors.ErrFileNotFound, "descriptor %s not readable", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return Meta{}, errors.Wrapf(err, errors.ErrInvalidInput, "descriptor %s is not well-formed XML", path)
	}

	root := doc.Root()
	if root == nil || root.Tag != "StaticResource" {
		return Meta{}, errors.Newf(errors.ErrInvalidInput,
			"descriptor %s root element is not StaticResource", path)
	}

	meta := Meta{}
	if el := root.FindElement("contentType"); el != nil {
		meta.ContentType = el.Text()
	}
	if el := root.FindElement("cacheControl"); el != nil {
		meta.CacheControl = el.Text()
	}

	if meta.ContentType == "" {
		return Meta{}, errors.Newf(errors.ErrInvalidInput,
			"descriptor %s has no contentType", path)
	}

	return meta, nil
}
