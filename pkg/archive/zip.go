// Package archive provides the zip primitives used to pack
// directory-backed resources and to unpack org dumps.
//
// Archives are built from the real filesystem (archive/zip needs
// io.Reader streams, which the FS seam does not model). Entries are
// written in lexical walk order with source modtimes preserved, so
// archiving an unchanged tree twice yields byte-identical output.
package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cadence-sf/sfstage/pkg/errors"
)

// CreateZip compresses the contents of srcDir into destZip. The
// directory itself is not included; its children sit at the archive root,
// matching the layout Salesforce expects inside a .resource archive.
func CreateZip(srcDir, destZip string) error {
	out, err := os.Create(destZip)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExternalTool, "failed to create archive %s", destZip)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = rel
		if d.IsDir() {
			header.Name += "/"
		} else {
			header.Method = zip.Deflate
		}

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})

	if walkErr != nil {
		zw.Close()
		return errors.Wrapf(walkErr, errors.ErrExternalTool, "failed to archive %s", srcDir)
	}

	if err := zw.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrExternalTool, "failed to finalize archive %s", destZip)
	}
	return out.Close()
}

// Extract unpacks zipPath into destDir, refusing entries that would
// escape the destination.
func Extract(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExternalTool, "failed to open archive %s", zipPath)
	}
	defer r.Close()

	for _, f := range r.File {
		target := filepath.Join(destDir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return errors.Newf(errors.ErrExternalTool, "archive entry %q escapes destination", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrExternalTool, "failed to create %s", target)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrExternalTool, "failed to create %s", filepath.Dir(target))
		}

		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return errors.Wrapf(err, errors.ErrExternalTool, "failed to read archive entry %s", f.Name)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, errors.ErrExternalTool, "failed to create %s", target)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return errors.Wrapf(err, errors.ErrExternalTool, "failed to extract %s", f.Name)
	}
	return out.Close()
}
