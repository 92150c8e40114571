package filesystem

import (
	"path/filepath"

	"github.com/cadence-sf/sfstage/pkg/types"
)

// CopyFile copies a single file, creating the destination's parent
// directory if needed. The source's permission bits are preserved.
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}

	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	return fsys.WriteFile(dst, data, info.Mode().Perm())
}

// CopyDir copies a directory tree recursively. Symlinks are not
// expected in Salesforce metadata trees and are not followed specially.
func CopyDir(fsys types.FS, src, dst string) error {
	entries, err := fsys.ReadDir(src)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(dst, 0755); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := CopyDir(fsys, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		if err := CopyFile(fsys, srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

// Exists reports whether the path exists at all.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// DirExists reports whether the path exists and is a directory.
func DirExists(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether the path exists and is a regular file.
func FileExists(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
