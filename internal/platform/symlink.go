package platform

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// CreateSymlink creates link pointing at target, replacing a file or symlink
// that is already at link. An existing directory at link is an error.
// On Windows without developer mode, where os.Symlink is refused, a link to a
// regular file falls back to a copy of that file.
func CreateSymlink(target, link string) error {
	if info, err := os.Lstat(link); err == nil {
		if info.IsDir() {
			return &fs.PathError{Op: "symlink", Path: link, Err: fs.ErrExist}
		}
		if err := RemoveSymlink(link); err != nil {
			return err
		}
	}

	err := os.Symlink(target, link)
	if err == nil || runtime.GOOS != "windows" {
		return err
	}

	if copyErr := copyLinkedFile(target, link); copyErr != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", errors.Join(err, copyErr))
	}
	return nil
}

// RemoveSymlink removes the entry at path. A missing entry is not an error.
func RemoveSymlink(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ReadSymlinkTarget returns the target text of the symlink at path, without
// resolving it.
func ReadSymlinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

// IsSymlinkSupported reports whether the current process may create symlinks.
// On Windows this requires developer mode or elevated rights.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	dir, err := os.MkdirTemp("", "symlink-probe-")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir)

	return os.Symlink(dir, filepath.Join(dir, "probe")) == nil
}

// copyLinkedFile copies the regular file a symlink would point at to dst.
// Relative targets are resolved against dst's directory.
func copyLinkedFile(target, dst string) error {
	src := target
	if !filepath.IsAbs(src) {
		src = filepath.Join(filepath.Dir(dst), target)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
