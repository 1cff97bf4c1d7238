package materialize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dstack-labs/create-dstack-app/internal/platform"
)

// ErrOverlap is returned when the destination is the source directory or lies inside it.
var ErrOverlap = errors.New("destination is inside the source directory")

// Result summarises a completed copy.
type Result struct {
	Dirs     int
	Files    int
	Symlinks int
	Skipped  []string // special files (sockets, devices, pipes) left out, relative to src
}

// Copy recursively copies the directory src to dst with `cp -R` semantics:
// directories (including empty ones) and regular files are recreated with
// their permission bits, symlinks are recreated verbatim and never followed,
// and special files are skipped. If dst already exists the copy is merged into
// it: same-named files are overwritten and nothing is deleted. Directories
// that already exist keep their permissions.
//
// Copy refuses, before writing anything, when dst is src or lies inside it.
//
// On error the copy stops and dst may be partially populated.
func Copy(src, dst string) (*Result, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "copy", Path: src, Err: fmt.Errorf("not a directory")}
	}
	if err := checkOverlap(info, dst); err != nil {
		return nil, err
	}

	c := &copier{src: src, res: &Result{}}
	if err := c.copyDir(src, dst, info.Mode()); err != nil {
		return c.res, err
	}
	return c.res, nil
}

// checkOverlap walks from dst up to the filesystem root and fails if any
// existing directory on the way is src. Comparing with os.SameFile catches
// symlinked and relative spellings of the same directory.
func checkOverlap(srcInfo fs.FileInfo, dst string) error {
	abs, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	for dir := abs; ; {
		if info, err := os.Stat(dir); err == nil && os.SameFile(srcInfo, info) {
			return &fs.PathError{Op: "copy", Path: dst, Err: ErrOverlap}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

type copier struct {
	src string
	res *Result
}

// copyDir creates dst and copies every entry of src into it.
func (c *copier) copyDir(src, dst string, mode fs.FileMode) error {
	_, statErr := os.Lstat(dst)
	created := errors.Is(statErr, fs.ErrNotExist)
	if err := os.MkdirAll(dst, mode.Perm()|0700); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch t := entry.Type(); {
		case t&fs.ModeSymlink != 0:
			if err := c.copySymlink(srcPath, dstPath); err != nil {
				return err
			}
		case entry.IsDir():
			info, err := entry.Info()
			if err != nil {
				return err
			}
			if err := c.copyDir(srcPath, dstPath, info.Mode()); err != nil {
				return err
			}
		case t.IsRegular():
			if err := c.copyFile(srcPath, dstPath); err != nil {
				return err
			}
		default:
			rel, _ := filepath.Rel(c.src, srcPath)
			c.res.Skipped = append(c.res.Skipped, rel)
		}
	}

	// Apply the source mode last so read-only directories can still be filled.
	if created {
		if err := platform.Chmod(dst, mode); err != nil {
			return err
		}
	}
	c.res.Dirs++
	return nil
}

// copyFile streams a single file from src to dst, preserving permissions.
func (c *copier) copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0200)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := platform.Chmod(dst, info.Mode()); err != nil {
		return err
	}
	c.res.Files++
	return nil
}

// copySymlink recreates the symlink at src as dst with the same target text.
func (c *copier) copySymlink(src, dst string) error {
	target, err := platform.ReadSymlinkTarget(src)
	if err != nil {
		return err
	}
	if err := platform.CreateSymlink(target, dst); err != nil {
		return err
	}
	c.res.Symlinks++
	return nil
}
