package failure

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
)

// Conventional OS error codes recognised by Classify.
const (
	CodeExist      = "EEXIST"
	CodeNotExist   = "ENOENT"
	CodePermission = "EACCES"
)

// OSCause is the best-effort OS-level classification of an unexpected fault.
type OSCause struct {
	Code    string // EEXIST, ENOENT, EACCES, another errno name, or ""
	Path    string // path reported by the failing syscall, if any
	Command string // executable that could not be found, if any
}

// Classify inspects err for a conventional OS error code. It understands
// *fs.PathError, *os.LinkError, *os.SyscallError, *exec.Error and bare
// syscall.Errno values anywhere in the chain.
func Classify(err error) OSCause {
	var c OSCause
	if err == nil {
		return c
	}

	var pathErr *fs.PathError
	var linkErr *os.LinkError
	switch {
	case errors.As(err, &pathErr):
		c.Path = pathErr.Path
	case errors.As(err, &linkErr):
		c.Path = linkErr.New
	}

	var fe *Error
	if c.Path == "" && errors.As(err, &fe) {
		c.Path = fe.Path
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		c.Command = execErr.Name
		if errors.Is(execErr.Err, exec.ErrNotFound) {
			c.Code = CodeNotExist
			return c
		}
	}

	switch {
	case errors.Is(err, fs.ErrExist):
		c.Code = CodeExist
	case errors.Is(err, fs.ErrNotExist):
		c.Code = CodeNotExist
	case errors.Is(err, fs.ErrPermission):
		c.Code = CodePermission
	default:
		var errno syscall.Errno
		if errors.As(err, &errno) {
			c.Code = errnoName(errno)
		}
	}
	return c
}

func errnoName(errno syscall.Errno) string {
	switch errno {
	case syscall.ENOSPC:
		return "ENOSPC"
	case syscall.EROFS:
		return "EROFS"
	case syscall.ENOTDIR:
		return "ENOTDIR"
	case syscall.EISDIR:
		return "EISDIR"
	case syscall.ENOTEMPTY:
		return "ENOTEMPTY"
	}
	return errno.Error()
}
