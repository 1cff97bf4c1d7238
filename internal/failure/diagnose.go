package failure

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Diagnose writes a human-readable, kind-specific diagnosis of a fatal error
// to w. It never prints a stack trace.
func Diagnose(w io.Writer, err error) {
	if err == nil {
		return
	}

	var fe *Error
	if !errors.As(err, &fe) {
		fmt.Fprintln(w, "\nAn error occurred during the setup process:")
		describeOSCause(w, err)
		fmt.Fprintln(w, "Project setup failed.")
		return
	}

	if fe.Kind == Aborted {
		fmt.Fprintln(w, "\nSetup cancelled. No files were written.")
		return
	}

	fmt.Fprintln(w, "\nAn error occurred during the setup process:")
	switch fe.Kind {
	case CopyFailed:
		fmt.Fprintf(w, "Error: %s\n", fe.Message)
		if fe.Err != nil {
			describeOSCause(w, fe.Err)
		}
	case UnclassifiedFailure:
		describeOSCause(w, err)
	default:
		fmt.Fprintf(w, "Error: %s\n", fe.Message)
	}
	if fe.Hint != "" {
		fmt.Fprintln(w, fe.Hint)
	}
	fmt.Fprintln(w, "Project setup failed.")
}

// describeOSCause prints the conventional EEXIST/ENOENT/EACCES messages, or
// the raw error details when the cause cannot be classified.
func describeOSCause(w io.Writer, err error) {
	c := Classify(err)
	switch c.Code {
	case CodeExist:
		target := c.Path
		if target == "" {
			target = "the specified project name"
		}
		fmt.Fprintf(w, "Error: A directory named '%s' already exists.\n", target)
	case CodeNotExist:
		fmt.Fprintf(w, "Error: A required file or directory was not found. Path: %s\n", c.Path)
		if c.Command != "" {
			fmt.Fprintf(w, "Command not found: '%s'. Make sure it's installed and in your PATH.\n", firstWord(c.Command))
		}
	case CodePermission:
		fmt.Fprintf(w, "Error: Permission denied. Cannot access or write to path: %s\n", c.Path)
	case "":
		fmt.Fprintf(w, "Error details: %v\n", err)
	default:
		fmt.Fprintf(w, "Error details (%s): %v\n", c.Code, err)
	}
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return s
}
