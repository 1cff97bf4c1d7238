package template

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dstack-labs/create-dstack-app/internal/failure"
)

// Choice is the user-facing template selection.
type Choice string

// Template choices, in prompt order.
const (
	Starter Choice = "Starter template"
	None    Choice = "None"
)

// Directory names of the bundled templates under the templates root.
const (
	StarterDirName = "template"
	BlankDirName   = "template-blank"
)

// rootDirName is the directory under the installation root that holds the templates.
const rootDirName = "templates"

// Ref is a resolved template: a choice bound to an existing source directory.
type Ref struct {
	Choice      Choice
	DirName     string
	DisplayName string
	SourcePath  string
	Root        string
}

// Choices returns the selectable template choices; the first is the default.
func Choices() []Choice {
	return []Choice{Starter, None}
}

// DirName maps a choice to its template directory name. Only None selects the
// blank template; every other value selects the starter.
func DirName(c Choice) string {
	if c == None {
		return BlankDirName
	}
	return StarterDirName
}

// InstallRoot returns the directory containing the running executable, with
// symlinks resolved, so templates are found next to the installed binary
// rather than relative to the caller's working directory.
func InstallRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Root returns the templates root for an installation root.
func Root(installRoot string) string {
	return filepath.Join(installRoot, rootDirName)
}

// Resolve binds a choice to its source directory under root. A missing or
// non-directory source yields a TemplateMissing error.
func Resolve(c Choice, root string) (*Ref, error) {
	dirName := DirName(c)
	source := filepath.Join(root, dirName)

	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return nil, &failure.Error{
			Kind:    failure.TemplateMissing,
			Message: fmt.Sprintf("Source template directory not found or is not a directory: %s", source),
			Path:    source,
			Hint:    fmt.Sprintf("Please ensure a directory named '%s' exists in the templates directory: %s", dirName, root),
			Err:     err,
		}
	}

	return &Ref{
		Choice:      c,
		DirName:     dirName,
		DisplayName: displayName(c),
		SourcePath:  source,
		Root:        root,
	}, nil
}

func displayName(c Choice) string {
	if c == None {
		return "Blank"
	}
	return "Starter"
}
