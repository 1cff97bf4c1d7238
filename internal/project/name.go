package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dstack-labs/create-dstack-app/internal/failure"
)

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9_-]*[a-zA-Z0-9])?$`)
	repeatSeparator = regexp.MustCompile(`[-_]{2,}`)
)

// sentinels are project names that mean "the current directory". They skip
// the collision check so a project can be scaffolded into an existing
// directory; the copy then merges into whatever is already there.
var sentinels = map[string]bool{
	".":  true,
	"./": true,
	"/":  true,
}

// Target is the place a project will be scaffolded into.
type Target struct {
	Name     string // trimmed project name as typed
	Path     string // absolute destination directory
	Sentinel bool   // Name is one of ".", "./", "/"
}

// IsSentinel reports whether name (already trimmed) refers to the current directory.
func IsSentinel(name string) bool {
	return sentinels[name]
}

// PathExists reports whether any filesystem entry, including a dangling
// symlink, exists at path.
func PathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Validate trims raw and checks it against the project naming rules, then
// checks that nothing already exists at cwd/<name>. exists is the only
// effectful input; pass PathExists for the real filesystem.
func Validate(raw, cwd string, exists func(string) bool) (*Target, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return nil, failure.New(failure.EmptyName, "Project name cannot be empty.")
	}

	if IsSentinel(name) {
		return &Target{Name: name, Path: filepath.Clean(cwd), Sentinel: true}, nil
	}

	if !namePattern.MatchString(name) || repeatSeparator.MatchString(name) {
		return nil, failure.New(failure.InvalidNameSyntax,
			"Project name must be alphanumeric, can include hyphens or underscores, but cannot start/end with them, or have consecutive hyphens/underscores.")
	}

	target := filepath.Join(cwd, name)
	if exists(target) {
		return nil, &failure.Error{
			Kind:    failure.NameCollision,
			Message: fmt.Sprintf("A directory named '%s' already exists in your current location. Please choose a different name.", name),
			Path:    target,
		}
	}

	return &Target{Name: name, Path: target}, nil
}
