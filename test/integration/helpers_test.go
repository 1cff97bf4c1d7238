//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dstack-labs/create-dstack-app/internal/config"
	"github.com/dstack-labs/create-dstack-app/internal/runtime"
	"github.com/dstack-labs/create-dstack-app/internal/scaffold"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // CREATE_DSTACK_APP_HOME
	WorkDir      string // directory the scaffold runs from
	TemplatesDir string // the repository's bundled templates
	Out          *bytes.Buffer
	ErrOut       *bytes.Buffer
}

// setupTestEnv creates isolated temp directories, points the settings home at
// one of them and makes the other the working directory. Both are restored
// after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	templates, err := filepath.Abs(filepath.Join("..", "..", "templates"))
	if err != nil {
		t.Fatalf("resolving templates dir: %v", err)
	}

	env := &testEnv{
		HomeDir:      t.TempDir(),
		WorkDir:      t.TempDir(),
		TemplatesDir: templates,
		Out:          &bytes.Buffer{},
		ErrOut:       &bytes.Buffer{},
	}

	t.Setenv("CREATE_DSTACK_APP_HOME", env.HomeDir)
	t.Chdir(env.WorkDir)

	// On macOS the temp dir is reached through a symlink; compare real paths.
	if real, err := filepath.EvalSymlinks(env.WorkDir); err == nil {
		env.WorkDir = real
	}
	return env
}

// scaffolder returns a Scaffolder wired to the real process environment.
func (env *testEnv) scaffolder(settings config.Settings) *scaffold.Scaffolder {
	return &scaffold.Scaffolder{
		Runner:        &runtime.ExecRunner{},
		Chdir:         os.Chdir,
		Getwd:         os.Getwd,
		TemplatesRoot: env.TemplatesDir,
		Settings:      settings,
		Out:           env.Out,
		ErrOut:        env.ErrOut,
	}
}

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available, skipping", name)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// cwd returns the current working directory with symlinks resolved.
func cwd(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		return real
	}
	return dir
}
