package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dstack-labs/create-dstack-app/internal/failure"
)

func noneExist(string) bool { return false }
func allExist(string) bool  { return true }

func TestValidateAccepts(t *testing.T) {
	cwd := t.TempDir()

	tests := []struct {
		raw  string
		want string
	}{
		{"my-app", "my-app"},
		{"  my-app  ", "my-app"},
		{"a", "a"},
		{"7", "7"},
		{"My_App2", "My_App2"},
		{"a-b_c-d", "a-b_c-d"},
		{"ab", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			target, err := Validate(tt.raw, cwd, noneExist)
			if err != nil {
				t.Fatalf("Validate(%q) error: %v", tt.raw, err)
			}
			if target.Name != tt.want {
				t.Errorf("Name = %q, want %q", target.Name, tt.want)
			}
			if target.Path != filepath.Join(cwd, tt.want) {
				t.Errorf("Path = %q, want %q", target.Path, filepath.Join(cwd, tt.want))
			}
			if target.Sentinel {
				t.Error("Sentinel should be false")
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	cwd := t.TempDir()

	tests := []struct {
		raw  string
		kind failure.Kind
	}{
		{"", failure.EmptyName},
		{"   ", failure.EmptyName},
		{"\t\n", failure.EmptyName},
		{"-my-app", failure.InvalidNameSyntax},
		{"my-app-", failure.InvalidNameSyntax},
		{"_app", failure.InvalidNameSyntax},
		{"my--app", failure.InvalidNameSyntax},
		{"my__app", failure.InvalidNameSyntax},
		{"my-_app", failure.InvalidNameSyntax},
		{"my app", failure.InvalidNameSyntax},
		{"my.app", failure.InvalidNameSyntax},
		{"../escape", failure.InvalidNameSyntax},
		{"café", failure.InvalidNameSyntax},
		{"-", failure.InvalidNameSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := Validate(tt.raw, cwd, noneExist)
			if err == nil {
				t.Fatalf("Validate(%q) should fail", tt.raw)
			}
			if got := failure.KindOf(err); got != tt.kind {
				t.Errorf("kind = %s, want %s", got, tt.kind)
			}
		})
	}
}

func TestValidateCollision(t *testing.T) {
	cwd := t.TempDir()
	if err := os.Mkdir(filepath.Join(cwd, "taken"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := Validate("taken", cwd, PathExists)
	if !failure.Is(err, failure.NameCollision) {
		t.Fatalf("expected NameCollision, got %v", err)
	}
	want := "A directory named 'taken' already exists in your current location. Please choose a different name."
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}

	// A plain file collides too.
	if err := os.WriteFile(filepath.Join(cwd, "file"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Validate("file", cwd, PathExists); !failure.Is(err, failure.NameCollision) {
		t.Errorf("expected NameCollision for file, got %v", err)
	}

	if _, err := Validate("free", cwd, PathExists); err != nil {
		t.Errorf("free name should validate: %v", err)
	}
}

func TestValidateCollisionChecksResolvedPath(t *testing.T) {
	cwd := t.TempDir()
	var checked string
	exists := func(p string) bool {
		checked = p
		return false
	}

	if _, err := Validate(" my-app ", cwd, exists); err != nil {
		t.Fatal(err)
	}
	if checked != filepath.Join(cwd, "my-app") {
		t.Errorf("exists called with %q, want %q", checked, filepath.Join(cwd, "my-app"))
	}
}

// The original name pattern rejected "." before its sentinel exemption was
// consulted, so "./" and "/" could never be chosen. Here sentinels bypass the
// syntax check too, so scaffolding into the current directory works and can
// be repeated.
func TestValidateSentinels(t *testing.T) {
	cwd := t.TempDir()

	for _, raw := range []string{".", "./", "/", "  .  "} {
		t.Run(raw, func(t *testing.T) {
			target, err := Validate(raw, cwd, allExist)
			if err != nil {
				t.Fatalf("sentinel %q should be exempt: %v", raw, err)
			}
			if !target.Sentinel {
				t.Error("Sentinel should be true")
			}
			if target.Path != cwd {
				t.Errorf("Path = %q, want %q", target.Path, cwd)
			}
		})
	}
}

func TestIsSentinel(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".", true},
		{"./", true},
		{"/", true},
		{"..", false},
		{".//", false},
		{"app", false},
	}
	for _, tt := range tests {
		if got := IsSentinel(tt.name); got != tt.want {
			t.Errorf("IsSentinel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPathExistsDanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "nowhere"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if !PathExists(link) {
		t.Error("dangling symlink should count as existing")
	}
	if PathExists(filepath.Join(dir, "nowhere")) {
		t.Error("missing path should not exist")
	}
}
