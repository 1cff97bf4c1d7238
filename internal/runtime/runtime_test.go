package runtime

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	requireShell(t)

	r := &ExecRunner{}
	out, err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo hello; echo oops >&2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Success() {
		t.Errorf("expected success, exit code %d", out.ExitCode)
	}
	if strings.TrimSpace(out.Stdout) != "hello" {
		t.Errorf("Stdout = %q, want %q", out.Stdout, "hello")
	}
	if strings.TrimSpace(out.Stderr) != "oops" {
		t.Errorf("Stderr = %q, want %q", out.Stderr, "oops")
	}
}

func TestExecRunner_TeesToWriters(t *testing.T) {
	requireShell(t)

	var stdoutBuf, stderrBuf bytes.Buffer
	r := &ExecRunner{Stdout: &stdoutBuf, Stderr: &stderrBuf}

	out, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo streamed; echo warn >&2"}})
	if err != nil {
		t.Fatal(err)
	}
	if stdoutBuf.String() != out.Stdout {
		t.Errorf("streamed stdout %q != captured %q", stdoutBuf.String(), out.Stdout)
	}
	if stderrBuf.String() != out.Stderr {
		t.Errorf("streamed stderr %q != captured %q", stderrBuf.String(), out.Stderr)
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireShell(t)

	r := &ExecRunner{}
	out, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo failing >&2; exit 42"}})
	if err != nil {
		t.Fatalf("non-zero exit should not be an error: %v", err)
	}
	if out.ExitCode != 42 {
		t.Errorf("ExitCode = %d, want 42", out.ExitCode)
	}
	if out.Success() {
		t.Error("Success() should be false")
	}
	if !strings.Contains(out.Stderr, "failing") {
		t.Errorf("Stderr = %q", out.Stderr)
	}
}

func TestExecRunner_WorkingDirectory(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	r := &ExecRunner{}
	out, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "pwd -P"}, Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	if strings.TrimSpace(out.Stdout) != want {
		t.Errorf("pwd = %q, want %q", strings.TrimSpace(out.Stdout), want)
	}
}

func TestExecRunner_MissingExecutable(t *testing.T) {
	r := &ExecRunner{}
	_, err := r.Run(context.Background(), Command{Name: "definitely-not-a-real-binary-xyz"})
	if err == nil {
		t.Fatal("expected error for missing executable")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected exec.ErrNotFound in chain, got %v", err)
	}
}

func TestExecRunner_CancelledContext(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &ExecRunner{}
	if _, err := r.Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRunnerFunc(t *testing.T) {
	var got Command
	r := RunnerFunc(func(_ context.Context, cmd Command) (*Output, error) {
		got = cmd
		return &Output{ExitCode: 3}, nil
	})

	out, err := r.Run(context.Background(), Command{Name: "npm", Args: []string{"install"}, Dir: "/tmp/app"})
	if err != nil {
		t.Fatal(err)
	}
	if out.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", out.ExitCode)
	}
	if got.String() != "npm install" || got.Dir != "/tmp/app" {
		t.Errorf("unexpected command: %+v", got)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		name    string
		args    []string
		wantErr bool
	}{
		{"npm install", "npm", []string{"install"}, false},
		{"git init", "git", []string{"init"}, false},
		{"pnpm install --frozen-lockfile", "pnpm", []string{"install", "--frozen-lockfile"}, false},
		{`git commit -m "initial commit"`, "git", []string{"commit", "-m", "initial commit"}, false},
		{"yarn", "yarn", []string{}, false},
		{"", "", nil, true},
		{"   ", "", nil, true},
		{`npm "unterminated`, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line, "/work")
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", cmd)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Name != tt.name {
				t.Errorf("Name = %q, want %q", cmd.Name, tt.name)
			}
			if len(cmd.Args) != len(tt.args) {
				t.Fatalf("Args = %v, want %v", cmd.Args, tt.args)
			}
			for i := range tt.args {
				if cmd.Args[i] != tt.args[i] {
					t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], tt.args[i])
				}
			}
			if cmd.Dir != "/work" {
				t.Errorf("Dir = %q, want /work", cmd.Dir)
			}
		})
	}
}
