package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Runner spawns a command and waits for it to exit.
//
// A command that starts and exits non-zero is not an error: the exit code is
// reported in Output. An error means the command could not be run at all
// (executable missing, permission denied, context cancelled).
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, cmd Command) (*Output, error)

// Run calls f(ctx, cmd).
func (f RunnerFunc) Run(ctx context.Context, cmd Command) (*Output, error) {
	return f(ctx, cmd)
}

// Command is an executable with arguments and a working directory.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String returns the command line as a user would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Output captures the result of a finished command.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status zero.
func (o *Output) Success() bool {
	return o != nil && o.ExitCode == 0
}

// ParseCommand splits a command line such as "npm install --prefer-offline"
// using shell quoting rules and binds it to dir.
func ParseCommand(line, dir string) (Command, error) {
	parts, err := shlex.Split(line)
	if err != nil {
		return Command{}, fmt.Errorf("parsing command %q: %w", line, err)
	}
	if len(parts) == 0 {
		return Command{}, fmt.Errorf("parsing command %q: empty command", line)
	}
	return Command{Name: parts[0], Args: parts[1:], Dir: dir}, nil
}
