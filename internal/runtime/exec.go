package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Stdout and Stderr, when set, receive a live copy of the child's output.
	// The output is always captured into Output regardless.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd, waits for it to exit and returns its captured output.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Output, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var stdoutBuf, stderrBuf bytes.Buffer
	c.Stdout = tee(&stdoutBuf, r.Stdout)
	c.Stderr = tee(&stderrBuf, r.Stderr)

	err := c.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("running %s: %w", cmd, err)
	}

	return output, nil
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}
