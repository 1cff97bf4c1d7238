package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dstack-labs/create-dstack-app/internal/config"
	"github.com/dstack-labs/create-dstack-app/internal/failure"
	"github.com/dstack-labs/create-dstack-app/internal/materialize"
	"github.com/dstack-labs/create-dstack-app/internal/project"
	"github.com/dstack-labs/create-dstack-app/internal/prompt"
	"github.com/dstack-labs/create-dstack-app/internal/runtime"
	"github.com/dstack-labs/create-dstack-app/internal/template"
)

// Scaffolder runs the scaffold pipeline. Every effect outside the filesystem
// copy goes through one of its fields, so a run can be driven entirely from
// tests. Nil fields fall back to the real implementations.
type Scaffolder struct {
	Runner runtime.Runner
	Asker  prompt.Asker

	// Chdir is called once, right after a successful copy.
	Chdir  func(dir string) error
	Getwd  func() (string, error)
	Exists func(path string) bool

	TemplatesRoot string
	Settings      config.Settings

	Logger *slog.Logger
	Out    io.Writer // progress narration
	ErrOut io.Writer // step failure details and warnings
}

func (s *Scaffolder) withDefaults() *Scaffolder {
	c := *s
	if c.Runner == nil {
		c.Runner = &runtime.ExecRunner{}
	}
	if c.Chdir == nil {
		c.Chdir = os.Chdir
	}
	if c.Getwd == nil {
		c.Getwd = os.Getwd
	}
	if c.Exists == nil {
		c.Exists = project.PathExists
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Out == nil {
		c.Out = io.Discard
	}
	if c.ErrOut == nil {
		c.ErrOut = io.Discard
	}

	d := config.Defaults()
	if c.Settings.InstallCommand == "" {
		c.Settings.InstallCommand = d.InstallCommand
	}
	if c.Settings.VCSCommand == "" {
		c.Settings.VCSCommand = d.VCSCommand
	}
	if c.Settings.DevCommand == "" {
		c.Settings.DevCommand = d.DevCommand
	}
	if c.Settings.MinNodeVersion == "" {
		c.Settings.MinNodeVersion = d.MinNodeVersion
	}
	return &c
}

// Execute runs a full interactive session: runtime check, questions, pipeline.
func (s *Scaffolder) Execute(ctx context.Context) (*Report, error) {
	sc := s.withDefaults()
	if sc.Asker == nil {
		return nil, fmt.Errorf("scaffold: no prompt configured")
	}

	if err := sc.CheckRuntime(ctx); err != nil {
		return &Report{State: StateFatal}, err
	}

	cwd, err := sc.Getwd()
	if err != nil {
		return &Report{State: StateFatal}, failure.Wrap(failure.UnclassifiedFailure, "Could not determine the current directory", err)
	}
	validate := func(name string) error {
		_, err := project.Validate(name, cwd, sc.Exists)
		return err
	}

	answers, err := Collect(sc.Asker, validate)
	if err != nil {
		return &Report{State: StateFatal}, err
	}
	sc.Logger.Debug("answers collected",
		"project", answers.ProjectName,
		"template", answers.Template,
		"install", answers.InstallDependencies,
		"git", answers.InitializeGit)

	return sc.Run(ctx, answers)
}

// CheckRuntime verifies that Node.js is installed and at least the configured
// minimum version. It is a no-op when the check is disabled.
func (s *Scaffolder) CheckRuntime(ctx context.Context) error {
	sc := s.withDefaults()
	minimum := sc.Settings.MinNodeVersion
	if sc.Settings.SkipRuntimeCheck {
		sc.Logger.Debug("runtime check skipped")
		return nil
	}

	actual, err := runtime.NodeVersion(ctx, sc.Runner)
	if err != nil {
		return &failure.Error{
			Kind:    failure.UnsupportedRuntime,
			Message: fmt.Sprintf("Node.js %s or newer is required, but node could not be run", minimum),
			Hint:    "Install Node.js from https://nodejs.org and make sure it is on your PATH.",
			Err:     err,
		}
	}

	ok, err := runtime.SatisfiesMinimum(actual, minimum)
	if err != nil {
		return failure.Wrap(failure.UnsupportedRuntime,
			fmt.Sprintf("Could not compare Node.js version %q with the required %s", actual, minimum), err)
	}
	if !ok {
		return &failure.Error{
			Kind:    failure.UnsupportedRuntime,
			Message: fmt.Sprintf("Node.js %s or newer is required, but found %s.", minimum, actual),
			Hint:    "Please upgrade Node.js and try again.",
		}
	}

	sc.Logger.Debug("runtime check passed", "node", actual, "minimum", minimum)
	return nil
}

// Run executes the pipeline for answers that have already been collected.
// A fatal failure returns the error together with a report in StateFatal;
// the working directory is only changed once the copy has succeeded.
func (s *Scaffolder) Run(ctx context.Context, answers Answers) (*Report, error) {
	sc := s.withDefaults()
	r := &run{
		Scaffolder: sc,
		report: &Report{
			State:          StateInit,
			installCommand: sc.Settings.InstallCommand,
			devCommand:     sc.Settings.DevCommand,
		},
	}
	return r.report, r.execute(ctx, answers)
}

// run holds the state of a single pipeline execution.
type run struct {
	*Scaffolder
	report *Report
}

func (r *run) transition(to State) {
	r.Logger.Debug("state transition", "from", r.report.State, "to", to)
	r.report.State = to
}

func (r *run) fail(err error) error {
	r.Logger.Debug("pipeline failed", "state", r.report.State, "kind", failure.KindOf(err), "error", err)
	r.report.State = StateFatal
	return err
}

func (r *run) execute(ctx context.Context, answers Answers) error {
	cwd, err := r.Getwd()
	if err != nil {
		return r.fail(failure.Wrap(failure.UnclassifiedFailure, "Could not determine the current directory", err))
	}

	r.transition(StateValidating)
	target, err := project.Validate(answers.ProjectName, cwd, r.Exists)
	if err != nil {
		return r.fail(err)
	}
	r.report.Target = target

	r.transition(StateResolving)
	root := r.TemplatesRoot
	if root == "" {
		installRoot, err := template.InstallRoot()
		if err != nil {
			return r.fail(failure.Wrap(failure.TemplateMissing, "Could not locate the templates directory", err))
		}
		root = template.Root(installRoot)
	}
	ref, err := template.Resolve(answers.Template, root)
	if err != nil {
		return r.fail(err)
	}
	r.report.Template = ref

	r.transition(StateCopying)
	if err := r.copy(target, ref); err != nil {
		return r.fail(err)
	}

	if err := r.Chdir(target.Path); err != nil {
		return r.fail(&failure.Error{
			Kind:    failure.UnclassifiedFailure,
			Message: "Could not enter the project directory",
			Path:    target.Path,
			Err:     err,
		})
	}
	r.Logger.Debug("entered project directory", "dir", target.Path)

	r.runStep(ctx, optionalStep{
		step:    StepInstall,
		state:   StateInstalling,
		enabled: answers.InstallDependencies,
		line:    r.Settings.InstallCommand,
		dir:     target.Path,
		start:   fmt.Sprintf("Installing dependencies (%s)... This may take a moment.", r.Settings.InstallCommand),
		success: "Dependencies installed successfully.",
		failed:  "Error installing dependencies.",
	})
	r.runStep(ctx, optionalStep{
		step:    StepInit,
		state:   StateInitializingVCS,
		enabled: answers.InitializeGit,
		line:    r.Settings.VCSCommand,
		dir:     target.Path,
		start:   "Initializing Git repository...",
		success: "Git repository initialized successfully.",
		failed:  "Error initializing Git repository.",
	})

	r.transition(StateDone)
	return nil
}

func (r *run) copy(target *project.Target, ref *template.Ref) error {
	dest := displayPath(target)
	fmt.Fprintf(r.Out, "Copying '%s' to %s ...\n", ref.DirName, dest)

	res, err := materialize.Copy(ref.SourcePath, target.Path)
	if err != nil {
		fmt.Fprintf(r.ErrOut, "Failed to copy files: %v\n", err)
		fe := failure.Wrap(failure.CopyFailed, "Failed to copy files", err)
		fe.Path = failure.Classify(err).Path
		r.report.Steps = append(r.report.Steps, StepOutcome{
			Step:   StepCopy,
			Status: StatusFailed,
			Detail: err.Error(),
			Err:    fe,
		})
		return fe
	}

	for _, skipped := range res.Skipped {
		r.Logger.Warn("skipped special file in template", "path", skipped)
	}
	r.report.Steps = append(r.report.Steps, StepOutcome{
		Step:   StepCopy,
		Status: StatusSuccess,
		Detail: fmt.Sprintf("%d files, %d directories, %d symlinks", res.Files, res.Dirs, res.Symlinks),
	})
	fmt.Fprintf(r.Out, "Successfully copied '%s' to %s\n", ref.DirName, dest)
	return nil
}

type optionalStep struct {
	step    Step
	state   State
	enabled bool
	line    string
	dir     string
	start   string
	success string
	failed  string
}

// runStep runs one optional command step. Its failure is recorded, never returned.
func (r *run) runStep(ctx context.Context, s optionalStep) {
	if !s.enabled {
		r.Logger.Debug("step skipped", "step", s.step)
		r.report.Steps = append(r.report.Steps, StepOutcome{Step: s.step, Status: StatusSkipped, Command: s.line})
		return
	}

	r.transition(s.state)
	fmt.Fprintln(r.Out, s.start)

	err := r.command(ctx, s.line, s.dir)
	if err != nil {
		outcome := StepOutcome{
			Step:    s.step,
			Status:  StatusFailed,
			Detail:  err.Error(),
			Command: s.line,
			Err:     failure.Wrap(failure.StepFailed, s.failed, err),
		}
		r.report.Steps = append(r.report.Steps, outcome)
		fmt.Fprintln(r.ErrOut, s.failed)
		fmt.Fprintf(r.ErrOut, "\nError details: %v\n", err)
		fmt.Fprintln(r.ErrOut, outcome.Warning())
		return
	}

	r.report.Steps = append(r.report.Steps, StepOutcome{Step: s.step, Status: StatusSuccess, Command: s.line})
	fmt.Fprintln(r.Out, s.success)
}

func (r *run) command(ctx context.Context, line, dir string) error {
	cmd, err := runtime.ParseCommand(line, dir)
	if err != nil {
		return err
	}

	out, err := r.Runner.Run(ctx, cmd)
	if err != nil {
		return err
	}
	r.Logger.Debug("command finished", "command", cmd.String(), "exit_code", out.ExitCode)
	if !out.Success() {
		msg := fmt.Sprintf("Command failed: %s (exit status %d)", cmd, out.ExitCode)
		if stderr := strings.TrimSpace(out.Stderr); stderr != "" {
			msg += "\n" + stderr
		}
		return errors.New(msg)
	}
	return nil
}

func displayPath(t *project.Target) string {
	if t.Sentinel {
		return "the current directory"
	}
	return "./" + t.Name
}
