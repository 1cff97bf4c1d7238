package scaffold

import (
	"fmt"
	"io"

	"github.com/dstack-labs/create-dstack-app/internal/project"
	"github.com/dstack-labs/create-dstack-app/internal/template"
)

// State is a stage of the scaffold pipeline.
type State int

const (
	StateInit State = iota
	StateValidating
	StateResolving
	StateCopying
	StateInstalling
	StateInitializingVCS
	StateDone
	StateFatal
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateValidating:
		return "validating"
	case StateResolving:
		return "resolving"
	case StateCopying:
		return "copying"
	case StateInstalling:
		return "installing"
	case StateInitializingVCS:
		return "initializing-vcs"
	case StateDone:
		return "done"
	case StateFatal:
		return "fatal"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Step names a pipeline step that produces an outcome.
type Step string

const (
	StepCopy    Step = "copy"
	StepInstall Step = "install"
	StepInit    Step = "init"
)

// Status is the result of a single step.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StepOutcome records what happened to one step.
type StepOutcome struct {
	Step    Step
	Status  Status
	Detail  string
	Command string // command line to re-run by hand (install and init only)
	Err     error
}

// Warning returns the manual follow-up for a failed command step, or "".
func (o StepOutcome) Warning() string {
	if o.Status != StatusFailed || o.Command == "" {
		return ""
	}
	return fmt.Sprintf("Please try running '%s' manually in your project directory if needed.", o.Command)
}

// Report is the result of a run, fatal or not.
type Report struct {
	State    State
	Target   *project.Target
	Template *template.Ref
	Steps    []StepOutcome

	installCommand string
	devCommand     string
}

// Outcome returns the recorded outcome of step.
func (r *Report) Outcome(step Step) (StepOutcome, bool) {
	for _, o := range r.Steps {
		if o.Step == step {
			return o, true
		}
	}
	return StepOutcome{}, false
}

// Warnings returns one line per failed non-fatal step.
func (r *Report) Warnings() []string {
	var warnings []string
	for _, o := range r.Steps {
		if w := o.Warning(); w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// NextSteps lists the commands the user should run to start developing.
func (r *Report) NextSteps() []string {
	var steps []string
	if r.Target != nil && !r.Target.Sentinel {
		steps = append(steps, "cd "+r.Target.Name)
	}
	steps = append(steps, r.devCommand)
	if o, ok := r.Outcome(StepInstall); !ok || o.Status != StatusSuccess {
		steps = append(steps, r.installCommand)
	}
	return steps
}

// Render writes the closing summary of a successful run.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintln(w, "\nProject setup complete!")
	fmt.Fprintln(w, "\nTo get started:")
	for _, s := range r.NextSteps() {
		fmt.Fprintf(w, "  %s\n", s)
	}
	if warnings := r.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(w, "\nSome optional steps did not complete:")
		for _, warning := range warnings {
			fmt.Fprintf(w, "  %s\n", warning)
		}
	}
	fmt.Fprintln(w, "\nHappy coding!")
}
