// Package scaffold drives a create-dstack-app run: it checks the Node.js
// runtime, collects the four answers through a prompt.Asker, validates the
// project name, resolves the template, copies it, enters the new directory
// and runs the optional install and version-control steps.
//
// The copy is the last step that can fail the run. Install and init failures
// are recorded as failed StepOutcomes and surfaced as warnings; the run still
// ends in StateDone.
package scaffold
