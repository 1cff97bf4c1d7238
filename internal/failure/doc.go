// Package failure defines the error taxonomy of a scaffold run. Every stage of
// the pipeline reports problems as a *failure.Error carrying a Kind; the Kind
// decides whether the run aborts (Fatal) or continues with a warning, and
// Diagnose turns a fatal error into the message shown to the user.
package failure
