package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a scaffold failure.
type Kind string

// Failure kinds.
const (
	UnsupportedRuntime  Kind = "UNSUPPORTED_RUNTIME"
	EmptyName           Kind = "EMPTY_NAME"
	InvalidNameSyntax   Kind = "INVALID_NAME_SYNTAX"
	NameCollision       Kind = "NAME_COLLISION"
	TemplateMissing     Kind = "TEMPLATE_MISSING"
	CopyFailed          Kind = "COPY_FAILED"
	StepFailed          Kind = "STEP_FAILED"
	Aborted             Kind = "ABORTED"
	UnclassifiedFailure Kind = "UNCLASSIFIED_FAILURE"
)

// Fatal reports whether a failure of this kind ends the run with exit status 1.
// Only StepFailed is recoverable; it is reported as a warning.
func (k Kind) Fatal() bool {
	return k != StepFailed
}

// Validation reports whether the kind comes from the project-name rules.
// Validation failures are surfaced at the prompt so the user can try again.
func (k Kind) Validation() bool {
	switch k {
	case EmptyName, InvalidNameSyntax, NameCollision:
		return true
	}
	return false
}

// Error is a classified scaffold failure.
type Error struct {
	Kind    Kind
	Message string
	Path    string // offending path, when there is one
	Hint    string // actionable follow-up for the user
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Fatal reports whether the error aborts the run.
func (e *Error) Fatal() bool { return e.Kind.Fatal() }

// New returns an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap returns an Error of the given kind wrapping cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or
// UnclassifiedFailure when err carries no classification.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return UnclassifiedFailure
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
