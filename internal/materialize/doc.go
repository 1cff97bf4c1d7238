// Package materialize writes a template directory tree to its destination.
// It is a plain recursive copy: file contents are never inspected or rewritten.
package materialize
