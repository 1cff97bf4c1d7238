// Package project validates proposed project names and derives the directory
// a new project is scaffolded into.
package project
