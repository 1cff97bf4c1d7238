// Package cli defines the Cobra command tree for create-dstack-app. The root
// command takes no arguments and runs the interactive scaffold; version,
// doctor and config are small support commands. Commands only wire I/O and
// settings; the pipeline itself lives in internal/scaffold.
package cli
