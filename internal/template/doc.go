// Package template maps the user's template choice to one of the two template
// directories bundled with the installation ("template" and "template-blank")
// and verifies the directory is present before anything is copied.
package template
