package cli

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/dstack-labs/create-dstack-app/internal/config"
	"github.com/dstack-labs/create-dstack-app/internal/platform"
	"github.com/dstack-labs/create-dstack-app/internal/runtime"
	"github.com/dstack-labs/create-dstack-app/internal/template"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that this machine can scaffold a project",
	Long: `Run diagnostic checks: required tools on PATH, the Node.js version,
the bundled templates, the settings file and symlink support.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := loadSettings(cmd.ErrOrStderr())
		d := &doctor{
			out:      cmd.OutOrStdout(),
			runner:   &runtime.ExecRunner{},
			lookPath: exec.LookPath,
			settings: *settings,
		}
		if failures := d.run(cmd.Context()); failures > 0 {
			return fmt.Errorf("%d check(s) failed", failures)
		}
		return nil
	},
}

// doctor runs the diagnostic checks and counts failures. Missing optional
// tools are warnings, not failures.
type doctor struct {
	out      io.Writer
	runner   runtime.Runner
	lookPath func(string) (string, error)
	settings config.Settings
	failures int
}

func (d *doctor) run(ctx context.Context) int {
	d.checkTools()
	d.checkNode(ctx)
	d.checkTemplates()
	d.checkSettings()
	d.checkPlatform()
	return d.failures
}

func (d *doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.out, "  [ OK ] "+format+"\n", args...)
}

func (d *doctor) warn(format string, args ...any) {
	fmt.Fprintf(d.out, "  [WARN] "+format+"\n", args...)
}

func (d *doctor) fail(format string, args ...any) {
	d.failures++
	fmt.Fprintf(d.out, "  [FAIL] "+format+"\n", args...)
}

func (d *doctor) checkTools() {
	fmt.Fprintln(d.out, "Tools check:")
	tools := []struct {
		name     string
		required bool
	}{
		{"node", !d.settings.SkipRuntimeCheck},
		{firstWord(d.settings.InstallCommand), false},
		{firstWord(d.settings.VCSCommand), false},
	}
	for _, tool := range tools {
		if tool.name == "" {
			continue
		}
		path, err := d.lookPath(tool.name)
		switch {
		case err == nil:
			d.ok("%s found at %s", tool.name, path)
		case tool.required:
			d.fail("%s not found", tool.name)
		default:
			d.warn("%s not found; the matching step will fail", tool.name)
		}
	}
}

func (d *doctor) checkNode(ctx context.Context) {
	fmt.Fprintln(d.out, "Node.js check:")
	if d.settings.SkipRuntimeCheck {
		d.warn("runtime check disabled (skip_runtime_check)")
		return
	}

	actual, err := runtime.NodeVersion(ctx, d.runner)
	if err != nil {
		d.fail("could not determine Node.js version: %v", err)
		return
	}
	ok, err := runtime.SatisfiesMinimum(actual, d.settings.MinNodeVersion)
	switch {
	case err != nil:
		d.fail("could not compare Node.js %s with %s: %v", actual, d.settings.MinNodeVersion, err)
	case !ok:
		d.fail("Node.js %s is older than the required %s", actual, d.settings.MinNodeVersion)
	default:
		d.ok("Node.js %s (>= %s)", actual, d.settings.MinNodeVersion)
	}
}

func (d *doctor) checkTemplates() {
	fmt.Fprintln(d.out, "Templates check:")
	root := d.settings.TemplatesDir
	if root == "" {
		installRoot, err := template.InstallRoot()
		if err != nil {
			d.fail("cannot locate installation: %v", err)
			return
		}
		root = template.Root(installRoot)
	}

	for _, c := range template.Choices() {
		ref, err := template.Resolve(c, root)
		if err != nil {
			d.fail("%s: %v", c, err)
			continue
		}
		d.ok("%s template at %s", ref.DisplayName, ref.SourcePath)
	}
}

func (d *doctor) checkSettings() {
	fmt.Fprintln(d.out, "Settings check:")
	path := config.FilePath()
	result, err := config.ValidateFile(path)
	if err != nil {
		d.fail("%v", err)
		return
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			d.fail("%s: %s", path, issue)
		}
		return
	}
	d.ok("%s", path)
}

func (d *doctor) checkPlatform() {
	fmt.Fprintln(d.out, "Platform check:")
	if platform.IsSymlinkSupported() {
		d.ok("symlinks supported")
		return
	}
	d.warn("symlinks unavailable; linked template files will be copied instead")
}

func firstWord(line string) string {
	cmd, err := runtime.ParseCommand(line, "")
	if err != nil {
		return ""
	}
	return cmd.Name
}
