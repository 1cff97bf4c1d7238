package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// NodeVersion asks the Node.js binary on PATH for its version
// (`node --version`) and returns it without the leading "v".
func NodeVersion(ctx context.Context, r Runner) (string, error) {
	out, err := r.Run(ctx, Command{Name: "node", Args: []string{"--version"}})
	if err != nil {
		return "", fmt.Errorf("probing Node.js version: %w", err)
	}
	if !out.Success() {
		return "", fmt.Errorf("probing Node.js version: node --version exited with status %d", out.ExitCode)
	}
	return strings.TrimPrefix(strings.TrimSpace(out.Stdout), "v"), nil
}

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b. A leading "v" is tolerated.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// SatisfiesMinimum reports whether actual is at least minimum.
func SatisfiesMinimum(actual, minimum string) (bool, error) {
	cmp, err := CompareVersions(actual, minimum)
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
