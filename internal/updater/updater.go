package updater

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dstack-labs/create-dstack-app/internal/branding"
	"github.com/dstack-labs/create-dstack-app/internal/runtime"
)

// Release is the subset of a GitHub release the notice needs.
type Release struct {
	Version   string    `json:"tag_name"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Checker looks up the latest release of the CLI.
type Checker struct {
	currentVersion string
	httpClient     *http.Client
	apiBase        string
	now            func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) {
		ch.httpClient = c
	}
}

// WithAPIBase points the checker at a different GitHub API endpoint.
func WithAPIBase(base string) Option {
	return func(ch *Checker) {
		ch.apiBase = base
	}
}

// New creates a Checker for the running version.
func New(currentVersion string, opts ...Option) *Checker {
	ch := &Checker{
		currentVersion: currentVersion,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		apiBase:        githubAPIBase,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// Refresh fetches the latest release, records the result under configDir and
// returns it.
func (ch *Checker) Refresh(ctx context.Context, configDir string) (*Check, error) {
	release, err := ch.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	cmp, err := runtime.CompareVersions(ch.currentVersion, release.Version)
	if err != nil {
		return nil, fmt.Errorf("comparing with latest release: %w", err)
	}

	check := &Check{
		Release:         *release,
		RanFor:          ch.currentVersion,
		CheckedAt:       ch.now(),
		UpdateAvailable: cmp < 0,
	}
	if err := check.Write(configDir); err != nil {
		return check, err
	}
	return check, nil
}

// Latest returns the recorded check when it is still fresh for the running
// version and refreshes it otherwise. An unreadable record is refreshed.
func (ch *Checker) Latest(ctx context.Context, configDir string) (*Check, error) {
	if check, err := ReadCheck(configDir); err == nil && check.Fresh(ch.currentVersion, ch.now()) {
		return check, nil
	}
	return ch.Refresh(ctx, configDir)
}

// PrintNotice prints the recorded update notice, if any, for currentVersion.
// It never fetches anything and stays silent on read errors.
func PrintNotice(w io.Writer, configDir, currentVersion string) {
	check, err := ReadCheck(configDir)
	if err != nil || check == nil {
		return
	}
	if !check.UpdateAvailable || check.RanFor != currentVersion {
		return
	}
	WriteNotice(w, check)
}

// WriteNotice renders an update notice for check.
func WriteNotice(w io.Writer, check *Check) {
	fmt.Fprintf(w, "\nUpdate available: %s %s -> %s\n", branding.CLIName(), check.RanFor, check.Release.Version)
	if check.Release.HTMLURL != "" {
		fmt.Fprintf(w, "    Download it from %s\n", check.Release.HTMLURL)
	}
}
