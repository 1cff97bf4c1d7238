package updater

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const checkFileName = "release-check.json"

// MaxCheckAge is how long a recorded release check is trusted.
const MaxCheckAge = 24 * time.Hour

// Check is the recorded outcome of one release lookup.
type Check struct {
	Release         Release   `json:"release"`
	RanFor          string    `json:"ran_for"` // CLI version that performed the check
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// Fresh reports whether c was recorded by version within MaxCheckAge of now.
// A check recorded by another build says nothing about this one.
func (c *Check) Fresh(version string, now time.Time) bool {
	if c == nil || c.RanFor != version {
		return false
	}
	return now.Sub(c.CheckedAt) <= MaxCheckAge
}

// ReadCheck loads the last recorded check from dir. It returns nil, nil when
// no check has been recorded.
func ReadCheck(dir string) (*Check, error) {
	data, err := os.ReadFile(filepath.Join(dir, checkFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading release check: %w", err)
	}

	var c Check
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing release check: %w", err)
	}
	return &c, nil
}

// Write records c in dir. The file is replaced by rename so a concurrent
// reader sees either the old or the new check.
func (c *Check) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding release check: %w", err)
	}

	tmp, err := os.CreateTemp(dir, checkFileName+".*")
	if err != nil {
		return fmt.Errorf("writing release check: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing release check: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing release check: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, checkFileName)); err != nil {
		return fmt.Errorf("writing release check: %w", err)
	}
	return nil
}
