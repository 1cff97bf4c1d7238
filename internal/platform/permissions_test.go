package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	tests := []struct {
		name string
		dir  bool
		mode os.FileMode
		perm os.FileMode
	}{
		{"executable script", false, 0755, 0755},
		{"private file", false, 0600, 0600},
		{"directory with type bits", true, os.ModeDir | 0700, 0700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "entry")
			if tt.dir {
				if err := os.Mkdir(path, 0755); err != nil {
					t.Fatal(err)
				}
			} else if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0644); err != nil {
				t.Fatal(err)
			}

			if err := Chmod(path, tt.mode); err != nil {
				t.Fatalf("Chmod failed: %v", err)
			}

			if runtime.GOOS == "windows" {
				return
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if perm := info.Mode().Perm(); perm != tt.perm {
				t.Errorf("permissions = %o, want %o", perm, tt.perm)
			}
		})
	}
}
