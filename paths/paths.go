// Package paths resolves the on-disk locations a host may use for snapshot
// and ROM search directories. The core itself never touches the filesystem
// (ROM images and snapshots arrive as byte blobs, per spec.md §6), but a
// host embedding this module benefits from a single, OS-appropriate
// convention rather than inventing its own, so the convention is exposed
// here the way the teacher exposes its own paths package alongside its
// emulation core.
package paths

import (
	"os"
	"path/filepath"
)

const configDirName = "amiga500"

// ConfigDir returns the OS-appropriate configuration directory for this
// module, creating it if it does not already exist.
func ConfigDir(subdir ...string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}

	parts := append([]string{base, configDirName}, subdir...)
	dir := filepath.Join(parts...)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return dir, nil
}

// SnapshotDir returns (and creates) the default directory for saved
// snapshots.
func SnapshotDir() (string, error) {
	return ConfigDir("snapshots")
}
