// Package tzdb locates and reads compiled TZif entries from the system
// timezone database. The TZDIR environment variable overrides the search
// path; otherwise the conventional zoneinfo directories are tried in
// order. Files are read whole, since the decoder parses by random access
// over a complete buffer.
package tzdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicolasbauw/go-tzfile/tzinfo"
)

// ErrInvalidName is returned for zone names that could escape the
// database directory or that no entry can have.
var ErrInvalidName = errors.New("tzdb: invalid zone name")

// zoneDirs are the directories conventionally holding the compiled
// timezone database, tried in order when TZDIR is unset.
var zoneDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
	"/etc/zoneinfo",
}

// Read returns the complete contents of the database entry for the named
// zone, e.g. "Europe/Paris". It fails with ErrInvalidName for names that
// are empty, absolute or contain path traversal, and with an *os.PathError
// when no search directory has the entry.
func Read(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	var firstErr error
	for _, dir := range dirs() {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return b, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("tzdb: zone %q: %w", name, firstErr)
}

// Load reads and decodes the database entry for the named zone.
func Load(name string) (*tzinfo.Zone, error) {
	b, err := Read(name)
	if err != nil {
		return nil, err
	}
	return tzinfo.Parse(name, b)
}

func dirs() []string {
	if dir := os.Getenv("TZDIR"); dir != "" {
		return []string{dir}
	}
	return zoneDirs
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}
