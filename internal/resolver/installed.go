// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// Runtime is an engine executable found in the search directory.
type Runtime struct {
	// Version is the text between the naming prefix and extension.
	Version string
	Path    string
	// Custom is true when Version is not a "major.minor[.patch]" string.
	Custom bool
}

// Installed lists the executables in dir that follow the naming template.
// Numbered versions come first, newest first; custom builds follow in
// lexical order.
func Installed(dir string, n Naming) ([]Runtime, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing runtimes in %s: %w", dir, err)
	}

	var runtimes []Runtime
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, n.Prefix) || !strings.HasSuffix(name, n.Extension) {
			continue
		}
		version := strings.TrimSuffix(strings.TrimPrefix(name, n.Prefix), n.Extension)
		if version == "" {
			continue
		}
		runtimes = append(runtimes, Runtime{
			Version: version,
			Path:    filepath.Join(dir, name),
			Custom:  !semver.IsValid("v" + version),
		})
	}

	slices.SortFunc(runtimes, compareRuntimes)
	return runtimes, nil
}

func compareRuntimes(a, b Runtime) int {
	switch {
	case a.Custom != b.Custom:
		if a.Custom {
			return 1
		}
		return -1
	case a.Custom:
		return strings.Compare(a.Version, b.Version)
	}
	if c := semver.Compare("v"+b.Version, "v"+a.Version); c != 0 {
		return c
	}
	// "4.2" and "4.2.0" compare equal; list the longer spelling first.
	return len(b.Version) - len(a.Version)
}
