// SPDX-License-Identifier: MPL-2.0

// Package resolver maps a pack's target engine build to an executable on
// disk.
//
// A version target is searched downward only: the exact patch release, then
// each earlier patch of the same minor line down to 1, then the bare
// "major.minor" build. The search never crosses a minor or major boundary.
// A custom build identifier is probed exactly once.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultPrefix is the executable name prefix.
	DefaultPrefix = "godot-"
	// DefaultExtension is the executable file extension.
	DefaultExtension = ".nro"
)

type (
	// Naming is the executable naming template: Prefix + version + Extension.
	Naming struct {
		Prefix    string
		Extension string
	}

	// Resolver probes candidates inside Dir.
	Resolver struct {
		dir    string
		naming Naming
		exists func(path string) bool
		probe  func(path string, found bool)
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// DefaultNaming returns the godot-<version>.nro template.
func DefaultNaming() Naming {
	return Naming{Prefix: DefaultPrefix, Extension: DefaultExtension}
}

// Name renders the executable name for a version string.
func (n Naming) Name(version string) string {
	return n.Prefix + version + n.Extension
}

// WithNaming overrides the executable naming template.
func WithNaming(n Naming) Option {
	return func(r *Resolver) { r.naming = n }
}

// WithExistsFunc replaces the filesystem existence check.
func WithExistsFunc(fn func(path string) bool) Option {
	return func(r *Resolver) { r.exists = fn }
}

// WithProbeHook registers a callback invoked once per probed candidate.
func WithProbeHook(fn func(path string, found bool)) Option {
	return func(r *Resolver) { r.probe = fn }
}

// New creates a Resolver searching dir. dir is made absolute because the
// resolved path is handed to a process that may not share our cwd.
func New(dir string, opts ...Option) (*Resolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving search directory %q: %w", dir, err)
	}

	r := &Resolver{
		dir:    abs,
		naming: DefaultNaming(),
		exists: fileExists,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Dir returns the absolute search directory.
func (r *Resolver) Dir() string { return r.dir }

// Naming returns the executable naming template.
func (r *Resolver) Naming() Naming { return r.naming }

// Candidates returns the executable names to probe for t, in order.
func Candidates(t Target, n Naming) []string {
	if t.IsCustom() {
		return []string{n.Name(t.ID.String())}
	}

	v := t.Version
	names := []string{n.Name(fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch))}
	for p := v.Patch; p > 1; p-- {
		names = append(names, n.Name(fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, p-1)))
	}
	return append(names, n.Name(fmt.Sprintf("%d.%d", v.Major, v.Minor)))
}

// Resolve returns the absolute path of the first candidate that exists.
func (r *Resolver) Resolve(t Target) (string, error) {
	if t.IsCustom() {
		if err := t.ID.Validate(); err != nil {
			return "", err
		}
	}

	for _, name := range Candidates(t, r.naming) {
		path := filepath.Join(r.dir, name)
		found := r.exists(path)
		if r.probe != nil {
			r.probe(path, found)
		}
		if found {
			return path, nil
		}
	}
	return "", &NoCompatibleVersionError{Target: t, Dir: r.dir}
}

// fileExists reports whether path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
