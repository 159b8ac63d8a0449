// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Stary2001/godot-forwarder/pkg/pck"
)

var (
	// ErrInvalidIdentifier is the sentinel wrapped by InvalidIdentifierError.
	ErrInvalidIdentifier = errors.New("invalid custom build identifier")
	// ErrNoCompatibleVersion is the sentinel wrapped by NoCompatibleVersionError.
	ErrNoCompatibleVersion = errors.New("no compatible version found")
)

type (
	// Identifier names a custom engine build, e.g. "4.3-mono-switch".
	Identifier string

	// InvalidIdentifierError is returned when an Identifier could escape the
	// search directory or is empty.
	InvalidIdentifierError struct {
		Value  Identifier
		Reason string
	}

	// Target is the engine build a pack asks for. When Custom is set, ID
	// takes priority over Version, even if ID is empty.
	Target struct {
		ID      Identifier
		Custom  bool
		Version pck.ProducerVersion
	}

	// NoCompatibleVersionError is returned when every candidate was probed
	// and none exists. It carries the original target, never a candidate.
	NoCompatibleVersionError struct {
		Target Target
		Dir    string
	}
)

// String returns the identifier as a string.
func (id Identifier) String() string { return string(id) }

// Validate rejects empty identifiers and ones containing path separators
// or NUL bytes.
func (id Identifier) Validate() error {
	switch {
	case id == "":
		return &InvalidIdentifierError{Value: id, Reason: "empty"}
	case strings.ContainsAny(string(id), `/\`):
		return &InvalidIdentifierError{Value: id, Reason: "contains a path separator"}
	case strings.ContainsRune(string(id), 0):
		return &InvalidIdentifierError{Value: id, Reason: "contains a NUL byte"}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid custom build identifier %q: %s", string(e.Value), e.Reason)
}

// Unwrap returns ErrInvalidIdentifier for errors.Is.
func (e *InvalidIdentifierError) Unwrap() error { return ErrInvalidIdentifier }

// VersionTarget targets a producer version.
func VersionTarget(v pck.ProducerVersion) Target {
	return Target{Version: v}
}

// IdentifierTarget targets a custom build.
func IdentifierTarget(id Identifier) Target {
	return Target{ID: id, Custom: true}
}

// IsCustom reports whether the target names a custom build.
func (t Target) IsCustom() bool { return t.Custom }

// String describes what was wanted, for user-facing messages.
func (t Target) String() string {
	if t.IsCustom() {
		return fmt.Sprintf("a custom build '%s'", t.ID)
	}
	return t.Version.String()
}

// Error implements the error interface.
func (e *NoCompatibleVersionError) Error() string {
	return fmt.Sprintf("Failed to find a compatible Godot version, wanted %s!", e.Target)
}

// Unwrap returns ErrNoCompatibleVersion for errors.Is.
func (e *NoCompatibleVersionError) Unwrap() error { return ErrNoCompatibleVersion }
