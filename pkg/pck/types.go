// SPDX-License-Identifier: MPL-2.0

package pck

import (
	"errors"
	"fmt"
)

const (
	// Magic is the pack signature, "GDPC" read as a little-endian uint32.
	Magic uint32 = 0x43504447
	// FormatVersion is the only pack format version this package reads.
	FormatVersion uint32 = 1
	// ReservedSlots is the number of uint32 slots skipped after the version triple.
	ReservedSlots = 16
	// HashSize is the length of the per-entry md5 digest.
	HashSize = 16

	// CustomEditorIDEntry names the table entry whose payload selects a
	// custom engine build instead of the producer version.
	CustomEditorIDEntry = "custom_editor_id"
)

var (
	// ErrArchiveOpenFailed is the sentinel wrapped by OpenError.
	ErrArchiveOpenFailed = errors.New("failed to open pack")
	// ErrInvalidMagic is the sentinel wrapped by InvalidMagicError.
	ErrInvalidMagic = errors.New("invalid pck magic")
	// ErrInvalidVersion is the sentinel wrapped by InvalidFormatVersionError.
	ErrInvalidVersion = errors.New("invalid pck format")
	// ErrCorruptArchive is the sentinel wrapped by CorruptArchiveError.
	ErrCorruptArchive = errors.New("corrupt pck")
)

type (
	// ProducerVersion is the engine version that wrote the pack.
	ProducerVersion struct {
		Major uint32
		Minor uint32
		Patch uint32
	}

	// Header is the fixed-size prefix of a pack.
	Header struct {
		Magic         uint32
		FormatVersion uint32
		Version       ProducerVersion
	}

	// FileEntry is one record of the file table. Names are unique within a
	// well-formed pack but nothing enforces that; the first record wins.
	FileEntry struct {
		Name   string
		Offset uint64
		Size   uint64
		Hash   [HashSize]byte
	}

	// OpenError is returned when the pack file cannot be opened.
	OpenError struct {
		Path string
		Err  error
	}

	// InvalidMagicError is returned when the pack does not start with Magic.
	InvalidMagicError struct {
		Value uint32
	}

	// InvalidFormatVersionError is returned for any format version other than FormatVersion.
	InvalidFormatVersionError struct {
		Value uint32
	}

	// CorruptArchiveError is returned when the header or table points past
	// the end of the file or is truncated.
	CorruptArchiveError struct {
		// Section is the part being decoded, e.g. "header" or "file table entry 3".
		Section string
		Err     error
	}
)

// String returns the dotted "major.minor.patch" form.
func (v ProducerVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Error implements the error interface.
func (e *OpenError) Error() string {
	return fmt.Sprintf("open pack %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *OpenError) Unwrap() []error { return []error{ErrArchiveOpenFailed, e.Err} }

// Error implements the error interface.
func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("invalid pck magic %#08x (want %#08x)", e.Value, Magic)
}

// Unwrap returns ErrInvalidMagic for errors.Is.
func (e *InvalidMagicError) Unwrap() error { return ErrInvalidMagic }

// Error implements the error interface.
func (e *InvalidFormatVersionError) Error() string {
	return fmt.Sprintf("invalid pck format version %d (want %d)", e.Value, FormatVersion)
}

// Unwrap returns ErrInvalidVersion for errors.Is.
func (e *InvalidFormatVersionError) Unwrap() error { return ErrInvalidVersion }

// Error implements the error interface.
func (e *CorruptArchiveError) Error() string {
	return fmt.Sprintf("corrupt pck %s: %v", e.Section, e.Err)
}

// Unwrap returns both ErrCorruptArchive and the underlying read error.
func (e *CorruptArchiveError) Unwrap() []error { return []error{ErrCorruptArchive, e.Err} }
