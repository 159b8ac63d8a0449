// SPDX-License-Identifier: MPL-2.0

package pck

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Stary2001/godot-forwarder/internal/binio"

	"github.com/charmbracelet/log"
)

// minEntrySize is the smallest possible table record: an empty name plus
// the offset, size and hash fields.
const minEntrySize = 4 + 8 + 8 + HashSize

type (
	// Archive is an opened pack positioned after its header. The file table
	// is re-scanned from its start by every FindEntry call.
	Archive struct {
		r          *binio.Reader
		closer     io.Closer
		header     Header
		fileCount  uint32
		tableStart int64
		logger     *log.Logger
	}

	// Option configures an Archive.
	Option func(*Archive)
)

// WithLogger sets the logger used for debug output while scanning the table.
func WithLogger(l *log.Logger) Option {
	return func(a *Archive) {
		a.logger = l
	}
}

// Open opens the pack at path and parses its header and file count.
func Open(path string, opts ...Option) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	a, err := NewArchive(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	a.closer = f
	return a, nil
}

// NewArchive parses a pack from rs. The caller keeps ownership of rs.
func NewArchive(rs io.ReadSeeker, opts ...Option) (*Archive, error) {
	r, err := binio.NewReader(rs)
	if err != nil {
		return nil, &CorruptArchiveError{Section: "header", Err: err}
	}

	a := &Archive{r: r}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = log.New(io.Discard)
	}

	a.header, err = ParseHeader(r)
	if err != nil {
		return nil, err
	}

	a.fileCount, err = r.ReadUint32()
	if err != nil {
		return nil, &CorruptArchiveError{Section: "file count", Err: err}
	}
	if uint64(a.fileCount)*minEntrySize > uint64(r.Remaining()) {
		return nil, &CorruptArchiveError{
			Section: "file count",
			Err:     fmt.Errorf("%d entries cannot fit in the remaining %d bytes", a.fileCount, r.Remaining()),
		}
	}
	a.tableStart = r.Offset()

	a.logger.Info("pck for godot version", "version", a.header.Version.String(), "files", a.fileCount, "size", r.Size())
	return a, nil
}

// ParseHeader reads the magic, format version, producer version and the
// reserved block. It stops before the file count. An invalid magic or
// version is reported before any later field is read.
func ParseHeader(r *binio.Reader) (Header, error) {
	var h Header
	var err error

	if h.Magic, err = r.ReadUint32(); err != nil {
		return Header{}, &CorruptArchiveError{Section: "header", Err: err}
	}
	if h.Magic != Magic {
		return Header{}, &InvalidMagicError{Value: h.Magic}
	}

	if h.FormatVersion, err = r.ReadUint32(); err != nil {
		return Header{}, &CorruptArchiveError{Section: "header", Err: err}
	}
	if h.FormatVersion != FormatVersion {
		return Header{}, &InvalidFormatVersionError{Value: h.FormatVersion}
	}

	for _, field := range []*uint32{&h.Version.Major, &h.Version.Minor, &h.Version.Patch} {
		if *field, err = r.ReadUint32(); err != nil {
			return Header{}, &CorruptArchiveError{Section: "header", Err: err}
		}
	}

	if err := r.Skip(ReservedSlots * 4); err != nil {
		return Header{}, &CorruptArchiveError{Section: "reserved block", Err: err}
	}

	return h, nil
}

// Header returns the parsed pack header.
func (a *Archive) Header() Header { return a.header }

// FileCount returns the number of records in the file table.
func (a *Archive) FileCount() uint32 { return a.fileCount }

// Close closes the underlying file when the archive was created by Open.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// FindEntry scans the file table in order and returns the first record
// whose name equals name byte for byte. A missing entry is not an error.
func (a *Archive) FindEntry(name string) (FileEntry, bool, error) {
	if err := a.r.SeekTo(uint64(a.tableStart)); err != nil {
		return FileEntry{}, false, &CorruptArchiveError{Section: "file table", Err: err}
	}

	for i := range a.fileCount {
		entry, err := a.readEntry()
		if err != nil {
			return FileEntry{}, false, &CorruptArchiveError{Section: fmt.Sprintf("file table entry %d", i), Err: err}
		}
		a.logger.Debug("got a file", "name", entry.Name, "offset", entry.Offset, "size", entry.Size)

		if entry.Name == name {
			return entry, true, nil
		}
	}
	return FileEntry{}, false, nil
}

// ReadEntry returns the raw payload of entry.
func (a *Archive) ReadEntry(entry FileEntry) ([]byte, error) {
	if err := a.r.SeekTo(entry.Offset); err != nil {
		return nil, &CorruptArchiveError{Section: "entry " + entry.Name, Err: err}
	}
	data, err := a.r.ReadBytes(entry.Size)
	if err != nil {
		return nil, &CorruptArchiveError{Section: "entry " + entry.Name, Err: err}
	}
	return data, nil
}

// CustomEditorID returns the payload of the custom_editor_id entry, if the
// pack has one. The bytes are returned verbatim.
func (a *Archive) CustomEditorID() (string, bool, error) {
	entry, ok, err := a.FindEntry(CustomEditorIDEntry)
	if err != nil || !ok {
		return "", false, err
	}
	data, err := a.ReadEntry(entry)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (a *Archive) readEntry() (FileEntry, error) {
	var e FileEntry
	var err error

	if e.Name, err = a.r.ReadString(); err != nil {
		return FileEntry{}, fmt.Errorf("name: %w", err)
	}
	if e.Offset, err = a.r.ReadUint64(); err != nil {
		return FileEntry{}, fmt.Errorf("offset: %w", err)
	}
	if e.Size, err = a.r.ReadUint64(); err != nil {
		return FileEntry{}, fmt.Errorf("size: %w", err)
	}
	hash, err := a.r.ReadBytes(HashSize)
	if err != nil {
		return FileEntry{}, fmt.Errorf("hash: %w", err)
	}
	copy(e.Hash[:], hash)

	if err := a.r.CheckRange(e.Offset, e.Size); err != nil {
		return FileEntry{}, fmt.Errorf("payload of %q: %w", e.Name, err)
	}
	return e, nil
}

// IsFormatError reports whether err means the file is not a readable
// version 1 pack, as opposed to an I/O failure opening it.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrInvalidMagic) || errors.Is(err, ErrInvalidVersion) || errors.Is(err, ErrCorruptArchive)
}
