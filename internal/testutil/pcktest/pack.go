// SPDX-License-Identifier: MPL-2.0

package pcktest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

const (
	defaultMagic         uint32 = 0x43504447
	defaultFormatVersion uint32 = 1
	reservedBytes               = 16 * 4
	headerBytes                 = 4*5 + reservedBytes + 4
	hashBytes                   = 16
)

type (
	// Pack describes a pack file to build. Zero-value fields fall back to a
	// well-formed version 1 header.
	Pack struct {
		Magic         uint32
		FormatVersion uint32
		Major         uint32
		Minor         uint32
		Patch         uint32
		Reserved      [reservedBytes]byte
		Entries       []Entry
		// Truncate, when non-zero, cuts the encoded pack to this many bytes.
		Truncate int
	}

	// Entry is one file table record. When Raw is false the payload is
	// appended after the table and Offset/Size are computed from Data.
	Entry struct {
		Name   string
		Data   []byte
		Raw    bool
		Offset uint64
		Size   uint64
		// NameLength overrides the encoded name length when non-zero.
		NameLength uint32
	}

	// Option configures a Pack.
	Option func(*Pack)
)

// New builds a Pack description from options.
func New(opts ...Option) *Pack {
	p := &Pack{
		Magic:         defaultMagic,
		FormatVersion: defaultFormatVersion,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithMagic overrides the magic value.
func WithMagic(m uint32) Option {
	return func(p *Pack) { p.Magic = m }
}

// WithFormatVersion overrides the pack format version.
func WithFormatVersion(v uint32) Option {
	return func(p *Pack) { p.FormatVersion = v }
}

// WithVersion sets the producer engine version.
func WithVersion(major, minor, patch uint32) Option {
	return func(p *Pack) {
		p.Major, p.Minor, p.Patch = major, minor, patch
	}
}

// WithReservedFill fills the reserved block with b.
func WithReservedFill(b byte) Option {
	return func(p *Pack) {
		for i := range p.Reserved {
			p.Reserved[i] = b
		}
	}
}

// WithFile appends a table entry whose payload is data.
func WithFile(name, data string) Option {
	return func(p *Pack) {
		p.Entries = append(p.Entries, Entry{Name: name, Data: []byte(data)})
	}
}

// WithRawEntry appends a table entry with an explicit offset and size and
// no payload of its own.
func WithRawEntry(name string, offset, size uint64) Option {
	return func(p *Pack) {
		p.Entries = append(p.Entries, Entry{Name: name, Raw: true, Offset: offset, Size: size})
	}
}

// WithLyingNameLength appends an entry whose encoded name length is n.
func WithLyingNameLength(name string, n uint32) Option {
	return func(p *Pack) {
		p.Entries = append(p.Entries, Entry{Name: name, NameLength: n})
	}
}

// WithTruncate cuts the encoded pack to n bytes.
func WithTruncate(n int) Option {
	return func(p *Pack) { p.Truncate = n }
}

// Bytes encodes the pack.
func (p *Pack) Bytes() []byte {
	tableSize := 0
	for _, e := range p.Entries {
		tableSize += 4 + len(e.Name) + 8 + 8 + hashBytes
	}

	var buf bytes.Buffer
	le := func(v any) {
		// bytes.Buffer writes cannot fail.
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}

	le(p.Magic)
	le(p.FormatVersion)
	le(p.Major)
	le(p.Minor)
	le(p.Patch)
	buf.Write(p.Reserved[:])
	le(uint32(len(p.Entries)))

	dataOffset := uint64(headerBytes + tableSize)
	var payload bytes.Buffer
	for _, e := range p.Entries {
		nameLen := uint32(len(e.Name))
		if e.NameLength != 0 {
			nameLen = e.NameLength
		}
		le(nameLen)
		buf.WriteString(e.Name)

		offset, size := e.Offset, e.Size
		if !e.Raw {
			offset = dataOffset + uint64(payload.Len())
			size = uint64(len(e.Data))
			payload.Write(e.Data)
		}
		le(offset)
		le(size)
		buf.Write(make([]byte, hashBytes))
	}
	buf.Write(payload.Bytes())

	out := buf.Bytes()
	if p.Truncate > 0 && p.Truncate < len(out) {
		out = out[:p.Truncate]
	}
	return out
}

// WriteFile encodes the pack into dir/name and returns the full path.
func (p *Pack) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := p.Write(path); err != nil {
		t.Fatalf("failed to write pack %s: %v", path, err)
	}
	return path
}

// Write encodes the pack into path.
func (p *Pack) Write(path string) error {
	return os.WriteFile(path, p.Bytes(), 0o644)
}
