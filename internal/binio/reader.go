// SPDX-License-Identifier: MPL-2.0

// Package binio reads fixed-width little-endian integers and length-prefixed
// byte strings from a seekable stream.
//
// Every read is bounds-checked against the stream size learned when the
// Reader is created, so a truncated or lying input surfaces as an error
// instead of as zeroed data.
package binio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrShortRead is the sentinel wrapped by ShortReadError.
	ErrShortRead = errors.New("short read")
	// ErrOutOfBounds is the sentinel wrapped by OutOfBoundsError.
	ErrOutOfBounds = errors.New("out of bounds")
)

type (
	// Reader decodes primitives from an io.ReadSeeker and tracks the cursor.
	Reader struct {
		rs     io.ReadSeeker
		size   int64
		offset int64
	}

	// ShortReadError is returned when the stream ends before the requested
	// number of bytes could be read.
	ShortReadError struct {
		Offset int64
		Want   int64
		Got    int64
	}

	// OutOfBoundsError is returned when a length or seek target lies outside
	// the stream. Nothing is read or allocated when this is returned.
	OutOfBoundsError struct {
		Offset int64
		Length uint64
		Size   int64
	}
)

// Error implements the error interface.
func (e *ShortReadError) Error() string {
	return fmt.Sprintf("short read at offset %d: wanted %d bytes, got %d", e.Offset, e.Want, e.Got)
}

// Unwrap returns ErrShortRead for errors.Is.
func (e *ShortReadError) Unwrap() error { return ErrShortRead }

// Error implements the error interface.
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%d bytes at offset %d exceed stream size %d", e.Length, e.Offset, e.Size)
}

// Unwrap returns ErrOutOfBounds for errors.Is.
func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// NewReader wraps rs. The stream size is determined by seeking to the end,
// after which the cursor is rewound to the start.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("determining stream size: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding stream: %w", err)
	}
	return &Reader{rs: rs, size: size}, nil
}

// Size returns the total stream size in bytes.
func (r *Reader) Size() int64 { return r.size }

// Offset returns the absolute cursor position.
func (r *Reader) Offset() int64 { return r.offset }

// Remaining returns the number of bytes between the cursor and the end.
func (r *Reader) Remaining() int64 { return r.size - r.offset }

// CheckRange reports whether length bytes starting at the absolute offset
// fit within the stream.
func (r *Reader) CheckRange(offset, length uint64) error {
	if offset > uint64(r.size) || length > uint64(r.size)-offset {
		return &OutOfBoundsError{Offset: int64(min(offset, uint64(r.size))), Length: length, Size: r.size}
	}
	return nil
}

// ReadUint32 reads a little-endian uint32 and advances by 4 bytes.
func (r *Reader) ReadUint32() (uint32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadUint64 reads a little-endian uint64 and advances by 8 bytes.
func (r *Reader) ReadUint64() (uint64, error) {
	var buf [8]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadBytes reads exactly n bytes. n is checked against the remaining
// stream length before the buffer is allocated.
func (r *Reader) ReadBytes(n uint64) ([]byte, error) {
	if err := r.CheckRange(uint64(r.offset), n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadString reads a uint32 length L followed by L raw bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(uint64(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Skip advances the cursor by n bytes without interpreting them.
func (r *Reader) Skip(n uint64) error {
	if err := r.CheckRange(uint64(r.offset), n); err != nil {
		return err
	}
	return r.SeekTo(uint64(r.offset) + n)
}

// SeekTo moves the cursor to an absolute offset within the stream.
func (r *Reader) SeekTo(offset uint64) error {
	if err := r.CheckRange(offset, 0); err != nil {
		return err
	}
	pos, err := r.rs.Seek(int64(offset), io.SeekStart)
	if err != nil {
		return fmt.Errorf("seeking to offset %d: %w", offset, err)
	}
	r.offset = pos
	return nil
}

func (r *Reader) readFull(buf []byte) error {
	n, err := io.ReadFull(r.rs, buf)
	start := r.offset
	r.offset += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &ShortReadError{Offset: start, Want: int64(len(buf)), Got: int64(n)}
		}
		return fmt.Errorf("reading %d bytes at offset %d: %w", len(buf), start, err)
	}
	return nil
}
