// SPDX-License-Identifier: MPL-2.0

package binio

import (
	"bytes"
	"errors"
	"testing"
)

func newTestReader(t *testing.T, data []byte) *Reader {
	t.Helper()
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	return r
}

func TestReader_ReadIntegers(t *testing.T) {
	t.Parallel()

	data := []byte{
		0x47, 0x44, 0x50, 0x43, // 0x43504447
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}
	r := newTestReader(t, data)

	u32, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32() error = %v", err)
	}
	if u32 != 0x43504447 {
		t.Errorf("ReadUint32() = %#x, want %#x", u32, 0x43504447)
	}
	if r.Offset() != 4 {
		t.Errorf("Offset() = %d, want 4", r.Offset())
	}

	u64, err := r.ReadUint64()
	if err != nil {
		t.Fatalf("ReadUint64() error = %v", err)
	}
	if u64 != 0x0102030405060708 {
		t.Errorf("ReadUint64() = %#x, want %#x", u64, uint64(0x0102030405060708))
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestReader_ReadString(t *testing.T) {
	t.Parallel()

	data := []byte{5, 0, 0, 0, 'h', 'e', 'l', 'l', 'o', 0xff}
	r := newTestReader(t, data)

	s, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}
	if s != "hello" {
		t.Errorf("ReadString() = %q, want %q", s, "hello")
	}
	if r.Offset() != 9 {
		t.Errorf("Offset() = %d, want 9", r.Offset())
	}
}

func TestReader_ShortRead(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, []byte{1, 2})
	_, err := r.ReadUint32()
	if !errors.Is(err, ErrShortRead) {
		t.Fatalf("ReadUint32() error = %v, want ErrShortRead", err)
	}

	var shortErr *ShortReadError
	if !errors.As(err, &shortErr) {
		t.Fatalf("error should be *ShortReadError, got %T", err)
	}
	if shortErr.Want != 4 || shortErr.Got != 2 {
		t.Errorf("ShortReadError = %+v, want Want=4 Got=2", shortErr)
	}
}

func TestReader_StringLengthPastEnd(t *testing.T) {
	t.Parallel()

	// Declares a 4 GiB name; must fail before allocating it.
	r := newTestReader(t, []byte{0xff, 0xff, 0xff, 0xff, 'a'})
	_, err := r.ReadString()
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("ReadString() error = %v, want ErrOutOfBounds", err)
	}
}

func TestReader_SkipAndSeek(t *testing.T) {
	t.Parallel()

	data := make([]byte, 16)
	data[12] = 0x2a
	r := newTestReader(t, data)

	if err := r.Skip(12); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	v, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32() error = %v", err)
	}
	if v != 0x2a {
		t.Errorf("ReadUint32() after Skip = %d, want 42", v)
	}

	if err := r.SeekTo(0); err != nil {
		t.Fatalf("SeekTo(0) error = %v", err)
	}
	if r.Offset() != 0 {
		t.Errorf("Offset() after SeekTo(0) = %d, want 0", r.Offset())
	}

	if err := r.Skip(17); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Skip(17) error = %v, want ErrOutOfBounds", err)
	}
	if err := r.SeekTo(17); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SeekTo(17) error = %v, want ErrOutOfBounds", err)
	}
}

func TestReader_CheckRange(t *testing.T) {
	t.Parallel()

	r := newTestReader(t, make([]byte, 10))

	tests := []struct {
		name    string
		offset  uint64
		length  uint64
		wantErr bool
	}{
		{name: "whole stream", offset: 0, length: 10},
		{name: "empty at end", offset: 10, length: 0},
		{name: "one past end", offset: 5, length: 6, wantErr: true},
		{name: "offset past end", offset: 11, length: 0, wantErr: true},
		{name: "overflowing length", offset: 1, length: ^uint64(0), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := r.CheckRange(tt.offset, tt.length)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckRange(%d, %d) error = %v, wantErr %v", tt.offset, tt.length, err, tt.wantErr)
			}
		})
	}
}
