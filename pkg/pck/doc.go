// SPDX-License-Identifier: MPL-2.0

// Package pck parses the header and file table of a Godot pack (.pck) file.
//
// Only format version 1 is understood. The layout is little-endian:
//
//	u32 magic ("GDPC", 0x43504447)
//	u32 format version (1)
//	u32 major, minor, patch of the producing engine
//	16 x u32 reserved
//	u32 file count N
//	N x { u32 name length, name bytes, u64 offset, u64 size, [16]byte md5 }
//
// The table is scanned lazily: entries are decoded one at a time and only
// the payload of a requested entry is ever read.
package pck
