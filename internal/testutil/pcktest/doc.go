// SPDX-License-Identifier: MPL-2.0

// Package pcktest builds Godot pack files for tests.
//
// This package deliberately does not import pkg/pck so that the parser's
// own in-package tests can use it.
//
// # Usage
//
//	data := pcktest.New(pcktest.WithVersion(4, 2, 1), pcktest.WithFile("custom_editor_id", "mybuild")).Bytes()
//	path := pcktest.New(pcktest.WithVersion(3, 5, 0)).WriteFile(t, dir, "game.pck")
package pcktest
