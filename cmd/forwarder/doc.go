// SPDX-License-Identifier: MPL-2.0

// Package cmd is the godot-forwarder command line.
//
// The forwarder is started by the system in place of a game. It reads the
// engine version out of the game's main pack, finds an installed runtime
// that can run it and replaces itself with that runtime, passing its own
// arguments along. When anything fails the reason is shown until the user
// acknowledges it.
//
// Every argument is opaque to the forwarder and forwarded unchanged, so
// the root command does no flag parsing of its own.
package cmd
