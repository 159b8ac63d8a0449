// SPDX-License-Identifier: MPL-2.0

// Package config loads the forwarder configuration.
//
// Values come from built-in defaults, then an optional CUE file validated
// against the embedded #Config schema, then GODOT_FORWARDER_* environment
// variables. The file is looked up at GODOT_FORWARDER_CONFIG when set,
// otherwise at <config dir>/godot-forwarder/config.cue and finally at
// ./godot-forwarder.cue.
package config
