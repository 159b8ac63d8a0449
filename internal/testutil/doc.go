// SPDX-License-Identifier: MPL-2.0

// Package testutil provides Must* helpers that fail the test on error,
// reducing boilerplate around files, directories and the working directory.
package testutil
