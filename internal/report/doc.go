// SPDX-License-Identifier: MPL-2.0

// Package report shows a failure message and blocks until the user
// acknowledges it.
//
// On a terminal the message is drawn by a small bubbletea program. When
// input is not a terminal the message is written once and input is read
// until the acknowledgement key arrives or the input ends.
package report
