// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and the catalog of markdown
// guidance shown on the forwarder's failure screen.
//
// Each failure kind the forwarder can report has an Id. An ActionableError
// names the Id alongside what was being done, so the failure screen can show
// the error's own sentence first and the rendered catalog guidance below it.
package issue
