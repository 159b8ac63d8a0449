// SPDX-License-Identifier: MPL-2.0

//go:build !unix && !windows

package launch

import (
	"errors"
	"runtime"
)

// NewExecReplacer returns a Replacer that always fails; this platform has
// no way to start another executable.
func NewExecReplacer() Replacer {
	return ReplacerFunc(func(Request) error {
		return errors.New("process replacement is not supported on " + runtime.GOOS)
	})
}
