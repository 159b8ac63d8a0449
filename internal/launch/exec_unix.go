// SPDX-License-Identifier: MPL-2.0

//go:build unix

package launch

import (
	"os"

	"golang.org/x/sys/unix"
)

type execReplacer struct {
	exec func(argv0 string, argv, envv []string) error
}

// NewExecReplacer returns the Replacer backed by execve(2). The environment
// is inherited unchanged.
func NewExecReplacer() Replacer {
	return &execReplacer{exec: unix.Exec}
}

// Replace execs req.Path with req.Argv. It only returns on failure.
func (r *execReplacer) Replace(req Request) error {
	argv := append([]string{req.Path}, req.Argv...)
	return r.exec(req.Path, argv, os.Environ())
}
