// SPDX-License-Identifier: MPL-2.0

//go:build windows

package launch

import (
	"errors"
	"os"
	"os/exec"
)

type execReplacer struct{}

// NewExecReplacer returns a Replacer that emulates process replacement:
// Windows has no execve, so the engine runs as a child with our stdio and
// its exit code becomes ours.
func NewExecReplacer() Replacer {
	return &execReplacer{}
}

// Replace runs req.Path to completion and exits. It only returns when the
// child could not be started.
func (r *execReplacer) Replace(req Request) error {
	cmd := exec.Command(req.Path, req.Argv...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return err
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
	os.Exit(0)
	return nil
}
