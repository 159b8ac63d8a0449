// SPDX-License-Identifier: MPL-2.0

// Package launch hands control to the resolved engine executable.
//
// A Request carries both the merged argument string (see MergeArgs) and the
// argument vector it was built from. Replacers whose process primitive takes
// an argument vector use Argv directly, so every argument reaches the engine
// byte for byte.
package launch

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrLaunchFailed is the sentinel wrapped by LaunchFailedError.
var ErrLaunchFailed = errors.New("launch failed")

type (
	// Request is one process replacement: the executable, the merged
	// argument string built by MergeArgs and the arguments after argv[0].
	Request struct {
		Path string
		Args string
		Argv []string
	}

	// Replacer replaces the current process image. On success a real
	// Replacer does not return.
	Replacer interface {
		Replace(req Request) error
	}

	// ReplacerFunc adapts a function to Replacer.
	ReplacerFunc func(req Request) error

	// Launcher builds and submits launch requests.
	Launcher struct {
		replacer Replacer
		logger   *log.Logger
	}

	// LaunchFailedError is returned when the replacement primitive reports an
	// error. Control is back with the caller.
	LaunchFailedError struct {
		Path string
		Err  error
	}
)

// Replace calls f.
func (f ReplacerFunc) Replace(req Request) error { return f(req) }

// Error implements the error interface.
func (e *LaunchFailedError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrLaunchFailed and the primitive's error.
func (e *LaunchFailedError) Unwrap() []error { return []error{ErrLaunchFailed, e.Err} }

// NewLauncher creates a Launcher. A nil logger discards output.
func NewLauncher(r Replacer, logger *log.Logger) *Launcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Launcher{replacer: r, logger: logger}
}

// NewRequest builds the request that runs path with argv[1:].
func NewRequest(path string, argv []string) Request {
	var rest []string
	if len(argv) > 1 {
		rest = append(rest, argv[1:]...)
	}
	return Request{Path: path, Args: MergeArgs(path, argv), Argv: rest}
}

// Launch submits req. With a real Replacer a nil return is never observed:
// the process has been replaced. Any error is a *LaunchFailedError.
func (l *Launcher) Launch(req Request) error {
	l.logger.Info("launching", "path", req.Path, "args", req.Args)
	l.logger.Debug("command line", "cmd", QuoteCommand(req.Path, req.Argv))

	if err := l.replacer.Replace(req); err != nil {
		return &LaunchFailedError{Path: req.Path, Err: err}
	}
	return nil
}
