// SPDX-License-Identifier: MPL-2.0

package report

import (
	"context"
	"io"

	"golang.org/x/term"
)

// DefaultAckKey is the key that dismisses the failure screen.
const DefaultAckKey = "+"

type (
	// Failure is what the user is shown. Title is the one-line message,
	// Body is optional pre-rendered guidance.
	Failure struct {
		Title string
		Body  string
	}

	// Reporter displays a failure and waits for acknowledgement. Report
	// returns nil once the user acknowledged, or the context's error when
	// the wait was interrupted.
	Reporter interface {
		Report(ctx context.Context, f Failure) error
	}

	// fdReader is satisfied by *os.File.
	fdReader interface {
		io.Reader
		Fd() uintptr
	}
)

// New picks a reporter for in: the interactive one when in is a terminal,
// the line-based one otherwise. An empty key means DefaultAckKey.
func New(in io.Reader, out io.Writer, key string) Reporter {
	if key == "" {
		key = DefaultAckKey
	}
	if isTerminal(in) {
		return NewTeaReporter(in, out, key)
	}
	return NewLineReporter(in, out, key)
}

func isTerminal(in io.Reader) bool {
	f, ok := in.(fdReader)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
