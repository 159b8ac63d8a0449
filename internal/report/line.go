// SPDX-License-Identifier: MPL-2.0

package report

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// LineReporter prints the failure as plain text and consumes input until
// the acknowledgement key. End of input counts as acknowledgement since a
// closed input can never deliver the key.
type LineReporter struct {
	in  io.Reader
	out io.Writer
	key rune
}

// NewLineReporter creates a LineReporter. Only the first rune of key is
// used.
func NewLineReporter(in io.Reader, out io.Writer, key string) *LineReporter {
	r := []rune(key)
	if len(r) == 0 {
		r = []rune(DefaultAckKey)
	}
	return &LineReporter{in: in, out: out, key: r[0]}
}

// Report implements Reporter.
func (r *LineReporter) Report(ctx context.Context, f Failure) error {
	fmt.Fprintln(r.out, f.Title)
	if f.Body != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, f.Body)
	}
	fmt.Fprintln(r.out, hint(string(r.key)))

	done := make(chan error, 1)
	go func() {
		done <- r.waitForKey()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *LineReporter) waitForKey() error {
	br := bufio.NewReader(r.in)
	for {
		c, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read acknowledgement: %w", err)
		}
		if c == r.key {
			return nil
		}
	}
}

func hint(key string) string {
	return fmt.Sprintf("Press %s to exit.", key)
}
