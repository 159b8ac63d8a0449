// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// MergeArgs builds the single argument string handed to the next process:
// the executable path, a space, then every argument after argv[0] wrapped in
// double quotes and separated by single spaces. Embedded quotes are not
// escaped.
func MergeArgs(path string, argv []string) string {
	var sb strings.Builder
	sb.WriteString(path)
	sb.WriteByte(' ')
	if len(argv) < 2 {
		return sb.String()
	}
	for i, arg := range argv[1:] {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('"')
		sb.WriteString(arg)
		sb.WriteByte('"')
	}
	return sb.String()
}

// QuoteCommand renders path and args as a shell command line that can be
// pasted into a terminal to repeat the launch by hand.
func QuoteCommand(path string, args []string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, quoteWord(path))
	for _, arg := range args {
		words = append(words, quoteWord(arg))
	}
	return strings.Join(words, " ")
}

func quoteWord(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		// NUL bytes have no shell spelling.
		return strconv.Quote(s)
	}
	return q
}
