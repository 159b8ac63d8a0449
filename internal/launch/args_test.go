// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"slices"
	"testing"
)

func TestMergeArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		argv []string
		want string
	}{
		{
			name: "forwarded flags",
			path: "/x/godot-1.2.3.nro",
			argv: []string{"prog", "--main-pack", "foo.pck", "--flag", "val"},
			want: `/x/godot-1.2.3.nro "--main-pack" "foo.pck" "--flag" "val"`,
		},
		{
			name: "argv0 only",
			path: "/x/godot-4.2.nro",
			argv: []string{"prog"},
			want: "/x/godot-4.2.nro ",
		},
		{
			name: "empty argv",
			path: "/x/godot-4.2.nro",
			argv: nil,
			want: "/x/godot-4.2.nro ",
		},
		{
			name: "spaces and empty argument",
			path: "/sd/switch/godot-3.5.nro",
			argv: []string{"prog", "my game.pck", ""},
			want: `/sd/switch/godot-3.5.nro "my game.pck" ""`,
		},
		{
			name: "embedded quote is not escaped",
			path: "/p",
			argv: []string{"prog", `say "hi"`},
			want: `/p "say "hi""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MergeArgs(tt.path, tt.argv); got != tt.want {
				t.Errorf("MergeArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRequest_KeepsArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
	}{
		{name: "no arguments", argv: []string{"prog"}},
		{name: "flags", argv: []string{"prog", "--main-pack", "foo.pck", "--flag", "val"}},
		{name: "spaces", argv: []string{"prog", "--main-pack", "/sd/my games/a b.pck"}},
		{name: "empty argument", argv: []string{"prog", "", "x"}},
		{name: "dollar and backtick", argv: []string{"prog", "$HOME", "${X:-y}", "`id`", "$(id)"}},
		{name: "unterminated shell syntax", argv: []string{"prog", "cost $(", "${x", "a`b"}},
		{name: "trailing backslash", argv: []string{"prog", `C:\games\`, `x\`}},
		{name: "embedded double quote", argv: []string{"prog", `say "hi"`}},
		{name: "single quotes and globs", argv: []string{"prog", "it's", "*.pck", "a;b", "c|d", "e>f"}},
		{name: "unicode", argv: []string{"prog", "ゲーム.pck", "naïve"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			const path = "/x/godot-4.2.1.nro"
			req := NewRequest(path, tt.argv)
			if !slices.Equal(req.Argv, tt.argv[1:]) {
				t.Errorf("Argv = %q, want %q", req.Argv, tt.argv[1:])
			}
			if want := MergeArgs(path, tt.argv); req.Args != want {
				t.Errorf("Args = %q, want %q", req.Args, want)
			}
		})
	}
}

func TestNewRequest_DoesNotAliasArgv(t *testing.T) {
	t.Parallel()

	argv := []string{"prog", "a"}
	req := NewRequest("/p", argv)
	argv[1] = "changed"
	if req.Argv[0] != "a" {
		t.Errorf("Argv[0] = %q, want a", req.Argv[0])
	}
}

func TestQuoteCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		args []string
		want string
	}{
		{
			name: "plain words",
			path: "/x/godot-4.2.nro",
			args: []string{"--main-pack", "foo.pck"},
			want: "/x/godot-4.2.nro --main-pack foo.pck",
		},
		{
			name: "spaces",
			path: "/x/godot-4.2.nro",
			args: []string{"my game.pck"},
			want: "/x/godot-4.2.nro 'my game.pck'",
		},
		{
			name: "NUL byte",
			path: "/p",
			args: []string{"a\x00b"},
			want: `/p "a\x00b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := QuoteCommand(tt.path, tt.args); got != tt.want {
				t.Errorf("QuoteCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}
