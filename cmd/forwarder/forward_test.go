// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Stary2001/godot-forwarder/internal/config"
	"github.com/Stary2001/godot-forwarder/internal/issue"
	"github.com/Stary2001/godot-forwarder/internal/launch"
	"github.com/Stary2001/godot-forwarder/internal/report"
	"github.com/Stary2001/godot-forwarder/internal/testutil"
	"github.com/Stary2001/godot-forwarder/internal/testutil/pcktest"

	"github.com/charmbracelet/log"
)

type (
	// recordingReplacer captures launch requests instead of exec'ing.
	recordingReplacer struct {
		requests []launch.Request
		err      error
	}

	recordingReporter struct {
		failures []report.Failure
	}
)

func (r *recordingReplacer) Replace(req launch.Request) error {
	r.requests = append(r.requests, req)
	return r.err
}

func (r *recordingReporter) Report(_ context.Context, f report.Failure) error {
	r.failures = append(r.failures, f)
	return nil
}

func newTestForwarder(t *testing.T, searchDir string, replacer launch.Replacer) (*forwarder, *recordingReporter) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.SearchDir = searchDir
	rep := &recordingReporter{}
	return &forwarder{
		env:      env{replacer: replacer, stdout: io.Discard, stderr: io.Discard},
		cfg:      cfg,
		logger:   log.New(io.Discard),
		reporter: rep,
	}, rep
}

func TestFindMainPack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		argv      []string
		want      string
		wantFound bool
	}{
		{name: "present", argv: []string{"prog", "--main-pack", "game.pck"}, want: "game.pck", wantFound: true},
		{name: "absent", argv: []string{"prog", "--verbose"}},
		{name: "empty argv", argv: nil},
		{name: "trailing flag ignored", argv: []string{"prog", "--main-pack"}},
		{
			name:      "last occurrence wins",
			argv:      []string{"prog", "--main-pack", "a.pck", "--main-pack", "b.pck"},
			want:      "b.pck",
			wantFound: true,
		},
		{
			name:      "trailing flag after a valid one",
			argv:      []string{"prog", "--main-pack", "a.pck", "--main-pack"},
			want:      "a.pck",
			wantFound: true,
		},
		{
			name:      "value may look like a flag",
			argv:      []string{"prog", "--main-pack", "--main-pack"},
			want:      "--main-pack",
			wantFound: true,
		},
		{name: "exact match only", argv: []string{"prog", "--main-pack=game.pck", "-main-pack", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, found := FindMainPack(tt.argv)
			if got != tt.want || found != tt.wantFound {
				t.Errorf("FindMainPack(%q) = (%q, %v), want (%q, %v)", tt.argv, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestRun_LaunchesResolvedRuntime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pack := pcktest.New(pcktest.WithVersion(1, 2, 3), pcktest.WithFile("res://icon.png", "png")).WriteFile(t, dir, "game.pck")
	testutil.MustWriteFile(t, dir, "godot-1.2.2.nro", nil)
	testutil.MustWriteFile(t, dir, "godot-1.2.nro", nil)

	rec := &recordingReplacer{}
	f, _ := newTestForwarder(t, dir, rec)

	if err := f.run([]string{"prog", "--main-pack", pack, "--flag", "val"}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(rec.requests) != 1 {
		t.Fatalf("got %d launch requests, want 1", len(rec.requests))
	}

	wantPath := filepath.Join(dir, "godot-1.2.2.nro")
	req := rec.requests[0]
	if req.Path != wantPath {
		t.Errorf("launch path = %q, want %q", req.Path, wantPath)
	}
	wantArgs := wantPath + ` "--main-pack" "` + pack + `" "--flag" "val"`
	if req.Args != wantArgs {
		t.Errorf("merged args = %q, want %q", req.Args, wantArgs)
	}
}

func TestRun_CustomEditorID(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pack := pcktest.New(
		pcktest.WithVersion(4, 2, 1),
		pcktest.WithFile("custom_editor_id", "4.2-mono"),
	).WriteFile(t, dir, "game.pck")
	testutil.MustWriteFile(t, dir, "godot-4.2.1.nro", nil)
	testutil.MustWriteFile(t, dir, "godot-4.2-mono.nro", nil)

	rec := &recordingReplacer{}
	f, _ := newTestForwarder(t, dir, rec)

	if err := f.run([]string{"prog", "--main-pack", pack}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := filepath.Base(rec.requests[0].Path); got != "godot-4.2-mono.nro" {
		t.Errorf("launched %q, want godot-4.2-mono.nro", got)
	}
}

// Not parallel: changes the working directory.
func TestRun_DefaultSearchDirIsWorkingDir(t *testing.T) {
	dir := t.TempDir()
	pcktest.New(pcktest.WithVersion(4, 2, 1)).WriteFile(t, dir, "game.pck")
	testutil.MustWriteFile(t, dir, "godot-4.2.nro", nil)
	testutil.MustChdir(t, dir)

	rec := &recordingReplacer{}
	f, _ := newTestForwarder(t, "", rec)
	if err := f.run([]string{"prog", "--main-pack", "game.pck"}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(rec.requests) != 1 {
		t.Fatalf("got %d launch requests, want 1", len(rec.requests))
	}
	if got := filepath.Base(rec.requests[0].Path); got != "godot-4.2.nro" {
		t.Errorf("launched %q, want godot-4.2.nro", got)
	}
	if !filepath.IsAbs(rec.requests[0].Path) {
		t.Errorf("launch path %q should be absolute", rec.requests[0].Path)
	}
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pack      *pcktest.Pack
		argv      func(pack string) []string
		runtimes  []string
		wantIssue issue.Id
		wantTitle string
	}{
		{
			name:      "missing argument",
			argv:      func(string) []string { return []string{"prog", "--main-pack"} },
			wantIssue: issue.MissingMainPackId,
			wantTitle: "Failed to find main_pack argument!",
		},
		{
			name:      "pack does not exist",
			argv:      func(string) []string { return []string{"prog", "--main-pack", "/nonexistent/game.pck"} },
			wantIssue: issue.PackOpenFailedId,
			wantTitle: "/nonexistent/game.pck",
		},
		{
			name:      "bad magic",
			pack:      pcktest.New(pcktest.WithMagic(0x12345678)),
			wantIssue: issue.InvalidMagicId,
			wantTitle: "invalid pck magic",
		},
		{
			name:      "bad format version",
			pack:      pcktest.New(pcktest.WithFormatVersion(2), pcktest.WithVersion(4, 0, 0)),
			wantIssue: issue.InvalidFormatVersionId,
			wantTitle: "invalid pck format version 2",
		},
		{
			name:      "truncated table",
			pack:      pcktest.New(pcktest.WithVersion(3, 5, 0), pcktest.WithFile("a", "b"), pcktest.WithTruncate(90)),
			wantIssue: issue.CorruptPackId,
			wantTitle: "corrupt pck",
		},
		{
			name:      "custom id escapes search dir",
			pack:      pcktest.New(pcktest.WithVersion(3, 5, 0), pcktest.WithFile("custom_editor_id", "../evil")),
			wantIssue: issue.CorruptPackId,
			wantTitle: "invalid custom build identifier",
		},
		{
			name:      "empty custom id with matching version installed",
			pack:      pcktest.New(pcktest.WithVersion(4, 2, 1), pcktest.WithFile("custom_editor_id", "")),
			runtimes:  []string{"godot-4.2.1.nro"},
			wantIssue: issue.CorruptPackId,
			wantTitle: "invalid custom build identifier",
		},
		{
			name:      "never upgrades",
			pack:      pcktest.New(pcktest.WithVersion(1, 2, 3)),
			runtimes:  []string{"godot-1.2.4.nro", "godot-1.3.nro"},
			wantIssue: issue.NoCompatibleVersionId,
			wantTitle: "Failed to find a compatible Godot version, wanted 1.2.3!",
		},
		{
			name:      "custom build missing",
			pack:      pcktest.New(pcktest.WithVersion(4, 2, 1), pcktest.WithFile("custom_editor_id", "mybuild")),
			runtimes:  []string{"godot-4.2.1.nro"},
			wantIssue: issue.NoCompatibleVersionId,
			wantTitle: "Failed to find a compatible Godot version, wanted a custom build 'mybuild'!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for _, name := range tt.runtimes {
				testutil.MustWriteFile(t, dir, name, nil)
			}
			packPath := ""
			if tt.pack != nil {
				packPath = tt.pack.WriteFile(t, dir, "game.pck")
			}
			argv := []string{"prog", "--main-pack", packPath}
			if tt.argv != nil {
				argv = tt.argv(packPath)
			}

			rec := &recordingReplacer{}
			f, _ := newTestForwarder(t, dir, rec)
			err := f.run(argv)

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("run() error = %v, want *issue.ActionableError", err)
			}
			if ae.Issue != tt.wantIssue {
				t.Errorf("Issue = %v, want %v", ae.Issue, tt.wantIssue)
			}
			if !strings.Contains(ae.Headline(), tt.wantTitle) {
				t.Errorf("Headline() = %q, want it to contain %q", ae.Headline(), tt.wantTitle)
			}
			if len(rec.requests) != 0 {
				t.Errorf("a failed run launched %v", rec.requests)
			}
		})
	}
}

func TestRun_NoCompatibleListsInstalled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pack := pcktest.New(pcktest.WithVersion(3, 5, 0)).WriteFile(t, dir, "game.pck")
	testutil.MustWriteFile(t, dir, "godot-4.2.1.nro", nil)
	testutil.MustWriteFile(t, dir, "godot-3.6.nro", nil)

	f, _ := newTestForwarder(t, dir, &recordingReplacer{})
	err := f.run([]string{"prog", "--main-pack", pack})

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("run() error = %v, want *issue.ActionableError", err)
	}
	if len(ae.Suggestions) != 1 || ae.Suggestions[0] != "Installed runtimes: 4.2.1, 3.6" {
		t.Errorf("Suggestions = %q", ae.Suggestions)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pack := pcktest.New(pcktest.WithVersion(3, 5, 2)).WriteFile(t, dir, "game.pck")
	testutil.MustWriteFile(t, dir, "godot-3.5.nro", nil)

	cause := errors.New("exec format error")
	f, _ := newTestForwarder(t, dir, &recordingReplacer{err: cause})
	err := f.run([]string{"prog", "--main-pack", pack})

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue != issue.LaunchFailedId {
		t.Fatalf("run() error = %v, want LaunchFailedId", err)
	}
	if !errors.Is(err, launch.ErrLaunchFailed) || !errors.Is(err, cause) {
		t.Errorf("error chain = %v, want ErrLaunchFailed and the cause", err)
	}
}

func TestFail_ReportsAndExits(t *testing.T) {
	t.Parallel()

	f, rep := newTestForwarder(t, t.TempDir(), &recordingReplacer{})
	err := f.fail(context.Background(), issue.NewErrorContext().
		WithIssue(issue.PackOpenFailedId).
		WithOperation("open main pack").
		WithSuggestion("Check the SD card").
		Wrap(errors.New("Failed to open PCK!")).
		BuildError())

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 || exitErr.Err != nil {
		t.Fatalf("fail() = %v, want ExitError{Code: 1} with no further error", err)
	}
	if len(rep.failures) != 1 {
		t.Fatalf("reported %d failures, want 1", len(rep.failures))
	}
	got := rep.failures[0]
	if got.Title != "Failed to open PCK!" {
		t.Errorf("Title = %q", got.Title)
	}
	if !strings.Contains(got.Body, "Check the SD card") {
		t.Errorf("Body missing the suggestion:\n%s", got.Body)
	}
}

func TestFail_VerboseShowsChain(t *testing.T) {
	t.Parallel()

	f, rep := newTestForwarder(t, t.TempDir(), &recordingReplacer{})
	f.cfg.UI.Verbose = true
	_ = f.fail(context.Background(), issue.NewErrorContext().
		WithOperation("open main pack").
		Wrap(errors.New("boom")).
		BuildError())

	if !strings.Contains(rep.failures[0].Title, "Error chain:") {
		t.Errorf("verbose Title = %q, want the error chain", rep.failures[0].Title)
	}
}

func TestNewForwarder_ConfigErrorFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	bad := testutil.MustWriteFile(t, t.TempDir(), "bad.cue", []byte(`ack_key: "too long"`))
	e := env{
		stdin:  strings.NewReader(""),
		stdout: io.Discard,
		stderr: io.Discard,
		getenv: func(k string) string {
			if k == config.ConfigPathEnv {
				return bad
			}
			return ""
		},
		config:  config.NewProvider(),
		workDir: t.TempDir(),
	}

	f, err := newForwarder(context.Background(), e)
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue != issue.ConfigLoadFailedId {
		t.Fatalf("newForwarder() error = %v, want ConfigLoadFailedId", err)
	}
	if f == nil || f.cfg.AckKey != "+" {
		t.Errorf("forwarder should fall back to default config, got %+v", f)
	}
}

func TestExecute_ReportsToStdout(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	e := env{
		stdin:    strings.NewReader(""),
		stdout:   &stdout,
		stderr:   &stderr,
		getenv:   func(string) string { return "" },
		replacer: &recordingReplacer{},
		config:   staticProvider{cfg: config.DefaultConfig()},
	}

	code := execute(context.Background(), e, "prog", []string{"--verbose"})
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "Failed to find main_pack argument!") {
		t.Errorf("stdout = %q, want the failure message", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Press + to exit.") {
		t.Errorf("stdout = %q, want the exit hint", stdout.String())
	}
}

type staticProvider struct {
	cfg *config.Config
}

func (p staticProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return p.cfg, nil
}
