// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Stary2001/godot-forwarder/internal/config"
	"github.com/Stary2001/godot-forwarder/internal/issue"
	"github.com/Stary2001/godot-forwarder/internal/launch"
	"github.com/Stary2001/godot-forwarder/internal/report"
	"github.com/Stary2001/godot-forwarder/internal/resolver"
	"github.com/Stary2001/godot-forwarder/pkg/pck"

	"github.com/charmbracelet/log"
)

// MainPackFlag names the argument that carries the main pack path.
const MainPackFlag = "--main-pack"

var errMissingMainPack = errors.New("Failed to find main_pack argument!") //nolint:staticcheck // user-facing sentence

type (
	// env holds the process boundary so tests can replace it.
	env struct {
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
		getenv   func(string) string
		replacer launch.Replacer
		config   config.Provider
		// workDir is where the local config file is looked up.
		workDir string
	}

	// forwarder runs one resolution and launch.
	forwarder struct {
		env      env
		cfg      *config.Config
		logger   *log.Logger
		reporter report.Reporter
	}
)

// FindMainPack returns the value following the last --main-pack argument.
// A --main-pack in final position has no value and is ignored.
func FindMainPack(argv []string) (string, bool) {
	var (
		pack  string
		found bool
	)
	for i := 0; i < len(argv)-1; i++ {
		if argv[i] == MainPackFlag {
			pack, found = argv[i+1], true
		}
	}
	return pack, found
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	logger.SetStyles(logStyles())
	return logger
}

// newForwarder loads configuration and prepares the logger and reporter. A
// configuration error is returned together with a forwarder built from the
// defaults so the error can still be reported.
func newForwarder(ctx context.Context, e env) (*forwarder, error) {
	opts := config.OptionsFromEnv(e.getenv)
	opts.WorkDir = e.workDir

	cfg, err := e.config.Load(ctx, opts)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	return &forwarder{
		env:      e,
		cfg:      cfg,
		logger:   newLogger(e.stderr, cfg.EffectiveLogLevel()),
		reporter: report.New(e.stdin, e.stdout, string(cfg.AckKey)),
	}, err
}

// run resolves and launches the runtime for argv. It only returns when the
// launch did not happen.
func (f *forwarder) run(argv []string) error {
	packPath, ok := FindMainPack(argv)
	if !ok {
		return issue.NewErrorContext().
			WithIssue(issue.MissingMainPackId).
			WithOperation("find main pack").
			Wrap(errMissingMainPack).
			BuildError()
	}

	target, err := f.readTarget(packPath)
	if err != nil {
		return err
	}

	path, err := f.resolve(target)
	if err != nil {
		return err
	}

	launcher := launch.NewLauncher(f.env.replacer, f.logger)
	if err := launcher.Launch(launch.NewRequest(path, argv)); err != nil {
		return issue.NewErrorContext().
			WithIssue(issue.LaunchFailedId).
			WithOperation("launch runtime").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	return nil
}

// readTarget opens the main pack and derives the build it asks for.
func (f *forwarder) readTarget(packPath string) (resolver.Target, error) {
	archive, err := pck.Open(packPath, pck.WithLogger(f.logger))
	if err != nil {
		return resolver.Target{}, packError(packPath, err)
	}
	defer archive.Close()

	id, found, err := archive.CustomEditorID()
	if err != nil {
		return resolver.Target{}, packError(packPath, err)
	}
	if found {
		f.logger.Info("pck requests a custom build", "id", id)
		target := resolver.IdentifierTarget(resolver.Identifier(id))
		target.Version = archive.Header().Version
		return target, nil
	}
	return resolver.VersionTarget(archive.Header().Version), nil
}

func (f *forwarder) resolve(target resolver.Target) (string, error) {
	naming := resolver.Naming{
		Prefix:    string(f.cfg.ExecutablePrefix),
		Extension: f.cfg.ExecutableExtension,
	}
	r, err := resolver.New(f.cfg.SearchDir,
		resolver.WithNaming(naming),
		resolver.WithProbeHook(func(path string, found bool) {
			f.logger.Debug("probe", "path", path, "found", found)
		}),
	)
	if err != nil {
		return "", err
	}

	path, err := r.Resolve(target)
	switch {
	case err == nil:
		return path, nil
	case errors.Is(err, resolver.ErrInvalidIdentifier):
		return "", issue.NewErrorContext().
			WithIssue(issue.CorruptPackId).
			WithOperation("read custom build name").
			Wrap(err).
			BuildError()
	default:
		return "", issue.NewErrorContext().
			WithIssue(issue.NoCompatibleVersionId).
			WithOperation("find runtime").
			WithResource(r.Dir()).
			WithSuggestions(installedSuggestion(r)).
			Wrap(err).
			BuildError()
	}
}

// installedSuggestion lists the runtimes that are present.
func installedSuggestion(r *resolver.Resolver) string {
	runtimes, err := resolver.Installed(r.Dir(), r.Naming())
	if err != nil || len(runtimes) == 0 {
		return fmt.Sprintf("Copy a runtime named like %s into %s", r.Naming().Name("<version>"), r.Dir())
	}
	names := make([]string, len(runtimes))
	for i, rt := range runtimes {
		names[i] = rt.Version
	}
	return "Installed runtimes: " + strings.Join(names, ", ")
}

// packError classifies an error from opening or reading the main pack.
func packError(packPath string, err error) error {
	ec := issue.NewErrorContext().WithResource(packPath).Wrap(err)
	if !pck.IsFormatError(err) {
		return ec.WithIssue(issue.PackOpenFailedId).WithOperation("open main pack").BuildError()
	}

	ec.WithOperation("read main pack")
	switch {
	case errors.Is(err, pck.ErrInvalidMagic):
		ec.WithIssue(issue.InvalidMagicId)
	case errors.Is(err, pck.ErrInvalidVersion):
		ec.WithIssue(issue.InvalidFormatVersionId)
	default:
		ec.WithIssue(issue.CorruptPackId)
	}
	return ec.BuildError()
}

// fail shows err on the failure screen and waits for acknowledgement.
func (f *forwarder) fail(ctx context.Context, err error) error {
	f.logger.Error("forwarding failed", "err", err)

	failure := report.Failure{Title: err.Error()}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		failure.Title = ae.Headline()
		if f.cfg.UI.Verbose {
			failure.Title = ae.Format(true)
		}
		body, rerr := issue.RenderError(ae, f.cfg.UI.ColorScheme.GlamourStyle())
		if rerr != nil {
			f.logger.Warn("rendering guidance", "err", rerr)
		}
		failure.Body = body
	}

	if rerr := f.reporter.Report(ctx, failure); rerr != nil {
		return &ExitError{Code: 1, Err: rerr}
	}
	return &ExitError{Code: 1}
}
