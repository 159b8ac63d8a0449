// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Stary2001/godot-forwarder/internal/config"
	"github.com/Stary2001/godot-forwarder/internal/launch"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

func defaultEnv() env {
	return env{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		getenv:   os.Getenv,
		replacer: launch.NewExecReplacer(),
		config:   config.NewProvider(),
	}
}

// newRootCmd builds the root command. argv0 is the program name, which is
// scanned with the rest of the arguments but never forwarded.
func newRootCmd(e env, argv0 string) *cobra.Command {
	return &cobra.Command{
		Use:   config.AppName + " --main-pack <game.pck> [engine args...]",
		Short: "Launch the Godot runtime matching a game's main pack",
		Long: `Reads the engine version from the main pack's header, picks the newest
installed godot-<version>.nro that is not newer than it, and replaces this
process with that runtime. All arguments are forwarded unchanged.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			argv := append([]string{argv0}, args...)

			f, err := newForwarder(ctx, e)
			if err == nil {
				err = f.run(argv)
			}
			if err == nil {
				return nil
			}
			return f.fail(ctx, err)
		},
	}
}

// handleError prints errors that were not already shown on the failure
// screen.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// execute runs the root command with args and returns the process exit
// code.
func execute(ctx context.Context, e env, argv0 string, args []string) int {
	rootCmd := newRootCmd(e, argv0)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(e.stdin)
	rootCmd.SetOut(e.stdout)
	rootCmd.SetErr(e.stderr)

	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
		fang.WithoutManpage(),
		fang.WithoutCompletions(),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

// Main runs the forwarder with the process arguments and returns the exit
// code. On success it does not return: the process has been replaced.
func Main() int {
	return execute(context.Background(), defaultEnv(), os.Args[0], os.Args[1:])
}

// Execute is called by main.main.
func Execute() {
	os.Exit(Main())
}
