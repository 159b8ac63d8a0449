// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Stary2001/godot-forwarder/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "godot-forwarder"
	// ConfigFileName is the name of the config file in the config directory.
	ConfigFileName = "config.cue"
	// LocalConfigFileName is looked up in the working directory.
	LocalConfigFileName = AppName + ".cue"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "GODOT_FORWARDER"
	// ConfigPathEnv forces a specific config file.
	ConfigPathEnv = EnvPrefix + "_CONFIG"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the forwarder configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS and $XDG_CONFIG_HOME
// (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions loads defaults, the first config file found and env
// overrides, then validates the result. It returns the file used, if any.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("search_dir", defaults.SearchDir)
	v.SetDefault("executable_prefix", string(defaults.ExecutablePrefix))
	v.SetDefault("executable_extension", defaults.ExecutableExtension)
	v.SetDefault("ack_key", string(defaults.AckKey))
	v.SetDefault("log_level", string(defaults.LogLevel))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", loadError(opts.ConfigFilePath,
				fmt.Errorf("config file not found: %s", opts.ConfigFilePath),
				"Verify the path in "+ConfigPathEnv+" is correct",
				"Unset "+ConfigPathEnv+" to use the default locations",
			)
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", loadError(opts.ConfigFilePath, err, cueSuggestions()...)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		candidates, err := searchPaths(opts)
		if err != nil {
			return nil, "", err
		}
		for _, path := range candidates {
			if !fileExists(path) {
				continue
			}
			if err := loadCUEIntoViper(v, path); err != nil {
				return nil, "", loadError(path, err, cueSuggestions()...)
			}
			resolvedPath = path
			break
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Env overrides bypass the CUE schema, so check the decoded values too.
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithIssue(issue.ConfigLoadFailedId).
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables for typos").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// searchPaths lists the config files tried when no explicit path is set, in
// order.
func searchPaths(opts LoadOptions) ([]string, error) {
	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		cfgDir = dir
	}
	return []string{
		filepath.Join(cfgDir, ConfigFileName),
		filepath.Join(opts.WorkDir, LocalConfigFileName),
	}, nil
}

func loadError(path string, cause error, suggestions ...string) error {
	return issue.NewErrorContext().
		WithIssue(issue.ConfigLoadFailedId).
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestions(suggestions...).
		Wrap(cause).
		BuildError()
}

func cueSuggestions() []string {
	return []string{
		"Check that the file contains valid CUE syntax",
		"Verify the configuration values match the expected schema",
	}
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema and merges its contents into Viper. Decoding goes through a map
// so omitted fields keep Viper's defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := checkFileSize(data, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
