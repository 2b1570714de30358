// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kalshi-qete/launcher/internal/issue"
	"github.com/kalshi-qete/launcher/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. QETE_LAUNCHER_EXEC_MODE.
	EnvPrefix = "QETE_LAUNCHER"
	// ConfigPathEnv names an explicit config file.
	ConfigPathEnv = EnvPrefix + "_CONFIG"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "launcher"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ScriptDir is the launcher directory; launcher.cue is looked up there.
	ScriptDir string
	// ConfigFilePath forces loading from a specific file when set. The file must
	// exist. A relative path is resolved against ScriptDir.
	ConfigFilePath string
	// Environ supplies the QETE_LAUNCHER_* overrides. Nil means os.Environ().
	Environ []string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, string, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider backed by launcher.cue and the environment.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load returns the merged configuration and the path of the file it read
// ("" when only defaults and environment applied).
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}

func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("venv.dir", defaults.Venv.Dir)
	v.SetDefault("venv.interpreter", defaults.Venv.Interpreter)
	v.SetDefault("target.script", defaults.Target.Script)
	v.SetDefault("exec.mode", defaults.Exec.Mode)
	v.SetDefault("exec.env_files", defaults.Exec.EnvFiles)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.dry_run", defaults.UI.DryRun)

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	bindEnv(v, environ)

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		explicit := opts.ConfigFilePath
		if !filepath.IsAbs(explicit) && opts.ScriptDir != "" {
			explicit = filepath.Join(opts.ScriptDir, explicit)
		}
		if !fileExists(explicit) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load launcher configuration").
				WithResource(explicit).
				WithSuggestion("Verify the path in " + ConfigPathEnv).
				WithSuggestion("Unset " + ConfigPathEnv + " to use launcher.cue next to the launcher").
				WithGuide(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found")).
				BuildError()
		}
		resolvedPath = explicit
	} else if opts.ScriptDir != "" {
		local := filepath.Join(opts.ScriptDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(local) {
			resolvedPath = local
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load launcher configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the launcher schema").
				WithGuide(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate launcher configuration").
			WithSuggestion("Check " + EnvPrefix + "_* environment variables for typos").
			WithGuide(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// bindEnv applies QETE_LAUNCHER_<SECTION>_<KEY> overrides from environ for
// every known key. Empty values are ignored.
func bindEnv(v *viper.Viper, environ []string) {
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, val, ok := strings.Cut(kv, "="); ok {
			values[k] = val
		}
	}
	replacer := strings.NewReplacer(".", "_")
	for _, key := range v.AllKeys() {
		name := EnvPrefix + "_" + strings.ToUpper(replacer.Replace(key))
		if val := values[name]; val != "" {
			v.Set(key, val)
		}
	}
}

// loadCUEIntoViper parses a CUE file, validates it against #Config, and merges
// it into v. Concrete(false) because every field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	// Merge keeps defaults and lets env overrides win.
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
