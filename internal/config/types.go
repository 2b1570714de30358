// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kalshi-qete/launcher/internal/layout"
	"github.com/kalshi-qete/launcher/pkg/types"
)

const (
	// ExecModeSpawn runs the interpreter as a child process and waits for it.
	ExecModeSpawn ExecMode = "spawn"
	// ExecModeReplace replaces the launcher process with the interpreter where
	// the platform supports it.
	ExecModeReplace ExecMode = "replace"
)

var (
	// ErrInvalidExecMode is returned when an ExecMode value is not recognized.
	ErrInvalidExecMode = errors.New("invalid exec mode")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ExecMode selects how the interpreter is started.
	ExecMode string

	// InvalidExecModeError is returned when an ExecMode value is not recognized.
	InvalidExecModeError struct {
		Value ExecMode
	}

	// InvalidConfigError collects every field-level problem found by Validate.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// VenvConfig locates the virtual environment interpreter.
	VenvConfig struct {
		// Dir is the virtual environment root, relative to the launcher directory.
		Dir types.FilesystemPath `json:"dir" mapstructure:"dir"`
		// Interpreter is the interpreter binary, relative to Dir.
		Interpreter types.FilesystemPath `json:"interpreter" mapstructure:"interpreter"`
	}

	// TargetConfig names the program handed to the interpreter.
	TargetConfig struct {
		// Script is relative to the launcher directory.
		Script types.FilesystemPath `json:"script" mapstructure:"script"`
	}

	// ExecConfig controls process startup.
	ExecConfig struct {
		Mode ExecMode `json:"mode" mapstructure:"mode"`
		// EnvFiles are dotenv files loaded into the child environment, in order.
		// Relative paths resolve against the launcher directory; a trailing '?'
		// marks a file as optional.
		EnvFiles []string `json:"env_files" mapstructure:"env_files"`
	}

	// UIConfig controls launcher output.
	UIConfig struct {
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		DryRun  bool `json:"dry_run" mapstructure:"dry_run"`
	}

	// Config is the complete launcher configuration.
	Config struct {
		Venv   VenvConfig   `json:"venv" mapstructure:"venv"`
		Target TargetConfig `json:"target" mapstructure:"target"`
		Exec   ExecConfig   `json:"exec" mapstructure:"exec"`
		UI     UIConfig     `json:"ui" mapstructure:"ui"`
	}
)

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Venv: VenvConfig{
			Dir:         layout.DefaultVenvDir,
			Interpreter: layout.DefaultInterpreter,
		},
		Target: TargetConfig{
			Script: layout.DefaultTargetScript,
		},
		Exec: ExecConfig{
			Mode:     ExecModeSpawn,
			EnvFiles: []string{},
		},
	}
}

// LayoutOptions converts the path settings into layout.Options.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		VenvDir:      c.Venv.Dir,
		Interpreter:  c.Venv.Interpreter,
		TargetScript: c.Target.Script,
	}
}

// Validate checks values that bypass the CUE schema (environment overrides).
func (c *Config) Validate() error {
	var errs []error
	for _, p := range []struct {
		key  string
		path types.FilesystemPath
	}{
		{"venv.dir", c.Venv.Dir},
		{"venv.interpreter", c.Venv.Interpreter},
		{"target.script", c.Target.Script},
	} {
		if err := p.path.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.key, err))
		}
	}
	if err := c.Exec.Mode.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("exec.mode: %w", err))
	}
	for i, f := range c.Exec.EnvFiles {
		if strings.TrimSpace(strings.TrimSuffix(f, "?")) == "" {
			errs = append(errs, fmt.Errorf("exec.env_files[%d]: empty path", i))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// String returns the string representation of the ExecMode.
func (m ExecMode) String() string { return string(m) }

// Validate returns an error unless m is spawn or replace.
func (m ExecMode) Validate() error {
	switch m {
	case ExecModeSpawn, ExecModeReplace:
		return nil
	default:
		return &InvalidExecModeError{Value: m}
	}
}

// Error implements the error interface.
func (e *InvalidExecModeError) Error() string {
	return fmt.Sprintf("invalid exec mode %q (valid: spawn, replace)", e.Value)
}

// Unwrap returns ErrInvalidExecMode for errors.Is() compatibility.
func (e *InvalidExecModeError) Unwrap() error { return ErrInvalidExecMode }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
