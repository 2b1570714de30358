// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kalshi-qete/launcher/pkg/types"
)

const (
	// DefaultVenvDir is the virtual environment directory, relative to the script directory.
	DefaultVenvDir types.FilesystemPath = "venv"
	// DefaultInterpreter is the interpreter binary, relative to the virtual environment.
	DefaultInterpreter types.FilesystemPath = "bin/python3"
	// DefaultTargetScript is the program handed to the interpreter, relative to the script directory.
	DefaultTargetScript types.FilesystemPath = "connect_and_price.py"
)

var (
	// ErrMissingInterpreter is the sentinel error wrapped by MissingInterpreterError.
	ErrMissingInterpreter = errors.New("virtual environment interpreter not found")
	// ErrInvalidOptions is returned when Options contain an unusable path.
	ErrInvalidOptions = errors.New("invalid layout options")
)

type (
	// Options selects where the interpreter and target script live. Empty
	// fields fall back to the defaults above.
	Options struct {
		// VenvDir is resolved against the script directory when relative.
		VenvDir types.FilesystemPath
		// Interpreter is resolved against VenvDir when relative.
		Interpreter types.FilesystemPath
		// TargetScript is resolved against the script directory when relative.
		TargetScript types.FilesystemPath
	}

	// Layout is the resolved, absolute set of paths the launcher works with.
	// It is computed once and never mutated.
	Layout struct {
		ScriptDir   string
		VenvDir     string
		Interpreter string
		Target      string
	}

	// MissingInterpreterError reports that no regular file exists at the
	// expected interpreter path.
	MissingInterpreterError struct {
		Path  string
		Cause error
	}
)

// DefaultOptions returns the fixed venv/bin/python3 + connect_and_price.py layout.
func DefaultOptions() Options {
	return Options{
		VenvDir:      DefaultVenvDir,
		Interpreter:  DefaultInterpreter,
		TargetScript: DefaultTargetScript,
	}
}

// ExecutableDir returns the absolute, symlink-resolved directory containing
// the running executable. The result does not depend on the working directory.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate launcher executable: %w", err)
	}
	return DirOf(exe)
}

// DirOf returns the absolute, symlink-resolved directory containing path.
func DirOf(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to make %q absolute: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks for %q: %w", abs, err)
	}
	return filepath.Dir(resolved), nil
}

// Resolve builds the Layout rooted at scriptDir.
func Resolve(scriptDir string, opts Options) (*Layout, error) {
	if err := types.FilesystemPath(scriptDir).Validate(); err != nil {
		return nil, fmt.Errorf("%w: script directory: %w", ErrInvalidOptions, err)
	}
	dir, err := filepath.Abs(scriptDir)
	if err != nil {
		return nil, fmt.Errorf("failed to make %q absolute: %w", scriptDir, err)
	}

	opts = opts.withDefaults()
	for _, f := range []struct {
		name string
		path types.FilesystemPath
	}{
		{"venv directory", opts.VenvDir},
		{"interpreter", opts.Interpreter},
		{"target script", opts.TargetScript},
	} {
		if err := f.path.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOptions, f.name, err)
		}
	}

	venv := opts.VenvDir.ResolveAgainst(dir)
	return &Layout{
		ScriptDir:   dir,
		VenvDir:     venv,
		Interpreter: opts.Interpreter.ResolveAgainst(venv),
		Target:      opts.TargetScript.ResolveAgainst(dir),
	}, nil
}

func (o Options) withDefaults() Options {
	if o.VenvDir == "" {
		o.VenvDir = DefaultVenvDir
	}
	if o.Interpreter == "" {
		o.Interpreter = DefaultInterpreter
	}
	if o.TargetScript == "" {
		o.TargetScript = DefaultTargetScript
	}
	return o
}

// CheckInterpreter returns a *MissingInterpreterError unless a regular file
// (symlinks followed) exists at the interpreter path.
func (l *Layout) CheckInterpreter() error {
	info, err := os.Stat(l.Interpreter)
	if err != nil {
		return &MissingInterpreterError{Path: l.Interpreter, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return &MissingInterpreterError{Path: l.Interpreter, Cause: fmt.Errorf("%s is not a regular file", info.Mode().Type())}
	}
	return nil
}

// Argv returns the interpreter arguments: the target script followed by args,
// in order. The returned slice never aliases args.
func (l *Layout) Argv(args []string) []string {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, l.Target)
	return append(argv, args...)
}

// Error implements the error interface.
func (e *MissingInterpreterError) Error() string {
	return fmt.Sprintf("virtual environment Python not found at %s", e.Path)
}

// Unwrap returns ErrMissingInterpreter and the underlying stat error.
func (e *MissingInterpreterError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMissingInterpreter}
	}
	return []error{ErrMissingInterpreter, e.Cause}
}
