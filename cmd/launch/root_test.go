// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/kalshi-qete/launcher/internal/runtime"
	"github.com/kalshi-qete/launcher/internal/testutil"
	"github.com/kalshi-qete/launcher/pkg/types"

	"github.com/charmbracelet/fang"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestRootCommand_ForwardsEverything(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "none", args: []string{}},
		{name: "help and version", args: []string{"--help", "--version"}},
		{name: "cobra reserved names", args: []string{"__complete", "help", "completion", "man"}},
		{name: "user terminator kept", args: []string{"--", "--foo"}},
		{name: "short flags", args: []string{"-h", "-v", "bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := testutil.RealTempDir(t)
			testutil.WriteFakeVenv(t, dir)
			rt := &recordingRuntime{}
			app := newTestApp(dir, baseEnviron(), rt)

			root := newRootCommand(app.App)
			root.SetArgs(append([]string{argTerminator}, tt.args...))
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(&out)

			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("Execute() error = %v, stderr:\n%s", err, app.stderr.String())
			}
			if len(rt.calls) != 1 {
				t.Fatalf("Execute called %d times, want 1 (cobra output: %q)", len(rt.calls), out.String())
			}
			if got := rt.calls[0].Args; !slices.Equal(got, tt.args) {
				t.Errorf("forwarded args = %q, want %q", got, tt.args)
			}
			if out.Len() != 0 {
				t.Errorf("cobra should not print anything, got %q", out.String())
			}
		})
	}
}

func TestRootCommand_ExitError(t *testing.T) {
	t.Parallel()

	dir := testutil.RealTempDir(t)
	testutil.WriteFakeVenv(t, dir)
	rt := &recordingRuntime{result: &runtime.Result{ExitCode: 9}}
	app := newTestApp(dir, baseEnviron(), rt)

	root := newRootCommand(app.App)
	root.SetArgs([]string{argTerminator})
	err := root.ExecuteContext(context.Background())

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Execute() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 9 {
		t.Errorf("Code = %d, want 9", exitErr.Code)
	}
	if exitCodeFor(err) != 9 {
		t.Errorf("exitCodeFor() = %d, want 9", exitCodeFor(err))
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{name: "nil", err: nil, want: 0},
		{name: "exit error", err: &ExitError{Code: types.ExitNotFound}, want: 127},
		{name: "wrapped exit error", err: errors.Join(errors.New("x"), &ExitError{Code: 3}), want: 3},
		{name: "other", err: errors.New("boom"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRun_ReportsMissingInterpreter(t *testing.T) {
	t.Parallel()

	// The test binary's own directory has no virtual environment.
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"--help"}, Streams{
		In:  strings.NewReader(""),
		Out: &stdout,
		Err: &stderr,
	})

	if code != types.ExitFailure {
		t.Errorf("Run() = %d, want %d", code, types.ExitFailure)
	}
	if !strings.Contains(stderr.String(), "✗") || !strings.Contains(stderr.String(), "python3") {
		t.Errorf("stderr should report the missing interpreter, got:\n%s", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("--help must not be answered by the launcher, got:\n%s", stdout.String())
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handleError(&buf, fang.Styles{}, &ExitError{Code: 2})
	if buf.Len() != 0 {
		t.Errorf("ExitError should be silent, got %q", buf.String())
	}

	handleError(&buf, fang.Styles{}, errors.New("unexpected failure"))
	if !strings.Contains(buf.String(), "unexpected failure") {
		t.Errorf("other errors should be printed, got %q", buf.String())
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	if got := (&ExitError{Code: 4, Err: cause}).Error(); got != "cause" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&ExitError{Code: 4}).Error(); got != "exit status 4" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(&ExitError{Err: cause}, cause) {
		t.Error("ExitError should unwrap to its cause")
	}
}
