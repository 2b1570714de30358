// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Environment variables understood by FakeInterpreterScript.
const (
	// FakeExitEnv sets the fake interpreter's exit status.
	FakeExitEnv = "FAKE_PYTHON_EXIT"
	// FakeSignalEnv makes the fake interpreter kill itself with this signal name (e.g. TERM).
	FakeSignalEnv = "FAKE_PYTHON_SIGNAL"
	// FakeDumpEnv makes the fake interpreter print its environment after an "--env--" line.
	FakeDumpEnv = "FAKE_PYTHON_DUMP_ENV"
)

// FakeInterpreterScript stands in for venv/bin/python3. It prints
// "argc=<n>" followed by "arg[<i>]=<value>" for every argument.
const FakeInterpreterScript = `#!/bin/sh
echo "argc=$#"
i=0
for a in "$@"; do
	echo "arg[$i]=$a"
	i=$((i+1))
done
if [ -n "$FAKE_PYTHON_DUMP_ENV" ]; then
	echo "--env--"
	env
fi
if [ -n "$FAKE_PYTHON_SIGNAL" ]; then
	kill -s "$FAKE_PYTHON_SIGNAL" $$
fi
exit "${FAKE_PYTHON_EXIT:-0}"
`

// SkipIfNoPOSIXShell skips tests that need FakeInterpreterScript to run.
func SkipIfNoPOSIXShell(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter is a POSIX shell script")
	}
}

// WriteFakeVenv creates <dir>/venv/bin/python3 (FakeInterpreterScript) and an
// empty <dir>/connect_and_price.py. It returns the interpreter path.
func WriteFakeVenv(t testing.TB, dir string) string {
	t.Helper()
	interpreter := filepath.Join(dir, "venv", "bin", "python3")
	MustWriteFile(t, interpreter, []byte(FakeInterpreterScript), 0o755)
	MustWriteFile(t, filepath.Join(dir, "connect_and_price.py"), []byte("# placeholder\n"), 0o644)
	return interpreter
}

// ParseFakeArgs extracts the arguments reported by FakeInterpreterScript.
func ParseFakeArgs(output string) []string {
	args := []string{}
	for _, line := range strings.Split(output, "\n") {
		if line == "--env--" {
			break
		}
		if !strings.HasPrefix(line, "arg[") {
			continue
		}
		_, value, ok := strings.Cut(line, "]=")
		if ok {
			args = append(args, value)
		}
	}
	return args
}
