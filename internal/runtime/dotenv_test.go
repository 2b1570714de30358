// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseEnvFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{name: "simple", content: "FOO=bar", expected: map[string]string{"FOO": "bar"}},
		{name: "comments and blanks", content: "# key\n\nFOO=bar\n", expected: map[string]string{"FOO": "bar"}},
		{name: "export prefix", content: "export KALSHI_API_KEY_ID=abc", expected: map[string]string{"KALSHI_API_KEY_ID": "abc"}},
		{name: "empty value", content: "EMPTY=", expected: map[string]string{"EMPTY": ""}},
		{name: "equals in value", content: "URL=https://x?a=b", expected: map[string]string{"URL": "https://x?a=b"}},
		{name: "inline comment", content: "FOO=bar # note", expected: map[string]string{"FOO": "bar"}},
		{name: "double quoted escapes", content: `FOO="a\tb\n\$HOME"`, expected: map[string]string{"FOO": "a\tb\n$HOME"}},
		{name: "unknown escape kept", content: `FOO="a\qb"`, expected: map[string]string{"FOO": `a\qb`}},
		{name: "single quoted literal", content: `FOO='a\nb # x'`, expected: map[string]string{"FOO": `a\nb # x`}},
		{name: "windows line endings", content: "A=1\r\nB=2\r\n", expected: map[string]string{"A": "1", "B": "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := make(map[string]string)
			if err := ParseEnvFile(env, []byte(tt.content), "test.env"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for k, v := range tt.expected {
				if env[k] != v {
					t.Errorf("expected %s=%q, got %s=%q", k, v, k, env[k])
				}
			}
			if len(env) != len(tt.expected) {
				t.Errorf("got %d vars, want %d: %v", len(env), len(tt.expected), env)
			}
		})
	}
}

func TestParseEnvFile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "missing equals", content: "A=1\nNOPE", want: "test.env:2: invalid format"},
		{name: "empty key", content: "=value", want: "empty variable name"},
		{name: "unterminated double", content: `A="open`, want: "unterminated double quote"},
		{name: "unterminated single", content: `A='open`, want: "unterminated single quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ParseEnvFile(map[string]string{}, []byte(tt.content), "test.env")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseEnvFile() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("A=base\nB=base\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	abs := filepath.Join(t.TempDir(), "prod.env")
	if err := os.WriteFile(abs, []byte("B=prod\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	env := map[string]string{}
	if err := LoadEnvFiles(env, []string{".env", abs, "missing.env?"}, dir); err != nil {
		t.Fatalf("LoadEnvFiles() error = %v", err)
	}
	if env["A"] != "base" || env["B"] != "prod" {
		t.Errorf("env = %v, want later files to override earlier ones", env)
	}

	err := LoadEnvFiles(map[string]string{}, []string{"missing.env"}, dir)
	if err == nil || !strings.Contains(err.Error(), "missing.env") {
		t.Errorf("LoadEnvFiles() error = %v, want missing required file error", err)
	}
}
