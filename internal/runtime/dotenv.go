// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/kalshi-qete/launcher/pkg/types"
)

// LoadEnvFiles loads each dotenv file in order into env; later files override
// earlier ones. Relative paths resolve against baseDir (the launcher
// directory). Paths suffixed with '?' are optional and may be missing.
func LoadEnvFiles(env map[string]string, files []string, baseDir string) error {
	for _, f := range files {
		if err := LoadEnvFile(env, f, baseDir); err != nil {
			return err
		}
	}
	return nil
}

// LoadEnvFile loads a single dotenv file into env. See LoadEnvFiles.
func LoadEnvFile(env map[string]string, path, baseDir string) error {
	optional := strings.HasSuffix(path, "?")
	path = strings.TrimSuffix(path, "?")

	fullPath := types.FilesystemPath(path).ResolveAgainst(baseDir)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read env file '%s': %w", path, err)
	}

	return ParseEnvFile(env, content, path)
}

// ParseEnvFile parses dotenv content and merges it into env.
// Supported format:
//   - Lines starting with # are comments
//   - Empty lines are ignored
//   - KEY=value (unquoted, " #" starts an inline comment)
//   - KEY="value" (double-quoted, escape sequences: \n, \r, \t, \\, \", \$)
//   - KEY='value' (single-quoted, literal)
//   - export KEY=value (export prefix is optional and ignored)
//   - KEY= (empty value)
//
// The filename parameter is used for error messages.
func ParseEnvFile(env map[string]string, content []byte, filename string) error {
	for i, line := range strings.Split(string(content), "\n") {
		lineNum := i + 1

		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%s:%d: invalid format (missing '=')", filename, lineNum)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%s:%d: empty variable name", filename, lineNum)
		}

		parsed, err := parseEnvValue(value)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", filename, lineNum, err)
		}

		env[key] = parsed
	}

	return nil
}

func parseEnvValue(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	switch value[0] {
	case '"':
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", fmt.Errorf("unterminated double quote")
		}
		return unescapeDoubleQuoted(value[1 : len(value)-1]), nil
	case '\'':
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", fmt.Errorf("unterminated single quote")
		}
		return value[1 : len(value)-1], nil
	}

	if idx := strings.Index(value, " #"); idx != -1 {
		value = strings.TrimSpace(value[:idx])
	}
	return value, nil
}

func unescapeDoubleQuoted(value string) string {
	var result strings.Builder
	result.Grow(len(value))

	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i+1 == len(value) {
			result.WriteByte(value[i])
			continue
		}
		i++
		switch value[i] {
		case 'n':
			result.WriteByte('\n')
		case 'r':
			result.WriteByte('\r')
		case 't':
			result.WriteByte('\t')
		case '\\', '"', '$':
			result.WriteByte(value[i])
		default:
			// unknown escape: keep both characters
			result.WriteByte('\\')
			result.WriteByte(value[i])
		}
	}

	return result.String()
}
