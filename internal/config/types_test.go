// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/kalshi-qete/launcher/pkg/types"
)

func TestExecMode_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode    ExecMode
		wantErr bool
	}{
		{ExecModeSpawn, false},
		{ExecModeReplace, false},
		{"", true},
		{"fork", true},
		{"Spawn", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()

			err := tt.mode.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExecMode(%q).Validate() error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidExecMode) {
				t.Errorf("error should wrap ErrInvalidExecMode, got: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "blank venv dir", mutate: func(c *Config) { c.Venv.Dir = " " }, wantErr: types.ErrInvalidFilesystemPath},
		{name: "blank script", mutate: func(c *Config) { c.Target.Script = "" }, wantErr: types.ErrInvalidFilesystemPath},
		{name: "bad mode", mutate: func(c *Config) { c.Exec.Mode = "exec" }, wantErr: ErrInvalidExecMode},
		{name: "blank optional env file", mutate: func(c *Config) { c.Exec.EnvFiles = []string{"?"} }, wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want it to wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Venv.Interpreter = ""
	cfg.Exec.Mode = "nope"

	var ice *InvalidConfigError
	if !errors.As(cfg.Validate(), &ice) {
		t.Fatal("Validate() did not return *InvalidConfigError")
	}
	if len(ice.FieldErrors) != 2 {
		t.Errorf("FieldErrors = %v, want 2 entries", ice.FieldErrors)
	}
}
