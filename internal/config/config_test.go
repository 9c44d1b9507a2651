package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/thatsneat-dev/argmark/internal/config"
	"github.com/thatsneat-dev/argmark/pkg/argmark"
)

const tomlDecl = `
infer = true
warn_as_error = true

[[flag]]
long = "verbose"

[[flag]]
short = "h"
long = "help"

[[value]]
short = "o"
long = "output"
`

const yamlDecl = `
infer: true
warn_as_error: true
flag:
  - long: verbose
  - short: h
    long: help
value:
  - short: o
    long: output
`

const hclDecl = `
infer         = true
warn_as_error = true

flag {
  long = "verbose"
}

flag {
  short = "h"
  long  = "help"
}

value {
  short = "o"
  long  = "output"
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoad_Formats(t *testing.T) {
	t.Parallel()

	want := &config.File{
		Infer:       true,
		WarnAsError: true,
		Flags: []config.Option{
			{Long: "verbose"},
			{Short: "h", Long: "help"},
		},
		Values: []config.Option{
			{Short: "o", Long: "output"},
		},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "decl.toml", tomlDecl},
		{"yaml", "decl.yaml", yamlDecl},
		{"yml", "decl.yml", yamlDecl},
		{"hcl", "decl.hcl", hclDecl},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := config.Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := config.Load(writeFile(t, "decl.ini", "x=1"))
	if !errors.Is(err, config.ErrUnknownFormat) {
		t.Errorf("Load error = %v, want ErrUnknownFormat", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := map[string]string{
		"bad.toml": "[[flag]\nlong=",
		"bad.yaml": "flag: [",
		"bad.hcl":  "flag {",
	}
	for name, content := range tests {
		if _, err := config.Load(writeFile(t, name, content)); err == nil {
			t.Errorf("Load(%s) should have returned error", name)
		}
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	f := &config.File{
		Flags:  []config.Option{{}, {Short: "vv"}},
		Values: []config.Option{{Long: "--output"}},
	}
	err := f.Validate()
	if err == nil {
		t.Fatal("Validate should have returned error")
	}
	for _, part := range []string{"flag 1", "flag 2", "value 1"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("Validate error %q should mention %q", err, part)
		}
	}
}

func TestFile_Declarations(t *testing.T) {
	f := &config.File{
		Infer:          true,
		AllowCrossover: true,
		Flags:          []config.Option{{Long: "verbose"}, {Short: "h", Long: "help"}},
		Values:         []config.Option{{Short: "o"}},
	}
	want := argmark.Declarations{
		Flags:  argmark.Table{Short: []rune{0, 'h'}, Long: []string{"verbose", "help"}},
		Values: argmark.Table{Short: []rune{'o'}, Long: []string{""}},
	}
	if diff := cmp.Diff(want, f.Declarations()); diff != "" {
		t.Errorf("Declarations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(argmark.Policy{Infer: true, AllowCrossover: true}, f.Policy()); diff != "" {
		t.Errorf("Policy mismatch (-want +got):\n%s", diff)
	}
}

func TestShouldUseColor_InvalidMode(t *testing.T) {
	invalidModes := []string{"invalid", "yes", "true", "on"}
	for _, mode := range invalidModes {
		_, err := config.ShouldUseColor(mode)
		if err == nil {
			t.Errorf("ShouldUseColor(%q) should have returned error", mode)
		}
	}
}

func TestShouldUseColor_ValidModes(t *testing.T) {
	tests := []struct {
		mode     string
		expected bool
	}{
		{"always", true},
		{"never", false},
	}
	for _, tc := range tests {
		result, err := config.ShouldUseColor(tc.mode)
		if err != nil {
			t.Errorf("ShouldUseColor(%q) returned error: %v", tc.mode, err)
		}
		if result != tc.expected {
			t.Errorf("ShouldUseColor(%q) = %v, want %v", tc.mode, result, tc.expected)
		}
	}
}

func TestShouldUseColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	result, err := config.ShouldUseColor("auto")
	if err != nil {
		t.Fatalf("ShouldUseColor returned error: %v", err)
	}
	if result {
		t.Error("ShouldUseColor should return false when NO_COLOR is set")
	}
}
