// Package config loads option declaration files and handles output settings
// for the argmark command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/multierr"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/thatsneat-dev/argmark/pkg/argmark"
)

// Option is one declared option in a declaration file.
type Option struct {
	Short string `toml:"short,omitempty" yaml:"short,omitempty" hcl:"short,optional"`
	Long  string `toml:"long,omitempty" yaml:"long,omitempty" hcl:"long,optional"`
}

// File is the decoded form of a declaration file.
type File struct {
	Infer          bool     `toml:"infer,omitempty" yaml:"infer,omitempty" hcl:"infer,optional"`
	AllowCrossover bool     `toml:"allow_crossover,omitempty" yaml:"allow_crossover,omitempty" hcl:"allow_crossover,optional"`
	WarnAsError    bool     `toml:"warn_as_error,omitempty" yaml:"warn_as_error,omitempty" hcl:"warn_as_error,optional"`
	Flags          []Option `toml:"flag,omitempty" yaml:"flag,omitempty" hcl:"flag,block"`
	Values         []Option `toml:"value,omitempty" yaml:"value,omitempty" hcl:"value,block"`
}

// ErrUnknownFormat is returned for declaration files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown declaration file format")

// Load reads a declaration file. The format is chosen by extension:
// .toml, .yaml/.yml or .hcl.
func Load(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(src), &f); err != nil {
			return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(src, &f); err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
		}
	case ".hcl":
		parser := hclparse.NewParser()
		hclFile, diags := parser.ParseHCL(src, path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		diags = gohcl.DecodeBody(hclFile.Body, nil, &f)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
		}
	default:
		return nil, fmt.Errorf("%w %q (want .toml, .yaml, .yml or .hcl)", ErrUnknownFormat, ext)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid declaration file %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks that every entry names an option and that short forms are
// a single character. All problems are reported together.
func (f *File) Validate() error {
	var errs error
	check := func(kind string, opts []Option) {
		for i, o := range opts {
			if o.Short == "" && o.Long == "" {
				errs = multierr.Append(errs, fmt.Errorf("%s %d: needs a short or long form", kind, i+1))
			}
			if o.Short != "" && utf8.RuneCountInString(o.Short) != 1 {
				errs = multierr.Append(errs, fmt.Errorf("%s %d: short form %q must be one character", kind, i+1, o.Short))
			}
			if strings.HasPrefix(o.Short, "-") || strings.HasPrefix(o.Long, "-") {
				errs = multierr.Append(errs, fmt.Errorf("%s %d: spell options without dashes", kind, i+1))
			}
		}
	}
	check("flag", f.Flags)
	check("value", f.Values)
	return errs
}

// Declarations converts the file entries to parallel tables. Every table
// carries a short slot per option so inference has somewhere to write.
func (f *File) Declarations() argmark.Declarations {
	return argmark.Declarations{
		Flags:  table(f.Flags),
		Values: table(f.Values),
	}
}

// Policy returns the prep switches set in the file.
func (f *File) Policy() argmark.Policy {
	return argmark.Policy{Infer: f.Infer, AllowCrossover: f.AllowCrossover}
}

func table(opts []Option) argmark.Table {
	t := argmark.Table{
		Short: make([]rune, len(opts)),
		Long:  make([]string, len(opts)),
	}
	for i, o := range opts {
		if o.Short != "" {
			t.Short[i], _ = utf8.DecodeRuneInString(o.Short)
		}
		t.Long[i] = o.Long
	}
	return t
}

// IsTerminal returns true if stdout is connected to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor determines if ANSI color codes should be used based on
// the color mode setting and environment.
func ShouldUseColor(colorMode string) (bool, error) {
	switch colorMode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return IsTerminal(), nil
	default:
		return false, fmt.Errorf("invalid color mode %q: must be auto, always, or never", colorMode)
	}
}
