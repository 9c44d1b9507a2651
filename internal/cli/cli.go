// Package cli builds the argmark command tree.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thatsneat-dev/argmark/internal/config"
	"github.com/thatsneat-dev/argmark/internal/core"
	"github.com/thatsneat-dev/argmark/internal/logging"
	"github.com/thatsneat-dev/argmark/internal/render"
	"github.com/thatsneat-dev/argmark/pkg/argmark"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitConfig = 1
	ExitUsage  = 2
)

// ExitError is an error that carries the exit code the process should use.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

type app struct {
	stdout io.Writer
	stderr io.Writer

	declPath       string
	jsonOutput     bool
	colorMode      string
	infer          bool
	allowCrossover bool
	werror         bool
	verbose        bool
}

// Execute runs the command with args (without the program name) and returns
// the process exit code.
func Execute(args []string, stdout, stderr io.Writer, version string) int {
	a := &app{stdout: stdout, stderr: stderr}
	cmd := a.rootCommand(version)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	useColor, cerr := config.ShouldUseColor(a.colorMode)
	if cerr != nil {
		useColor = false
	}
	fmt.Fprintln(stderr, render.FormatError(err.Error(), useColor))

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	// Flag and argument errors reported by cobra itself.
	return ExitUsage
}

func (a *app) rootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "argmark",
		Short: "Classify and extract command-line arguments",
		Long: `argmark loads option declarations from a TOML, YAML or HCL file and runs
an argument vector through the argmark parser. The first token is the
program name.

Examples:
  argmark parse -d opts.toml prog hello.c -o out -v
  argmark mark -d opts.yaml --json -- prog --output out
  argmark validate -d opts.hcl --infer prog -v -v`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.declPath, "decl", "d", "", "Declaration file (.toml, .yaml, .yml or .hcl)")
	flags.BoolVar(&a.jsonOutput, "json", false, "Output results as JSON")
	flags.StringVar(&a.colorMode, "color", "auto", "Color output: auto, always, never")
	flags.BoolVar(&a.infer, "infer", false, "Derive missing short forms from long forms")
	flags.BoolVar(&a.allowCrossover, "allow-crossover", false, "Skip crossover and duplicate checks")
	flags.BoolVar(&a.werror, "werror", false, "Treat duplicate flags as errors")
	flags.BoolVar(&a.verbose, "verbose", false, "Show parser trace on stderr")
	_ = root.MarkPersistentFlagRequired("decl")

	root.AddCommand(
		a.phaseCommand("parse", "Parse tokens into flags, values and anonymous values"),
		a.phaseCommand("mark", "Print the role of every token"),
		a.phaseCommand("validate", "Check the declarations against the tokens"),
	)
	return root
}

func (a *app) phaseCommand(name, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " [flags] [--] PROGRAM [TOKENS...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(name, args)
		},
	}
	// Everything from the program name on belongs to the parsed vector.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) run(phase string, tokens []string) error {
	useColor, err := config.ShouldUseColor(a.colorMode)
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	file, err := config.Load(a.declPath)
	if err != nil {
		return &ExitError{Code: ExitConfig, Err: err}
	}

	log := logging.New(a.verbose)
	defer func() { _ = log.Sync() }()

	parser, err := argmark.New(argmark.Config{
		Info:        a.stderr,
		Err:         a.stderr,
		Debug:       a.verbose,
		WarnAsError: a.werror || file.WarnAsError,
	})
	if err != nil {
		return &ExitError{Code: ExitConfig, Err: err}
	}

	pol := file.Policy()
	pol.Infer = pol.Infer || a.infer
	pol.AllowCrossover = pol.AllowCrossover || a.allowCrossover

	log.Debug("running phase",
		zap.String("phase", phase),
		zap.String("decl", a.declPath),
		zap.Strings("tokens", tokens),
		zap.Bool("infer", pol.Infer),
		zap.Bool("allow_crossover", pol.AllowCrossover))

	runner := core.NewRunner(parser, log)
	var report *core.Report
	switch phase {
	case "mark":
		report, err = runner.Mark(tokens, file.Declarations(), pol)
	case "validate":
		report, err = runner.Validate(tokens, file.Declarations(), pol)
	default:
		report, err = runner.Parse(tokens, file.Declarations(), pol)
	}
	if err != nil {
		code := ExitConfig
		if argmark.IsUsage(err) {
			code = ExitUsage
		}
		return &ExitError{Code: code, Err: err}
	}

	renderer := render.NewRenderer(a.stdout, useColor)
	if a.jsonOutput {
		err = renderer.RenderJSON(report)
	} else {
		err = renderer.RenderTable(report)
	}
	if err != nil {
		return &ExitError{Code: ExitConfig, Err: fmt.Errorf("rendering output: %w", err)}
	}
	return nil
}
