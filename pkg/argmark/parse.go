package argmark

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/thatsneat-dev/argmark/internal/logging"
)

// Config is the logging setup of a Parser. Info is required; Err defaults to
// os.Stderr unless WarnAsError is set, in which case it is required too.
type Config struct {
	Info io.Writer
	Err  io.Writer
	// Debug enables trace lines for every phase on Info.
	Debug bool
	// WarnAsError turns duplicate flags into ErrDuplicateOption.
	WarnAsError bool
}

// Parser runs the prep, mark and parse phases. It holds no parse state, so a
// single Parser can be reused for any number of argument vectors.
type Parser struct {
	log    *zap.Logger
	werror bool
}

// New checks cfg and builds a Parser that logs to its sinks.
func New(cfg Config) (*Parser, error) {
	if cfg.Info == nil {
		errw := cfg.Err
		if errw == nil {
			errw = os.Stderr
		}
		logging.NewSinks(io.Discard, errw, false).
			Error("information sink not specified; set Info to os.Stdout if this is intended")
		return nil, configError("init", ErrNoInfoSink)
	}

	if cfg.Err == nil {
		if cfg.WarnAsError {
			logging.NewSinks(io.Discard, os.Stderr, false).
				Error("error sink not specified; set Err to os.Stderr if this is intended")
			return nil, configError("init", ErrNoErrorSink)
		}
		p := &Parser{log: logging.NewSinks(cfg.Info, os.Stderr, cfg.Debug)}
		p.log.Warn("error sink not specified, using stderr")
		return p, nil
	}

	return &Parser{
		log:    logging.NewSinks(cfg.Info, cfg.Err, cfg.Debug),
		werror: cfg.WarnAsError,
	}, nil
}

// Parse validates decl against tokens, marks every token and extracts the
// result. tokens[0] is the program name. The first failing phase stops the
// pipeline and its error is returned; no partial Result is produced.
func (p *Parser) Parse(tokens []string, decl Declarations, pol Policy) (*Result, error) {
	p.log.Debug("begin prep phase")
	eff, warnings, err := p.Validate(tokens, decl, pol)
	if err != nil {
		return nil, err
	}
	p.log.Debug("end prep phase")

	p.log.Debug("begin mark phase")
	roles := make([]Role, len(tokens))
	anon, err := p.Classify(tokens, eff.Values, roles)
	if err != nil {
		return nil, err
	}
	p.log.Debug("end mark phase", zap.Int("anonymous", anon))

	p.log.Debug("begin parse phase")
	res, err := p.Extract(tokens, roles, eff, anon)
	if err != nil {
		return nil, err
	}
	res.Warnings = warnings
	p.log.Debug("end parse phase")

	return res, nil
}

// ParseShort parses with short options only: flags "vh" declares -v and -h,
// values "o" declares -o.
func (p *Parser) ParseShort(tokens []string, flags, values string) (*Result, error) {
	decl := Declarations{
		Flags:  Table{Short: []rune(flags)},
		Values: Table{Short: []rune(values)},
	}
	return p.Parse(tokens, decl, Policy{})
}

// ParseLong parses with long options only. With infer set, every option
// also answers to the first letter of its long form.
func (p *Parser) ParseLong(tokens []string, flags, values []string, infer bool) (*Result, error) {
	decl := Declarations{
		Flags:  Table{Long: flags},
		Values: Table{Long: values},
	}
	if infer {
		decl.Flags.Short = make([]rune, len(flags))
		decl.Values.Short = make([]rune, len(values))
	}
	return p.Parse(tokens, decl, Policy{Infer: infer})
}

// Parse is a shorthand for New followed by Parser.Parse.
func Parse(cfg Config, tokens []string, decl Declarations, pol Policy) (*Result, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return p.Parse(tokens, decl, pol)
}

// fail logs err to the error sink and returns it.
func (p *Parser) fail(err *Error) error {
	fields := []zap.Field{zap.String("phase", err.Op), zap.Stringer("kind", err.Kind)}
	if err.Option != "" {
		fields = append(fields, zap.String("option", err.Option))
	}
	if err.Index >= 0 {
		fields = append(fields, zap.Int("index", err.Index))
	}
	p.log.Error(err.Err.Error(), fields...)
	return err
}
