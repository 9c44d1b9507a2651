// Package core runs the argmark phases for the command and collects their
// output into a report keyed by option spelling.
package core

import (
	"go.uber.org/zap"

	"github.com/thatsneat-dev/argmark/pkg/argmark"
)

// TokenResult is the role assigned to one token.
type TokenResult struct {
	Index int    `json:"index"`
	Token string `json:"token"`
	Role  string `json:"role"`
}

// FlagResult is the presence of one declared flag.
type FlagResult struct {
	Short string `json:"short,omitempty"`
	Long  string `json:"long,omitempty"`
	Set   bool   `json:"set"`
}

// ValueResult is the binding of one declared value option.
type ValueResult struct {
	Short string `json:"short,omitempty"`
	Long  string `json:"long,omitempty"`
	Value string `json:"value,omitempty"`
	Bound bool   `json:"bound"`
}

// Report is everything the command prints for one run.
type Report struct {
	Tokens    []TokenResult `json:"tokens,omitempty"`
	Flags     []FlagResult  `json:"flags,omitempty"`
	Values    []ValueResult `json:"values,omitempty"`
	Anonymous []string      `json:"anonymous"`
	Warnings  []string      `json:"warnings,omitempty"`
}

// Runner drives a Parser and builds reports.
type Runner struct {
	parser *argmark.Parser
	log    *zap.Logger
}

// NewRunner creates a Runner around parser.
func NewRunner(parser *argmark.Parser, log *zap.Logger) *Runner {
	return &Runner{parser: parser, log: log}
}

// Validate runs the prep phase only and reports the effective declarations.
func (r *Runner) Validate(tokens []string, decl argmark.Declarations, pol argmark.Policy) (*Report, error) {
	r.log.Debug("validating declarations",
		zap.Int("flags", decl.Flags.Len()),
		zap.Int("values", decl.Values.Len()))

	eff, warnings, err := r.parser.Validate(tokens, decl, pol)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Flags:     make([]FlagResult, eff.Flags.Len()),
		Values:    make([]ValueResult, eff.Values.Len()),
		Anonymous: []string{},
		Warnings:  warningStrings(warnings),
	}
	for i := range report.Flags {
		report.Flags[i] = FlagResult{Short: shortString(eff.Flags, i), Long: eff.Flags.LongAt(i)}
	}
	for i := range report.Values {
		report.Values[i] = ValueResult{Short: shortString(eff.Values, i), Long: eff.Values.LongAt(i)}
	}
	return report, nil
}

// Mark validates and classifies tokens, reporting the role of each.
func (r *Runner) Mark(tokens []string, decl argmark.Declarations, pol argmark.Policy) (*Report, error) {
	eff, warnings, err := r.parser.Validate(tokens, decl, pol)
	if err != nil {
		return nil, err
	}

	tokenResults, anon, err := r.mark(tokens, eff.Values)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Tokens:    tokenResults,
		Anonymous: make([]string, 0, anon),
		Warnings:  warningStrings(warnings),
	}
	for _, tr := range tokenResults {
		if tr.Role == argmark.Anonymous.String() {
			report.Anonymous = append(report.Anonymous, tr.Token)
		}
	}
	return report, nil
}

// Parse runs the full pipeline and reports roles, flags, values and
// anonymous values.
func (r *Runner) Parse(tokens []string, decl argmark.Declarations, pol argmark.Policy) (*Report, error) {
	res, err := r.parser.Parse(tokens, decl, pol)
	if err != nil {
		return nil, err
	}

	tokenResults, _, err := r.mark(tokens, res.Declarations.Values)
	if err != nil {
		return nil, err
	}

	eff := res.Declarations
	report := &Report{
		Tokens:    tokenResults,
		Flags:     make([]FlagResult, len(res.Flags)),
		Values:    make([]ValueResult, len(res.Values)),
		Anonymous: append([]string{}, res.Anonymous...),
		Warnings:  warningStrings(res.Warnings),
	}
	for i, set := range res.Flags {
		report.Flags[i] = FlagResult{Short: shortString(eff.Flags, i), Long: eff.Flags.LongAt(i), Set: set}
	}
	for i, v := range res.Values {
		vr := ValueResult{Short: shortString(eff.Values, i), Long: eff.Values.LongAt(i)}
		if v != nil {
			vr.Value, vr.Bound = *v, true
		}
		report.Values[i] = vr
	}

	r.log.Debug("parse complete",
		zap.Int("tokens", len(tokens)),
		zap.Int("anonymous", res.NumAnonymous()),
		zap.Int("warnings", len(res.Warnings)))
	return report, nil
}

func (r *Runner) mark(tokens []string, values argmark.Table) ([]TokenResult, int, error) {
	roles := make([]argmark.Role, len(tokens))
	anon, err := r.parser.Classify(tokens, values, roles)
	if err != nil {
		return nil, 0, err
	}
	results := make([]TokenResult, len(tokens))
	for i, tok := range tokens {
		results[i] = TokenResult{Index: i, Token: tok, Role: roles[i].String()}
	}
	return results, anon, nil
}

func shortString(t argmark.Table, i int) string {
	if s := t.ShortAt(i); s != 0 {
		return string(s)
	}
	return ""
}

func warningStrings(warnings []argmark.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}
