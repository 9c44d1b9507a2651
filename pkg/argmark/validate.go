package argmark

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// Validate runs the prep phase. It returns the effective declarations, with
// short forms inferred when pol.Infer is set, and any warnings. decl itself
// is never modified.
//
// Unless pol.AllowCrossover is set, every declared option is looked up in
// tokens: giving both its short and long form fails with ErrCrossover, giving
// a value option twice fails with ErrDuplicateOption, and giving a flag twice
// is a warning (an error under WarnAsError). Flags are checked before value
// options and the first failure wins.
func (p *Parser) Validate(tokens []string, decl Declarations, pol Policy) (Declarations, []Warning, error) {
	eff := Declarations{
		Flags:  decl.Flags.clone(),
		Values: decl.Values.clone(),
	}

	for _, t := range []*Table{&eff.Flags, &eff.Values} {
		if t.Short != nil && t.Long != nil && len(t.Short) != len(t.Long) {
			return Declarations{}, nil, p.fail(configError("prep", ErrMismatchedTable))
		}
	}

	if pol.Infer {
		p.log.Debug("begin inference")
		for _, t := range []*Table{&eff.Flags, &eff.Values} {
			if err := p.infer(t); err != nil {
				return Declarations{}, nil, err
			}
		}
		p.log.Debug("end inference")
	}

	warnings := p.conflicts(eff)

	if pol.AllowCrossover {
		p.log.Debug("crossover allowed, skipping scan")
		return eff, warnings, nil
	}

	p.log.Debug("begin crossover scan")
	for i := 0; i < eff.Flags.Len(); i++ {
		short, long := countForms(tokens, eff.Flags, i)
		name := eff.Flags.Name(i)
		switch {
		case short > 0 && long > 0:
			return Declarations{}, nil, p.fail(usageError("prep", name, -1, ErrCrossover))
		case short > 1 || long > 1:
			if p.werror {
				return Declarations{}, nil, p.fail(usageError("prep", name, -1, ErrDuplicateOption))
			}
			w := Warning{Option: name, Count: max(short, long)}
			p.log.Warn("duplicate flag", zap.String("option", name), zap.Int("count", w.Count))
			warnings = append(warnings, w)
		default:
			p.log.Debug("no crossover or duplicates", zap.String("flag", name))
		}
	}

	for i := 0; i < eff.Values.Len(); i++ {
		short, long := countForms(tokens, eff.Values, i)
		name := eff.Values.Name(i)
		switch {
		case short > 0 && long > 0:
			return Declarations{}, nil, p.fail(usageError("prep", name, -1, ErrCrossover))
		case short > 1 || long > 1:
			return Declarations{}, nil, p.fail(usageError("prep", name, -1, ErrDuplicateOption))
		default:
			p.log.Debug("no crossover or duplicates", zap.String("value", name))
		}
	}
	p.log.Debug("end crossover scan")

	return eff, warnings, nil
}

// infer fills every missing short form of t from its long form. t.Short must
// have a slot for every long form.
func (p *Parser) infer(t *Table) error {
	if len(t.Short) < len(t.Long) {
		return p.fail(configError("prep", ErrUnallocatedOutput))
	}
	for i, l := range t.Long {
		if t.Short[i] != 0 || l == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(l)
		t.Short[i] = r
		p.log.Debug("inferred short form", zap.String("short", string(r)), zap.String("long", l))
	}
	return nil
}

// conflicts reports spellings shared by more than one declaration, within or
// across the two tables. Such options are reachable only through the first
// match, flags before value options.
func (p *Parser) conflicts(decl Declarations) []Warning {
	seen := make(map[string]int)
	var order []string
	add := func(spelling string) {
		if seen[spelling] == 0 {
			order = append(order, spelling)
		}
		seen[spelling]++
	}
	for _, t := range []Table{decl.Flags, decl.Values} {
		for i := 0; i < t.Len(); i++ {
			if s := t.ShortAt(i); s != 0 {
				add("-" + string(s))
			}
			if l := t.LongAt(i); l != "" {
				add("--" + l)
			}
		}
	}

	var warnings []Warning
	for _, spelling := range order {
		if n := seen[spelling]; n > 1 {
			p.log.Warn("option declared more than once", zap.String("option", spelling), zap.Int("count", n))
			warnings = append(warnings, Warning{Option: spelling, Count: n, Declared: true})
		}
	}
	return warnings
}

// countForms counts the tokens spelling option i of t in its short and its
// long form. The program name is not counted.
func countForms(tokens []string, t Table, i int) (short, long int) {
	var shortTok, longTok string
	if s := t.ShortAt(i); s != 0 {
		shortTok = "-" + string(s)
	}
	if l := t.LongAt(i); l != "" {
		longTok = "--" + l
	}
	for j := 1; j < len(tokens); j++ {
		switch tokens[j] {
		case "":
		case shortTok:
			short++
		case longTok:
			long++
		}
	}
	return short, long
}
