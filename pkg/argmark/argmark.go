// Package argmark classifies a program's argument vector against declared
// flags and value options and extracts flag presence, bound values and the
// leftover anonymous values.
//
// Parsing runs in three phases: prep validates the declarations against the
// tokens (crossover and duplicate usage, optional inference of short forms),
// mark assigns every token a Role, and parse walks the roles to build a
// Result. Unknown options are dropped silently so callers stay compatible
// with options they do not yet know about.
//
// Combined short flags ("-vh") and inline values ("--out=file") are not
// recognized.
package argmark

import "unicode/utf8"

// Role is the part a token plays in the argument vector.
type Role uint8

const (
	Program Role = iota
	ShortOption
	LongOption
	BoundValue
	Anonymous
)

var roleNames = [...]string{
	Program:     "program",
	ShortOption: "short",
	LongOption:  "long",
	BoundValue:  "value",
	Anonymous:   "anonymous",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "invalid"
}

// IsOption reports whether r marks a short or long option token.
func (r Role) IsOption() bool {
	return r == ShortOption || r == LongOption
}

// Table declares a set of options as two parallel sequences: Short[i] and
// Long[i] spell the same logical option. A zero rune means the option has no
// short form and an empty string means it has no long form. Either slice may
// be nil for a short-only or long-only table.
type Table struct {
	Short []rune
	Long  []string
}

// Len returns the number of declared options.
func (t Table) Len() int {
	return max(len(t.Short), len(t.Long))
}

// ShortAt returns the short form of option i, or 0.
func (t Table) ShortAt(i int) rune {
	if i < len(t.Short) {
		return t.Short[i]
	}
	return 0
}

// LongAt returns the long form of option i, or "".
func (t Table) LongAt(i int) string {
	if i < len(t.Long) {
		return t.Long[i]
	}
	return ""
}

// Name returns the most descriptive spelling of option i for messages,
// e.g. "-v/--verbose".
func (t Table) Name(i int) string {
	s, l := t.ShortAt(i), t.LongAt(i)
	switch {
	case s != 0 && l != "":
		return "-" + string(s) + "/--" + l
	case s != 0:
		return "-" + string(s)
	default:
		return "--" + l
	}
}

// Index returns the position of the option spelled name (a short form of one
// character or a long form, without dashes), or -1.
func (t Table) Index(name string) int {
	for i := 0; i < t.Len(); i++ {
		if l := t.LongAt(i); l != "" && l == name {
			return i
		}
	}
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && r != utf8.RuneError {
		for i := 0; i < t.Len(); i++ {
			if t.ShortAt(i) == r {
				return i
			}
		}
	}
	return -1
}

// matchShort returns the option whose short form tok spells ("-x"), or -1.
func (t Table) matchShort(tok string) int {
	if len(tok) < 2 || tok[0] != '-' {
		return -1
	}
	r, size := utf8.DecodeRuneInString(tok[1:])
	if r == utf8.RuneError || 1+size != len(tok) {
		return -1
	}
	for i, s := range t.Short {
		if s != 0 && s == r {
			return i
		}
	}
	return -1
}

// matchLong returns the option whose long form tok spells ("--xyz"), or -1.
func (t Table) matchLong(tok string) int {
	if len(tok) < 3 || tok[0] != '-' || tok[1] != '-' {
		return -1
	}
	for i, l := range t.Long {
		if l != "" && l == tok[2:] {
			return i
		}
	}
	return -1
}

// match tries the short spelling first, then the long one.
func (t Table) match(tok string) int {
	if i := t.matchShort(tok); i >= 0 {
		return i
	}
	return t.matchLong(tok)
}

func (t Table) clone() Table {
	c := Table{}
	if t.Short != nil {
		c.Short = append([]rune(nil), t.Short...)
	}
	if t.Long != nil {
		c.Long = append([]string(nil), t.Long...)
	}
	return c
}

// Declarations are the flags and value options a program recognizes. A
// spelling declared in both tables is a caller mistake; the flag wins.
type Declarations struct {
	Flags  Table
	Values Table
}

// Policy holds the per-invocation switches of the prep phase.
type Policy struct {
	// Infer derives a missing short form from the first character of the
	// long form.
	Infer bool
	// AllowCrossover skips the crossover and duplicate scan entirely.
	AllowCrossover bool
}

// Warning records tolerable redundancy: a flag given more than once, or a
// spelling that more than one declaration answers to (Declared).
type Warning struct {
	Option   string
	Count    int
	Declared bool
}

func (w Warning) String() string {
	if w.Declared {
		return w.Option + " declared more than once"
	}
	return w.Option + " given more than once"
}

// Result is the outcome of a successful parse. Values point into the token
// slice passed to Parse; nil means the option was not given.
type Result struct {
	Declarations Declarations
	Flags        []bool
	Values       []*string
	Anonymous    []string
	Warnings     []Warning
}

// NumAnonymous returns the number of anonymous values.
func (r *Result) NumAnonymous() int {
	return len(r.Anonymous)
}

// Flag reports whether the flag spelled name (short or long, without
// dashes) was given.
func (r *Result) Flag(name string) bool {
	i := r.Declarations.Flags.Index(name)
	return i >= 0 && i < len(r.Flags) && r.Flags[i]
}

// Value returns the value bound to the value option spelled name.
func (r *Result) Value(name string) (string, bool) {
	i := r.Declarations.Values.Index(name)
	if i < 0 || i >= len(r.Values) || r.Values[i] == nil {
		return "", false
	}
	return *r.Values[i], true
}
