package argmark

import "go.uber.org/zap"

// Extract runs the parse phase over tokens marked by Classify. anon is the
// count Classify returned.
//
// The leading run of anonymous values after the program name is skipped,
// then every option token is matched against decl: flags first, then value
// options. A value option takes the following BoundValue token; without one
// the parse fails with ErrMissingValue. Unrecognized options are dropped.
// Finally every Anonymous token is collected in order.
func (p *Parser) Extract(tokens []string, roles []Role, decl Declarations, anon int) (*Result, error) {
	if len(roles) != len(tokens) {
		return nil, p.fail(configError("parse", ErrUninitializedOutput))
	}

	res := &Result{
		Declarations: decl,
		Flags:        make([]bool, decl.Flags.Len()),
		Values:       make([]*string, decl.Values.Len()),
	}

	front := 0
	for i := 1; i < len(roles) && roles[i] == Anonymous; i++ {
		front++
	}

	for i := front + 1; i < len(tokens); i++ {
		role := roles[i]
		if !role.IsOption() {
			continue
		}
		tok := tokens[i]

		if f := lookup(decl.Flags, tok, role); f >= 0 {
			p.log.Debug("found flag", zap.String("option", tok), zap.Stringer("role", role))
			res.Flags[f] = true
			continue
		}

		v := lookup(decl.Values, tok, role)
		if v < 0 {
			p.log.Debug("ignoring unrecognized option", zap.String("option", tok))
			continue
		}
		p.log.Debug("found value option", zap.String("option", tok), zap.Stringer("role", role))
		if i+1 >= len(tokens) || roles[i+1] != BoundValue {
			return nil, p.fail(usageError("parse", tok, i, ErrMissingValue))
		}
		i++
		res.Values[v] = &tokens[i]
		p.log.Debug("bound value", zap.String("option", tok), zap.String("value", tokens[i]))
	}

	res.Anonymous = make([]string, 0, anon)
	for i := 1; i < len(tokens); i++ {
		if roles[i] == Anonymous {
			res.Anonymous = append(res.Anonymous, tokens[i])
			p.log.Debug("found anonymous value", zap.String("value", tokens[i]))
		}
	}
	if len(res.Anonymous) != anon {
		return nil, p.fail(configError("parse", ErrAnonymousCount))
	}

	return res, nil
}

func lookup(t Table, tok string, role Role) int {
	if role == LongOption {
		return t.matchLong(tok)
	}
	return t.matchShort(tok)
}
