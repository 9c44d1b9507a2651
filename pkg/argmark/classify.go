package argmark

import (
	"strings"

	"go.uber.org/zap"
)

// Classify runs the mark phase, writing the role of tokens[i] to roles[i],
// and returns the number of Anonymous tokens. roles must be at least as long
// as tokens.
//
// A token starting with "--" is a LongOption and one starting with "-" a
// ShortOption, whether declared or not. Any other token is a BoundValue if
// the token right before it spells one of values, and Anonymous otherwise.
func (p *Parser) Classify(tokens []string, values Table, roles []Role) (int, error) {
	if len(roles) < len(tokens) {
		return 0, p.fail(configError("mark", ErrUninitializedOutput))
	}
	if len(tokens) == 0 {
		return 0, nil
	}

	roles[0] = Program
	anon := 0
	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case strings.HasPrefix(tok, "--"):
			roles[i] = LongOption
		case strings.HasPrefix(tok, "-"):
			roles[i] = ShortOption
		case i > 1 && values.match(tokens[i-1]) >= 0:
			roles[i] = BoundValue
		default:
			roles[i] = Anonymous
			anon++
		}
		p.log.Debug("marked argument",
			zap.Int("index", i),
			zap.String("token", tok),
			zap.Stringer("role", roles[i]))
	}
	return anon, nil
}
