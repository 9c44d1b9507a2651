// Package render handles formatting and output of argmark reports
// in table and JSON formats with optional ANSI colors.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thatsneat-dev/argmark/internal/core"
)

// Renderer outputs reports in various formats.
type Renderer struct {
	writer  io.Writer
	palette palette
}

// NewRenderer creates a new Renderer with the given output settings.
func NewRenderer(writer io.Writer, useColor bool) *Renderer {
	return &Renderer{
		writer:  writer,
		palette: newPalette(useColor),
	}
}

// RenderTable outputs every non-empty section of the report as an aligned
// table.
func (r *Renderer) RenderTable(report *core.Report) error {
	sections := 0
	section := func() {
		if sections > 0 {
			fmt.Fprintln(r.writer)
		}
		sections++
	}

	if len(report.Tokens) > 0 {
		section()
		r.renderTokens(report.Tokens)
	}
	if len(report.Flags) > 0 {
		section()
		r.renderFlags(report.Flags)
	}
	if len(report.Values) > 0 {
		section()
		r.renderValues(report.Values)
	}
	if len(report.Anonymous) > 0 {
		section()
		fmt.Fprintln(r.writer, r.palette.header.Sprint("ANONYMOUS"))
		for _, a := range report.Anonymous {
			fmt.Fprintln(r.writer, a)
		}
	}
	if len(report.Warnings) > 0 {
		section()
		for _, w := range report.Warnings {
			fmt.Fprintln(r.writer, r.palette.warning.Sprint("warning: "+w))
		}
	}
	return nil
}

func (r *Renderer) renderTokens(tokens []core.TokenResult) {
	roleLen := len("ROLE")
	for _, t := range tokens {
		roleLen = max(roleLen, len(t.Role))
	}
	indexLen := max(len("INDEX"), len(fmt.Sprint(len(tokens)-1)))

	fmt.Fprintln(r.writer, r.palette.header.Sprintf("%-*s  %-*s  TOKEN", indexLen, "INDEX", roleLen, "ROLE"))
	fmt.Fprintln(r.writer, strings.Repeat("-", indexLen+2+roleLen+2+len("TOKEN")))
	for _, t := range tokens {
		// Pad before coloring so escape codes do not skew the columns.
		role := r.palette.role(t.Role).Sprint(fmt.Sprintf("%-*s", roleLen, t.Role))
		fmt.Fprintf(r.writer, "%-*d  %s  %s\n", indexLen, t.Index, role, t.Token)
	}
}

func (r *Renderer) renderFlags(flags []core.FlagResult) {
	names := make([]string, len(flags))
	nameLen := len("FLAG")
	for i, f := range flags {
		names[i] = optionName(f.Short, f.Long)
		nameLen = max(nameLen, len(names[i]))
	}

	fmt.Fprintln(r.writer, r.palette.header.Sprintf("%-*s  SET", nameLen, "FLAG"))
	fmt.Fprintln(r.writer, strings.Repeat("-", nameLen+2+len("SET")))
	for i, f := range flags {
		fmt.Fprintf(r.writer, "%-*s  %s\n", nameLen, names[i], r.formatSet(f.Set))
	}
}

func (r *Renderer) renderValues(values []core.ValueResult) {
	names := make([]string, len(values))
	nameLen := len("VALUE OPTION")
	for i, v := range values {
		names[i] = optionName(v.Short, v.Long)
		nameLen = max(nameLen, len(names[i]))
	}

	fmt.Fprintln(r.writer, r.palette.header.Sprintf("%-*s  VALUE", nameLen, "VALUE OPTION"))
	fmt.Fprintln(r.writer, strings.Repeat("-", nameLen+2+len("VALUE")))
	for i, v := range values {
		value := r.formatSet(false)
		if v.Bound {
			value = v.Value
		}
		fmt.Fprintf(r.writer, "%-*s  %s\n", nameLen, names[i], value)
	}
}

func (r *Renderer) formatSet(set bool) string {
	if set {
		return r.palette.positive.Sprint(iconSet)
	}
	return r.palette.negative.Sprint(iconUnset)
}

func optionName(short, long string) string {
	switch {
	case short != "" && long != "":
		return "-" + short + "/--" + long
	case short != "":
		return "-" + short
	default:
		return "--" + long
	}
}

// RenderJSON outputs the report as pretty-printed JSON.
func (r *Renderer) RenderJSON(report *core.Report) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
