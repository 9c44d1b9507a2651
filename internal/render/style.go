package render

import "github.com/fatih/color"

const (
	iconSet   = "✓"
	iconUnset = "✗"
)

// palette holds the colors a Renderer uses. Colors are toggled per renderer
// rather than through color.NoColor so renderers with different settings can
// coexist.
type palette struct {
	header    *color.Color
	subdued   *color.Color
	positive  *color.Color
	negative  *color.Color
	warning   *color.Color
	roleColor map[string]*color.Color
}

func newPalette(useColor bool) palette {
	p := palette{
		header:   color.New(color.Bold),
		subdued:  color.New(color.FgHiBlack),
		positive: color.New(color.FgHiGreen),
		negative: color.New(color.FgHiRed),
		warning:  color.New(color.FgHiYellow),
		roleColor: map[string]*color.Color{
			"program":   color.New(color.FgHiBlack),
			"short":     color.New(color.FgHiBlue),
			"long":      color.New(color.FgHiMagenta),
			"value":     color.New(color.FgHiGreen),
			"anonymous": color.New(color.FgHiYellow),
		},
	}
	all := []*color.Color{p.header, p.subdued, p.positive, p.negative, p.warning}
	for _, c := range p.roleColor {
		all = append(all, c)
	}
	for _, c := range all {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) role(name string) *color.Color {
	if c, ok := p.roleColor[name]; ok {
		return c
	}
	return p.subdued
}

// FormatError formats an error message with red color if color is enabled.
func FormatError(msg string, useColor bool) string {
	c := color.New(color.FgHiRed)
	if useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint("Error: " + msg)
}
