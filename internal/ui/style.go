package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rule is one CSS rule: a .class or #id selector and its raw declarations.
type Rule struct {
	Selector string
	Props    map[string]string
}

// Stylesheet is a list of rules; later rules override earlier ones for the same property.
type Stylesheet struct {
	Rules []Rule
}

// Style is the resolved style of a node. LeftPct/TopPct are 0-100, or -1 to use Left/Top in pixels.
type Style struct {
	Background rl.Color
	Color      rl.Color
	Border     rl.Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	FontSize   int32
}

// DefaultStyle is transparent with white text and no border.
func DefaultStyle() Style {
	return Style{
		Background: rl.NewColor(0, 0, 0, 0),
		Color:      rl.White,
		Border:     rl.Black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		FontSize:   defaultFontSize,
	}
}

// match merges the declarations of every rule that selects n.
func (s *Stylesheet) match(n *Node) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, r := range s.Rules {
		name := r.Selector[1:]
		if (r.Selector[0] == '.' && n.Class == name) || (r.Selector[0] == '#' && n.ID == name) {
			for k, v := range r.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Resolve turns merged declarations into a Style. Unknown properties and bad values are ignored.
func Resolve(props map[string]string) Style {
	out := DefaultStyle()
	for k, v := range props {
		switch k {
		case "background":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border":
			if c, ok := ParseColor(v); ok {
				out.Border, out.HasBorder = c, true
			}
		case "width":
			if n, ok := parsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := parsePx(v); ok {
				out.Height = n
			}
		case "left":
			if pct, ok := parsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := parsePx(v); ok {
				out.Left = n
			}
		case "top":
			if pct, ok := parsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := parsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := parsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := parsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}

// ParseColor parses #RGB, #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (rl.Color, bool) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return rl.Black, false
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return rl.Black, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rl.Black, false
	}
	return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), true
}

// parsePx accepts "12" or "12px".
func parsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// parsePct accepts "0%" through "100%".
func parsePct(s string) (int32, bool) {
	num, ok := strings.CutSuffix(strings.TrimSpace(s), "%")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}
