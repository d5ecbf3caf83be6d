package ui

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultFontSize = 18

//go:embed hud.css
var hudCSS string

// Node is one panel or label. Class and ID select CSS rules; Text is drawn inside the bounds.
type Node struct {
	Class string
	ID    string
	Text  string
}

// Engine draws nodes with styles from a stylesheet. Styles are cached until the node set changes.
type Engine struct {
	sheet  *Stylesheet
	nodes  []*Node
	styles []Style
	dirty  bool
}

// New returns an engine using sheet. A nil sheet draws every node with DefaultStyle.
func New(sheet *Stylesheet) *Engine {
	return &Engine{sheet: sheet}
}

// NewHUD returns an engine with the built-in HUD stylesheet.
func NewHUD() (*Engine, error) {
	sheet, err := ParseCSS(hudCSS)
	if err != nil {
		return nil, err
	}
	return New(sheet), nil
}

// SetNodes replaces the nodes to draw, in order. Passing the same slice again keeps the cache.
func (e *Engine) SetNodes(nodes []*Node) {
	if len(nodes) != len(e.nodes) || (len(nodes) > 0 && nodes[0] != e.nodes[0]) {
		e.dirty = true
	}
	e.nodes = nodes
}

// StyleOf resolves the style for n against the stylesheet.
func (e *Engine) StyleOf(n *Node) Style {
	return Resolve(e.sheet.match(n))
}

// Draw draws background, border and text for each node.
func (e *Engine) Draw() {
	if e.dirty || len(e.styles) != len(e.nodes) {
		e.styles = make([]Style, len(e.nodes))
		for i, n := range e.nodes {
			e.styles[i] = e.StyleOf(n)
		}
		e.dirty = false
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	for i, n := range e.nodes {
		st := e.styles[i]
		x, y, w, h := st.Left, st.Top, st.Width, st.Height
		if st.LeftPct >= 0 {
			x = (screenW - w) * st.LeftPct / 100
		}
		if st.TopPct >= 0 {
			y = (screenH - h) * st.TopPct / 100
		}
		if st.Background.A > 0 {
			rl.DrawRectangle(x, y, w, h, st.Background)
		}
		if st.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, st.Border)
		}
		if n.Text != "" {
			rl.DrawText(n.Text, x+st.Padding, y+st.Padding, st.FontSize, st.Color)
		}
	}
}
