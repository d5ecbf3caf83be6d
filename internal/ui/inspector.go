package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"spacedrive/internal/pool"
)

const (
	inspectorTop   = 120
	inspectorTitle = 30
	inspectorLine  = 22
)

// Inspector is the right-side panel describing one pool object.
type Inspector struct {
	panel *Node
	title *Node
	lines []*Node
	nodes []*Node
}

// NewInspector returns an inspector styled by .inspector, .inspector-title and .inspector-line.
func NewInspector() *Inspector {
	in := &Inspector{
		panel: &Node{Class: "inspector"},
		title: &Node{Class: "inspector-title"},
	}
	in.nodes = []*Node{in.panel, in.title}
	for i := range 6 {
		n := &Node{Class: "inspector-line", ID: fmt.Sprintf("inspector-line-%d", i)}
		in.lines = append(in.lines, n)
		in.nodes = append(in.nodes, n)
	}
	return in
}

// Describe returns the title and text lines shown for o.
func Describe(o pool.SceneObject) (string, []string) {
	p := o.Transform.Position
	s := o.Transform.Scale
	axis, angle := quatAxisAngle(o.Transform.Rotation)
	return fmt.Sprintf("#%d %s", o.ID, o.Geometry.Kind), []string{
		fmt.Sprintf("Size: %.2f  Color: %d,%d,%d", o.Geometry.Size, o.Color[0], o.Color[1], o.Color[2]),
		fmt.Sprintf("Position: %.1f, %.1f, %.1f", p[0], p[1], p[2]),
		fmt.Sprintf("Rotation: %.0f deg about %.2f, %.2f, %.2f", mgl64.RadToDeg(angle), axis[0], axis[1], axis[2]),
		fmt.Sprintf("Scale: %.2f, %.2f, %.2f", s[0], s[1], s[2]),
		"Motion: " + motionNames(o.Motion),
		fmt.Sprintf("Delta: %.2f, %.2f, %.2f", o.Params.Delta[0], o.Params.Delta[1], o.Params.Delta[2]),
	}
}

// Nodes updates the labels from o and returns the nodes to hand to Engine.SetNodes.
// The returned slice is reused across calls.
func (in *Inspector) Nodes(o pool.SceneObject) []*Node {
	title, lines := Describe(o)
	in.title.Text = title
	for i, n := range in.lines {
		n.Text = ""
		if i < len(lines) {
			n.Text = lines[i]
		}
	}
	return in.nodes
}

// Layout places the labels inside the panel given the panel's resolved style.
// Call once after the stylesheet is known.
func (in *Inspector) Layout(e *Engine) {
	if e.sheet == nil {
		e.sheet = &Stylesheet{}
	}
	panel := e.StyleOf(in.panel)
	place := func(n *Node, top int32) {
		rule := Rule{Selector: "#" + n.ID, Props: map[string]string{
			"left":  fmt.Sprint(panel.Left),
			"top":   fmt.Sprint(top),
			"width": fmt.Sprint(panel.Width),
		}}
		if panel.LeftPct >= 0 {
			rule.Props["left"] = fmt.Sprintf("%d%%", panel.LeftPct)
		}
		e.sheet.Rules = append(e.sheet.Rules, rule)
	}
	in.title.ID = "inspector-title"
	place(in.title, inspectorTop)
	for i, n := range in.lines {
		place(n, inspectorTop+inspectorTitle+int32(i)*inspectorLine)
	}
	e.dirty = true
}

func motionNames(m pool.MotionFlags) string {
	var names []string
	if m.Linear {
		names = append(names, "linear")
	}
	if m.Orbit {
		names = append(names, "orbit")
	}
	if m.Spin {
		names = append(names, "spin")
	}
	if m.Pulse {
		names = append(names, "pulse")
	}
	if len(names) == 0 {
		return "static"
	}
	return strings.Join(names, ", ")
}

// quatAxisAngle returns the rotation axis and angle in radians. Identity reports axis +X.
func quatAxisAngle(q mgl64.Quat) (mgl64.Vec3, float64) {
	q = q.Normalize()
	w := mgl64.Clamp(q.W, -1, 1)
	angle := 2 * math.Acos(w)
	if q.V.Len() < 1e-9 {
		return mgl64.Vec3{1, 0, 0}, 0
	}
	return q.V.Normalize(), angle
}
