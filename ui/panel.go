// Package ui renders the tunables panel and HUD. All simulation constants
// the panel exposes flow through explicit setters on the simulation; the
// panel itself holds no simulation state.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/swarm"
)

// Panel layout.
const (
	panelX      = 10
	panelY      = 100
	panelWidth  = 270
	rowHeight   = 24
	rowGap      = 6
	sliderLeft  = 120
	sliderWidth = 110
)

// State is the tunable set the panel edits.
type State struct {
	Params    swarm.Params
	Shape     swarm.Shape
	PointSize float32
}

// Panel is the left-side tunables panel.
type Panel struct {
	visible bool

	// pendingCount stages the particle-count slider; a rebuild only
	// happens when Apply is pressed.
	pendingCount float32
}

// NewPanel creates a hidden panel.
func NewPanel(initialCount int) *Panel {
	return &Panel{pendingCount: float32(initialCount)}
}

// Toggle switches panel visibility and returns the new state.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Visible returns whether the panel is shown.
func (p *Panel) Visible() bool {
	return p.visible
}

// Draw renders the panel and returns the (possibly edited) state. changed
// is true when any value differs from the input.
func (p *Panel) Draw(s State) (State, bool) {
	if !p.visible {
		return s, false
	}

	in := s
	y := float32(panelY)

	rows := 13
	rl.DrawRectangle(panelX-6, panelY-30, panelWidth, int32(rows*(rowHeight+rowGap))+70, rl.Color{R: 20, G: 24, B: 34, A: 220})
	rl.DrawText("Tunables [Tab]", panelX, panelY-24, 16, rl.White)

	slider := func(label string, value, min, max float32) float32 {
		bounds := rl.Rectangle{X: panelX + sliderLeft, Y: y, Width: sliderWidth, Height: rowHeight - 6}
		rl.DrawText(label, panelX, int32(y)+2, 10, rl.LightGray)
		out := gui.Slider(bounds, "", fmt.Sprintf("%.3f", value), value, min, max)
		y += rowHeight + rowGap
		return out
	}

	s.Params.ReturnStrength = slider("return", s.Params.ReturnStrength, 0.005, 0.3)
	s.Params.AttractStrength = slider("attract", s.Params.AttractStrength, 0.01, 0.6)
	s.Params.RepelStrength = slider("repel", s.Params.RepelStrength, 0.01, 1.0)
	s.Params.InteractionRadius = slider("radius", s.Params.InteractionRadius, 0.5, 8.0)
	s.Params.Friction = slider("friction", s.Params.Friction, 0.5, 0.99)
	s.Params.ImpulseStrength = slider("impulse", s.Params.ImpulseStrength, 0.05, 2.0)
	s.Params.SpeedThreshold = slider("color floor", s.Params.SpeedThreshold, 0.0, 0.5)
	s.Params.ColorGain = slider("color gain", s.Params.ColorGain, 0.2, 8.0)
	s.Params.Smoothing = slider("smoothing", s.Params.Smoothing, 0.05, 0.95)
	s.PointSize = slider("point size", s.PointSize, 0.01, 0.15)

	// Particle count is staged: rebuilding buffers mid-drag would resample
	// every shape on every frame.
	p.pendingCount = slider("particles", p.pendingCount, 500, 30000)
	applyBounds := rl.Rectangle{X: panelX + sliderLeft, Y: y, Width: sliderWidth, Height: rowHeight - 6}
	rl.DrawText(fmt.Sprintf("count: %d", s.Params.Count), panelX, int32(y)+2, 10, rl.LightGray)
	if gui.Button(applyBounds, fmt.Sprintf("apply %d", int(p.pendingCount))) {
		s.Params.Count = int(p.pendingCount)
	}
	y += rowHeight + rowGap

	rl.DrawText("shape", panelX, int32(y)+2, 10, rl.LightGray)
	shapeBounds := rl.Rectangle{X: panelX + sliderLeft, Y: y, Width: 34, Height: rowHeight - 6}
	active := shapeIndex(s.Shape)
	active = gui.ToggleGroup(shapeBounds, "SPH;CUB;HRT;STR", active)
	if int(active) >= 0 && int(active) < len(swarm.Shapes) {
		s.Shape = swarm.Shapes[active]
	}

	return s, s != in
}

func shapeIndex(sh swarm.Shape) int32 {
	for i, s := range swarm.Shapes {
		if s == sh {
			return int32(i)
		}
	}
	return 0
}
