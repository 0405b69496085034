package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/swarm"
)

// HUD holds the top-left status readout.
type HUD struct{}

// NewHUD creates the status readout.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders tick, population, gesture mode and pause state.
func (h *HUD) Draw(tick int64, count int, shape swarm.Shape, mode swarm.Mode, paused bool) {
	rl.DrawText(fmt.Sprintf("Tick: %d  FPS: %d", tick, rl.GetFPS()), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Particles: %d  Shape: %s", count, shape), 10, 35, 20, rl.White)

	modeText := "repelling (open)"
	modeColor := rl.Color{R: 120, G: 220, B: 140, A: 255}
	if mode == swarm.Attracting {
		modeText = "attracting (closed)"
		modeColor = rl.Color{R: 240, G: 180, B: 60, A: 255}
	}
	rl.DrawText(modeText, 10, 60, 20, modeColor)

	if paused {
		rl.DrawText("PAUSED", 10, 85, 20, rl.Yellow)
	}
	rl.DrawText("RMB: gesture  1-4: shapes  Tab: panel  Space: pause", 10, int32(rl.GetScreenHeight())-26, 14, rl.Gray)
}
