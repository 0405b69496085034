package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/swarm"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Direct shape selection
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		g.selectShape(swarm.ShapeSphere)
	case rl.IsKeyPressed(rl.KeyTwo):
		g.selectShape(swarm.ShapeCube)
	case rl.IsKeyPressed(rl.KeyThree):
		g.selectShape(swarm.ShapeHeart)
	case rl.IsKeyPressed(rl.KeyFour):
		g.selectShape(swarm.ShapeStar)
	}
}

// MouseInfluence maps the cursor to an influence observation: the cursor
// ray is intersected with the camera-facing plane through the world
// origin, and holding the right mouse button closes the gesture. It stands
// in for the hand-tracking collaborator, which would feed the same Sample
// shape.
type MouseInfluence struct {
	cam *renderer.OrbitCamera
}

// Sample returns this tick's influence observation.
func (m *MouseInfluence) Sample() swarm.Sample {
	if !rl.IsCursorOnScreen() {
		return swarm.Sample{}
	}

	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), m.cam.Camera())

	// Plane through the origin, facing the camera.
	normal := rl.Vector3Normalize(m.cam.Position())
	denom := rl.Vector3DotProduct(ray.Direction, normal)
	if denom > -1e-6 && denom < 1e-6 {
		return swarm.Sample{}
	}

	t := -rl.Vector3DotProduct(ray.Position, normal) / denom
	if t <= 0 {
		return swarm.Sample{}
	}

	hit := rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t))
	return swarm.Sample{
		Position: [3]float32{hit.X, hit.Y, hit.Z},
		Present:  true,
		Closed:   rl.IsMouseButtonDown(rl.MouseButtonRight),
	}
}
