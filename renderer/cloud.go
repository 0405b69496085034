package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/swarm"
)

// PointCloud renders the published position/color buffers.
type PointCloud struct{}

// NewPointCloud creates a point-cloud renderer.
func NewPointCloud() *PointCloud {
	return &PointCloud{}
}

// Draw renders every particle as a small additive-blended cube. Must be
// called inside BeginMode3D.
func (pc *PointCloud) Draw(positions, colors []float32, pointSize float32) {
	size := rl.Vector3{X: pointSize, Y: pointSize, Z: pointSize}

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := 0; i < len(positions); i += 3 {
		pos := rl.Vector3{X: positions[i], Y: positions[i+1], Z: positions[i+2]}
		rl.DrawCubeV(pos, size, channelColor(colors[i], colors[i+1], colors[i+2]))
	}
	rl.EndBlendMode()
}

// DrawInfluence renders the influence marker and its interaction radius.
// Must be called inside BeginMode3D.
func (pc *PointCloud) DrawInfluence(origin [3]float32, mode swarm.Mode, radius float32) {
	center := rl.Vector3{X: origin[0], Y: origin[1], Z: origin[2]}

	color := rl.Color{R: 120, G: 220, B: 140, A: 255}
	if mode == swarm.Attracting {
		color = rl.Color{R: 240, G: 180, B: 60, A: 255}
	}

	rl.DrawSphereEx(center, 0.12, 8, 8, color)
	rl.DrawSphereWires(center, radius, 8, 8, rl.Fade(color, 0.15))
}

// channelColor clamps a float RGB triple into a raylib color. Channels are
// unconstrained in the buffer; rendering clamps to [0,1].
func channelColor(r, g, b float32) rl.Color {
	return rl.Color{R: clamp8(r), G: clamp8(g), B: clamp8(b), A: 255}
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
