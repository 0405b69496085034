// Package renderer draws the published particle buffers as a 3D point
// cloud. It is a read-only observer of the simulation: it never touches
// the live buffers, only the per-tick published snapshot.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Orbit camera limits.
const (
	minDistance  = 3.0
	maxDistance  = 60.0
	maxElevation = 1.5 // just short of the pole to keep the up vector sane
	dragSpeed    = 0.005
	zoomSpeed    = 1.2
)

// OrbitCamera orbits the world origin: left-drag rotates, wheel zooms.
type OrbitCamera struct {
	Azimuth   float32
	Elevation float32
	Distance  float32
}

// NewOrbitCamera creates a camera at a three-quarter view.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Azimuth:   0.6,
		Elevation: 0.35,
		Distance:  14.0,
	}
}

// Update applies mouse drag and wheel input.
func (c *OrbitCamera) Update() {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		c.Azimuth -= delta.X * dragSpeed
		c.Elevation += delta.Y * dragSpeed
		if c.Elevation > maxElevation {
			c.Elevation = maxElevation
		} else if c.Elevation < -maxElevation {
			c.Elevation = -maxElevation
		}
	}

	c.Distance -= rl.GetMouseWheelMove() * zoomSpeed
	if c.Distance < minDistance {
		c.Distance = minDistance
	} else if c.Distance > maxDistance {
		c.Distance = maxDistance
	}
}

// Position returns the camera's world position.
func (c *OrbitCamera) Position() rl.Vector3 {
	cosEl := float32(math.Cos(float64(c.Elevation)))
	return rl.Vector3{
		X: c.Distance * cosEl * float32(math.Cos(float64(c.Azimuth))),
		Y: c.Distance * float32(math.Sin(float64(c.Elevation))),
		Z: c.Distance * cosEl * float32(math.Sin(float64(c.Azimuth))),
	}
}

// Camera returns the raylib camera for the current orbit state.
func (c *OrbitCamera) Camera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       50,
		Projection: rl.CameraPerspective,
	}
}
