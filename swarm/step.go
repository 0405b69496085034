package swarm

import "math"

// tickParams is the per-tick snapshot of everything the force kernel
// reads. It is built once in the serial phase of Step, so workers see one
// consistent set of constants and influence state for the whole tick.
type tickParams struct {
	friction float32
	kReturn  float32
	kProx    float32 // attract or repel gain, sign-selected once per tick
	attract  bool
	radius   float32

	originX, originY, originZ float32 // smoothed influence = shape origin
	rawX, rawY, rawZ          float32 // raw influence = proximity field center

	speedThreshold float32
	colorGain      float32
	baseR, baseG, baseB float32
	hotR, hotG, hotB    float32
}

// integrateChunk advances particles [i0, i1) by one tick. Each particle
// reads and writes only its own slots, so disjoint chunks can run on
// separate workers without observing each other's same-tick state.
//
// Per-particle order: damp, spring-to-target, proximity force, symplectic
// Euler integration, speed-derived color. Damping the carried-over
// velocity before adding this tick's accelerations gives the linear
// recurrence v' = f*v + k*(target-pos) that the relaxation behavior is
// tuned around.
func integrateChunk(st *Store, p *tickParams, i0, i1 int) {
	pos, target, vel, col := st.pos, st.target, st.vel, st.col

	for i := i0; i < i1; i++ {
		j := 3 * i
		px, py, pz := pos[j], pos[j+1], pos[j+2]

		// Friction on the previous tick's momentum.
		vx := vel[j] * p.friction
		vy := vel[j+1] * p.friction
		vz := vel[j+2] * p.friction

		// Proportional spring toward the world-space target.
		vx += (target[j] + p.originX - px) * p.kReturn
		vy += (target[j+1] + p.originY - py) * p.kReturn
		vz += (target[j+2] + p.originZ - pz) * p.kReturn

		// Proximity force from the raw influence point.
		dx := px - p.rawX
		dy := py - p.rawY
		dz := pz - p.rawZ
		distSq := dx*dx + dy*dy + dz*dz
		if distSq > 0 && distSq < p.radius*p.radius {
			dist := float32(math.Sqrt(float64(distSq)))
			falloff := 1 - dist/p.radius
			scale := p.kProx * falloff / dist
			if p.attract {
				vx -= dx * scale
				vy -= dy * scale
				vz -= dz * scale
			} else {
				vx += dx * scale
				vy += dy * scale
				vz += dz * scale
			}
		}
		// distSq == 0 skips the term: no direction to push along.

		// Velocity first, then position (symplectic Euler).
		vel[j], vel[j+1], vel[j+2] = vx, vy, vz
		pos[j] = px + vx
		pos[j+1] = py + vy
		pos[j+2] = pz + vz

		// Color from kinetic state only; no hidden state.
		speed := float32(math.Sqrt(float64(vx*vx + vy*vy + vz*vz)))
		blend := (speed - p.speedThreshold) * p.colorGain
		if blend < 0 {
			blend = 0
		} else if blend > 1 {
			blend = 1
		}
		col[j] = p.baseR + blend*(p.hotR-p.baseR)
		col[j+1] = p.baseG + blend*(p.hotG-p.baseG)
		col[j+2] = p.baseB + blend*(p.hotB-p.baseB)
	}
}
