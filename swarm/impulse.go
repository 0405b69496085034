package swarm

import "math/rand"

// applyImpulse adds a one-shot randomized velocity kick to every particle:
// each axis gets an independent uniform draw in [-magnitude, magnitude].
// This is the only path that deliberately throws the swarm away from its
// spring equilibrium; friction and the spring term bring it back over the
// following ticks.
func applyImpulse(vel []float32, magnitude float32, rng *rand.Rand) {
	for i := range vel {
		vel[i] += (rng.Float32()*2 - 1) * magnitude
	}
}
