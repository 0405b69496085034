package swarm

import "fmt"

// Store owns the four columnar particle buffers. Each buffer is a flat
// []float32 of length 3n, index-aligned: slot [3i, 3i+3) in every buffer
// belongs to particle i. Target positions are shape-local (centered at the
// origin); the world-space rest position is target plus the shape origin.
//
// Only the force kernel and the impulse injector write position, velocity
// and color; only SetTarget writes target. The renderer never sees the live
// buffers: Publish copies position and color into separate read-only
// buffers at the end of each tick.
type Store struct {
	n int

	pos    []float32
	target []float32
	vel    []float32
	col    []float32

	pubPos []float32
	pubCol []float32
}

// NewStore allocates buffers for n particles. The buffers live for the
// store's lifetime; only their contents mutate.
func NewStore(n int) *Store {
	return &Store{
		n:      n,
		pos:    make([]float32, 3*n),
		target: make([]float32, 3*n),
		vel:    make([]float32, 3*n),
		col:    make([]float32, 3*n),
		pubPos: make([]float32, 3*n),
		pubCol: make([]float32, 3*n),
	}
}

// Len returns the particle count.
func (s *Store) Len() int {
	return s.n
}

// SetTarget bulk-copies a shape buffer into the target buffer. A length
// mismatch is an invariant violation, reported rather than truncated.
func (s *Store) SetTarget(buf []float32) error {
	if len(buf) != 3*s.n {
		return fmt.Errorf("swarm: target buffer has %d values, store expects %d", len(buf), 3*s.n)
	}
	copy(s.target, buf)
	return nil
}

// SnapToTarget moves every particle onto its shape-local target with zero
// velocity. Used at startup and after a resize so the swarm begins at
// equilibrium.
func (s *Store) SnapToTarget() {
	copy(s.pos, s.target)
	for i := range s.vel {
		s.vel[i] = 0
	}
}

// Publish copies position and color into the render buffers. This is the
// copy-before-read fence between the tick and the renderer.
func (s *Store) Publish() {
	copy(s.pubPos, s.pos)
	copy(s.pubCol, s.col)
}

// Frame returns the published position and color buffers. Callers must
// treat them as read-only; they are stable until the next Publish.
func (s *Store) Frame() (positions, colors []float32) {
	return s.pubPos, s.pubCol
}
