package object

import "sync"

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived spark from a graze burst.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	Life   float64 // 1.0 when spawned, removed at <= 0
	Decay  float64 // Life lost per frame
	Color  Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, decay float64, color Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Life = 1.0
	p.Decay = decay
	p.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Advance moves the particle and burns down its life.
func (p *Particle) Advance(dt float64) {
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.Life -= p.Decay * dt
}

// Alive reports whether the particle has life left.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// Burst describes a particle explosion.
type Burst struct {
	Count int
	Speed float64 // Per-axis velocity is drawn from [-Speed, Speed)
	Decay float64
}

// SpawnBurst adds burst.Count particles at (x, y) to the pool.
func SpawnBurst(pool *Pool[*Particle], rng Rand, x, y float64, color Color, burst Burst) {
	for i := 0; i < burst.Count; i++ {
		vx := uniform(rng, -burst.Speed, burst.Speed)
		vy := uniform(rng, -burst.Speed, burst.Speed)
		pool.Add(NewParticle(x, y, vx, vy, burst.Decay, color))
	}
}
