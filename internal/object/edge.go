package object

// Edge identifies a side of the screen.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// edgeRule describes how to spawn on one edge.
//
// The along axis runs parallel to the edge and the across axis points into
// the screen. across is 0 for the top/left edges and 1 for the bottom/right
// edges, scaled by the screen size; inward is the sign of the velocity
// component along the across axis.
type edgeRule struct {
	horizontal bool    // Edge lies along the X axis (top, bottom)
	across     float64 // 0 = near side, 1 = far side
	inward     float64 // +1 or -1
}

var edgeRules = [...]edgeRule{
	EdgeTop:    {horizontal: true, across: 0, inward: +1},
	EdgeRight:  {horizontal: false, across: 1, inward: -1},
	EdgeBottom: {horizontal: true, across: 1, inward: -1},
	EdgeLeft:   {horizontal: false, across: 0, inward: +1},
}

// EdgeSpawn holds the parameters for edge-spawned bullets.
type EdgeSpawn struct {
	Margin         float64 // Distance outside the edge
	InwardSpeedMin float64
	InwardSpeedMax float64
	TangentSpeed   float64 // Tangential speed is drawn from [-TangentSpeed, TangentSpeed)
	Radius         float64
}

// SpawnAtEdge creates a bullet just outside a random screen edge, heading inward.
func SpawnAtEdge(rng Rand, screen Screen, spec EdgeSpawn) *Bullet {
	return SpawnOnEdge(rng, Edge(rng.Intn(len(edgeRules))), screen, spec)
}

// SpawnOnEdge creates a bullet just outside the given edge, heading inward.
func SpawnOnEdge(rng Rand, edge Edge, screen Screen, spec EdgeSpawn) *Bullet {
	rule := edgeRules[edge]

	alongSize, acrossSize := screen.Width, screen.Height
	if !rule.horizontal {
		alongSize, acrossSize = screen.Height, screen.Width
	}

	along := rng.Float64() * alongSize
	// Step outward from the edge: near edges sit at -margin, far edges at size+margin.
	across := rule.across*acrossSize - rule.inward*spec.Margin

	tangent := uniform(rng, -spec.TangentSpeed, spec.TangentSpeed)
	inward := rule.inward * uniform(rng, spec.InwardSpeedMin, spec.InwardSpeedMax)

	if rule.horizontal {
		return NewBullet(along, across, tangent, inward, spec.Radius)
	}
	return NewBullet(across, along, inward, tangent, spec.Radius)
}
