package object

// TextEffect is a floating label, such as the one shown on a graze.
type TextEffect struct {
	X, Y  float64
	VY    float64 // Vertical velocity (negative drifts up)
	Text  string
	Color Color
	Life  float64 // 1.0 when spawned, removed at <= 0
	Decay float64 // Life lost per frame
}

// NewTextEffect creates a label at (x, y) that drifts up at speed units per frame.
func NewTextEffect(x, y float64, text string, color Color, speed, decay float64) *TextEffect {
	return &TextEffect{
		X:     x,
		Y:     y,
		VY:    -speed,
		Text:  text,
		Color: color,
		Life:  1.0,
		Decay: decay,
	}
}

// Advance drifts the label and burns down its life.
func (t *TextEffect) Advance(dt float64) {
	t.Y += t.VY * dt
	t.Life -= t.Decay * dt
}

// Alive reports whether the label has life left.
func (t *TextEffect) Alive() bool {
	return t.Life > 0
}
