package draw

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tomz197/graze/internal/loop"
	"github.com/tomz197/graze/internal/object"
	"github.com/tomz197/graze/internal/scoreboard"
)

func TestCanvasRendersHalfBlocks(t *testing.T) {
	c := NewCanvas(3, 1)
	c.setPixel(0, 0, object.Cyan)  // top only
	c.setPixel(1, 1, object.Pink)  // bottom only
	c.setPixel(2, 0, object.White) // both, same color
	c.setPixel(2, 1, object.White)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"\033[1;1H",
		"\033[0;38;2;0;255;255m▀",
		"\033[0;38;2;255;80;128m▄",
		"\033[0;38;2;255;255;255m█",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Count(out, "H") != 1 {
		t.Errorf("adjacent cells should share one cursor move: %q", out)
	}
}

func TestCanvasRendersOnlyChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	var buf bytes.Buffer
	c.Render(&buf)

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged canvas wrote %q", buf.String())
	}

	c.setPixel(3, 2, object.Cyan)
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[2;4H") {
		t.Fatalf("changed cell not addressed: %q", buf.String())
	}

	buf.Reset()
	c.MarkDirty(0, 0, 2)
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[1;1H") || strings.Count(buf.String(), " ") != 2 {
		t.Fatalf("dirty cells not repainted: %q", buf.String())
	}
}

func TestCanvasOffset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetOffset(5, 3)
	c.setPixel(1, 0, object.Cyan)
	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[4;6H") {
		t.Fatalf("offset not applied: %q", buf.String())
	}
}

func TestScaledCanvasCircles(t *testing.T) {
	// 10x5 cells covering 80x80 world units: 8 units per sub-pixel.
	c := NewScaledCanvas(10, 5, 80, 80)

	c.FillCircle(40, 40, 3, object.Cyan)
	if c.Pixel(5, 5) != object.Cyan {
		t.Fatal("small disc lost its center pixel")
	}

	c.Clear()
	c.FillCircle(40, 40, 16, object.White)
	if c.Pixel(5, 5) != object.White || c.Pixel(4, 4) != object.White {
		t.Fatal("disc interior not filled")
	}
	if c.Pixel(0, 0) != 0 || c.Pixel(9, 9) != 0 {
		t.Fatal("disc leaked to the corners")
	}

	c.Clear()
	c.DrawCircle(40, 40, 24, object.Pink)
	if c.Pixel(5, 5) != 0 {
		t.Fatal("ring filled its center")
	}
	if c.Pixel(5, 2) != object.Pink || c.Pixel(2, 5) != object.Pink {
		t.Fatal("ring missing at its top or left")
	}
}

func TestCircleClipsAtEdges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 32, 32)
	c.FillCircle(-100, -100, 500, object.Cyan)
	c.DrawCircle(1000, 1000, 5, object.Pink)
	if c.Pixel(0, 0) != object.Cyan {
		t.Fatal("covering disc not drawn")
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(2, 1)
	var buf bytes.Buffer
	if err := c.RenderBorder(&buf); err != nil || buf.Len() != 0 {
		t.Fatal("border drawn without offset")
	}
	c.SetOffset(1, 1)
	c.RenderBorder(&buf)
	for _, want := range []string{"┌──┐", "└──┘", "│"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("border %q missing %q", buf.String(), want)
		}
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, oc, or := clampTermSize(80, 24)
	if w != 80 || h != 24 || oc != 0 || or != 0 {
		t.Fatalf("small terminal clamped: %d %d %d %d", w, h, oc, or)
	}
	w, h, oc, or = clampTermSize(MaxTermWidth+20, MaxTermHeight+10)
	if w != MaxTermWidth || h != MaxTermHeight || oc != 10 || or != 5 {
		t.Fatalf("large terminal = %d %d %d %d", w, h, oc, or)
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 1)
	cw.WriteAt(1, 1, "hi")
	cw.WriteString(strings.Repeat("x", 3*maxChunkSize))
	if buf.Len() != 0 {
		t.Fatal("ChunkWriter wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[2;3Hhi") {
		t.Fatalf("offset cursor move missing: %q", buf.String()[:12])
	}
	if cw.Len() != 0 {
		t.Fatal("buffer not reset")
	}
}

func findText(texts []Text, sub string) (Text, bool) {
	for _, t := range texts {
		if strings.Contains(t.S, sub) {
			return t, true
		}
	}
	return Text{}, false
}

func TestLayoutTitle(t *testing.T) {
	texts := Layout(&loop.Frame{State: loop.StateTitle}, 80, 24)
	title, ok := findText(texts, "G R A Z E")
	if !ok {
		t.Fatal("title missing")
	}
	if title.Row != 9 || title.Col != 40-len("G R A Z E")/2 {
		t.Fatalf("title at (%d, %d)", title.Col, title.Row)
	}
	if _, ok := findText(texts, "SPACE"); !ok {
		t.Fatal("start prompt missing")
	}
}

func TestLayoutPlayingHUD(t *testing.T) {
	f := &loop.Frame{
		State:        loop.StatePlaying,
		Score:        300,
		Screen:       object.Screen{Width: 800, Height: 640},
		GrazeActive:  true,
		BeatProgress: 0.5,
		Texts:        []*object.TextEffect{object.NewTextEffect(400, 320, "GRAZE!", object.Pink, 1, 0.02)},
	}
	texts := Layout(f, 100, 40)

	if s, ok := findText(texts, "Score: 300"); !ok || s.Row != 0 {
		t.Fatal("score missing from the HUD")
	}
	if m, ok := findText(texts, "BEAT ["); !ok || !strings.Contains(m.S, "======      ]") {
		t.Fatalf("beat meter = %q", m.S)
	}
	if _, ok := findText(texts, "* GRAZE *"); !ok {
		t.Fatal("graze indicator missing")
	}
	label, ok := findText(texts, "GRAZE!")
	if !ok || label.Col != 47 || label.Row != 20 {
		t.Fatalf("label = %+v", label)
	}
}

func TestLayoutGameOver(t *testing.T) {
	f := &loop.Frame{
		State:   loop.StateGameOver,
		Score:   1200,
		Leaders: []scoreboard.Entry{{Name: "ann", Score: 1500}, {Name: "bob", Score: 1200}},
		Notice:  "Server is shutting down",
	}
	texts := Layout(f, 80, 24)
	for _, want := range []string{"G A M E   O V E R", "Final score: 1200", "1. ann", "2. bob", "restart"} {
		if _, ok := findText(texts, want); !ok {
			t.Errorf("game over screen missing %q", want)
		}
	}
	if n, ok := findText(texts, "shutting down"); !ok || n.Row != 23 {
		t.Fatal("notice not on the last row")
	}
}

func TestLayoutClips(t *testing.T) {
	l := layout{cols: 5, rows: 2}
	l.add(-2, 0, "abcdef", object.White)
	l.add(3, 1, "xyz", object.White)
	l.add(0, 2, "gone", object.White)
	if len(l.out) != 2 || l.out[0].S != "cdef" || l.out[0].Col != 0 || l.out[1].S != "xy" {
		t.Fatalf("clipped = %+v", l.out)
	}
}

func TestPaintFrame(t *testing.T) {
	c := NewCanvas(0, 0)
	c.Resize(100, 40)
	player := object.NewPlayer(400, 320, 10, 50)
	f := &loop.Frame{
		State:   loop.StatePlaying,
		Screen:  object.Screen{Width: 800, Height: 640},
		Player:  player,
		Target:  [2]float64{400, 320},
		Bullets: []*object.Bullet{object.NewBullet(80, 80, 0, 0, 6)},
	}
	Paint(c, f)

	if c.Pixel(50, 40) != player.Color {
		t.Fatal("player not drawn at the center")
	}
	if c.Pixel(10, 10) != object.Cyan {
		t.Fatal("bullet not drawn")
	}
	if c.Pixel(0, 0) != 0 {
		t.Fatal("background tinted outside the graze window")
	}

	if n, _ := ringPixels(c, beatColor.Scale(0.5), 50, 40); n != 0 {
		t.Fatal("beat ring visible right after the beat")
	}

	f.BeatProgress = 0.5
	f.Bullets = nil
	Paint(c, f)
	// Half way to the beat the ring is at half the graze radius: 25 units, ~3 pixels.
	n, far := ringPixels(c, beatColor.Scale(0.5), 50, 40)
	if n == 0 {
		t.Fatal("beat ring not drawn half way to the beat")
	}
	if far < 2 || far > 5 {
		t.Fatalf("beat ring reaches %v pixels from the player, want about 3", far)
	}

	f.GrazeActive = true
	Paint(c, f)
	if c.Pixel(0, 0) != grazeTint {
		t.Fatal("background not tinted while grazing")
	}
}

// ringPixels counts pixels of color and returns the farthest one's distance
// from (cx, cy).
func ringPixels(c *Canvas, color object.Color, cx, cy int) (n int, far float64) {
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			if c.Pixel(x, y) != color {
				continue
			}
			n++
			far = max(far, math.Hypot(float64(x-cx), float64(y-cy)))
		}
	}
	return n, far
}

type sizeResult struct {
	w, h int
	err  error
}

func TestTerminalRender(t *testing.T) {
	var out bytes.Buffer
	size := sizeResult{w: 40, h: 12}
	term := NewTerminal(strings.NewReader(""), &out, func() (int, int, error) {
		return size.w, size.h, size.err
	})

	if err := term.Open(); err != nil {
		t.Fatal(err)
	}
	cols, rows, err := term.Size()
	if err != nil || cols != 40 || rows != 12 {
		t.Fatalf("Size = %d, %d, %v", cols, rows, err)
	}

	f := &loop.Frame{State: loop.StatePlaying, Score: 700, Screen: object.Screen{Width: 320, Height: 192},
		Player: object.NewPlayer(160, 96, 10, 50)}
	if err := term.Render(f); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Score: 700") {
		t.Fatal("HUD not written")
	}
	if !strings.Contains(out.String(), "\033[?1003h") {
		t.Fatal("mouse tracking not enabled")
	}

	size.err = errors.New("no tty")
	if _, _, err := term.Size(); err == nil {
		t.Fatal("size error swallowed")
	}

	out.Reset()
	if err := term.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[?25h") {
		t.Fatal("cursor not restored")
	}
}
