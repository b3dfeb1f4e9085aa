package game

import (
	"image/color"
	"testing"

	"mathdefense/internal/clock"
	"mathdefense/internal/config"
)

type drawOp struct {
	kind   string
	text   string
	at     Vec
	points []Vec
	width  float64
}

// recordingSurface remembers every draw call in order.
type recordingSurface struct {
	ops []drawOp
}

func (r *recordingSurface) ClearRect(x, y, w, h float64, c color.Color) {
	r.ops = append(r.ops, drawOp{kind: "clear", at: Vec{x, y}, points: []Vec{{w, h}}})
}

func (r *recordingSurface) StrokePath(points []Vec, width float64, c color.Color) {
	r.ops = append(r.ops, drawOp{kind: "stroke", points: append([]Vec(nil), points...), width: width})
}

func (r *recordingSurface) DrawText(s string, at Vec, style TextStyle) {
	r.ops = append(r.ops, drawOp{kind: "text", text: s, at: at})
}

func (r *recordingSurface) reset() { r.ops = nil }

func (r *recordingSurface) texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.kind == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

type recordingCues struct {
	hits, misses, breaches, overs int
}

func (r *recordingCues) Hit()      { r.hits++ }
func (r *recordingCues) Miss()     { r.misses++ }
func (r *recordingCues) Breach()   { r.breaches++ }
func (r *recordingCues) GameOver() { r.overs++ }

type testGame struct {
	*Controller
	clock   *clock.FrameClock
	surface *recordingSurface
	cues    *recordingCues
}

func testConfig() config.Config {
	cfg := config.NewConfig()
	cfg.Seed = 1
	return cfg
}

func newTestGame(t *testing.T, cfg config.Config) *testGame {
	t.Helper()
	tg := &testGame{
		clock:   clock.New(),
		surface: &recordingSurface{},
		cues:    &recordingCues{},
	}
	c, err := NewController(cfg, tg.clock, tg.surface, WithCues(tg.cues))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	tg.Controller = c
	return tg
}

func (g *testGame) typeText(s string) {
	for _, r := range s {
		g.HandleKey(string(r))
	}
}

func (g *testGame) aliveCount() int {
	n := 0
	for _, s := range g.Ships() {
		if s.Alive {
			n++
		}
	}
	return n
}
