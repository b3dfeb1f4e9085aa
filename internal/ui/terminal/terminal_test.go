package terminal

import (
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"mathdefense/internal/clock"
	"mathdefense/internal/config"
	"mathdefense/internal/game"
	"mathdefense/internal/question"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func rowText(screen tcell.Screen, y, from, n int) string {
	out := make([]rune, 0, n)
	for x := from; x < from+n; x++ {
		out = append(out, runeAt(screen, x, y))
	}
	return string(out)
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.KeyEnter, true},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), game.KeyBackspace, true},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.KeyEscape, true},
		{tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), "7", true},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "", false},
	}
	for _, tt := range tests {
		got, ok := keyName(tt.ev)
		if got != tt.want || ok != tt.ok {
			t.Errorf("keyName(%v) = %q, %v; want %q, %v", tt.ev.Key(), got, ok, tt.want, tt.ok)
		}
	}
}

func TestPlotLine(t *testing.T) {
	var got [][2]int
	plotLine(0, 0, 3, 3, func(x, y int) { got = append(got, [2]int{x, y}) })
	want := [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	got = got[:0]
	plotLine(4, 2, 0, 2, func(x, y int) { got = append(got, [2]int{x, y}) })
	if len(got) != 5 || got[4] != [2]int{0, 2} {
		t.Errorf("horizontal line: %v", got)
	}
}

func TestGridScalesField(t *testing.T) {
	screen := newScreen(t, 80, 30)
	grid := NewGrid(screen, 800, 600)

	grid.DrawText("12+3", game.Vec{X: 400, Y: 300}, game.TextStyle{Align: game.AlignCenter, Color: color.White})
	if got := rowText(screen, 15, 38, 4); got != "12+3" {
		t.Errorf("centred text = %q", got)
	}

	grid.StrokePath([]game.Vec{{X: 0, Y: 0}, {X: 90, Y: 0}}, 3, color.White)
	for x := 0; x <= 9; x++ {
		if runeAt(screen, x, 0) != '*' {
			t.Errorf("cell %d not stroked", x)
		}
	}

	// Off-field points are clipped rather than wrapped.
	grid.StrokePath([]game.Vec{{X: -100, Y: -100}, {X: -10, Y: -10}}, 1, color.White)
	grid.DrawText("far", game.Vec{X: 2000, Y: 2000}, game.TextStyle{})
}

func TestGridClearRect(t *testing.T) {
	screen := newScreen(t, 20, 10)
	grid := NewGrid(screen, 200, 100)

	grid.DrawText("x", game.Vec{X: 50, Y: 50}, game.TextStyle{})
	grid.ClearRect(0, 0, 200, 100, color.Black)
	if r := runeAt(screen, 5, 5); r != ' ' {
		t.Errorf("cell not cleared: %q", r)
	}
}

func testFactory(cfg config.Config) game.Factory {
	return func(s clock.Scheduler, surface game.Surface) (*game.Controller, error) {
		return game.NewController(cfg, s, surface)
	}
}

func TestSessionPlaysAndRestarts(t *testing.T) {
	screen := newScreen(t, 80, 30)
	cfg := config.NewConfig()
	cfg.Seed = 3
	cfg.Lives = 1

	session, err := NewSession(screen, cfg.FieldWidth, cfg.FieldHeight, testFactory(cfg))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	first := session.Game()

	session.Frame(FrameInterval)
	if !containsText(screen, "Score: 0") {
		t.Error("score not rendered")
	}

	// Typing reaches the game.
	for _, r := range "42" {
		if _, err := session.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); err != nil {
			t.Fatal(err)
		}
	}
	if first.Input() != "42" {
		t.Errorf("input = %q", first.Input())
	}

	// Drop a ship onto the base to end the game.
	first.Ships()[0].Spawn(question.Question{Text: "1+1", Answer: 2}, game.Vec{X: 100, Y: 599.9}, 1)
	session.Frame(FrameInterval)
	if first.State() != game.Over {
		t.Fatalf("state = %s, want over", first.State())
	}

	// Other keys are ignored on the game over screen; Enter starts over.
	session.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '5', tcell.ModNone))
	if session.Game() != first {
		t.Fatal("restarted on a non-Enter key")
	}
	if _, err := session.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); err != nil {
		t.Fatal(err)
	}
	if session.Game() == first || session.Game().State() != game.Running {
		t.Error("Enter did not start a fresh game")
	}

	keepGoing, _ := session.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if keepGoing {
		t.Error("Ctrl+C did not end the session")
	}
}

func TestSessionSpawnsOverTime(t *testing.T) {
	screen := newScreen(t, 80, 30)
	cfg := config.NewConfig()
	cfg.Seed = 5
	session, err := NewSession(screen, cfg.FieldWidth, cfg.FieldHeight, testFactory(cfg))
	if err != nil {
		t.Fatal(err)
	}

	session.Frame(5 * time.Second)
	alive := 0
	for _, s := range session.Game().Ships() {
		if s.Alive {
			alive++
		}
	}
	if alive != 1 {
		t.Errorf("alive = %d, want 1", alive)
	}
}

func containsText(screen tcell.Screen, s string) bool {
	cols, rows := screen.Size()
	n := len([]rune(s))
	for y := 0; y < rows; y++ {
		for x := 0; x+n <= cols; x++ {
			if rowText(screen, y, x, n) == s {
				return true
			}
		}
	}
	return false
}
