package arena

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/arena2d/internal/config"
	"github.com/vovakirdan/arena2d/internal/core"
	"github.com/vovakirdan/arena2d/internal/registry"
)

const frame = 1.0 / 60

func newGame(t *testing.T, id string) *Game {
	t.Helper()
	cfg := config.DefaultArenaConfig()
	level, err := cfg.Level(id)
	if err != nil {
		t.Fatalf("Level(%q): %v", id, err)
	}
	g := New(level, cfg)
	g.Reset(core.DefaultConfig())
	if g.Err() != nil {
		t.Fatalf("Reset failed: %v", g.Err())
	}
	return g
}

func frameWith(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestDirection(t *testing.T) {
	diag := 1 / math.Sqrt2

	tests := []struct {
		name    string
		actions []core.Action
		want    r2.Vec
	}{
		{"none", nil, r2.Vec{}},
		{"right", []core.Action{core.ActionRight}, r2.Vec{X: 1}},
		{"up is +y", []core.Action{core.ActionUp}, r2.Vec{Y: 1}},
		{"down", []core.Action{core.ActionDown}, r2.Vec{Y: -1}},
		{"opposites cancel", []core.Action{core.ActionLeft, core.ActionRight}, r2.Vec{}},
		{"diagonal is unit", []core.Action{core.ActionLeft, core.ActionUp}, r2.Vec{X: -diag, Y: diag}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Direction(frameWith(tt.actions...))
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Direction = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestStepMovesPlayer(t *testing.T) {
	g := newGame(t, "arena")

	for i := 0; i < 30; i++ {
		g.Step(frameWith(core.ActionRight), frame)
	}

	p := g.World().Player().Body
	if p.Position.X <= 0 {
		t.Errorf("expected player to move right, got x=%v", p.Position.X)
	}
	if g.State().Ticks != 30 {
		t.Errorf("expected 30 ticks, got %d", g.State().Ticks)
	}
}

func TestStepClampsDT(t *testing.T) {
	g := newGame(t, "arena")

	g.Step(frameWith(core.ActionUp), 5)

	if got := g.World().Stats().Elapsed; got != config.DefaultArenaConfig().Physics.MaxDT {
		t.Errorf("expected elapsed clamped to max_dt, got %v", got)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newGame(t, "arena")

	res := g.Step(frameWith(core.ActionPause, core.ActionRight), frame)
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}
	for i := 0; i < 10; i++ {
		g.Step(frameWith(core.ActionRight), frame)
	}
	if g.State().Ticks != 0 {
		t.Errorf("paused game should not tick, got %d", g.State().Ticks)
	}
	if g.World().Player().Body.Position != (r2.Vec{}) {
		t.Error("paused game should not move the player")
	}

	g.Step(frameWith(core.ActionPause), frame)
	if g.State().Paused {
		t.Error("expected pause to toggle off")
	}
}

func TestRestartRespawns(t *testing.T) {
	g := newGame(t, "arena")

	for i := 0; i < 20; i++ {
		g.Step(frameWith(core.ActionDown), frame)
	}
	g.Step(frameWith(core.ActionRestart), frame)

	if g.State().Ticks != 0 {
		t.Errorf("expected ticks reset, got %d", g.State().Ticks)
	}
	if g.World().Player().Body.Position != (r2.Vec{}) {
		t.Error("expected player back at spawn")
	}
}

func TestTouchedAgainstBlock(t *testing.T) {
	g := newGame(t, "arena")

	var touched bool
	for i := 0; i < 120; i++ {
		res := g.Step(frameWith(core.ActionLeft), frame)
		touched = touched || res.Touched
	}
	if !touched {
		t.Error("expected the player to touch the block")
	}
	if g.State().Contacts == 0 {
		t.Error("expected contacts to be counted")
	}
}

func TestInvalidLevel(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	g := New(config.Level{ID: "broken"}, cfg)
	g.Reset(core.DefaultConfig())

	if g.Err() == nil {
		t.Fatal("expected spawn error")
	}
	g.Step(frameWith(core.ActionRight), frame)

	s := core.NewScreen(120, 24)
	g.Render(s)
	if !strings.Contains(s.Row(12), "broken") {
		t.Errorf("expected error message on screen, got %q", s.Row(12))
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, "arena")
	s := core.NewScreen(80, 24)

	g.Render(s)

	// player centered on screen
	if c := s.GetCell(40, 12); c.Rune != PlayerChar || c.Color != core.ColorPlayer {
		t.Errorf("expected player at center, got %+v", c)
	}
	// block spans x -2.5..-1.5, 4 cells per meter
	if c := s.GetCell(32, 12); c.Rune != WallChar || c.Color != core.ColorWall {
		t.Errorf("expected block at (32, 12), got %+v", c)
	}
	if c := s.GetCell(38, 12); c.Rune == WallChar {
		t.Error("gap between player and block should be empty")
	}
	if !strings.Contains(s.Row(0), "Arena") {
		t.Errorf("expected title on first row, got %q", s.Row(0))
	}
}

func TestRenderGhost(t *testing.T) {
	g := newGame(t, "corridor")
	s := core.NewScreen(80, 24)

	g.Render(s)

	// ghost crate sits 3 m right of the player at the same height
	col, row := 40+12, 12
	if c := s.GetCell(col, row); c.Rune != GhostChar || c.Color != core.ColorGhost {
		t.Errorf("expected ghost at (%d, %d), got %+v", col, row, c)
	}
}

func TestDebugOverlay(t *testing.T) {
	g := newGame(t, "arena")
	s := core.NewScreen(80, 24)

	g.Step(frameWith(core.ActionDebug, core.ActionRight), frame)
	if !g.State().Debug {
		t.Fatal("expected debug on")
	}
	g.Render(s)

	out := s.String()
	for _, want := range []string{"res 80x24", "keys [Right]", "pos ", "vel ", "contacts 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("overlay missing %q", want)
		}
	}
	// framed panel below the title, six lines tall
	if c := s.GetCell(0, 1); c.Rune != '┌' || c.Color != core.ColorOverlay {
		t.Errorf("expected panel corner at (0, 1), got %+v", c)
	}
	if c := s.GetCell(0, 8); c.Rune != '└' {
		t.Errorf("expected panel bottom at row 8, got %+v", c)
	}
	if !strings.HasPrefix(s.Row(2), "│ res 80x24") {
		t.Errorf("unexpected first overlay row %q", s.Row(2))
	}
}

func TestRenderPauseBanner(t *testing.T) {
	g := newGame(t, "arena")
	s := core.NewScreen(80, 24)

	g.Step(frameWith(core.ActionPause), frame)
	g.Render(s)

	if !strings.Contains(s.Row(12), "PAUSED") {
		t.Fatalf("expected banner on the middle row, got %q", s.Row(12))
	}
	// 28 runes of text plus the frame, centered
	if c := s.GetCell(25, 11); c.Rune != '┌' || c.Color != core.ColorWarning {
		t.Errorf("expected banner corner at (25, 11), got %+v", c)
	}
	if c := s.GetCell(54, 13); c.Rune != '┘' {
		t.Errorf("expected banner corner at (54, 13), got %+v", c)
	}
	// the banner blanks the arena behind it
	if c := s.GetCell(40, 12); c.Rune == PlayerChar {
		t.Error("player should be hidden behind the banner")
	}
}

func TestRenderBodyOffScreen(t *testing.T) {
	g := newGame(t, "arena")
	s := core.NewScreen(10, 6)

	g.Render(s)

	// at 4x2 cells per meter only the player fits; the block 2 m left is out of view
	for y := range s.Height() {
		if strings.ContainsRune(s.Row(y), WallChar) {
			t.Errorf("unexpected wall on row %d: %q", y, s.Row(y))
		}
	}
	if c := s.GetCell(5, 3); c.Rune != PlayerChar {
		t.Errorf("expected player at center, got %+v", c)
	}
}

func TestFPSMeter(t *testing.T) {
	var m fpsMeter
	if m.rate() != 0 {
		t.Error("empty meter should report 0")
	}

	for i := 0; i < 100; i++ {
		m.add(1.0 / 30)
	}
	for i := 0; i < fpsSamples; i++ {
		m.add(frame)
	}
	if math.Abs(m.rate()-60) > 1e-6 {
		t.Errorf("expected 60 fps over the window, got %v", m.rate())
	}

	m.add(0)
	if math.Abs(m.rate()-60) > 1e-6 {
		t.Error("non-positive frame times should be ignored")
	}
}

func TestSummary(t *testing.T) {
	g := newGame(t, "pillars")
	for i := 0; i < 10; i++ {
		g.Step(frameWith(core.ActionUp), frame)
	}

	sum := g.Summary()
	if sum.GameID != "pillars" {
		t.Errorf("expected game id pillars, got %q", sum.GameID)
	}
	if len(sum.Fingerprint) != 16 {
		t.Errorf("expected fingerprint, got %q", sum.Fingerprint)
	}
	if sum.Ticks != 10 || sum.Distance <= 0 {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestRegister(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	for i := range cfg.Levels {
		cfg.Levels[i].ID = "test-" + cfg.Levels[i].ID
	}
	Register(cfg)
	t.Cleanup(func() {
		for _, id := range cfg.LevelIDs() {
			registry.Unregister(id)
		}
	})

	for _, id := range cfg.LevelIDs() {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("expected id %q, got %q", id, g.ID())
		}
	}

	g, _ := registry.Create("test-corridor")
	if g.Title() != "Corridor" {
		t.Errorf("expected title Corridor, got %q", g.Title())
	}
}
