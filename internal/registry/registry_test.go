package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/arena2d/internal/core"
)

type fakeGame struct {
	id    string
	ticks int
}

func (g *fakeGame) ID() string { return g.id }
func (g *fakeGame) Title() string { return "Fake " + g.id }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.ticks = 0 }
func (g *fakeGame) Render(*core.Screen) {}
func (g *fakeGame) State() core.GameState { return core.GameState{Ticks: g.ticks} }
func (g *fakeGame) Step(core.InputFrame, float64) core.StepResult {
	g.ticks++
	return core.StepResult{State: g.State()}
}

func register(t *testing.T, id string) {
	t.Helper()
	Register(id, func() Game { return &fakeGame{id: id} })
	t.Cleanup(func() { Unregister(id) })
}

func TestRegisterCreate(t *testing.T) {
	register(t, "zz-fake")

	if !Exists("zz-fake") {
		t.Fatal("expected registered game to exist")
	}

	g, err := Create("zz-fake")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "zz-fake" {
		t.Errorf("expected id zz-fake, got %q", g.ID())
	}

	// Each Create returns a fresh instance
	g.Step(core.NewInputFrame(), 1.0/60)
	g2, _ := Create("zz-fake")
	if g2.State().Ticks != 0 {
		t.Error("expected a fresh instance from Create")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("does-not-exist")
	if !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
}

func TestListSorted(t *testing.T) {
	register(t, "zz-b")
	register(t, "zz-a")

	var found []GameInfo
	for _, info := range List() {
		if info.ID == "zz-a" || info.ID == "zz-b" {
			found = append(found, info)
		}
	}

	if len(found) != 2 || found[0].ID != "zz-a" || found[1].ID != "zz-b" {
		t.Fatalf("unexpected list %v", found)
	}
	if found[0].Title != "Fake zz-a" {
		t.Errorf("expected title from factory, got %q", found[0].Title)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register(t, "zz-dup")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz-dup", func() Game { return &fakeGame{id: "zz-dup"} })
}

func TestUnregister(t *testing.T) {
	Register("zz-gone", func() Game { return &fakeGame{id: "zz-gone"} })
	Unregister("zz-gone")

	if Exists("zz-gone") {
		t.Error("expected game to be removed")
	}
	Unregister("zz-gone")
}
