package arena

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/arena2d/internal/config"
	"github.com/vovakirdan/arena2d/internal/core"
	"github.com/vovakirdan/arena2d/internal/physics"
	"github.com/vovakirdan/arena2d/internal/world"
)

// Visual characters for rendering
const (
	GridChar   = '·'
	WallChar   = '█'
	PillarChar = '▓'
	CrateChar  = '▒'
	GhostChar  = '░'
	PlayerChar = '●'
)

// camera maps world meters to screen cells, centered on a point.
// World y points up, screen rows point down.
type camera struct {
	center r2.Vec
	scale  r2.Vec // cells per meter
	cx, cy float64
}

func newCamera(center r2.Vec, rc config.RenderConfig, w, h int) camera {
	return camera{
		center: center,
		scale:  r2.Vec{X: rc.CellsPerMeterX, Y: rc.CellsPerMeterY},
		cx:     float64(w) / 2,
		cy:     float64(h) / 2,
	}
}

// toWorld returns the world position of a cell's center.
func (c camera) toWorld(col, row int) r2.Vec {
	return r2.Vec{
		X: c.center.X + (float64(col)+0.5-c.cx)/c.scale.X,
		Y: c.center.Y - (float64(row)+0.5-c.cy)/c.scale.Y,
	}
}

// toCell returns the cell containing a world position.
func (c camera) toCell(p r2.Vec) (int, int) {
	col := math.Floor((p.X-c.center.X)*c.scale.X + c.cx)
	row := math.Floor(c.cy - (p.Y-c.center.Y)*c.scale.Y)
	return int(col), int(row)
}

// Render draws the arena into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.world == nil {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("level %s: %v", g.level.ID, g.err), core.ColorWarning)
		return
	}

	player := g.world.Player()
	cam := newCamera(player.Body.Position, g.render, dst.Width(), dst.Height())

	g.drawGrid(dst, cam)
	for i, e := range g.world.Entities() {
		if i == g.world.PlayerIndex() {
			continue
		}
		ch, color := glyph(e)
		drawBody(dst, cam, e.Body, ch, color)
	}

	color := core.ColorPlayer
	if g.touched {
		color = core.ColorContact
	}
	drawBody(dst, cam, player.Body, PlayerChar, color)

	dst.DrawText(1, 0, " "+g.Title()+" ", core.ColorTitle)

	if g.debug {
		g.drawOverlay(dst, player)
	}

	if g.paused {
		drawBanner(dst, pauseText, core.ColorWarning)
	}
}

const pauseText = " PAUSED - press P to resume "

// panel frames a blank area so the arena doesn't show through.
func panel(dst *core.Screen, r core.Rect, color core.Color) {
	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, color)
}

// drawBanner shows text in a three-row box across the middle of the screen.
func drawBanner(dst *core.Screen, text string, color core.Color) {
	w := core.Clamp(len([]rune(text))+2, 0, dst.Width())
	mid := dst.Height() / 2
	panel(dst, core.NewRect((dst.Width()-w)/2, mid-1, w, 3), color)
	dst.DrawTextCentered(mid, text, color)
}

// glyph picks the character and color for a static entity.
func glyph(e world.Entity) (rune, core.Color) {
	if !e.Body.Collides {
		return GhostChar, core.ColorGhost
	}
	switch e.Kind {
	case config.KindPillar:
		return PillarChar, core.ColorPillar
	case config.KindCrate:
		return CrateChar, core.ColorCrate
	default:
		return WallChar, core.ColorWall
	}
}

// drawGrid marks every whole meter in view.
func (g *Game) drawGrid(dst *core.Screen, cam camera) {
	topLeft := cam.toWorld(0, 0)
	bottomRight := cam.toWorld(dst.Width()-1, dst.Height()-1)

	for y := math.Ceil(bottomRight.Y); y <= topLeft.Y; y++ {
		for x := math.Ceil(topLeft.X); x <= bottomRight.X; x++ {
			col, row := cam.toCell(r2.Vec{X: x, Y: y})
			dst.SetColor(col, row, GridChar, core.ColorGrid)
		}
	}
}

// drawBody fills every cell whose center lies inside the body. Bodies too
// small to cover a cell center still get the cell they sit in.
func drawBody(dst *core.Screen, cam camera, b physics.Body, ch rune, color core.Color) {
	half := b.Shape.HalfExtent()
	x0, y0 := cam.toCell(r2.Vec{X: b.Position.X - half.X, Y: b.Position.Y + half.Y})
	x1, y1 := cam.toCell(r2.Vec{X: b.Position.X + half.X, Y: b.Position.Y - half.Y})
	area := core.NewRect(x0, y0, x1-x0+1, y1-y0+1).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}

	filled := false
	for row := area.Y; row < area.Bottom(); row++ {
		for col := area.X; col < area.Right(); col++ {
			if physics.Contains(b, cam.toWorld(col, row)) {
				dst.SetColor(col, row, ch, color)
				filled = true
			}
		}
	}

	if col, row := cam.toCell(b.Position); !filled && area.Contains(col, row) {
		dst.SetColor(col, row, ch, color)
	}
}

// drawOverlay prints the debug readout in a framed panel below the title
// line.
func (g *Game) drawOverlay(dst *core.Screen, player world.Entity) {
	p, v := player.Body.Position, player.Body.Velocity
	stats := g.world.Stats()

	keys := make([]string, len(g.held))
	for i, a := range g.held {
		keys[i] = a.String()
	}
	normal := "-"
	if n, ok := g.lastNormal(); ok {
		normal = fmt.Sprintf("%+.2f %+.2f", n.X, n.Y)
	}

	lines := []string{
		fmt.Sprintf("res %dx%d  fps %.0f", dst.Width(), dst.Height(), g.fps.rate()),
		fmt.Sprintf("keys [%s]", strings.Join(keys, " ")),
		fmt.Sprintf("pos %+.3f %+.3f", p.X, p.Y),
		fmt.Sprintf("vel %+.3f %+.3f", v.X, v.Y),
		fmt.Sprintf("normal %s  iter %d", normal, g.world.Last().Iterations),
		fmt.Sprintf("contacts %d  rejected %d", stats.Contacts, stats.Rejections),
	}
	longest := 0
	for _, line := range lines {
		longest = max(longest, len(line))
	}
	// one border cell and one space on each side
	w := core.Clamp(longest+4, 0, dst.Width())
	panel(dst, core.NewRect(0, 1, w, len(lines)+2), core.ColorOverlay)
	for i, line := range lines {
		dst.DrawText(2, i+2, line, core.ColorOverlay)
	}
}
