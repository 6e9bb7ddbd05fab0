package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spatial/fov"
	"github.com/lixenwraith/spatial/grid"
)

const (
	cellFloor grid.Cell = iota
	cellWall
	cellFog
)

const (
	wallPercent = 18
	fogPercent  = 8
	fogCost     = 3
	minRadius   = 1
	maxRadius   = 60
)

var (
	darkStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	sourceStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	visStyle    = tcell.StyleDefault.Foreground(tcell.ColorLightCyan)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

type Game struct {
	screen        tcell.Screen
	width, height int

	terrain *grid.Grid
	fv      *fov.FOV
	rng     *rand.Rand

	src    grid.Point
	radius int
	shadow bool
	diags  bool

	lit []fov.LightNode
	vis []grid.Point
}

func NewGame() (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}

	g := &Game{
		screen:  screen,
		terrain: grid.NewGrid(1, 1),
		fv:      fov.NewFOV(grid.NewRange(0, 0, 1, 1)),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		radius:  12,
		diags:   true,
	}

	g.width, g.height = screen.Size()
	g.generateMap()
	g.recompute()

	return g, nil
}

// generateMap scatters walls and fog over a terrain one row short of
// the screen, keeping the bottom row for status, and drops the light
// source on a carved-out cell.
func (g *Game) generateMap() {
	w, h := g.width, g.height-1
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}

	g.terrain.Resize(w, h)
	g.terrain.Map(func(p grid.Point, c grid.Cell) grid.Cell {
		roll := g.rng.Intn(100)
		switch {
		case roll < wallPercent:
			return cellWall
		case roll < wallPercent+fogPercent:
			return cellFog
		default:
			return cellFloor
		}
	})

	sz := g.terrain.Size()
	g.src = grid.Point{X: g.rng.Intn(sz.X), Y: g.rng.Intn(sz.Y)}
	g.terrain.Set(g.src, cellFloor)
	g.fv.SetRange(g.terrain.Bounds())
}

func (g *Game) passable(p grid.Point) bool {
	return g.terrain.At(p) != cellWall
}

// Cost prices one step of light. Fog costs extra to enter, and a wall
// swallows whatever budget is left so it is lit but passes nothing on
func (g *Game) Cost(src, from, to grid.Point) int {
	if from != src && g.terrain.At(from) == cellWall {
		return g.radius
	}
	if g.terrain.At(to) == cellFog {
		return fogCost
	}
	return 1
}

func (g *Game) MaxCost(src grid.Point) int {
	return g.radius
}

func (g *Game) recompute() {
	if g.shadow {
		g.vis = g.fv.SSCVisionMap(g.src, g.radius, g.passable, g.diags)
	} else {
		g.lit = g.fv.VisionMap(g, g.src)
	}
}

func (g *Game) moveSource(dx, dy int) {
	p := g.src.Shift(dx, dy)
	if p.In(g.terrain.Bounds()) {
		g.src = p
		g.recompute()
	}
}

func (g *Game) setRadius(delta int) {
	r := g.radius + delta
	if r < minRadius {
		r = minRadius
	}
	if r > maxRadius {
		r = maxRadius
	}
	if r != g.radius {
		g.radius = r
		g.recompute()
	}
}

func (g *Game) handleResize() {
	newWidth, newHeight := g.screen.Size()
	if newWidth != g.width || newHeight != g.height {
		g.width = newWidth
		g.height = newHeight
		g.generateMap()
		g.recompute()
	}
}

func cellRune(c grid.Cell) rune {
	switch c {
	case cellWall:
		return '#'
	case cellFog:
		return '~'
	default:
		return '.'
	}
}

func (g *Game) draw() {
	g.screen.Clear()

	g.terrain.Iter(func(p grid.Point, c grid.Cell) {
		g.screen.SetContent(p.X, p.Y, cellRune(c), nil, darkStyle)
	})

	if g.shadow {
		for _, p := range g.vis {
			g.screen.SetContent(p.X, p.Y, cellRune(g.terrain.At(p)), nil, visStyle)
		}
	} else {
		for _, n := range g.lit {
			val := 255 - 200*n.Cost/(g.radius+1)
			if val < 55 {
				val = 55
			}
			color := tcell.NewRGBColor(int32(val), int32(val), int32(val*2/3))
			g.screen.SetContent(n.P.X, n.P.Y, cellRune(g.terrain.At(n.P)), nil, tcell.StyleDefault.Foreground(color))
		}
	}

	g.screen.SetContent(g.src.X, g.src.Y, '@', nil, sourceStyle)

	g.drawStatus()
	g.screen.Show()
}

func (g *Game) drawStatus() {
	engine := "ray"
	count := len(g.lit)
	if g.shadow {
		engine = "shadow"
		count = len(g.vis)
	}
	conn := "4-way"
	if g.diags {
		conn = "8-way"
	}

	text := fmt.Sprintf(" %s %s  r=%d  cells %d | arrows/hjkl move  t engine  d diag  +/- radius  m map  q quit",
		engine, conn, g.radius, count)
	g.drawText(0, g.height-1, text, statusStyle)
}

func (g *Game) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		sx := x + i
		if sx >= 0 && sx < g.width {
			g.screen.SetContent(sx, y, r, nil, style)
		}
	}
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}

		switch ev.Key() {
		case tcell.KeyUp:
			g.moveSource(0, -1)
		case tcell.KeyDown:
			g.moveSource(0, 1)
		case tcell.KeyLeft:
			g.moveSource(-1, 0)
		case tcell.KeyRight:
			g.moveSource(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				g.moveSource(-1, 0)
			case 'j':
				g.moveSource(0, 1)
			case 'k':
				g.moveSource(0, -1)
			case 'l':
				g.moveSource(1, 0)
			case 't':
				g.shadow = !g.shadow
				g.recompute()
			case 'd':
				g.diags = !g.diags
				g.recompute()
			case '+', '=':
				g.setRadius(1)
			case '-':
				g.setRadius(-1)
			case 'm':
				g.generateMap()
				g.recompute()
			}
		}

	case *tcell.EventResize:
		g.handleResize()
	}

	return true
}

func (g *Game) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case <-ticker.C:
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	g.screen.Fini()
}

func main() {
	game, err := NewGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}
