package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spatial/grid"
	"github.com/lixenwraith/spatial/paths"
)

const (
	cellFloor grid.Cell = iota
	cellWall
)

const (
	wallPercent = 22
	overlayMax  = 30
)

var (
	floorStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	pathStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	startStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Reverse(true)
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	cutoffStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

type Game struct {
	screen        tcell.Screen
	width, height int

	terrain *grid.Grid
	pr      *paths.PathRange
	nb      paths.Neighbors
	rng     *rand.Rand

	start   grid.Point
	target  grid.Point
	diags   bool
	useJPS  bool
	overlay bool

	path []grid.Point
	dist []paths.Node
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
		pr:      paths.NewPathRange(grid.NewRange(0, 0, 1, 1)),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		diags:   true,
	}

	g.width, g.height = screen.Size()
	g.generateMap()
	g.recompute()

	return g, nil
}

// generateMap scatters walls over a terrain one row short of the
// screen, keeping the bottom row for status, and places the start and
// target on carved-out cells.
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
		if g.rng.Intn(100) < wallPercent {
			return cellWall
		}
		return cellFloor
	})

	g.start = g.carve()
	g.target = g.carve()
	g.pr.SetRange(g.terrain.Bounds())
}

// carve picks a random cell and forces it to floor
func (g *Game) carve() grid.Point {
	sz := g.terrain.Size()
	p := grid.Point{X: g.rng.Intn(sz.X), Y: g.rng.Intn(sz.Y)}
	g.terrain.Set(p, cellFloor)
	return p
}

func (g *Game) passable(p grid.Point) bool {
	return g.terrain.Contains(p) && g.terrain.At(p) == cellFloor
}

func (g *Game) Neighbors(p grid.Point) []grid.Point {
	if !g.diags {
		return g.nb.Cardinal(p, g.passable)
	}
	return g.nb.All(p, func(q grid.Point) bool {
		if !g.passable(q) {
			return false
		}
		if q.X != p.X && q.Y != p.Y {
			// No slipping between two touching wall corners
			return g.passable(grid.Point{X: q.X, Y: p.Y}) && g.passable(grid.Point{X: p.X, Y: q.Y})
		}
		return true
	})
}

func (g *Game) Cost(from, to grid.Point) int {
	return 1
}

func (g *Game) Estimation(from, to grid.Point) int {
	if g.diags {
		return paths.DistanceChebyshev(from, to)
	}
	return paths.DistanceManhattan(from, to)
}

func (g *Game) recompute() {
	if g.useJPS {
		g.path = g.pr.JPSPath(g.path[:0], g.start, g.target, g.passable, g.diags)
	} else {
		g.path = g.pr.AstarPath(g, g.start, g.target)
	}

	g.pr.CCMapAll(g)

	if g.overlay {
		g.dist = g.pr.DijkstraMap(g, []grid.Point{g.target}, overlayMax)
	}
}

func (g *Game) moveTarget(dx, dy int) {
	p := g.target.Shift(dx, dy)
	if p.In(g.terrain.Bounds()) {
		g.target = p
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

func (g *Game) draw() {
	g.screen.Clear()

	g.terrain.Iter(func(p grid.Point, c grid.Cell) {
		if c == cellWall {
			g.screen.SetContent(p.X, p.Y, '#', nil, wallStyle)
		} else {
			g.screen.SetContent(p.X, p.Y, '.', nil, floorStyle)
		}
	})

	if g.overlay {
		for _, n := range g.dist {
			if g.terrain.At(n.P) == cellWall {
				continue
			}
			val := 255 - 200*n.Cost/(overlayMax+1)
			color := tcell.NewRGBColor(0, int32(val), int32(val))
			g.screen.SetContent(n.P.X, n.P.Y, '0'+rune(n.Cost%10), nil, tcell.StyleDefault.Foreground(color))
		}
	}

	for _, p := range g.path {
		g.screen.SetContent(p.X, p.Y, '*', nil, pathStyle)
	}

	g.screen.SetContent(g.start.X, g.start.Y, '@', nil, startStyle)
	g.screen.SetContent(g.target.X, g.target.Y, 'X', nil, targetStyle)

	g.drawStatus()
	g.screen.Show()
}

func (g *Game) drawStatus() {
	algo := "A*"
	if g.useJPS {
		algo = "JPS"
	}
	conn := "4-way"
	if g.diags {
		conn = "8-way"
	}

	style := statusStyle
	state := fmt.Sprintf("len %d", len(g.path))
	if len(g.path) == 0 {
		state = "no path"
		if g.passable(g.start) && g.passable(g.target) &&
			g.pr.CCAt(g.start) != g.pr.CCAt(g.target) {
			state = "cut off"
		}
		style = cutoffStyle
	}

	text := fmt.Sprintf(" %s %s  %s | arrows/hjkl target  a algo  d diag  o overlay  s swap  m map  q quit", algo, conn, state)
	g.drawText(0, g.height-1, text, style)
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
			g.moveTarget(0, -1)
		case tcell.KeyDown:
			g.moveTarget(0, 1)
		case tcell.KeyLeft:
			g.moveTarget(-1, 0)
		case tcell.KeyRight:
			g.moveTarget(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				g.moveTarget(-1, 0)
			case 'j':
				g.moveTarget(0, 1)
			case 'k':
				g.moveTarget(0, -1)
			case 'l':
				g.moveTarget(1, 0)
			case 'a':
				g.useJPS = !g.useJPS
				g.recompute()
			case 'd':
				g.diags = !g.diags
				g.recompute()
			case 'o':
				g.overlay = !g.overlay
				g.recompute()
			case 's':
				g.start, g.target = g.target, g.start
				g.recompute()
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
