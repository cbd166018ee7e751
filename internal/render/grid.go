package render

import (
	"math"
	"strings"
)

// Canvas units covered by one character cell
const (
	CellWidth  = 10
	CellHeight = 25
)

// CellKind says what occupies a cell
type CellKind int

const (
	CellEmpty CellKind = iota
	CellLink
	CellNode
)

// Cell is one character of the grid
type Cell struct {
	Ch       rune
	Kind     CellKind
	DeviceID string
	State    NodeState
}

// Grid is a scene rasterized onto a character grid. Row 0 is the top.
type Grid struct {
	Cols  int
	Rows  int
	Cells [][]Cell
}

// NewGrid rasterizes a scene. Links are drawn first and nodes over them; the
// first row of a node carries its label and the second its category.
func NewGrid(s Scene) *Grid {
	cols := int(math.Ceil(s.Width / CellWidth))
	rows := int(math.Ceil(s.Height / CellHeight))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	g := &Grid{Cols: cols, Rows: rows, Cells: make([][]Cell, rows)}
	for r := range g.Cells {
		g.Cells[r] = make([]Cell, cols)
		for c := range g.Cells[r] {
			g.Cells[r][c] = Cell{Ch: ' ', Kind: CellEmpty}
		}
	}

	for _, l := range s.Links {
		g.line(cellOf(l.From.X, l.From.Y), cellOf(l.To.X, l.To.Y))
	}
	for _, n := range s.Nodes {
		g.node(n)
	}
	return g
}

// ToCanvas returns the canvas point at the center of a cell
func ToCanvas(col, row int) (float64, float64) {
	return float64(col)*CellWidth + CellWidth/2, float64(row)*CellHeight + CellHeight/2.0
}

// At returns the cell at (col, row), or an empty cell outside the grid
func (g *Grid) At(col, row int) Cell {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return Cell{Ch: ' '}
	}
	return g.Cells[row][col]
}

// String renders the grid as plain text, one line per row
func (g *Grid) String() string {
	var b strings.Builder
	for r, row := range g.Cells {
		for _, c := range row {
			b.WriteRune(c.Ch)
		}
		if r < len(g.Cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type cell struct{ col, row int }

func cellOf(x, y float64) cell {
	return cell{col: int(math.Floor(x / CellWidth)), row: int(math.Floor(y / CellHeight))}
}

func (g *Grid) set(col, row int, c Cell) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return
	}
	g.Cells[row][col] = c
}

func (g *Grid) node(n Node) {
	origin := cellOf(n.Rect.X, n.Rect.Y)
	w := int(n.Rect.W / CellWidth)
	h := int(n.Rect.H / CellHeight)
	lines := []string{n.Label, string(n.Category)}

	for dy := 0; dy < h; dy++ {
		var text []rune
		if dy < len(lines) {
			text = []rune(fit(lines[dy], w))
		}
		for dx := 0; dx < w; dx++ {
			ch := ' '
			if dx < len(text) {
				ch = text[dx]
			}
			g.set(origin.col+dx, origin.row+dy, Cell{Ch: ch, Kind: CellNode, DeviceID: n.DeviceID, State: n.State})
		}
	}
}

// line draws a Bresenham line between two cells
func (g *Grid) line(from, to cell) {
	dx := abs(to.col - from.col)
	dy := -abs(to.row - from.row)
	sx, sy := step(from.col, to.col), step(from.row, to.row)
	ch := lineRune(sx, sy, dx, -dy)

	err := dx + dy
	c, r := from.col, from.row
	for {
		g.set(c, r, Cell{Ch: ch, Kind: CellLink})
		if c == to.col && r == to.row {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			c += sx
		}
		if e2 <= dx {
			err += dx
			r += sy
		}
	}
}

func lineRune(sx, sy, dx, dy int) rune {
	switch {
	case dy == 0:
		return '-'
	case dx == 0:
		return '|'
	case dx >= 2*dy:
		return '-'
	case dy >= 2*dx:
		return '|'
	case sx == sy:
		return '\\'
	default:
		return '/'
	}
}

// fit centers s in width w, truncating when it does not fit
func fit(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	pad := (w - len(r)) / 2
	return strings.Repeat(" ", pad) + s
}

func step(a, b int) int {
	if a < b {
		return 1
	}
	return -1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
