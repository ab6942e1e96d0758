package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/render"
)

// cellHeight is the height of a terminal cell in editor pixels; a cell is
// one pixel wide. Terminal cells are about twice as tall as they are wide.
const cellHeight = 2

// cellCenter returns the editor pixel at the middle of a terminal cell.
func cellCenter(col, row int) geom.Point {
	return geom.Pt(float64(col)+0.5, (float64(row)+0.5)*cellHeight)
}

type cell struct {
	r  rune
	fg string
	bg string
}

// termCanvas is a render.Canvas that rasterizes onto a grid of terminal
// cells. Text is always drawn horizontally.
type termCanvas struct {
	cols, rows int
	cells      []cell
}

var _ render.Canvas = (*termCanvas)(nil)

func newTermCanvas(cols, rows int) *termCanvas {
	c := &termCanvas{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *termCanvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

// plot sets the rune and color of the cell containing pixel p.
func (c *termCanvas) plot(p geom.Point, r rune, color string) {
	if cl := c.at(int(math.Floor(p.X)), int(math.Floor(p.Y/cellHeight))); cl != nil {
		cl.r, cl.fg = r, color
	}
}

func (c *termCanvas) Line(p0, p1 geom.Point, s render.Stroke) {
	d := p1.Sub(p0)
	r := lineRune(d)
	steps := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y)/cellHeight)*2)) + 1
	for i := 0; i <= steps; i++ {
		c.plot(p0.Add(d.Scale(float64(i)/float64(steps))), r, s.Color)
	}
}

// lineRune picks the character closest to the direction of d.
func lineRune(d geom.Point) rune {
	dx, dy := math.Abs(d.X), math.Abs(d.Y)/cellHeight
	switch {
	case dx >= 2*dy:
		return '─'
	case dy >= 2*dx:
		return '│'
	case (d.X > 0) == (d.Y > 0):
		return '╲'
	default:
		return '╱'
	}
}

func (c *termCanvas) Circle(center geom.Point, r float64, fill string, s render.Stroke) {
	if fill != "none" {
		for row := 0; row < c.rows; row++ {
			for col := 0; col < c.cols; col++ {
				if geom.IsCloseTo(cellCenter(col, row), center, r) {
					c.at(col, row).bg = fill
				}
			}
		}
	}

	n := int(math.Ceil(2*math.Pi*r)) * 2
	if n < 8 {
		n = 8
	}
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		c.plot(center.Add(geom.UnitToward(theta).Scale(r)), '●', s.Color)
	}
}

func (c *termCanvas) Text(t render.Text) {
	runes := []rune(t.Content)
	col := int(math.Floor(t.At.X))
	if t.Anchor == render.AnchorMiddle {
		col -= len(runes) / 2
	}
	row := int(math.Floor(t.At.Y / cellHeight))
	for i, r := range runes {
		if r == '\u00a0' {
			r = ' '
		}
		if cl := c.at(col+i, row); cl != nil {
			cl.r, cl.fg = r, t.Color
		}
	}
}

// lines returns the grid as plain text, one string per row.
func (c *termCanvas) lines() []string {
	out := make([]string, c.rows)
	for row := range out {
		var b strings.Builder
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.at(col, row).r)
		}
		out[row] = b.String()
	}
	return out
}

// View renders the grid with colors, batching runs of equally styled cells.
func (c *termCanvas) View() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(cellStyle(cur).Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < c.cols; col++ {
			cl := c.at(col, row)
			if cl.fg != cur.fg || cl.bg != cur.bg {
				flush()
				cur = *cl
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

func cellStyle(cl cell) lipgloss.Style {
	st := lipgloss.NewStyle()
	if bg, ok := termColor(cl.bg); ok {
		st = st.Background(bg)
	}
	fg, ok := termColor(cl.fg)
	if cl.fg == "black" && cl.bg == "" {
		// black on the terminal background would be invisible
		ok = false
	}
	if ok {
		st = st.Foreground(fg)
	}
	return st
}

// termColor maps the drawing colors used by the render and editor packages
// to terminal colors.
func termColor(name string) (lipgloss.TerminalColor, bool) {
	switch name {
	case "", "none":
		return nil, false
	case "black":
		return lipgloss.Color("0"), true
	case "white":
		return colorWhite, true
	case "blue":
		return colorBlue, true
	case "red":
		return colorRed, true
	}
	if strings.HasPrefix(name, "#") {
		return lipgloss.Color(name), true
	}
	return nil, false
}
