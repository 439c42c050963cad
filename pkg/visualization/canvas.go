package visualization

import "strings"

// canvas is a fixed grid of characters. Reserved cells hold glyphs or
// labels and are never drawn over by later labels.
type canvas struct {
	width, height int
	cells         [][]rune
	reserved      [][]bool
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		width:    width,
		height:   height,
		cells:    make([][]rune, height),
		reserved: make([][]bool, height),
	}
	for r := 0; r < height; r++ {
		c.cells[r] = []rune(strings.Repeat(" ", width))
		c.reserved[r] = make([]bool, width)
	}
	return c
}

func (c *canvas) inside(col, row int) bool {
	return col >= 0 && col < c.width && row >= 0 && row < c.height
}

func (c *canvas) at(col, row int) rune {
	if !c.inside(col, row) {
		return ' '
	}
	return c.cells[row][col]
}

func (c *canvas) set(col, row int, r rune) {
	if c.inside(col, row) {
		c.cells[row][col] = r
	}
}

// place writes a reserved character
func (c *canvas) place(col, row int, r rune) {
	if c.inside(col, row) {
		c.cells[row][col] = r
		c.reserved[row][col] = true
	}
}

// fits reports whether n characters can be written at (col, row) with an
// unreserved cell on either side
func (c *canvas) fits(col, row, n int) bool {
	if !c.inside(col, row) || !c.inside(col+n-1, row) {
		return false
	}
	for x := col - 1; x <= col+n; x++ {
		if c.inside(x, row) && c.reserved[row][x] {
			return false
		}
	}
	return true
}

func (c *canvas) write(col, row int, s string) {
	for i, r := range []rune(s) {
		c.place(col+i, row, r)
	}
}

// line draws from a to b with Bresenham's algorithm, leaving both end
// cells untouched
func (c *canvas) line(a, b Cell, r rune) {
	dx := abs(b.Col - a.Col)
	dy := -abs(b.Row - a.Row)
	sx, sy := 1, 1
	if a.Col > b.Col {
		sx = -1
	}
	if a.Row > b.Row {
		sy = -1
	}

	col, row := a.Col, a.Row
	e := dx + dy
	for col != b.Col || row != b.Row {
		if (col != a.Col || row != a.Row) && !c.reserved[row][col] {
			c.set(col, row, r)
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			col += sx
		}
		if e2 <= dx {
			e += dx
			row += sy
		}
	}
}

func (c *canvas) rows() []string {
	out := make([]string, c.height)
	for r := range c.cells {
		out[r] = strings.TrimRight(string(c.cells[r]), " ")
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
