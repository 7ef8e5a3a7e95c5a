package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBlank = 0x2800
	brailleLast  = 0x28FF
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
	pen           color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.RGBA, h),
		pen:    color.RGBA{255, 255, 255, 255},
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// DotWidth and DotHeight give the canvas size in sub-pixels.
func (c *Canvas) DotWidth() int  { return c.Width * 2 }
func (c *Canvas) DotHeight() int { return c.Height * 4 }

// SetPen selects the color for subsequent drawing.
func (c *Canvas) SetPen(col color.RGBA) { c.pen = col }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// Cells holding text are left alone.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	cell := c.Grid[row][col]
	if cell < brailleBlank || cell > brailleLast {
		return
	}

	c.Grid[row][col] = cell | rune(pixelMap[y%4][x%2])
	c.Colors[row][col] = c.pen
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle sets every dot within r of (cx, cy). Radii below one dot
// still mark the center.
func (c *Canvas) FillCircle(cx, cy, r int) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// Text writes s into the character cell grid starting at (col, row),
// replacing whatever dots were there.
func (c *Canvas) Text(col, row int, s string) {
	if row < 0 || row >= c.Height {
		return
	}
	for i, r := range []rune(s) {
		x := col + i
		if x < 0 || x >= c.Width {
			continue
		}
		c.Grid[row][x] = r
		c.Colors[row][x] = c.pen
	}
}

// String renders the grid, coloring each run of cells that share a pen.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			b.WriteString(paint(c.Colors[i][start], string(row[start:j])))
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func paint(col color.RGBA, s string) string {
	cf, ok := colorful.MakeColor(col)
	if !ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(cf.Hex())).Render(s)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
