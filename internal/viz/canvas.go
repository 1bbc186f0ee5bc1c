package viz

import (
	"math"
	"strings"

	"github.com/qplex/atombeam/internal/oven"
)

// Braille patterns: 2x4 dots per cell, unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot-matrix for scatter rendering. Sub-pixel
// resolution is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, grid: make([][]rune, h)}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the dot at sub-pixel coordinates (x, y).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ApertureScatter renders accepted source positions over the aperture
// disc, bounds fixed to [-radius, +radius] in both axes.
func ApertureScatter(positions []oven.Vec3, radius float64, width, height int) string {
	c := NewCanvas(width, height)
	spanX := float64(width*2 - 1)
	spanY := float64(height*4 - 1)
	for _, p := range positions {
		u := (p[0] + radius) / (2 * radius)
		v := (p[1] + radius) / (2 * radius)
		if u < 0 || u > 1 || v < 0 || v > 1 {
			continue
		}
		c.Set(int(math.Round(u*spanX)), int(math.Round((1-v)*spanY)))
	}
	return c.String()
}
