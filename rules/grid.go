package rules

import "math/rand"

// Lighthouse display resolution.
const (
	DefaultWidth  = 28
	DefaultHeight = 14
)

// Point is a cell on the grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the point moved by d. The result is not wrapped.
func (p Point) Add(d Delta) Point {
	return Point{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Sub returns the point moved against d. The result is not wrapped.
func (p Point) Sub(d Delta) Point {
	return Point{X: p.X - d.DX, Y: p.Y - d.DY}
}

// Delta is a unit step in one of the four cardinal directions.
type Delta struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Cardinal headings. Y grows downwards, matching the display's row order.
var (
	Up    = Delta{DX: 0, DY: -1}
	Down  = Delta{DX: 0, DY: 1}
	Left  = Delta{DX: -1, DY: 0}
	Right = Delta{DX: 1, DY: 0}
)

// Cardinals lists the valid headings.
var Cardinals = []Delta{Up, Down, Left, Right}

// Reverse returns the opposite heading.
func (d Delta) Reverse() Delta {
	return Delta{DX: -d.DX, DY: -d.DY}
}

// IsCardinal reports whether d is one of the four unit headings.
func (d Delta) IsCardinal() bool {
	for _, c := range Cardinals {
		if c == d {
			return true
		}
	}
	return false
}

func (d Delta) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// RandomCardinal picks one of the four headings uniformly.
func RandomCardinal(rng *rand.Rand) Delta {
	return Cardinals[rng.Intn(len(Cardinals))]
}

// Grid is a toroidal W×H board: leaving one edge continues from the opposite
// edge.
type Grid struct {
	Width  int
	Height int
}

// NewGrid returns a grid of the given size. Both dimensions must be positive.
func NewGrid(width, height int) Grid {
	if width <= 0 || height <= 0 {
		panic("rules: grid dimensions must be positive")
	}
	return Grid{Width: width, Height: height}
}

// Wrap folds p back onto the grid.
func (g Grid) Wrap(p Point) Point {
	return Point{X: mod(p.X, g.Width), Y: mod(p.Y, g.Height)}
}

// Contains reports whether p lies on the grid without wrapping.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Area is the number of cells.
func (g Grid) Area() int {
	return g.Width * g.Height
}

// RandomPoint samples a cell uniformly.
func (g Grid) RandomPoint(rng *rand.Rand) Point {
	return Point{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
}

// Points enumerates every cell in row-major order.
func (g Grid) Points() []Point {
	points := make([]Point, 0, g.Area())
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			points = append(points, Point{X: x, Y: y})
		}
	}
	return points
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
