package rules

import "math/rand"

// DefaultInitialLength is the body length of a freshly spawned snake.
const DefaultInitialLength = 3

// Snake is an ordered body of cells moving in a heading. Body[0] is the head.
type Snake struct {
	grid    Grid
	body    []Point
	heading Delta
	color   Color
}

// NewSnake places a snake of the given length at a random cell with a random
// heading. The body trails contiguously behind the head.
func NewSnake(grid Grid, length int, color Color, rng *rand.Rand) *Snake {
	if length < 1 {
		length = 1
	}
	head := grid.RandomPoint(rng)
	heading := RandomCardinal(rng)

	body := make([]Point, 0, length)
	p := head
	for i := 0; i < length; i++ {
		body = append(body, p)
		p = grid.Wrap(p.Sub(heading))
	}
	return &Snake{grid: grid, body: body, heading: heading, color: color}
}

// NewSnakeWithBody builds a snake from an explicit body, head first.
func NewSnakeWithBody(grid Grid, body []Point, heading Delta, color Color) *Snake {
	if len(body) == 0 {
		panic("rules: snake body must not be empty")
	}
	if !heading.IsCardinal() {
		panic("rules: snake heading must be cardinal")
	}
	b := make([]Point, len(body))
	for i, p := range body {
		b[i] = grid.Wrap(p)
	}
	return &Snake{grid: grid, body: b, heading: heading, color: color}
}

// Head returns the first body cell.
func (s *Snake) Head() Point {
	return s.body[0]
}

// Tail returns the last body cell.
func (s *Snake) Tail() Point {
	return s.body[len(s.body)-1]
}

// Len is the number of body cells.
func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the body, head first.
func (s *Snake) Body() []Point {
	b := make([]Point, len(s.body))
	copy(b, s.body)
	return b
}

// Heading is the direction applied at the next Step.
func (s *Snake) Heading() Delta {
	return s.heading
}

// Color is the snake's identifying color.
func (s *Snake) Color() Color {
	return s.color
}

// RotateHead sets the heading used by the next Step. Non-cardinal deltas are
// ignored. Turning back into the neck is allowed.
func (s *Snake) RotateHead(d Delta) {
	if !d.IsCardinal() {
		return
	}
	s.heading = d
}

// Step moves the snake one cell: a new head is pushed and the tail dropped.
func (s *Snake) Step() {
	head := s.grid.Wrap(s.Head().Add(s.heading))
	copy(s.body[1:], s.body[:len(s.body)-1])
	s.body[0] = head
}

// Grow appends a cell behind the tail, away from the direction of travel.
func (s *Snake) Grow() {
	s.body = append(s.body, s.grid.Wrap(s.Tail().Sub(s.heading)))
}

// IntersectsItself reports whether any cell is visited twice.
func (s *Snake) IntersectsItself() bool {
	seen := make(map[Point]struct{}, len(s.body))
	for _, p := range s.body {
		seen[p] = struct{}{}
	}
	return len(seen) < len(s.body)
}

// Contains reports whether p is part of the body.
func (s *Snake) Contains(p Point) bool {
	for _, b := range s.body {
		if b == p {
			return true
		}
	}
	return false
}

// RenderTo paints the body onto the frame.
func (s *Snake) RenderTo(f *Frame) {
	for _, p := range s.body {
		f.Set(p, s.color)
	}
}
