package rules

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var lighthouse = NewGrid(DefaultWidth, DefaultHeight)

func TestSnakeStep(t *testing.T) {
	s := NewSnakeWithBody(lighthouse, []Point{
		{X: 5, Y: 5},
		{X: 4, Y: 5},
		{X: 3, Y: 5},
	}, Right, Green)

	s.Step()

	require.Equal(t, []Point{
		{X: 6, Y: 5},
		{X: 5, Y: 5},
		{X: 4, Y: 5},
	}, s.Body())
	require.Equal(t, 3, s.Len())
	require.Equal(t, Point{X: 6, Y: 5}, s.Head())
	require.Equal(t, Point{X: 4, Y: 5}, s.Tail())
}

func TestSnakeStepWraps(t *testing.T) {
	s := NewSnakeWithBody(lighthouse, []Point{
		{X: 27, Y: 0},
		{X: 26, Y: 0},
	}, Right, Green)
	s.Step()
	require.Equal(t, Point{X: 0, Y: 0}, s.Head())

	s.RotateHead(Up)
	s.Step()
	require.Equal(t, Point{X: 0, Y: 13}, s.Head())
	require.Equal(t, 2, s.Len())
}

func TestSnakeRotateHeadLastWins(t *testing.T) {
	s := NewSnakeWithBody(lighthouse, []Point{{X: 5, Y: 5}}, Right, Green)
	s.RotateHead(Up)
	s.RotateHead(Left)
	s.RotateHead(Down)
	require.Equal(t, []Point{{X: 5, Y: 5}}, s.Body(), "rotating must not move the body")

	s.Step()
	require.Equal(t, Point{X: 5, Y: 6}, s.Head())
}

func TestSnakeRotateHeadIgnoresNonCardinal(t *testing.T) {
	s := NewSnakeWithBody(lighthouse, []Point{{X: 5, Y: 5}}, Right, Green)
	s.RotateHead(Delta{})
	s.RotateHead(Delta{DX: 1, DY: 1})
	require.Equal(t, Right, s.Heading())
}

func TestSnakeGrow(t *testing.T) {
	s := NewSnakeWithBody(lighthouse, []Point{
		{X: 5, Y: 5},
		{X: 4, Y: 5},
		{X: 3, Y: 5},
	}, Right, Green)
	before := s.Body()

	s.Grow()

	require.Equal(t, 4, s.Len())
	require.Equal(t, before, s.Body()[:3])
	require.Equal(t, Point{X: 2, Y: 5}, s.Tail())
}

func TestSnakeGrowWraps(t *testing.T) {
	s := NewSnakeWithBody(lighthouse, []Point{
		{X: 1, Y: 5},
		{X: 0, Y: 5},
	}, Right, Green)
	s.Grow()
	require.Equal(t, Point{X: 27, Y: 5}, s.Tail())
}

func TestSnakeIntersectsItself(t *testing.T) {
	tests := []struct {
		name string
		body []Point
		want bool
	}{
		{"single cell", []Point{{X: 1, Y: 1}}, false},
		{"straight", []Point{{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}}, false},
		{"revisit", []Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}}, true},
		{"stacked", []Point{{X: 1, Y: 1}, {X: 1, Y: 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnakeWithBody(lighthouse, tt.body, Up, Green)
			require.Equal(t, tt.want, s.IntersectsItself())
		})
	}
}

func TestSnakeReverseCollides(t *testing.T) {
	s := NewSnakeWithBody(lighthouse, []Point{
		{X: 5, Y: 5},
		{X: 4, Y: 5},
		{X: 3, Y: 5},
	}, Right, Green)
	require.False(t, s.IntersectsItself())

	s.RotateHead(Left)
	s.Step()
	require.True(t, s.IntersectsItself())
}

func TestSnakeContains(t *testing.T) {
	s := NewSnakeWithBody(lighthouse, []Point{
		{X: 5, Y: 5},
		{X: 4, Y: 5},
	}, Right, Green)
	require.True(t, s.Contains(Point{X: 5, Y: 5}))
	require.True(t, s.Contains(Point{X: 4, Y: 5}))
	require.False(t, s.Contains(Point{X: 3, Y: 5}))
}

func TestNewSnakeLayout(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		s := NewSnake(lighthouse, DefaultInitialLength, Blue, rng)
		require.Equal(t, DefaultInitialLength, s.Len())
		require.Equal(t, Blue, s.Color())
		require.True(t, s.Heading().IsCardinal())

		body := s.Body()
		for j, p := range body {
			require.True(t, lighthouse.Contains(p))
			if j > 0 {
				require.Equal(t, lighthouse.Wrap(body[j-1].Sub(s.Heading())), p)
			}
		}
	}
}

func TestNewSnakeWithBodyPanics(t *testing.T) {
	require.Panics(t, func() { NewSnakeWithBody(lighthouse, nil, Up, Green) })
	require.Panics(t, func() { NewSnakeWithBody(lighthouse, []Point{{}}, Delta{}, Green) })
}
