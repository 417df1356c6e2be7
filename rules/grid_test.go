package rules

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	g := NewGrid(28, 14)

	tests := map[Point]Point{
		{X: 0, Y: 0}:     {X: 0, Y: 0},
		{X: -1, Y: 0}:    {X: 27, Y: 0},
		{X: 28, Y: 14}:   {X: 0, Y: 0},
		{X: 5, Y: -1}:    {X: 5, Y: 13},
		{X: -29, Y: -15}: {X: 27, Y: 13},
		{X: 60, Y: 30}:   {X: 4, Y: 2},
	}
	for in, want := range tests {
		require.Equal(t, want, g.Wrap(in), "wrap(%v)", in)
	}
}

func TestWrapIdempotent(t *testing.T) {
	g := NewGrid(28, 14)
	for x := -60; x <= 60; x += 7 {
		for y := -30; y <= 30; y += 3 {
			p := g.Wrap(Point{X: x, Y: y})
			require.True(t, g.Contains(p))
			require.Equal(t, p, g.Wrap(p))
		}
	}
}

func TestRandomPointInBounds(t *testing.T) {
	g := NewGrid(5, 3)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		require.True(t, g.Contains(g.RandomPoint(rng)))
	}
}

func TestPointsRowMajor(t *testing.T) {
	g := NewGrid(3, 2)
	require.Equal(t, []Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
	}, g.Points())
	require.Equal(t, 6, g.Area())
}

func TestDelta(t *testing.T) {
	require.Equal(t, Down, Up.Reverse())
	require.Equal(t, Right, Left.Reverse())
	require.True(t, Left.IsCardinal())
	require.False(t, Delta{}.IsCardinal())
	require.False(t, Delta{DX: 1, DY: 1}.IsCardinal())
	require.Equal(t, "up", Up.String())
	require.Equal(t, "none", Delta{}.String())
}

func TestNewGridPanicsOnEmpty(t *testing.T) {
	require.Panics(t, func() { NewGrid(0, 14) })
}
