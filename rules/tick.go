package rules

import (
	"math/rand"
)

// Death records a snake that lost this tick.
type Death struct {
	Index  int
	Cause  string
	Length int
}

// TickResult describes what happened during one tick.
type TickResult struct {
	Turn   int64
	Deaths []Death
	// Eater is the roster index of the snake that ate the fruit, or -1.
	Eater int
	// Length is the eater's length after growing.
	Length int
	// Won is set when the fruit had nowhere left to go and the arena was
	// reset.
	Won bool
}

// Tick advances the arena by one step:
//  1. every snake moves
//  2. the first self-colliding snake (by index) loses
//  3. the first colliding pair (by index) produces a loser
//  4. the first snake (by index) on the fruit grows, losers respawn and the
//     fruit is relocated; if no cell is free the whole arena resets.
//
// At most one loser comes out of each collision phase; further collisions are
// picked up on later ticks.
func (s *State) Tick() TickResult {
	s.turn++
	res := TickResult{Turn: s.turn, Eater: -1}

	// 1. move, all snakes at once
	for _, sn := range s.snakes {
		sn.Step()
	}

	// 2. self collision
	if d, ok := checkForSelfCollision(s.snakes); ok {
		res.Deaths = append(res.Deaths, d)
	}

	// 3. snake vs snake
	if d, ok := checkForCollision(s.snakes, s.rng); ok {
		res.Deaths = append(res.Deaths, d)
	}

	// 4. fruit, respawn, relocate
	eaten := false
	if i, ok := checkForSnakeEating(s.snakes, s.fruit, s.hasFruit); ok {
		s.snakes[i].Grow()
		res.Eater = i
		res.Length = s.snakes[i].Len()
		eaten = true
	}

	respawned := map[int]bool{}
	for _, d := range res.Deaths {
		if respawned[d.Index] {
			continue
		}
		s.respawn(d.Index)
		respawned[d.Index] = true
	}

	// Only an eaten fruit with nowhere to go is a win. A board left without
	// a free cell otherwise simply has no fruit until one opens up.
	if eaten || s.fruitCovered() {
		if !s.placeFruit() && eaten {
			s.Reset()
			res.Won = true
		}
	}
	return res
}

func checkForSnakeEating(snakes []*Snake, fruit Point, hasFruit bool) (int, bool) {
	if !hasFruit {
		return -1, false
	}
	for i, sn := range snakes {
		if sn.Head() == fruit {
			return i, true
		}
	}
	return -1, false
}

func getUnoccupiedPoint(grid Grid, snakes []*Snake, rng *rand.Rand) (Point, bool) {
	openPoints := getUnoccupiedPoints(grid, snakes)

	if len(openPoints) == 0 {
		return Point{}, false
	}

	return openPoints[rng.Intn(len(openPoints))], true
}

func getUnoccupiedPoints(grid Grid, snakes []*Snake) []Point {
	occupied := map[Point]struct{}{}
	for _, sn := range snakes {
		for _, p := range sn.body {
			occupied[p] = struct{}{}
		}
	}

	candidates := make([]Point, 0, grid.Area()-len(occupied))
	for _, p := range grid.Points() {
		if _, ok := occupied[p]; !ok {
			candidates = append(candidates, p)
		}
	}
	return candidates
}
