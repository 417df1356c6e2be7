package rules

import "math/rand"

// checkForSelfCollision returns the first snake, by roster index, that ran
// into its own body.
func checkForSelfCollision(snakes []*Snake) (Death, bool) {
	for i, s := range snakes {
		if s.IntersectsItself() {
			return Death{Index: i, Cause: DeathCauseSnakeSelfCollision, Length: s.Len()}, true
		}
	}
	return Death{}, false
}

// checkForCollision scans pairs (i, j), i < j, in ascending order and returns
// the loser of the first pair that touches. Heads meeting on one cell pick the
// loser at random; otherwise the snake whose head is inside the other's body
// loses.
func checkForCollision(snakes []*Snake, rng *rand.Rand) (Death, bool) {
	for i := 0; i < len(snakes); i++ {
		for j := i + 1; j < len(snakes); j++ {
			a, b := snakes[i], snakes[j]
			switch {
			case deathByHeadCollision(a, b):
				loser := i
				if rng.Intn(2) == 1 {
					loser = j
				}
				return Death{Index: loser, Cause: DeathCauseHeadToHeadCollision, Length: snakes[loser].Len()}, true
			case deathByBodyCollision(b, a):
				return Death{Index: j, Cause: DeathCauseSnakeCollision, Length: b.Len()}, true
			case deathByBodyCollision(a, b):
				return Death{Index: i, Cause: DeathCauseSnakeCollision, Length: a.Len()}, true
			}
		}
	}
	return Death{}, false
}

func deathByHeadCollision(snake, other *Snake) bool {
	return snake.Head() == other.Head()
}

// deathByBodyCollision reports whether snake's head is inside other's body.
func deathByBodyCollision(snake, other *Snake) bool {
	return other.Contains(snake.Head())
}
