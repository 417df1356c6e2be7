package rules

const (
	// DeathCauseSnakeSelfCollision is when a snake runs into its own body
	DeathCauseSnakeSelfCollision = "self-collision"
	// DeathCauseSnakeCollision is the death reason when a snake's head runs into another snake's body
	DeathCauseSnakeCollision = "snake-collision"
	// DeathCauseHeadToHeadCollision is when two heads meet on the same cell, the loser is picked at random
	DeathCauseHeadToHeadCollision = "head-collision"
)
