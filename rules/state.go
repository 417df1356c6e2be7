package rules

import (
	"math/rand"
)

// Config describes the arena a State simulates.
type Config struct {
	Width         int
	Height        int
	InitialLength int
	// InitialSnakes is the roster size at start, so the display shows a
	// snake before anyone has pressed a key.
	InitialSnakes int
	Palette       Palette
}

// DefaultConfig is a single snake on the Lighthouse display.
func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		InitialLength: DefaultInitialLength,
		InitialSnakes: 1,
		Palette:       DefaultPalette,
	}
}

// State is the whole simulation: the roster of snakes and the shared fruit.
// It is not safe for concurrent use; share it through an Arena.
type State struct {
	grid          Grid
	rng           *rand.Rand
	initialLength int
	palette       Palette

	snakes   []*Snake
	fruit    Point
	hasFruit bool
	turn     int64
}

// NewState builds a fresh arena with cfg.InitialSnakes snakes and a fruit.
func NewState(cfg Config, rng *rand.Rand) *State {
	if cfg.InitialLength < 1 {
		cfg.InitialLength = DefaultInitialLength
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultPalette
	}
	s := &State{
		grid:          NewGrid(cfg.Width, cfg.Height),
		rng:           rng,
		initialLength: cfg.InitialLength,
		palette:       cfg.Palette,
	}
	for i := 0; i < cfg.InitialSnakes; i++ {
		s.snakes = append(s.snakes, s.newSnake(s.palette.At(i)))
	}
	if !s.placeFruit() {
		s.Reset()
	}
	return s
}

func (s *State) newSnake(color Color) *Snake {
	return NewSnake(s.grid, s.initialLength, color, s.rng)
}

// Grid is the board the snakes move on.
func (s *State) Grid() Grid {
	return s.grid
}

// Turn counts ticks since the state was created.
func (s *State) Turn() int64 {
	return s.turn
}

// Len is the roster size.
func (s *State) Len() int {
	return len(s.snakes)
}

// Snake returns the snake in roster slot i.
func (s *State) Snake(i int) *Snake {
	return s.snakes[i]
}

// Snakes returns the roster in index order.
func (s *State) Snakes() []*Snake {
	snakes := make([]*Snake, len(s.snakes))
	copy(snakes, s.snakes)
	return snakes
}

// Fruit returns the fruit position; ok is false if there is no free cell.
func (s *State) Fruit() (p Point, ok bool) {
	return s.fruit, s.hasFruit
}

// EnsureSnakes grows the roster to at least count snakes. It never shrinks or
// reorders the roster. It returns the number of snakes added.
func (s *State) EnsureSnakes(count int) int {
	added := 0
	for len(s.snakes) < count {
		s.snakes = append(s.snakes, s.newSnake(s.palette.At(len(s.snakes))))
		added++
	}
	if added > 0 && s.fruitCovered() && !s.placeFruit() {
		s.Reset()
	}
	return added
}

// Reset respawns every snake and places a new fruit. Roster size, colors and
// indices are kept.
func (s *State) Reset() {
	for i, sn := range s.snakes {
		s.snakes[i] = s.newSnake(sn.Color())
	}
	s.placeFruit()
}

func (s *State) respawn(i int) {
	s.snakes[i] = s.newSnake(s.snakes[i].Color())
}

// fruitCovered reports whether any body lies on the fruit, or there is no
// fruit at all.
func (s *State) fruitCovered() bool {
	if !s.hasFruit {
		return true
	}
	for _, sn := range s.snakes {
		if sn.Contains(s.fruit) {
			return true
		}
	}
	return false
}

// placeFruit moves the fruit to a random free cell. It returns false and
// clears the fruit if every cell is taken.
func (s *State) placeFruit() bool {
	p, ok := getUnoccupiedPoint(s.grid, s.snakes, s.rng)
	s.fruit, s.hasFruit = p, ok
	return ok
}

// Render paints the background, then the fruit, then every snake in roster
// order. Later snakes overpaint earlier ones.
func (s *State) Render() *Frame {
	f := NewFrame(s.grid.Width, s.grid.Height, BackgroundColor)
	f.Turn = s.turn
	f.Snakes = len(s.snakes)
	if s.hasFruit {
		f.Set(s.fruit, FruitColor)
	}
	for _, sn := range s.snakes {
		sn.RenderTo(f)
	}
	return f
}

// SnakeSnapshot is a read-only copy of one roster slot.
type SnakeSnapshot struct {
	Index   int     `json:"index"`
	Color   Color   `json:"color"`
	Length  int     `json:"length"`
	Head    Point   `json:"head"`
	Heading string  `json:"heading"`
	Body    []Point `json:"body"`
}

// Snapshot is a read-only copy of the arena.
type Snapshot struct {
	Turn   int64           `json:"turn"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Fruit  *Point          `json:"fruit"`
	Snakes []SnakeSnapshot `json:"snakes"`
}

// Snapshot copies the current state.
func (s *State) Snapshot() *Snapshot {
	snap := &Snapshot{
		Turn:   s.turn,
		Width:  s.grid.Width,
		Height: s.grid.Height,
		Snakes: make([]SnakeSnapshot, 0, len(s.snakes)),
	}
	if s.hasFruit {
		fruit := s.fruit
		snap.Fruit = &fruit
	}
	for i, sn := range s.snakes {
		snap.Snakes = append(snap.Snakes, SnakeSnapshot{
			Index:   i,
			Color:   sn.Color(),
			Length:  sn.Len(),
			Head:    sn.Head(),
			Heading: sn.Heading().String(),
			Body:    sn.Body(),
		})
	}
	return snap
}
