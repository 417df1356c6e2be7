package rules

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaSerializesAccess(t *testing.T) {
	arena := NewArena(NewState(DefaultConfig(), rand.New(rand.NewSource(1))))

	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			arena.Do(func(s *State) {
				s.Tick()
				s.Render()
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 1; i <= 200; i++ {
			count := i/20 + 1
			arena.Do(func(s *State) {
				s.EnsureSnakes(count)
				s.Snake(count - 1).RotateHead(Cardinals[i%4])
			})
		}
	}()
	wg.Wait()

	arena.Do(func(s *State) {
		require.Equal(t, 11, s.Len())
		require.Equal(t, int64(200), s.Turn())
	})
}
