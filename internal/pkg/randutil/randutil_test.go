package randutil

import (
	"math/rand"
	"sync"
	"testing"
)

func TestLockedRandMatchesUnlockedStream(t *testing.T) {
	locked := NewLockedRand(11)
	plain := rand.New(rand.NewSource(11))

	for i := 0; i < 100; i++ {
		if got, want := locked.Intn(1000), plain.Intn(1000); got != want {
			t.Fatalf("draw %d: got %d, want %d", i, got, want)
		}
	}
}

func TestLockedRandConcurrentDraws(t *testing.T) {
	rng := NewLockedRand(1)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			values := []int{0, 1, 2, 3}
			for i := 0; i < 500; i++ {
				if n := rng.Intn(100); n < 0 || n >= 100 {
					t.Errorf("Intn(100) returned %d", n)
					return
				}
				if p := rng.Perm(5); len(p) != 5 {
					t.Errorf("Perm(5) returned %d elements", len(p))
					return
				}
				rng.Shuffle(len(values), func(i, j int) {
					values[i], values[j] = values[j], values[i]
				})
			}
		}()
	}
	wg.Wait()
}
