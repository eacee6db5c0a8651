package question

import (
	"math/rand/v2"
)

const defaultMaxDraws = 64

// RandSource is the random source the selector draws from.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Selector picks quiz questions at random without repeating served ids.
// It holds no per-quiz state; the served ids come in with every call.
type Selector struct {
	rng      RandSource
	maxDraws int
}

// NewSelector builds a selector; a nil source uses the process-wide generator.
func NewSelector(rng RandSource) *Selector {
	if rng == nil {
		rng = globalRand{}
	}
	return &Selector{rng: rng, maxDraws: defaultMaxDraws}
}

// Next draws uniformly from candidates until it finds an id not in served.
// ok is false when every candidate has been served (including an empty set).
//
// Served ids that are not candidates, and duplicates, do not count toward
// exhaustion. After maxDraws rejected draws the pick is made directly from the
// unserved remainder, which keeps the result uniform over unserved candidates.
func (s *Selector) Next(candidates []Question, served []int64) (q Question, ok bool) {
	seen := make(map[int64]struct{}, len(served))
	for _, id := range served {
		seen[id] = struct{}{}
	}

	unserved := 0
	for _, c := range candidates {
		if _, used := seen[c.ID]; !used {
			unserved++
		}
	}
	if unserved == 0 {
		return Question{}, false
	}

	for i := 0; i < s.maxDraws; i++ {
		c := candidates[s.rng.IntN(len(candidates))]
		if _, used := seen[c.ID]; !used {
			return c, true
		}
	}

	remaining := make([]Question, 0, unserved)
	for _, c := range candidates {
		if _, used := seen[c.ID]; !used {
			remaining = append(remaining, c)
		}
	}
	return remaining[s.rng.IntN(len(remaining))], true
}
