package question

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand struct {
	n     int
	calls int
}

func (f *fixedRand) IntN(n int) int {
	f.calls++
	return f.n % n
}

func candidates(ids ...int64) []Question {
	out := make([]Question, len(ids))
	for i, id := range ids {
		out[i] = Question{ID: id, Question: "q", Answer: "a", Category: 1, Difficulty: 1}
	}
	return out
}

func TestSelectorNeverRepeats(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewPCG(1, 2)))
	pool := candidates(1, 2, 3, 4, 5, 6, 7, 8)
	served := []int64{1, 3, 5, 7}

	for i := 0; i < 500; i++ {
		q, ok := sel.Next(pool, served)
		require.True(t, ok)
		assert.NotContains(t, served, q.ID)
	}
}

func TestSelectorExhausted(t *testing.T) {
	rng := &fixedRand{}
	sel := NewSelector(rng)

	_, ok := sel.Next(candidates(1, 2, 3), []int64{1, 2, 3})
	assert.False(t, ok)
	assert.Zero(t, rng.calls, "an exhausted set must not draw at all")

	_, ok = sel.Next(nil, nil)
	assert.False(t, ok, "an empty candidate set is exhausted")
}

func TestSelectorIgnoresForeignAndDuplicateIDs(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewPCG(3, 4)))

	// Same length as the candidate set, but 42 is not a candidate, so 3 is still unserved.
	q, ok := sel.Next(candidates(1, 2, 3), []int64{1, 2, 42})
	require.True(t, ok)
	assert.Equal(t, int64(3), q.ID)

	q, ok = sel.Next(candidates(1, 2, 3), []int64{1, 1, 2})
	require.True(t, ok)
	assert.Equal(t, int64(3), q.ID)

	_, ok = sel.Next(candidates(1, 2), []int64{1, 2, 42, 43})
	assert.False(t, ok)
}

func TestSelectorFallsBackAfterDrawCap(t *testing.T) {
	rng := &fixedRand{n: 0}
	sel := NewSelector(rng)

	q, ok := sel.Next(candidates(1, 2, 3), []int64{1})
	require.True(t, ok)
	assert.Equal(t, int64(2), q.ID)
	assert.Equal(t, defaultMaxDraws+1, rng.calls)
}

func TestSelectorCoversEveryCandidate(t *testing.T) {
	sel := NewSelector(nil)
	pool := candidates(10, 20, 30, 40)

	var served []int64
	for {
		q, ok := sel.Next(pool, served)
		if !ok {
			break
		}
		served = append(served, q.ID)
		require.LessOrEqual(t, len(served), len(pool))
	}
	assert.ElementsMatch(t, []int64{10, 20, 30, 40}, served)
}
