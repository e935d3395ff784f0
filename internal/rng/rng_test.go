package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ec4x_engine/internal/rng"
)

func TestStreamIsDeterministicForSameTuple(t *testing.T) {
	a := rng.New(42, 3, 17, "combat")
	b := rng.New(42, 3, 17, "combat")

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestStreamDiffersAcrossScope(t *testing.T) {
	base := rng.New(42, 3, 17, "combat")
	diffTurn := rng.New(42, 4, 17, "combat")
	diffSystem := rng.New(42, 3, 18, "combat")
	diffPhase := rng.New(42, 3, 17, "espionage")

	baseSeq := drawSequence(base)
	assert.NotEqual(t, baseSeq, drawSequence(diffTurn))
	assert.NotEqual(t, baseSeq, drawSequence(diffSystem))
	assert.NotEqual(t, baseSeq, drawSequence(diffPhase))
}

func drawSequence(s *rng.Stream) []int {
	out := make([]int, 10)
	for i := range out {
		out[i] = s.Intn(1_000_000)
	}
	return out
}

func TestRollIsBoundedByPercentChance(t *testing.T) {
	s := rng.New(1, 1, 1, "roll")

	hits := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		if s.Roll(0) {
			hits++
		}
	}
	assert.Zero(t, hits, "a 0%% chance should never hit")

	s2 := rng.New(1, 1, 1, "roll2")
	misses := 0
	for i := 0; i < trials; i++ {
		if !s2.Roll(100) {
			misses++
		}
	}
	assert.Zero(t, misses, "a 100%% chance should always hit")
}

func TestShufflePermutesInPlace(t *testing.T) {
	s := rng.New(7, 1, 1, "shuffle")
	vals := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	seen := make(map[int]bool, len(vals))

	s.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })

	for _, v := range vals {
		seen[v] = true
	}
	assert.Len(t, seen, len(vals), "shuffle must not drop or duplicate elements")
}
