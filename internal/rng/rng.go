// Package rng provides the deterministic random streams the turn pipeline
// draws on for combat rolls, espionage rolls, and any other chance event.
//
// Grounded on the teacher's fleet-fight RNG (internal/game/fleet_fight.go:
// `rngSource := rand.NewSource(seed); rng: rand.New(rngSource)`), generalized
// from one fight-scoped seed to a family of streams addressed by
// (turn, system, phase) so that two phases of the same turn never share
// a stream and a replayed turn reproduces the exact same roll sequence
// (spec.md §8: "re-running advanceTurn with the same seed yields
// byte-identical output").
package rng

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

// Stream is a single deterministic source of randomness, scoped to one
// phase of one system in one turn.
type Stream struct {
	r *rand.Rand
}

// New derives a stream from a master seed plus the (turn, systemID, phase)
// tuple that identifies its scope. Any two distinct tuples yield
// independent, non-correlated streams with overwhelming probability since
// the derivation hashes the tuple before seeding.
func New(masterSeed int64, turn int, systemID uint64, phase string) *Stream {
	h := fnv.New64a()
	h.Write([]byte(strconv.FormatInt(masterSeed, 10)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(turn)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatUint(systemID, 10)))
	h.Write([]byte{0})
	h.Write([]byte(phase))
	seed := int64(h.Sum64())
	return &Stream{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random number in [0, n).
func (s *Stream) Intn(n int) int { return s.r.Intn(n) }

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (s *Stream) Float64() float64 { return s.r.Float64() }

// Roll reports whether a d100 roll falls at or under the given percent
// chance (0-100), the idiom spec.md uses throughout combat and espionage
// ("X% chance").
func (s *Stream) Roll(percentChance float64) bool {
	return s.r.Float64()*100 < percentChance
}

// Shuffle permutes a slice of n elements in place using the teacher's
// convention of delegating directly to `rand.Rand.Shuffle` rather than a
// hand-rolled Fisher-Yates.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}
