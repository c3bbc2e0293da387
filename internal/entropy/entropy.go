// Package entropy provides the uniform random sources used by the generators.
//
// Generators never reach for a global random source. They take a Source, so
// production wiring can hand them a randomly seeded stream while tests inject
// a fixed seed and get the same point cloud every run.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source produces uniform floats in [0,1).
type Source interface {
	Float64() float64
}

// streamSalt decorrelates the second PCG word from the seed.
const streamSalt = 0x9e3779b97f4a7c15

// Seeded is a deterministic PCG-backed Source.
type Seeded struct {
	seed uint64
	rng  *rand.Rand
}

// NewSeeded returns a deterministic source for seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^streamSalt)),
	}
}

// NewRandom returns a source seeded from the operating system.
func NewRandom() *Seeded {
	return NewSeeded(RandomSeed())
}

// RandomSeed draws a fresh 64-bit seed from crypto/rand.
// Falls back to the runtime's randomly seeded generator if the OS source fails.
func RandomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Float64 implements Source.
func (s *Seeded) Float64() float64 {
	return s.rng.Float64()
}

// Seed returns the seed this source was created with.
func (s *Seeded) Seed() uint64 {
	return s.seed
}

// Stream returns the sub-stream for worker or job index under seed.
// The result depends only on (seed, index).
func Stream(seed uint64, index int) *Seeded {
	return NewSeeded(mix(seed + uint64(index+1)*streamSalt))
}

// mix is the splitmix64 finalizer.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Sequence replays a fixed list of values, wrapping around at the end.
// Values should lie in [0,1).
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence returns a Sequence over values. An empty list yields zeros.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 implements Source.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return v
}

// Sign returns +1 or -1 with equal probability.
func Sign(src Source) float64 {
	if src.Float64() < 0.5 {
		return 1
	}
	return -1
}

// Range returns a uniform value in [lo, hi).
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Centered returns a uniform value in [-amount/2, amount/2).
func Centered(src Source, amount float64) float64 {
	return (src.Float64() - 0.5) * amount
}
