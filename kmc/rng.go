package kmc

import (
	"hash/fnv"
	"math/rand"
)

// PartitionedRNG provides isolated RNG streams per subsystem so the engine's
// own draws (random coordinates) and event wait-time sampling never perturb
// each other. All streams derive deterministically from one master seed, so
// a simulation id and wallclock pair reproduces the full trajectory.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// Subsystem names for the engine's two streams.
const (
	SubsystemEngine = "engine"
	SubsystemEvent  = "event"
)

// NewPartitionedRNG creates a partitioned RNG with the given master seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the RNG for the given subsystem name, creating it
// lazily. Repeated calls with the same name return the same stream.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.deriveSeed(name)))
	p.subsystems[name] = rng
	return rng
}

// deriveSeed hashes the subsystem name into the master seed so stream
// derivation is independent of creation order.
func (p *PartitionedRNG) deriveSeed(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return p.masterSeed ^ int64(h.Sum64())
}
