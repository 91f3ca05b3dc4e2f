package selection

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Key identifies a reproducible generation run. The same key and cuts
// produce bit-for-bit identical histograms.
type Key int64

// NewKey creates a Key from a seed value.
func NewKey(seed int64) Key { return Key(seed) }

const (
	// SubsystemKinematics drives lepton, jet and MET spectra.
	SubsystemKinematics = "kinematics"
	// SubsystemTrigger drives the trigger decisions.
	SubsystemTrigger = "trigger"
)

// SubsystemFlavour returns the subsystem name for one lepton flavour.
func SubsystemFlavour(base string, m Mode) string {
	return fmt.Sprintf("%s_%s", base, m)
}

// PartitionedRNG hands out one independent generator per subsystem. Each
// generator is seeded with the master key XOR fnv1a64(subsystem), so
// drawing from one subsystem never shifts another.
//
// Not safe for concurrent use.
type PartitionedRNG struct {
	key        Key
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a Key.
func NewPartitionedRNG(key Key) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the cached generator of the named subsystem.
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derived := uint64(int64(p.key) ^ fnv1a64(name))
	rng := rand.New(rand.NewPCG(derived, uint64(p.key)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the Key used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() Key { return p.key }

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
