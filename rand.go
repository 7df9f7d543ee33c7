package sgns

// Rand is a source of randomness.
//
// Every sampling decision made while training (word
// subsampling, window radii, negative draws) reads from an
// explicit Rand so that a run is reproducible from its
// seed.
// A *rand.Rand from math/rand satisfies Rand.
type Rand interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int

	// Float64 returns a uniform number in [0, 1).
	Float64() float64
}
