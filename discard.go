package sgns

import "math"

// A DiscardTable stores, for each word ID, the probability
// that an occurrence of the word is dropped from training.
type DiscardTable []float64

// NewDiscardTable computes discard probabilities for the
// word counts of a corpus with numWords total words.
//
// For a word with relative frequency f, the probability of
// keeping an occurrence is sqrt(t/f) + t/f.
// Words rarer than roughly t are always kept.
// If t <= 0, nothing is ever discarded.
func NewDiscardTable(counts []int, numWords int, t float64) DiscardTable {
	res := make(DiscardTable, len(counts))
	if t <= 0 || numWords <= 0 {
		return res
	}
	for i, c := range counts {
		if c <= 0 {
			continue
		}
		ratio := t / (float64(c) / float64(numWords))
		res[i] = math.Max(0, 1-(math.Sqrt(ratio)+ratio))
	}
	return res
}

// Discard decides whether to drop an occurrence of the
// word.
func (d DiscardTable) Discard(id int, gen Rand) bool {
	return gen.Float64() < d[id]
}
