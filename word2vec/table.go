package word2vec

import (
	"math"

	"github.com/unixpickle/sgns"
)

// A NegativeTable is a lookup table of word IDs used to
// draw negative samples.
//
// Each word occupies a number of entries proportional to
// its count raised to some power, so that a uniformly
// random entry follows the smoothed unigram distribution.
type NegativeTable struct {
	// Entries holds the word IDs.
	//
	// Since every word gets at least one entry, Entries may
	// be slightly longer than Size.
	Entries []int

	// Size is the nominal table size.
	// Samples are drawn from the first Size entries.
	Size int
}

// BuildNegativeTable creates a NegativeTable for the word
// frequencies.
//
// Word w gets floor(freq[w]^alpha * size / z) + 1 entries,
// where z is the sum of freq^alpha over all words.
func BuildNegativeTable(freqs []float64, alpha float64, size int) *NegativeTable {
	var z float64
	for _, f := range freqs {
		z += math.Pow(f, alpha)
	}

	entries := make([]int, 0, size+len(freqs))
	for id, f := range freqs {
		n := 1
		if z > 0 {
			n += int(math.Pow(f, alpha) * float64(size) / z)
		}
		for i := 0; i < n; i++ {
			entries = append(entries, id)
		}
	}
	return &NegativeTable{Entries: entries, Size: size}
}

// Sample draws a word ID from the table.
func (n *NegativeTable) Sample(gen sgns.Rand) int {
	limit := n.Size
	if limit > len(n.Entries) {
		limit = len(n.Entries)
	}
	return n.Entries[gen.Intn(limit)]
}

// Counts returns the number of entries for each of the
// first numWords word IDs.
func (n *NegativeTable) Counts(numWords int) []int {
	res := make([]int, numWords)
	for _, id := range n.Entries {
		res[id]++
	}
	return res
}
