package word2vec

import "math"

// MinRateFraction is the fraction of the initial learning
// rate below which the rate never decays.
const MinRateFraction = 1e-4

// UpdateRate computes a linearly decaying learning rate.
//
// The rate falls from base towards zero as processed
// approaches epochs*wordsPerEpoch, but it never goes below
// base*MinRateFraction.
func UpdateRate(base float64, processed, epochs, wordsPerEpoch int) float64 {
	total := float64(epochs)*float64(wordsPerEpoch) + 1
	rate := base * (1 - float64(processed)/total)
	return math.Max(rate, base*MinRateFraction)
}

// A Schedule decides when and how to decay the learning
// rate during training.
type Schedule struct {
	Base          float64
	Epochs        int
	WordsPerEpoch int

	// Interval is the number of words that must be
	// processed after an update before the next one.
	Interval int
}

// Due checks if the rate should be updated.
func (s *Schedule) Due(processed, lastCheckpoint int) bool {
	return processed-lastCheckpoint > s.Interval
}

// Rate computes the learning rate after processed words.
func (s *Schedule) Rate(processed int) float64 {
	return UpdateRate(s.Base, processed, s.Epochs, s.WordsPerEpoch)
}
