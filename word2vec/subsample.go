package word2vec

import "github.com/unixpickle/sgns"

// A Subsampler decides which word occurrences to drop
// before generating context pairs.
//
// Both *sgns.Corpus and sgns.DiscardTable implement
// Subsampler.
type Subsampler interface {
	Discard(id int, gen sgns.Rand) bool
}
