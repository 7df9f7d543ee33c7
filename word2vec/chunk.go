package word2vec

import "github.com/unixpickle/sgns"

// A Chunker lazily splits a document into chunks of kept
// words.
//
// Words are dropped according to a Subsampler, and a chunk
// is emitted whenever it reaches the maximum length.
// The last chunk of a document is always emitted, even if
// it is empty.
//
// Along with each chunk, the Chunker reports the running
// count of processed words, which includes dropped words.
type Chunker struct {
	doc        []int
	maxLen     int
	subsampler Subsampler
	gen        sgns.Rand

	pos       int
	processed int
	done      bool
}

// NewChunker creates a Chunker for the document.
//
// The processed argument is the number of words processed
// before this document.
// If subsampler is nil, every word is kept.
func NewChunker(doc []int, maxLen int, subsampler Subsampler, gen sgns.Rand,
	processed int) *Chunker {
	return &Chunker{
		doc:        doc,
		maxLen:     maxLen,
		subsampler: subsampler,
		gen:        gen,
		processed:  processed,
	}
}

// Next returns the next chunk and the number of words
// processed up to the end of it.
// The last return value is false once the document is
// exhausted.
func (c *Chunker) Next() (chunk []int, processed int, ok bool) {
	if c.done {
		return nil, c.processed, false
	}
	for c.pos < len(c.doc) {
		id := c.doc[c.pos]
		c.pos++
		c.processed++
		if c.subsampler != nil && c.subsampler.Discard(id, c.gen) {
			continue
		}
		chunk = append(chunk, id)
		if len(chunk) >= c.maxLen {
			return chunk, c.processed, true
		}
	}
	c.done = true
	return chunk, c.processed, true
}
