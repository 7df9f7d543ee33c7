package sgns

import (
	"bufio"
	"io"
	"os"

	"github.com/unixpickle/essentials"
)

// maxLineSize bounds the length of a single corpus line.
const maxLineSize = 1 << 26

// A Corpus turns a text file into documents of word IDs.
//
// Each line of the input is one document.
// Words which occur fewer than MinCount times are left out
// of the vocabulary and removed from the documents.
type Corpus struct {
	// MinCount is the minimum number of occurrences for a
	// word to be part of the vocabulary.
	MinCount int

	// Tokenizer splits lines into words.
	Tokenizer Tokenizer

	// Counts holds the raw token counts, including
	// tokens below MinCount.
	// It is set by Tokenize.
	Counts TokenCounts

	// Vocab is set by Tokenize.
	Vocab *Vocab

	discard DiscardTable
}

// NewCorpus creates a Corpus which treats tokens as the
// whitespace-separated fields of each line.
// Change the Tokenizer to split punctuation or fold case.
func NewCorpus(minCount int) *Corpus {
	return &Corpus{
		MinCount: minCount,
		Tokenizer: Tokenizer{
			PunctuationMode: IncludePunctuation,
			PreserveCase:    true,
		},
	}
}

// TokenizeFromFile reads the corpus from a file.
// See Tokenize.
func (c *Corpus) TokenizeFromFile(path string) (docs [][]int, err error) {
	defer essentials.AddCtxTo("tokenize "+path, &err)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.Tokenize(f)
}

// Tokenize reads every line from r, builds the vocabulary,
// and returns one document per line.
//
// Documents left empty after removing rare words are
// dropped.
func (c *Corpus) Tokenize(r io.Reader) ([][]int, error) {
	var lines [][]string
	var scanErr error
	stream := make(chan string, 1024)
	go func() {
		defer close(stream)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 1<<16), maxLineSize)
		for scanner.Scan() {
			toks := c.Tokenizer.Tokenize(scanner.Text())
			if len(toks) == 0 {
				continue
			}
			lines = append(lines, toks)
			for _, tok := range toks {
				stream <- tok
			}
		}
		scanErr = scanner.Err()
	}()
	counts := CountTokens(stream)
	if scanErr != nil {
		return nil, essentials.AddCtx("read corpus", scanErr)
	}

	c.Counts = counts
	c.Vocab = NewVocab(counts, c.MinCount)
	c.discard = nil

	docs := make([][]int, 0, len(lines))
	for _, line := range lines {
		if ids := c.Vocab.IDs(line); len(ids) > 0 {
			docs = append(docs, ids)
		}
	}
	return docs, nil
}

// NumVocab returns the vocabulary size.
func (c *Corpus) NumVocab() int {
	return c.Vocab.Len()
}

// NumWords returns the number of in-vocabulary words in
// the corpus.
func (c *Corpus) NumWords() int {
	return c.Vocab.NumWords()
}

// Frequencies returns the count of every word, indexed by
// word ID.
func (c *Corpus) Frequencies() []float64 {
	return c.Vocab.Frequencies()
}

// BuildDiscardTable prepares Discard to subsample words
// with the threshold t.
// See NewDiscardTable.
func (c *Corpus) BuildDiscardTable(t float64) DiscardTable {
	c.discard = NewDiscardTable(c.Vocab.Counts, c.NumWords(), t)
	return c.discard
}

// Discard decides whether to drop an occurrence of a word.
//
// Before BuildDiscardTable is called, no word is dropped.
func (c *Corpus) Discard(id int, gen Rand) bool {
	if c.discard == nil {
		return false
	}
	return c.discard.Discard(id, gen)
}
