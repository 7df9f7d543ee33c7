package word2vec

import "github.com/unixpickle/sgns"

// A Batch is a minibatch of training pairs together with
// their negative samples.
type Batch struct {
	Centers  []int
	Contexts []int

	// Negatives stores NumNegatives word IDs per pair.
	// The negatives for pair i are
	// Negatives[i*NumNegatives : (i+1)*NumNegatives].
	Negatives    []int
	NumNegatives int
}

// Len returns the number of pairs in the batch.
func (b *Batch) Len() int {
	return len(b.Centers)
}

// PairNegatives returns the negative samples of pair i.
func (b *Batch) PairNegatives(i int) []int {
	return b.Negatives[i*b.NumNegatives : (i+1)*b.NumNegatives]
}

// An Accumulator buffers pairs until a full minibatch is
// available, then draws negative samples for it.
type Accumulator struct {
	BatchSize    int
	NumNegatives int
	Table        *NegativeTable
	Rand         sgns.Rand

	centers  []int
	contexts []int
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator(batchSize, numNegatives int, table *NegativeTable,
	gen sgns.Rand) *Accumulator {
	return &Accumulator{
		BatchSize:    batchSize,
		NumNegatives: numNegatives,
		Table:        table,
		Rand:         gen,
		centers:      make([]int, 0, batchSize),
		contexts:     make([]int, 0, batchSize),
	}
}

// Add buffers a pair.
//
// If the buffer reached the batch size, the buffered pairs
// are returned as a Batch and the buffer is cleared.
// Otherwise, nil is returned.
func (a *Accumulator) Add(p Pair) *Batch {
	a.centers = append(a.centers, p.Center)
	a.contexts = append(a.contexts, p.Context)
	if len(a.centers) >= a.BatchSize {
		return a.Flush()
	}
	return nil
}

// Pending returns the number of buffered pairs.
func (a *Accumulator) Pending() int {
	return len(a.centers)
}

// Flush returns the buffered pairs as a Batch, or nil if
// there are none.
func (a *Accumulator) Flush() *Batch {
	if len(a.centers) == 0 {
		return nil
	}
	n := len(a.centers)
	b := &Batch{
		Centers:      append([]int(nil), a.centers...),
		Contexts:     append([]int(nil), a.contexts...),
		Negatives:    make([]int, n*a.NumNegatives),
		NumNegatives: a.NumNegatives,
	}
	for i := range b.Negatives {
		b.Negatives[i] = a.Table.Sample(a.Rand)
	}
	a.centers = a.centers[:0]
	a.contexts = a.contexts[:0]
	return b
}
