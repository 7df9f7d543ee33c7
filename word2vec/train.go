package word2vec

import (
	"fmt"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/sgns"
)

// State is the mutable progress of a training run.
type State struct {
	Epoch int

	// WordsProcessed counts every source word seen so far,
	// including subsampled words, across all epochs.
	WordsProcessed int

	// LastCheckpoint is the value of WordsProcessed at the
	// last learning rate update.
	LastCheckpoint int

	Rate float64

	// Loss is the loss of the most recent batch.
	Loss float64

	Batches int
}

// Status is passed to a Trainer's StatusFunc.
type Status struct {
	State

	// Progress is the fraction of the run completed, in
	// terms of processed words.
	Progress float64
}

// A Trainer runs the skip-gram training loop.
//
// Documents are split into chunks of subsampled words,
// context pairs are generated with a dynamic window, and
// pairs are grouped into minibatches with negative samples
// before being passed to the Model.
type Trainer struct {
	Config *Config

	Model      Model
	Table      *NegativeTable
	Subsampler Subsampler
	Rand       sgns.Rand

	// WordsPerEpoch is the number of source words in one
	// pass over the documents.
	// It drives the learning rate decay.
	WordsPerEpoch int

	// StatusFunc, if non-nil, is called after every
	// learning rate update.
	// A panic inside StatusFunc is recovered and ignored.
	StatusFunc func(s Status)

	// BatchFunc, if non-nil, is called after every model
	// update with the size and loss of the batch.
	// Like StatusFunc, it may not interrupt training.
	BatchFunc func(size int, loss float64)

	State State
}

// Train runs Config.Epochs passes over the documents.
//
// The State is reset before training starts.
// If the Model fails to update, training stops and the
// error is returned.
func (t *Trainer) Train(docs [][]int) error {
	if err := t.Config.Validate(); err != nil {
		return err
	}
	t.State = State{Rate: t.Config.Rate}
	schedule := &Schedule{
		Base:          t.Config.Rate,
		Epochs:        t.Config.Epochs,
		WordsPerEpoch: t.WordsPerEpoch,
		Interval:      t.Config.RateInterval,
	}
	acc := NewAccumulator(t.Config.BatchSize, t.Config.Negatives, t.Table, t.Rand)

	for epoch := 0; epoch < t.Config.Epochs; epoch++ {
		t.State.Epoch = epoch
		for _, doc := range docs {
			if err := t.trainDocument(doc, schedule, acc); err != nil {
				return err
			}
			if t.Config.FlushEachDocument {
				if err := t.submit(acc.Flush()); err != nil {
					return err
				}
			}
		}
		if err := t.submit(acc.Flush()); err != nil {
			return err
		}
	}
	return nil
}

func (t *Trainer) trainDocument(doc []int, schedule *Schedule, acc *Accumulator) error {
	chunks := NewChunker(doc, t.Config.MaxChunkLen, t.Subsampler, t.Rand,
		t.State.WordsProcessed)
	for {
		chunk, processed, ok := chunks.Next()
		if !ok {
			return nil
		}
		t.State.WordsProcessed = processed
		if schedule.Due(processed, t.State.LastCheckpoint) {
			t.State.Rate = schedule.Rate(processed)
			t.State.LastCheckpoint = processed
			t.report()
		}
		pairs := NewPairGenerator(chunk, t.Config.Window, t.Rand)
		for {
			pair, ok := pairs.Next()
			if !ok {
				break
			}
			if err := t.submit(acc.Add(pair)); err != nil {
				return err
			}
		}
	}
}

// submit trains the model on a batch.
// A nil batch is ignored.
func (t *Trainer) submit(b *Batch) error {
	if b == nil {
		return nil
	}
	loss, err := t.Model.Update(b, t.State.Rate)
	if err != nil {
		return essentials.AddCtx(fmt.Sprintf("train batch %d", t.State.Batches), err)
	}
	t.State.Loss = loss
	t.State.Batches++
	if t.BatchFunc != nil {
		callHook(func() {
			t.BatchFunc(b.Len(), loss)
		})
	}
	return nil
}

// Progress returns the fraction of the run that has been
// completed.
func (t *Trainer) Progress() float64 {
	total := float64(t.Config.Epochs) * float64(t.WordsPerEpoch)
	if total == 0 {
		return 0
	}
	return float64(t.State.WordsProcessed) / total
}

func (t *Trainer) report() {
	if t.StatusFunc == nil {
		return
	}
	status := Status{State: t.State, Progress: t.Progress()}
	callHook(func() {
		t.StatusFunc(status)
	})
}

// callHook runs a reporting callback, discarding any panic.
func callHook(f func()) {
	defer func() {
		recover()
	}()
	f()
}
