// Package word2vec trains skip-gram word embeddings with
// negative sampling.
package word2vec

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// A Model is the embedding model updated by a Trainer.
type Model interface {
	// Update performs one step of gradient descent on the
	// batch with the given learning rate.
	//
	// It returns the loss before the step was taken.
	Update(b *Batch, rate float64) (float64, error)
}

// A Net is a skip-gram model with separate input (center)
// and output (context) vectors for every word.
type Net struct {
	Vocab int
	Dim   int

	// Encoder is the row-major matrix of input vectors.
	Encoder *anydiff.Var

	// Decoder is the row-major matrix of output vectors.
	Decoder *anydiff.Var
}

// NewNet creates a new network for the vocabulary size and
// vector dimensionality.
//
// Input vectors are drawn uniformly from
// [-0.5/dim, 0.5/dim) and output vectors start at zero.
// If gen is nil, the global source from math/rand is used.
func NewNet(c anyvec.Creator, vocab, dim int, gen *rand.Rand) *Net {
	uniform := rand.Float64
	if gen != nil {
		uniform = gen.Float64
	}
	initial := make([]float64, vocab*dim)
	for i := range initial {
		initial[i] = (uniform() - 0.5) / float64(dim)
	}
	return &Net{
		Vocab:   vocab,
		Dim:     dim,
		Encoder: anydiff.NewVar(c.MakeVectorData(c.MakeNumericList(initial))),
		Decoder: anydiff.NewVar(c.MakeVector(vocab * dim)),
	}
}

// Update performs a step of gradient descent on the
// negative sampling loss of the batch.
//
// The loss of a pair is -log(sigmoid(u.v)) minus the sum of
// log(sigmoid(-u.n)) over its negatives, where u is the
// input vector of the center word, v is the output vector
// of the context word, and n are the output vectors of the
// negative samples.
// The returned loss is averaged over the pairs.
func (n *Net) Update(b *Batch, rate float64) (loss float64, err error) {
	if err := n.checkBatch(b); err != nil {
		return 0, essentials.AddCtx("update", err)
	}
	c := n.Encoder.Vector.Creator()

	logits := anydiff.NewVar(n.logits(b))
	cost := anynet.SigmoidCE{}.Cost(n.desired(b), logits, b.Len())
	loss = numericFloat(anyvec.Sum(cost.Output())) / float64(b.Len())

	upstream := c.MakeVectorData(c.MakeNumericList(constList(b.Len(), 1/float64(b.Len()))))
	grad := anydiff.NewGrad(logits)
	cost.Propagate(upstream, grad)

	n.backward(b, grad[logits], c.MakeNumeric(-rate))
	return loss, nil
}

// InputEmbeddings returns the matrix of input vectors,
// with one row per word ID.
//
// The matrix shares memory with the Net.
func (n *Net) InputEmbeddings() *anyvec.Matrix {
	return &anyvec.Matrix{
		Data: n.Encoder.Vector,
		Rows: n.Vocab,
		Cols: n.Dim,
	}
}

func (n *Net) checkBatch(b *Batch) error {
	if b.Len() == 0 {
		return errors.New("empty batch")
	}
	if len(b.Contexts) != b.Len() {
		return fmt.Errorf("have %d centers but %d contexts", b.Len(), len(b.Contexts))
	}
	if len(b.Negatives) != b.Len()*b.NumNegatives {
		return fmt.Errorf("expected %d negatives but got %d", b.Len()*b.NumNegatives,
			len(b.Negatives))
	}
	return nil
}

func (n *Net) logits(b *Batch) anyvec.Vector {
	c := n.Encoder.Vector.Creator()
	dots := make([]float64, 0, b.Len()*(b.NumNegatives+1))
	for i, center := range b.Centers {
		hidden := n.row(n.Encoder, center)
		for _, target := range pairTargets(b, i) {
			dots = append(dots, numericFloat(n.row(n.Decoder, target).Dot(hidden)))
		}
	}
	return c.MakeVectorData(c.MakeNumericList(dots))
}

// desired is 1 for every context logit and 0 for every
// negative logit.
func (n *Net) desired(b *Batch) anydiff.Res {
	c := n.Encoder.Vector.Creator()
	values := make([]float64, b.Len()*(b.NumNegatives+1))
	for i := 0; i < b.Len(); i++ {
		values[i*(b.NumNegatives+1)] = 1
	}
	return anydiff.NewConst(c.MakeVectorData(c.MakeNumericList(values)))
}

// backward computes every update from the parameters as
// they were during the forward pass, then applies them.
// Repeated words in a batch receive the sum of their
// updates.
func (n *Net) backward(b *Batch, outGrad anyvec.Vector, stepSize anyvec.Numeric) {
	type rowUpdate struct {
		Param *anydiff.Var
		ID    int
		Delta anyvec.Vector
	}
	var updates []rowUpdate

	numTargets := b.NumNegatives + 1
	for i, center := range b.Centers {
		hidden := n.row(n.Encoder, center)
		var hiddenGrad anyvec.Vector
		for j, target := range pairTargets(b, i) {
			upstreamComp := outGrad.Slice(i*numTargets+j, i*numTargets+j+1)

			rowGrad := n.row(n.Decoder, target)
			anyvec.ScaleRepeated(rowGrad, upstreamComp)
			if hiddenGrad == nil {
				hiddenGrad = rowGrad
			} else {
				hiddenGrad.Add(rowGrad)
			}

			decoderGrad := hidden.Copy()
			anyvec.ScaleRepeated(decoderGrad, upstreamComp)
			updates = append(updates, rowUpdate{n.Decoder, target, decoderGrad})
		}
		updates = append(updates, rowUpdate{n.Encoder, center, hiddenGrad})
	}

	for _, u := range updates {
		row := n.row(u.Param, u.ID)
		u.Delta.Scale(stepSize)
		row.Add(u.Delta)
		u.Param.Vector.SetSlice(u.ID*n.Dim, row)
	}
}

// row copies the parameter vector of a word.
func (n *Net) row(param *anydiff.Var, id int) anyvec.Vector {
	return param.Vector.Slice(id*n.Dim, (id+1)*n.Dim)
}

func pairTargets(b *Batch, i int) []int {
	return append([]int{b.Contexts[i]}, b.PairNegatives(i)...)
}

func constList(n int, x float64) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = x
	}
	return res
}

func numericFloat(num anyvec.Numeric) float64 {
	switch num := num.(type) {
	case float32:
		return float64(num)
	case float64:
		return num
	default:
		panic(fmt.Sprintf("unsupported numeric type: %T", num))
	}
}
