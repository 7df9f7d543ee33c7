package word2vec

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/sgns"
)

type recordModel struct {
	Batches []*Batch
	Rates   []float64
	FailAt  int
}

func (r *recordModel) Update(b *Batch, rate float64) (float64, error) {
	r.Batches = append(r.Batches, b)
	r.Rates = append(r.Rates, rate)
	if r.FailAt > 0 && len(r.Batches) == r.FailAt {
		return 0, errors.New("model failure")
	}
	return float64(len(r.Batches)), nil
}

func (r *recordModel) Sizes() []int {
	var res []int
	for _, b := range r.Batches {
		res = append(res, b.Len())
	}
	return res
}

func testTrainer(model Model, words int) *Trainer {
	cfg := DefaultConfig()
	cfg.Window = 1
	cfg.Epochs = 2
	cfg.BatchSize = 3
	cfg.Negatives = 2
	cfg.TableSize = 100
	return &Trainer{
		Config:        cfg,
		Model:         model,
		Table:         BuildNegativeTable([]float64{5, 4, 3, 2, 1}, cfg.NoiseExponent, cfg.TableSize),
		Rand:          rand.New(rand.NewSource(1)),
		WordsPerEpoch: words,
	}
}

func TestTrainerBatches(t *testing.T) {
	model := &recordModel{}
	trainer := testTrainer(model, 5)
	if err := trainer.Train([][]int{{0, 1, 2, 3, 4}}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(model.Sizes(), []int{3, 3, 2, 3, 3, 2}) {
		t.Fatalf("unexpected batch sizes: %v", model.Sizes())
	}
	var centers, contexts []int
	for _, b := range model.Batches[:3] {
		centers = append(centers, b.Centers...)
		contexts = append(contexts, b.Contexts...)
		if len(b.Negatives) != 2*b.Len() {
			t.Errorf("bad negative count %d", len(b.Negatives))
		}
	}
	if !reflect.DeepEqual(centers, []int{0, 1, 1, 2, 2, 3, 3, 4}) ||
		!reflect.DeepEqual(contexts, []int{1, 0, 2, 1, 3, 2, 4, 3}) {
		t.Errorf("unexpected pairs: %v %v", centers, contexts)
	}
	if trainer.State.WordsProcessed != 10 || trainer.State.Batches != 6 {
		t.Errorf("unexpected state: %+v", trainer.State)
	}
	if trainer.State.Loss != 6 {
		t.Errorf("expected the last loss to be kept, got %f", trainer.State.Loss)
	}
}

func TestTrainerFlushing(t *testing.T) {
	docs := [][]int{{0, 1}, {2, 3}, {4}, {}}

	model := &recordModel{}
	trainer := testTrainer(model, 5)
	trainer.Config.Epochs = 1
	trainer.Config.BatchSize = 10
	if err := trainer.Train(docs); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(model.Sizes(), []int{2, 2}) {
		t.Errorf("per-document flush: unexpected sizes %v", model.Sizes())
	}

	model = &recordModel{}
	trainer = testTrainer(model, 5)
	trainer.Config.Epochs = 2
	trainer.Config.BatchSize = 10
	trainer.Config.FlushEachDocument = false
	if err := trainer.Train(docs); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(model.Sizes(), []int{4, 4}) {
		t.Errorf("per-epoch flush: unexpected sizes %v", model.Sizes())
	}
}

func TestTrainerNoPairs(t *testing.T) {
	model := &recordModel{}
	trainer := testTrainer(model, 2)
	if err := trainer.Train([][]int{{}, {3}}); err != nil {
		t.Fatal(err)
	}
	if len(model.Batches) != 0 {
		t.Errorf("expected no batches but got %d", len(model.Batches))
	}
}

func TestTrainerModelError(t *testing.T) {
	model := &recordModel{FailAt: 2}
	trainer := testTrainer(model, 5)
	err := trainer.Train([][]int{{0, 1, 2, 3, 4}})
	if err == nil || !strings.Contains(err.Error(), "model failure") {
		t.Fatalf("expected model failure, got %v", err)
	}
	if len(model.Batches) != 2 {
		t.Errorf("training continued after failure: %d batches", len(model.Batches))
	}
}

func TestTrainerInvalidConfig(t *testing.T) {
	model := &recordModel{}
	trainer := testTrainer(model, 5)
	trainer.Config.Window = 0
	if err := trainer.Train([][]int{{0, 1}}); err == nil {
		t.Error("expected a config error")
	}
	if len(model.Batches) != 0 {
		t.Error("model should not be updated")
	}
}

func TestTrainerRateDecay(t *testing.T) {
	model := &recordModel{}
	trainer := testTrainer(model, 20)
	trainer.Config.RateInterval = 3
	trainer.Config.MaxChunkLen = 2

	var statuses []Status
	trainer.StatusFunc = func(s Status) {
		statuses = append(statuses, s)
		panic("reporting failed")
	}
	docs := [][]int{rangeDoc(5), rangeDoc(5), rangeDoc(5), rangeDoc(5)}
	if err := trainer.Train(docs); err != nil {
		t.Fatal(err)
	}
	if len(statuses) == 0 {
		t.Fatal("no status reports")
	}
	for i, s := range statuses {
		expected := UpdateRate(trainer.Config.Rate, s.WordsProcessed, 2, 20)
		if s.Rate != expected {
			t.Errorf("status %d: expected rate %v but got %v", i, expected, s.Rate)
		}
		if i > 0 && s.WordsProcessed-statuses[i-1].WordsProcessed <= 3 {
			t.Errorf("status %d: updates too close together", i)
		}
		if math.Abs(s.Progress-float64(s.WordsProcessed)/40) > 1e-12 {
			t.Errorf("status %d: bad progress %f", i, s.Progress)
		}
	}
	for i := 1; i < len(model.Rates); i++ {
		if model.Rates[i] > model.Rates[i-1] {
			t.Fatalf("rate increased at batch %d", i)
		}
	}
}

func TestTrainerBatchFuncPanic(t *testing.T) {
	model := &recordModel{}
	trainer := testTrainer(model, 5)
	var calls int
	trainer.BatchFunc = func(size int, loss float64) {
		calls++
		panic("reporting failed")
	}
	if err := trainer.Train([][]int{{0, 1, 2, 3, 4}}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(model.Sizes(), []int{3, 3, 2, 3, 3, 2}) {
		t.Errorf("unexpected batch sizes: %v", model.Sizes())
	}
	if calls != 6 || trainer.State.Batches != 6 {
		t.Errorf("expected 6 batches and reports, got %d and %d",
			trainer.State.Batches, calls)
	}
}

func TestTrainerStateReset(t *testing.T) {
	model := &recordModel{}
	trainer := testTrainer(model, 5)
	docs := [][]int{{0, 1, 2, 3, 4}}
	if err := trainer.Train(docs); err != nil {
		t.Fatal(err)
	}
	first := trainer.State
	if err := trainer.Train(docs); err != nil {
		t.Fatal(err)
	}
	if trainer.State.WordsProcessed != first.WordsProcessed ||
		trainer.State.Batches != first.Batches {
		t.Errorf("state was not reset: %+v vs %+v", trainer.State, first)
	}
}

func TestTrainerWithNet(t *testing.T) {
	corpus := sgns.NewCorpus(1)
	text := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 20)
	docs, err := corpus.Tokenize(strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Dim = 8
	cfg.Epochs = 3
	cfg.BatchSize = 16
	cfg.TableSize = 1000
	cfg.RateInterval = 10
	cfg.Subsample = 0.05
	gen := rand.New(rand.NewSource(cfg.Seed))
	net := NewNet(anyvec32.CurrentCreator(), corpus.NumVocab(), cfg.Dim, gen)

	var losses []float64
	trainer := &Trainer{
		Config:        cfg,
		Model:         net,
		Table:         BuildNegativeTable(corpus.Frequencies(), cfg.NoiseExponent, cfg.TableSize),
		Subsampler:    corpus.BuildDiscardTable(cfg.Subsample),
		Rand:          gen,
		WordsPerEpoch: corpus.NumWords(),
		BatchFunc: func(size int, loss float64) {
			losses = append(losses, loss)
		},
	}
	if err := trainer.Train(docs); err != nil {
		t.Fatal(err)
	}
	if len(losses) == 0 {
		t.Fatal("no batches were trained")
	}
	for _, loss := range losses {
		if math.IsNaN(loss) || math.IsInf(loss, 0) || loss < 0 {
			t.Fatalf("bad loss %f", loss)
		}
	}
	if trainer.State.WordsProcessed != 3*corpus.NumWords() {
		t.Errorf("expected %d processed words but got %d", 3*corpus.NumWords(),
			trainer.State.WordsProcessed)
	}
}
