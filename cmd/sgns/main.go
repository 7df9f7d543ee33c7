// Command sgns trains skip-gram word vectors with negative
// sampling and writes them in the word2vec text format.
package main

import (
	"errors"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
	"github.com/unixpickle/sgns"
	"github.com/unixpickle/sgns/report"
	"github.com/unixpickle/sgns/word2vec"
)

type flags struct {
	Config word2vec.Config

	Input       string
	Output      string
	SavePath    string
	MetricsAddr string
	LogLevel    string

	Punctuation string
	Lowercase   bool
	Neighbors   int

	punctuation sgns.PunctuationMode
}

func main() {
	f := parseFlags()
	if err := f.Validate(); err != nil {
		essentials.Die(err)
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(f.LogLevel)
	if err != nil {
		essentials.Die(err)
	}
	log.SetLevel(level)
	runID := uuid.New().String()
	entry := log.WithField("run", runID)

	if err := run(f, entry, runID); err != nil {
		entry.WithError(err).Error("training failed")
		os.Exit(1)
	}
}

func parseFlags() *flags {
	f := &flags{Config: *word2vec.DefaultConfig()}
	c := &f.Config
	flag.IntVar(&c.Window, "window", c.Window, "maximum window radius")
	flag.IntVar(&c.Dim, "dim", c.Dim, "number of vector dimensions")
	flag.IntVar(&c.MinCount, "min-count", c.MinCount, "minimum word count")
	flag.Float64Var(&c.Subsample, "samples", c.Subsample, "subsampling threshold (0 to disable)")
	flag.Float64Var(&c.NoiseExponent, "noise", c.NoiseExponent, "power of the noise distribution")
	flag.IntVar(&c.Negatives, "negative", c.Negatives, "number of negative samples")
	flag.IntVar(&c.Epochs, "epoch", c.Epochs, "number of epochs")
	flag.IntVar(&c.BatchSize, "mini", c.BatchSize, "number of word pairs per minibatch")
	flag.IntVar(&c.RateInterval, "lr-update-rate", c.RateInterval,
		"number of words between learning rate updates")
	flag.Float64Var(&c.Rate, "lr", c.Rate, "initial learning rate")
	flag.IntVar(&c.TableSize, "table", c.TableSize, "negative sampling table size")
	flag.IntVar(&c.MaxChunkLen, "chunk", c.MaxChunkLen, "maximum words per document chunk")
	flag.BoolVar(&c.FlushEachDocument, "flush-document", c.FlushEachDocument,
		"train the partial minibatch at the end of every document")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	flag.StringVar(&f.Input, "input", "", "training corpus file name")
	flag.StringVar(&f.Output, "out", "", "vector file name")
	flag.StringVar(&f.SavePath, "save", "", "optional path for the serialized embedding")
	flag.StringVar(&f.MetricsAddr, "metrics", "", "optional address to serve metrics on")
	flag.StringVar(&f.LogLevel, "log-level", "info", "log level")
	flag.StringVar(&f.Punctuation, "punctuation", "include",
		"punctuation handling: include, separate or drop")
	flag.BoolVar(&f.Lowercase, "lowercase", false, "convert words to lowercase")
	flag.IntVar(&f.Neighbors, "neighbors", 5,
		"log the nearest neighbors of this many frequent words after training")
	flag.Parse()
	return f
}

// Validate checks the flags before anything is loaded.
func (f *flags) Validate() error {
	if err := f.Config.Validate(); err != nil {
		return err
	}
	if f.Input == "" {
		return errors.New("missing required flag: -input")
	}
	if f.Output == "" {
		return errors.New("missing required flag: -out")
	}
	mode, err := sgns.ParsePunctuationMode(f.Punctuation)
	if err != nil {
		return err
	}
	f.punctuation = mode
	info, err := os.Stat(f.Input)
	if err != nil {
		return essentials.AddCtx("invalid input", err)
	}
	if info.IsDir() {
		return errors.New("invalid input: " + f.Input + " is a directory")
	}
	return nil
}

func run(f *flags, log *logrus.Entry, runID string) error {
	cfg := &f.Config

	log.Info("loading training corpus")
	corpus := sgns.NewCorpus(cfg.MinCount)
	corpus.Tokenizer = sgns.Tokenizer{
		PunctuationMode: f.punctuation,
		PreserveCase:    !f.Lowercase,
	}
	docs, err := corpus.TokenizeFromFile(f.Input)
	if err != nil {
		return err
	}
	if corpus.NumVocab() == 0 {
		return errors.New("empty vocabulary: lower -min-count or use a larger corpus")
	}
	discard := corpus.BuildDiscardTable(cfg.Subsample)
	log.WithFields(logrus.Fields{
		"tokens":    corpus.Counts.Total(),
		"vocab":     corpus.NumVocab(),
		"words":     corpus.NumWords(),
		"documents": len(docs),
		"common":    strings.Join(corpus.Counts.MostCommon(5), " "),
	}).Info("corpus loaded")

	gen := rand.New(rand.NewSource(cfg.Seed))
	net := word2vec.NewNet(anyvec32.CurrentCreator(), corpus.NumVocab(), cfg.Dim, gen)
	logger := report.NewLogger(log.Logger, runID)
	trainer := &word2vec.Trainer{
		Config:        cfg,
		Model:         net,
		Table:         word2vec.BuildNegativeTable(corpus.Frequencies(), cfg.NoiseExponent, cfg.TableSize),
		Subsampler:    discard,
		Rand:          gen,
		WordsPerEpoch: corpus.NumWords(),
		StatusFunc:    logger.Status,
		BatchFunc:     logger.Batch,
	}

	if f.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics, err := report.NewMetrics(reg, runID)
		if err != nil {
			return err
		}
		trainer.StatusFunc = func(s word2vec.Status) {
			logger.Status(s)
			metrics.Status(s)
		}
		trainer.BatchFunc = func(size int, loss float64) {
			logger.Batch(size, loss)
			metrics.Batch(size, loss)
		}
		serveMetrics(f.MetricsAddr, reg, log)
	}

	log.WithField("epochs", cfg.Epochs).Info("training")
	if err := trainer.Train(docs); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"batches": trainer.State.Batches,
		"loss":    trainer.State.Loss,
	}).Info("training finished")

	embedding := word2vec.NewEmbedding(corpus.Vocab, net)
	if err := writeVectors(f.Output, embedding); err != nil {
		return err
	}
	if f.SavePath != "" {
		if err := serializer.SaveAny(f.SavePath, embedding); err != nil {
			return essentials.AddCtx("save embedding", err)
		}
	}
	log.WithField("path", f.Output).Info("vectors saved")

	logNeighbors(log, embedding, essentials.MinInt(f.Neighbors, corpus.NumVocab()))
	return nil
}

// logNeighbors logs the closest words to each of the first
// n word IDs, which are the most frequent words.
// n must not exceed the vocabulary size.
func logNeighbors(log *logrus.Entry, e sgns.Embedding, n int) {
	const numNeighbors = 5
	for id := 0; id < n; id++ {
		ids, _ := e.Lookup(e.EmbedID(id), numNeighbors+1)
		var words []string
		for _, other := range ids {
			if other != id {
				words = append(words, e.Token(other))
			}
		}
		log.WithFields(logrus.Fields{
			"word":      e.Token(id),
			"neighbors": strings.Join(words, " "),
		}).Info("nearest neighbors")
	}
}

// serveMetrics exposes the registry in the background.
// Failing to serve is logged but does not stop training.
func serveMetrics(addr string, reg *prometheus.Registry, log *logrus.Entry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.WithError(err).Warn("metrics server stopped")
		}
	}()
}

func writeVectors(path string, e *word2vec.Embedding) (err error) {
	defer essentials.AddCtxTo("write "+path, &err)
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.WriteText(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
