package word2vec

import (
	"errors"
	"fmt"
)

// Defaults used by DefaultConfig.
const (
	DefaultWindow        = 5
	DefaultDim           = 100
	DefaultMinCount      = 5
	DefaultSubsample     = 1e-3
	DefaultNoiseExponent = 0.75
	DefaultNegatives     = 5
	DefaultEpochs        = 7
	DefaultBatchSize     = 512
	DefaultRateInterval  = 1000
	DefaultRate          = 0.025
	DefaultTableSize     = 10000000
	DefaultMaxChunkLen   = 1000
	DefaultSeed          = 7
)

// Config stores the hyper-parameters of a training run.
type Config struct {
	// Window is the maximum distance between a center word
	// and its context words.
	// The actual radius is drawn uniformly from
	// [1, Window] for every position.
	Window int

	// Dim is the dimensionality of the word vectors.
	Dim int

	// MinCount is the minimum number of occurrences for a
	// word to be part of the vocabulary.
	MinCount int

	// Subsample is the subsampling threshold t.
	// If 0, no words are subsampled.
	Subsample float64

	// NoiseExponent is the power applied to word counts to
	// get the noise distribution.
	NoiseExponent float64

	// Negatives is the number of negative samples drawn
	// for every (center, context) pair.
	Negatives int

	Epochs    int
	BatchSize int

	// RateInterval is the number of words which must be
	// processed between two learning rate updates.
	RateInterval int

	// Rate is the initial learning rate.
	Rate float64

	// TableSize is the nominal size of the negative
	// sampling table.
	TableSize int

	// MaxChunkLen is the maximum number of kept words in
	// the chunks that long documents are split into.
	MaxChunkLen int

	// FlushEachDocument, if true, submits the pending
	// partial batch at the end of every document.
	// Otherwise pairs are carried over to the next document
	// and only flushed at the end of an epoch.
	FlushEachDocument bool

	Seed int64
}

// DefaultConfig creates a Config with the defaults from
// the original word2vec tools.
func DefaultConfig() *Config {
	return &Config{
		Window:            DefaultWindow,
		Dim:               DefaultDim,
		MinCount:          DefaultMinCount,
		Subsample:         DefaultSubsample,
		NoiseExponent:     DefaultNoiseExponent,
		Negatives:         DefaultNegatives,
		Epochs:            DefaultEpochs,
		BatchSize:         DefaultBatchSize,
		RateInterval:      DefaultRateInterval,
		Rate:              DefaultRate,
		TableSize:         DefaultTableSize,
		MaxChunkLen:       DefaultMaxChunkLen,
		FlushEachDocument: true,
		Seed:              DefaultSeed,
	}
}

// Validate checks that the Config can be used to train.
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"window", c.Window},
		{"dim", c.Dim},
		{"epochs", c.Epochs},
		{"batch size", c.BatchSize},
		{"table size", c.TableSize},
		{"max chunk length", c.MaxChunkLen},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("invalid config: %s must be positive (got %d)", p.name, p.value)
		}
	}
	nonNegative := []struct {
		name  string
		value int
	}{
		{"min count", c.MinCount},
		{"negatives", c.Negatives},
		{"rate interval", c.RateInterval},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return fmt.Errorf("invalid config: %s must not be negative (got %d)", p.name, p.value)
		}
	}
	if c.Subsample < 0 {
		return errors.New("invalid config: subsample threshold must not be negative")
	}
	if c.NoiseExponent <= 0 {
		return errors.New("invalid config: noise exponent must be positive")
	}
	if c.Rate <= 0 {
		return errors.New("invalid config: learning rate must be positive")
	}
	return nil
}
