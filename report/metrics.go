package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/sgns/word2vec"
)

// Metrics exports the progress of a training run.
type Metrics struct {
	Rate     prometheus.Gauge
	Loss     prometheus.Gauge
	Progress prometheus.Gauge
	Words    prometheus.Gauge
	Epoch    prometheus.Gauge

	Batches prometheus.Counter
	Pairs   prometheus.Counter
}

// NewMetrics creates and registers the metrics of a run.
func NewMetrics(reg prometheus.Registerer, runID string) (*Metrics, error) {
	labels := prometheus.Labels{"run": runID}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "sgns",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "sgns",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	m := &Metrics{
		Rate:     gauge("learning_rate", "current learning rate"),
		Loss:     gauge("loss", "loss of the most recent batch"),
		Progress: gauge("progress_ratio", "fraction of the run completed"),
		Words:    gauge("words_processed", "words processed, including subsampled words"),
		Epoch:    gauge("epoch", "current epoch, starting at 1"),
		Batches:  counter("batches_total", "minibatches trained"),
		Pairs:    counter("pairs_total", "context pairs trained"),
	}
	for _, c := range []prometheus.Collector{m.Rate, m.Loss, m.Progress, m.Words, m.Epoch,
		m.Batches, m.Pairs} {
		if err := reg.Register(c); err != nil {
			return nil, essentials.AddCtx("register metrics", err)
		}
	}
	return m, nil
}

// Status records a training status.
func (m *Metrics) Status(s word2vec.Status) {
	m.Rate.Set(s.Rate)
	m.Loss.Set(s.Loss)
	m.Progress.Set(s.Progress)
	m.Words.Set(float64(s.WordsProcessed))
	m.Epoch.Set(float64(s.Epoch + 1))
}

// Batch records a trained batch.
func (m *Metrics) Batch(size int, loss float64) {
	m.Batches.Inc()
	m.Pairs.Add(float64(size))
	m.Loss.Set(loss)
}
