// Package report publishes the progress of a training run
// as log entries and Prometheus metrics.
package report

import (
	"github.com/sirupsen/logrus"
	"github.com/unixpickle/sgns/word2vec"
)

// A Logger logs training statuses.
type Logger struct {
	Entry *logrus.Entry
}

// NewLogger creates a Logger whose entries are tagged with
// the run ID.
func NewLogger(l *logrus.Logger, runID string) *Logger {
	return &Logger{Entry: l.WithField("run", runID)}
}

// Status logs a training status at info level.
func (l *Logger) Status(s word2vec.Status) {
	l.Entry.WithFields(logrus.Fields{
		"epoch":    s.Epoch + 1,
		"progress": s.Progress,
		"lr":       s.Rate,
		"loss":     s.Loss,
		"words":    s.WordsProcessed,
	}).Info("training progress")
}

// Batch logs the loss of a batch at trace level.
func (l *Logger) Batch(size int, loss float64) {
	if !l.Entry.Logger.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	l.Entry.WithFields(logrus.Fields{
		"size": size,
		"loss": loss,
	}).Trace("trained batch")
}
