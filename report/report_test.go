package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/unixpickle/sgns/word2vec"
)

func testStatus() word2vec.Status {
	return word2vec.Status{
		State: word2vec.State{
			Epoch:          1,
			WordsProcessed: 1500,
			Rate:           0.02,
			Loss:           2.5,
		},
		Progress: 0.25,
	}
}

func TestLoggerStatus(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	NewLogger(l, "run-1").Status(testStatus())

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["run"] != "run-1" || entry["msg"] != "training progress" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["lr"] != 0.02 || entry["epoch"] != float64(2) || entry["words"] != float64(1500) {
		t.Errorf("unexpected fields: %v", entry)
	}
}

func TestLoggerBatchLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	logger := NewLogger(l, "run-1")

	logger.Batch(10, 1.5)
	if buf.Len() != 0 {
		t.Error("batches should only be logged at trace level")
	}
	l.SetLevel(logrus.TraceLevel)
	logger.Batch(10, 1.5)
	if buf.Len() == 0 {
		t.Error("expected a trace entry")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	m.Status(testStatus())
	m.Batch(512, 3.25)
	m.Batch(100, 3)

	checks := []struct {
		name     string
		c        prometheus.Collector
		expected float64
	}{
		{"rate", m.Rate, 0.02},
		{"progress", m.Progress, 0.25},
		{"words", m.Words, 1500},
		{"epoch", m.Epoch, 2},
		{"loss", m.Loss, 3},
		{"batches", m.Batches, 2},
		{"pairs", m.Pairs, 612},
	}
	for _, c := range checks {
		if actual := testutil.ToFloat64(c.c); actual != c.expected {
			t.Errorf("%s: expected %v but got %v", c.name, c.expected, actual)
		}
	}

	if _, err := NewMetrics(reg, "run-1"); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}
