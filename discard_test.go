package sgns

import (
	"math"
	"math/rand"
	"testing"
)

func TestDiscardTable(t *testing.T) {
	table := NewDiscardTable([]int{100, 1, 0}, 101, 0.05)
	ratio := 0.05 / (100.0 / 101)
	expected := 1 - (math.Sqrt(ratio) + ratio)
	if math.Abs(table[0]-expected) > 1e-12 {
		t.Errorf("frequent word: expected %f but got %f", expected, table[0])
	}
	if table[1] != 0 {
		t.Errorf("rare word should never be discarded, got %f", table[1])
	}
	if table[2] != 0 {
		t.Errorf("zero-count word should never be discarded, got %f", table[2])
	}

	gen := rand.New(rand.NewSource(1))
	const numTrials = 100000
	var discarded int
	for i := 0; i < numTrials; i++ {
		if table.Discard(0, gen) {
			discarded++
		}
		if table.Discard(1, gen) {
			t.Fatal("rare word was discarded")
		}
	}
	if frac := float64(discarded) / numTrials; math.Abs(frac-expected) > 0.01 {
		t.Errorf("discard rate should be %f but got %f", expected, frac)
	}
}

func TestDiscardTableDisabled(t *testing.T) {
	for _, table := range []DiscardTable{
		NewDiscardTable([]int{100, 1}, 101, 0),
		NewDiscardTable([]int{100, 1}, 0, 1e-3),
	} {
		for i, p := range table {
			if p != 0 {
				t.Errorf("word %d: expected 0 but got %f", i, p)
			}
		}
	}
}
